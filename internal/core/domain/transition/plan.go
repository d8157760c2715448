// Package transition describes a lifecycle transition as data.
//
// The remote store cannot write several paths atomically, so a transition is
// an ordered list of idempotent writes followed by the deletes that retire the
// order's old locations. Retirements run only after every write succeeded:
// an interrupted plan leaves the order duplicated, never lost, and issuing the
// whole plan again converges to the same final state.
package transition

import (
	"errors"
	"fmt"
	"time"

	"localstore/internal/pkg/errs"
)

// Method is the store verb a step uses.
type Method int

const (
	UnknownMethod Method = iota
	Put
	Patch
	Delete
)

func (m Method) String() string {
	switch m {
	case Put:
		return "PUT"
	case Patch:
		return "PATCH"
	case Delete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// Step is a single store call.
type Step struct {
	Method Method
	Path   string
	Body   any
}

func (s Step) String() string {
	return s.Method.String() + " " + s.Path
}

func (s Step) validate() error {
	if s.Path == "" {
		return errs.NewValueIsRequiredError("path")
	}
	switch s.Method {
	case Put, Patch:
		if s.Body == nil {
			return errs.NewValueIsRequiredErrorWithCause("body", fmt.Errorf("%s needs a body", s))
		}
	case Delete:
	default:
		return errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%d is not a store method", s.Method))
	}
	return nil
}

// Plan is one transition of one order.
type Plan struct {
	name        string
	orderID     string
	actor       string
	writes      []Step
	retirements []Step
}

// NewPlan starts an empty plan for the transition name applied to orderID by actor.
func NewPlan(name, orderID, actor string) *Plan {
	return &Plan{name: name, orderID: orderID, actor: actor}
}

func (p *Plan) Name() string    { return p.name }
func (p *Plan) OrderID() string { return p.orderID }
func (p *Plan) Actor() string   { return p.actor }

// Put replaces the document at path.
func (p *Plan) Put(path string, body any) *Plan {
	p.writes = append(p.writes, Step{Method: Put, Path: path, Body: body})
	return p
}

// Patch merges fields into the document at path.
func (p *Plan) Patch(path string, fields any) *Plan {
	p.writes = append(p.writes, Step{Method: Patch, Path: path, Body: fields})
	return p
}

// Remove deletes path as part of the writes. It is meant for markers such as
// registry entries, whose removal loses nothing.
func (p *Plan) Remove(path string) *Plan {
	p.writes = append(p.writes, Step{Method: Delete, Path: path})
	return p
}

// Retire deletes one of the order's old locations once every write is done.
func (p *Plan) Retire(path string) *Plan {
	p.retirements = append(p.retirements, Step{Method: Delete, Path: path})
	return p
}

func (p *Plan) Writes() []Step {
	return append([]Step(nil), p.writes...)
}

func (p *Plan) Retirements() []Step {
	return append([]Step(nil), p.retirements...)
}

// Steps returns writes followed by retirements, the order they are issued in.
func (p *Plan) Steps() []Step {
	steps := make([]Step, 0, len(p.writes)+len(p.retirements))
	steps = append(steps, p.writes...)
	return append(steps, p.retirements...)
}

func (p *Plan) Len() int {
	return len(p.writes) + len(p.retirements)
}

// Validate rejects plans that cannot be issued.
func (p *Plan) Validate() error {
	if p == nil {
		return errs.NewValueIsRequiredError("plan")
	}
	if p.name == "" {
		return errs.NewValueIsRequiredError("transition")
	}
	if p.Len() == 0 {
		return errs.NewValueIsRequiredErrorWithCause("steps", fmt.Errorf("plan %s is empty", p.name))
	}

	var all []error
	for i, s := range p.Steps() {
		if err := s.validate(); err != nil {
			all = append(all, fmt.Errorf("step %d: %w", i, err))
		}
	}
	return errors.Join(all...)
}

// Completed announces a plan that ran to the end.
type Completed struct {
	RunID      string    `json:"runId"`
	Transition string    `json:"transition"`
	OrderID    string    `json:"orderId"`
	Actor      string    `json:"actor"`
	Steps      int       `json:"steps"`
	Attempts   int       `json:"attempts"`
	At         time.Time `json:"at"`
}
