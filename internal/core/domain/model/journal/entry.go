// Package journal records every lifecycle transition the service runs.
//
// The remote store offers no transactions, so a transition interrupted half
// way leaves the order duplicated across collections. Entries make those runs
// visible: an entry stuck in Running or ended in Failed names the order,
// the step that failed and the error the store returned.
package journal

import (
	"errors"
	"fmt"
	"time"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/errs"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Outcome is the state of a journaled run.
type Outcome int

const (
	UnknownOutcome Outcome = iota
	Running
	Succeeded
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "Running"
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

func (o Outcome) Validate() error {
	if o < Running || o > Failed {
		return errs.NewValueIsInvalidErrorWithCause("outcome", fmt.Errorf("%d is not a valid outcome", o))
	}
	return nil
}

// Entry is one run of a transition plan.
type Entry struct {
	id         kernel.UUID
	transition string
	orderID    string
	actor      string
	outcome    Outcome
	attempts   int
	steps      int
	failedStep int
	lastError  string
	startedAt  time.Time
	finishedAt *time.Time

	isConstructed bool
}

// NewEntry starts a run of transition on orderID by actor, made of steps steps.
func NewEntry(id kernel.UUID, transition, orderID, actor string, steps int, startedAt time.Time) (*Entry, error) {
	e := &Entry{
		outcome:       Running,
		failedStep:    -1,
		startedAt:     startedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setTransition(transition),
		e.setSteps(steps),
	); err != nil {
		return nil, err
	}
	e.orderID = orderID
	e.actor = actor

	return e, nil
}

// RestoreEntry rebuilds a persisted entry.
func RestoreEntry(
	id kernel.UUID,
	transition, orderID, actor string,
	outcome Outcome,
	attempts, steps, failedStep int,
	lastError string,
	startedAt time.Time,
	finishedAt *time.Time,
) (*Entry, error) {
	e, err := NewEntry(id, transition, orderID, actor, steps, startedAt)
	if err != nil {
		return nil, err
	}
	if err = outcome.Validate(); err != nil {
		return nil, err
	}
	e.outcome = outcome
	e.attempts = attempts
	e.failedStep = failedStep
	e.lastError = lastError
	e.finishedAt = finishedAt
	return e, nil
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setTransition(transition string) error {
	if transition == "" {
		return errs.NewValueIsRequiredError("transition")
	}
	e.transition = transition
	return nil
}

func (e *Entry) setSteps(steps int) error {
	if steps < 0 {
		return errs.NewValueIsOutOfRangeError("steps", steps, 0, "unbounded")
	}
	e.steps = steps
	return nil
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() kernel.UUID        { return e.id }
func (e *Entry) Transition() string     { return e.transition }
func (e *Entry) OrderID() string        { return e.orderID }
func (e *Entry) Actor() string          { return e.actor }
func (e *Entry) Outcome() Outcome       { return e.outcome }
func (e *Entry) Attempts() int          { return e.attempts }
func (e *Entry) Steps() int             { return e.steps }
func (e *Entry) LastError() string      { return e.lastError }
func (e *Entry) StartedAt() time.Time   { return e.startedAt }
func (e *Entry) FinishedAt() *time.Time { return e.finishedAt }

// FailedStep is the index of the step that failed last, or -1.
func (e *Entry) FailedStep() int { return e.failedStep }

// Attempt records that the plan is being issued once more.
func (e *Entry) Attempt() error {
	if e.outcome != Running {
		return errs.NewValueIsInvalidErrorWithCause(
			"outcome",
			fmt.Errorf("cannot attempt a run that is %s", e.outcome),
		)
	}
	e.attempts++
	return nil
}

// Succeed closes the run.
func (e *Entry) Succeed(at time.Time) error {
	if e.outcome != Running {
		return errs.NewValueIsInvalidErrorWithCause(
			"outcome",
			fmt.Errorf("cannot succeed a run that is %s", e.outcome),
		)
	}
	e.outcome = Succeeded
	e.failedStep = -1
	e.lastError = ""
	e.finishedAt = &at
	return nil
}

// Fail closes the run, naming the step that could not be written.
func (e *Entry) Fail(step int, cause error, at time.Time) error {
	if e.outcome != Running {
		return errs.NewValueIsInvalidErrorWithCause(
			"outcome",
			fmt.Errorf("cannot fail a run that is %s", e.outcome),
		)
	}
	e.outcome = Failed
	e.failedStep = step
	if cause != nil {
		e.lastError = cause.Error()
	}
	e.finishedAt = &at
	return nil
}
