// Package fanout issues transition plans against the document store.
package fanout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"localstore/internal/core/domain/model/journal"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/transition"
	"localstore/internal/core/ports"
	"localstore/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// Config tunes how plans are issued.
type Config struct {
	// StepTimeout bounds a single store call. Zero leaves calls bounded only
	// by the caller's context.
	StepTimeout time.Duration
	// MaxRetries is how many times a plan that failed with a temporary error
	// is issued again from its first step. Zero leaves retrying to the user.
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultConfig() Config {
	return Config{
		StepTimeout:     10 * time.Second,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

// StepError is the failure of one step of a plan.
type StepError struct {
	Index int
	Step  transition.Step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Executor runs plans step by step. Writes go out in order and the first
// failure stops the run before any retirement is issued.
type Executor struct {
	store     ports.DocumentStore
	journal   ports.JournalRepository
	publisher ports.EventPublisher
	clock     kernel.Clock
	cfg       Config
	logger    *slog.Logger
}

func NewExecutor(
	store ports.DocumentStore,
	journal ports.JournalRepository,
	publisher ports.EventPublisher,
	clock kernel.Clock,
	cfg Config,
	logger *slog.Logger,
) (*Executor, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	if journal == nil {
		return nil, errs.NewValueIsRequiredError("journal")
	}
	if publisher == nil {
		return nil, errs.NewValueIsRequiredError("publisher")
	}
	if clock == nil {
		return nil, errs.NewValueIsRequiredError("clock")
	}
	if cfg.StepTimeout < 0 {
		return nil, errs.NewValueIsOutOfRangeError("step timeout", cfg.StepTimeout, 0, "unbounded")
	}

	return &Executor{
		store:     store,
		journal:   journal,
		publisher: publisher,
		clock:     clock,
		cfg:       cfg,
		logger:    logger.With("component", "fanout"),
	}, nil
}

// Execute issues plan. On failure the returned error is a *StepError naming
// the step that could not be written; issuing the same plan again is safe.
func (e *Executor) Execute(ctx context.Context, plan *transition.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	entry, err := journal.NewEntry(kernel.NewUUID(), plan.Name(), plan.OrderID(), plan.Actor(), plan.Len(), e.clock.Now())
	if err != nil {
		return err
	}
	if err = e.journal.Add(ctx, entry); err != nil {
		e.logger.ErrorContext(ctx, "failed to journal run", "run", entry.ID().String(), "error", err)
	}

	log := e.logger.With(
		"run", entry.ID().String(),
		"transition", plan.Name(),
		"order", plan.OrderID(),
	)

	var lastErr error
	attempt := func() error {
		if err := entry.Attempt(); err != nil {
			log.ErrorContext(ctx, "failed to count attempt", "error", err)
		}
		lastErr = e.run(ctx, plan)
		if lastErr == nil {
			return nil
		}
		if !retryable(ctx, lastErr) {
			return backoff.Permanent(lastErr)
		}
		log.WarnContext(ctx, "transition attempt failed", "attempt", entry.Attempts(), "error", lastErr)
		return lastErr
	}

	if err = backoff.Retry(attempt, e.policy(ctx)); err != nil {
		// A context canceled between attempts surfaces as ctx.Err().
		if lastErr != nil && !errors.Is(err, lastErr) {
			err = errors.Join(lastErr, err)
		}
		step := -1
		var stepErr *StepError
		if errors.As(err, &stepErr) {
			step = stepErr.Index
		}
		if ferr := entry.Fail(step, err, e.clock.Now()); ferr != nil {
			log.ErrorContext(ctx, "failed to record failure", "error", ferr)
		}
		e.save(ctx, log, entry)
		log.ErrorContext(ctx, "transition failed", "attempts", entry.Attempts(), "step", step, "error", err)
		return err
	}

	finished := e.clock.Now()
	if err = entry.Succeed(finished); err != nil {
		log.ErrorContext(ctx, "failed to record success", "error", err)
	}
	e.save(ctx, log, entry)
	log.InfoContext(ctx, "transition completed", "steps", plan.Len(), "attempts", entry.Attempts())

	event := transition.Completed{
		RunID:      entry.ID().String(),
		Transition: plan.Name(),
		OrderID:    plan.OrderID(),
		Actor:      plan.Actor(),
		Steps:      plan.Len(),
		Attempts:   entry.Attempts(),
		At:         finished,
	}
	if err = e.publisher.Publish(ctx, event); err != nil {
		log.ErrorContext(ctx, "failed to publish transition", "error", err)
	}
	return nil
}

func (e *Executor) run(ctx context.Context, plan *transition.Plan) error {
	for i, step := range plan.Steps() {
		if err := e.issue(ctx, step); err != nil {
			return &StepError{Index: i, Step: step, Err: err}
		}
	}
	return nil
}

func (e *Executor) issue(ctx context.Context, step transition.Step) error {
	if e.cfg.StepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.StepTimeout)
		defer cancel()
	}

	switch step.Method {
	case transition.Put:
		return e.store.Put(ctx, step.Path, step.Body)
	case transition.Patch:
		return e.store.Patch(ctx, step.Path, step.Body)
	case transition.Delete:
		return e.store.Delete(ctx, step.Path)
	default:
		return errs.NewValueIsInvalidError("method")
	}
}

func (e *Executor) policy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	if e.cfg.InitialInterval > 0 {
		exp.InitialInterval = e.cfg.InitialInterval
	}
	if e.cfg.MaxInterval > 0 {
		exp.MaxInterval = e.cfg.MaxInterval
	}
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, e.cfg.MaxRetries), ctx)
}

func (e *Executor) save(ctx context.Context, log *slog.Logger, entry *journal.Entry) {
	if err := e.journal.Update(ctx, entry); err != nil {
		log.ErrorContext(ctx, "failed to journal outcome", "outcome", entry.Outcome().String(), "error", err)
	}
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var callErr *errs.RemoteCallError
	return errors.As(err, &callErr) && callErr.Temporary()
}
