package provision

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/ksyq12/hostprov/internal/logger"
)

// Step is one unit of a multi-step create. Undo deletes what Do created;
// it is nil for steps that only resolve existing resources.
type Step struct {
	Name    string
	Do      func(ctx context.Context) error
	Undo    func(ctx context.Context) error
	resolve bool
}

// Sequence runs steps in order and compensates completed steps in reverse
// order when a later one fails. Steps share data through closures.
type Sequence struct {
	name  string
	steps []Step
}

// NewSequence creates an empty sequence. name appears in logs.
func NewSequence(name string) *Sequence {
	return &Sequence{name: name}
}

// Resolve appends a lookup or allocation step. A failing resolve step
// returns its error as is unless a create step before it has completed,
// in which case it rolls back like a failing create step.
func (s *Sequence) Resolve(name string, do func(ctx context.Context) error) *Sequence {
	s.steps = append(s.steps, Step{Name: name, Do: do, resolve: true})
	return s
}

// Create appends a step that creates a remote object. undo may be nil when
// the object is removed together with an earlier one.
func (s *Sequence) Create(name string, do, undo func(ctx context.Context) error) *Sequence {
	s.steps = append(s.steps, Step{Name: name, Do: do, Undo: undo})
	return s
}

// Run executes the steps. On failure of a create step every completed step
// with an Undo is compensated, newest first, and a *SequenceError wrapping
// the original error is returned. Rollback runs even if ctx is canceled.
func (s *Sequence) Run(ctx context.Context) error {
	for i, step := range s.steps {
		err := step.Do(ctx)
		if err == nil {
			continue
		}
		if step.resolve && !s.created(i) {
			return err
		}
		return s.rollback(ctx, i, err)
	}
	return nil
}

// created reports whether any create step precedes step i
func (s *Sequence) created(i int) bool {
	for _, step := range s.steps[:i] {
		if !step.resolve {
			return true
		}
	}
	return false
}

func (s *Sequence) rollback(ctx context.Context, failed int, cause error) error {
	serr := &SequenceError{
		Sequence: s.name,
		Step:     s.steps[failed].Name,
		Err:      cause,
	}

	undoCtx := context.WithoutCancel(ctx)
	var errs error
	for i := failed - 1; i >= 0; i-- {
		step := s.steps[i]
		if step.Undo == nil {
			continue
		}
		logger.InfoFields("rolling back", map[string]interface{}{
			"sequence": s.name,
			"step":     step.Name,
		})
		if err := step.Undo(undoCtx); err != nil {
			logger.WarnFields("rollback step failed", map[string]interface{}{
				"sequence": s.name,
				"step":     step.Name,
				"error":    err,
			})
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", step.Name, err))
			continue
		}
		serr.RolledBack = append(serr.RolledBack, step.Name)
	}
	serr.RollbackErr = errs
	return serr
}

// SequenceError is returned when a create step fails. It unwraps to the
// original error so callers observe that error, not a rollback failure.
type SequenceError struct {
	Sequence    string
	Step        string   // failed step
	Err         error    // original error
	RolledBack  []string // compensated steps, newest first
	RollbackErr error    // *multierror.Error of failed compensations
}

func (e *SequenceError) Error() string {
	return e.Err.Error()
}

func (e *SequenceError) Unwrap() error {
	return e.Err
}

// Debug describes the rollback outcome for ProvisionError.Debug
func (e *SequenceError) Debug() map[string]any {
	d := map[string]any{
		"failed_step": e.Step,
		"rolled_back": e.RolledBack,
	}
	if merr, ok := e.RollbackErr.(*multierror.Error); ok && merr != nil {
		msgs := make([]string, 0, len(merr.Errors))
		for _, err := range merr.Errors {
			msgs = append(msgs, err.Error())
		}
		d["rollback_errors"] = msgs
	}
	return d
}
