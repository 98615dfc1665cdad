package provision

import (
	"context"
	"fmt"
	"testing"

	"github.com/ksyq12/hostprov/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder builds steps that append their name to a shared log
type recorder struct {
	log []string
}

func (r *recorder) do(name string, err error) func(context.Context) error {
	return func(context.Context) error {
		r.log = append(r.log, "do "+name)
		return err
	}
}

func (r *recorder) undo(name string, err error) func(context.Context) error {
	return func(context.Context) error {
		r.log = append(r.log, "undo "+name)
		return err
	}
}

func TestSequenceRunSuccess(t *testing.T) {
	r := &recorder{}
	err := NewSequence("create").
		Resolve("plan", r.do("plan", nil)).
		Create("customer", r.do("customer", nil), r.undo("customer", nil)).
		Create("website", r.do("website", nil), r.undo("website", nil)).
		Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"do plan", "do customer", "do website"}, r.log)
}

func TestSequenceRollbackReverseOrder(t *testing.T) {
	r := &recorder{}
	cause := errors.Conflict("Domain already exists")

	err := NewSequence("create").
		Resolve("plan", r.do("plan", nil)).
		Create("customer", r.do("customer", nil), r.undo("customer", nil)).
		Create("login", r.do("login", nil), nil).
		Create("subscription", r.do("subscription", nil), r.undo("subscription", nil)).
		Create("website", r.do("website", cause), r.undo("website", nil)).
		Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, []string{
		"do plan", "do customer", "do login", "do subscription", "do website",
		"undo subscription", "undo customer",
	}, r.log)

	assert.Equal(t, "Domain already exists", err.Error())
	assert.True(t, errors.Is(err, errors.ErrConflict))

	var serr *SequenceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "website", serr.Step)
	assert.Equal(t, []string{"subscription", "customer"}, serr.RolledBack)
	assert.NoError(t, serr.RollbackErr)
}

func TestSequenceResolveFailureNoRollback(t *testing.T) {
	r := &recorder{}
	cause := errors.NotFound("Plan not found")

	err := NewSequence("create").
		Resolve("plan", r.do("plan", nil)).
		Resolve("ip", r.do("ip", cause)).
		Create("customer", r.do("customer", nil), r.undo("customer", nil)).
		Run(context.Background())

	assert.Same(t, cause, err)
	assert.Equal(t, []string{"do plan", "do ip"}, r.log)
}

func TestSequenceResolveAfterCreateRollsBack(t *testing.T) {
	r := &recorder{}
	cause := errors.NotFound("No free IP address available")

	err := NewSequence("create").
		Create("customer", r.do("customer", nil), r.undo("customer", nil)).
		Resolve("ip", r.do("ip", cause)).
		Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, []string{"do customer", "do ip", "undo customer"}, r.log)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	var serr *SequenceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "ip", serr.Step)
	assert.Equal(t, []string{"customer"}, serr.RolledBack)
}

func TestSequenceFirstStepFailure(t *testing.T) {
	r := &recorder{}
	cause := fmt.Errorf("refused")

	err := NewSequence("create").
		Create("customer", r.do("customer", cause), r.undo("customer", nil)).
		Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, []string{"do customer"}, r.log)
	assert.ErrorIs(t, err, cause)
}

func TestSequenceRollbackFailureKeepsOriginal(t *testing.T) {
	r := &recorder{}
	cause := errors.Validation("Password is too weak")

	err := NewSequence("create").
		Create("customer", r.do("customer", nil), r.undo("customer", fmt.Errorf("customer busy"))).
		Create("subscription", r.do("subscription", nil), r.undo("subscription", nil)).
		Create("website", r.do("website", cause), nil).
		Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Password is too weak", err.Error())

	var serr *SequenceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, []string{"subscription"}, serr.RolledBack)
	require.Error(t, serr.RollbackErr)

	debug := serr.Debug()
	assert.Equal(t, "website", debug["failed_step"])
	assert.Equal(t, []string{"customer: customer busy"}, debug["rollback_errors"])
}

func TestSequenceRollbackIgnoresCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var undoErr error

	err := NewSequence("create").
		Create("customer",
			func(context.Context) error { return nil },
			func(ctx context.Context) error {
				undoErr = ctx.Err()
				return nil
			}).
		Create("website", func(context.Context) error {
			cancel()
			return context.Canceled
		}, nil).
		Run(ctx)

	require.Error(t, err)
	assert.NoError(t, undoErr, "undo must run with a live context")
}
