package checker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingChecker notes whether it ran, so short-circuiting is observable.
type recordingChecker struct {
	outcome Outcome
	err     error
	called  bool
}

func (r *recordingChecker) Evaluate(context.Context, Input) (Outcome, error) {
	r.called = true
	return r.outcome, r.err
}

func TestChainEvaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("all checkers pass", func(t *testing.T) {
		first := &recordingChecker{}
		second := &recordingChecker{}
		third := &recordingChecker{}

		outcome, err := NewChain(first, second, third).Evaluate(ctx, Input{})
		require.NoError(t, err)
		assert.False(t, outcome.Failed())
		assert.True(t, first.called)
		assert.True(t, second.called)
		assert.True(t, third.called)
	})

	t.Run("first failure short-circuits later checkers", func(t *testing.T) {
		first := &recordingChecker{}
		second := &recordingChecker{outcome: Fail(ReasonRootedDevice)}
		third := &recordingChecker{}

		outcome, err := NewChain(first, second, third).Evaluate(ctx, Input{})
		require.NoError(t, err)
		assert.Equal(t, ReasonRootedDevice, outcome.Reason)
		assert.True(t, first.called)
		assert.True(t, second.called)
		assert.False(t, third.called, "checkers after the first failure must not run")
	})

	t.Run("failure carries the first failing reason", func(t *testing.T) {
		first := &recordingChecker{outcome: Fail(ReasonCountry)}
		second := &recordingChecker{outcome: Fail(ReasonRootedDevice)}
		third := &recordingChecker{}

		outcome, err := NewChain(first, second, third).Evaluate(ctx, Input{})
		require.NoError(t, err)
		assert.Equal(t, ReasonCountry, outcome.Reason)
	})

	t.Run("checker error aborts the chain", func(t *testing.T) {
		first := &recordingChecker{err: errors.New("boom")}
		second := &recordingChecker{}

		_, err := NewChain(first, second, &recordingChecker{}).Evaluate(ctx, Input{})
		require.Error(t, err)
		assert.False(t, second.called)
	})
}
