package checker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootedDeviceChecker(t *testing.T) {
	ctx := context.Background()
	chk := NewRootedDevice()

	t.Run("rooted device fails", func(t *testing.T) {
		outcome, err := chk.Evaluate(ctx, Input{RootedDevice: true})
		require.NoError(t, err)
		assert.True(t, outcome.Failed())
		assert.Equal(t, ReasonRootedDevice, outcome.Reason)
	})

	t.Run("clean device passes", func(t *testing.T) {
		outcome, err := chk.Evaluate(ctx, Input{RootedDevice: false})
		require.NoError(t, err)
		assert.False(t, outcome.Failed())
	})
}
