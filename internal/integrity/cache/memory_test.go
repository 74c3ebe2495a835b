package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryValues(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		mem := NewMemory()
		require.NoError(t, mem.Set(ctx, "k", "v", time.Minute))

		val, ok, err := mem.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v", val)
	})

	t.Run("missing key", func(t *testing.T) {
		mem := NewMemory()
		_, ok, err := mem.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired entry reads as a miss", func(t *testing.T) {
		mem := NewMemory()
		require.NoError(t, mem.Set(ctx, "k", "v", time.Minute))

		mem.SetNow(func() time.Time { return time.Now().Add(2 * time.Minute) })
		_, ok, err := mem.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		mem := NewMemory()
		require.NoError(t, mem.Set(ctx, "k", "v", 0))

		mem.SetNow(func() time.Time { return time.Now().Add(24 * 365 * time.Hour) })
		_, ok, err := mem.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestMemorySets(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	mem.AddMembers("countries", "ES", "FR")

	ok, err := mem.IsMember(ctx, "countries", "ES")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mem.IsMember(ctx, "countries", "ZZ")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = mem.IsMember(ctx, "unknown-set", "ES")
	require.NoError(t, err)
	assert.False(t, ok)
}
