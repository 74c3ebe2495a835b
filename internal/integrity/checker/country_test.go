package checker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devicegate/internal/integrity/cache"
)

func TestCountryChecker(t *testing.T) {
	ctx := context.Background()

	newWhitelist := func(countries ...string) *cache.Memory {
		mem := cache.NewMemory()
		mem.AddMembers(WhitelistSetName, countries...)
		return mem
	}

	t.Run("empty country passes without querying", func(t *testing.T) {
		chk := NewCountry(failingWhitelist{})

		outcome, err := chk.Evaluate(ctx, Input{Country: ""})
		require.NoError(t, err)
		assert.False(t, outcome.Failed())
	})

	t.Run("whitelisted country passes", func(t *testing.T) {
		chk := NewCountry(newWhitelist("ES", "FR"))

		outcome, err := chk.Evaluate(ctx, Input{Country: "ES"})
		require.NoError(t, err)
		assert.False(t, outcome.Failed())
	})

	t.Run("non-whitelisted country fails with country reason", func(t *testing.T) {
		chk := NewCountry(newWhitelist("ES", "FR"))

		outcome, err := chk.Evaluate(ctx, Input{Country: "ZZ"})
		require.NoError(t, err)
		assert.True(t, outcome.Failed())
		assert.Equal(t, ReasonCountry, outcome.Reason)
	})

	t.Run("whitelist error aborts the evaluation", func(t *testing.T) {
		chk := NewCountry(failingWhitelist{})

		_, err := chk.Evaluate(ctx, Input{Country: "ES"})
		require.Error(t, err)
	})
}

type failingWhitelist struct{}

func (failingWhitelist) IsMember(context.Context, string, string) (bool, error) {
	return false, errors.New("redis down")
}
