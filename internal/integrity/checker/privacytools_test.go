package checker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"devicegate/internal/integrity/cache"
	"devicegate/internal/integrity/reputation"
	"devicegate/internal/integrity/reputation/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPrivacyToolsChecker(t *testing.T) {
	ctx := context.Background()
	const ip = "203.0.113.7"

	t.Run("empty ip passes without any lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		selector := mocks.NewMockSelector(ctrl)
		// No EXPECT: any selector call fails the test.

		chk := NewPrivacyTools(selector, cache.NewMemory(), discardLogger())
		outcome, err := chk.Evaluate(ctx, Input{IP: ""})
		require.NoError(t, err)
		assert.False(t, outcome.Failed())
	})

	t.Run("network payload with vpn flag fails and refreshes the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockSource(ctrl)
		source.EXPECT().Fetch(gomock.Any(), ip).Return(`{"security":{"vpn":true,"tor":false}}`, nil)
		source.EXPECT().Origin().Return(reputation.OriginNetwork).AnyTimes()

		selector := mocks.NewMockSelector(ctrl)
		selector.EXPECT().Select(gomock.Any(), ip).Return(source, nil)

		mem := cache.NewMemory()
		chk := NewPrivacyTools(selector, mem, discardLogger())

		outcome, err := chk.Evaluate(ctx, Input{IP: ip})
		require.NoError(t, err)
		assert.Equal(t, ReasonVPN, outcome.Reason)
		assert.True(t, outcome.Signals.VPN)
		assert.False(t, outcome.Signals.Tor)

		cached, ok, err := mem.Get(ctx, reputation.CacheKey(ip))
		require.NoError(t, err)
		require.True(t, ok, "network payload must be written back to the cache")
		assert.Equal(t, `{"security":{"vpn":true,"tor":false}}`, cached)
	})

	t.Run("tor flag alone fails with the vpn reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockSource(ctrl)
		source.EXPECT().Fetch(gomock.Any(), ip).Return(`{"security":{"vpn":false,"tor":true}}`, nil)
		source.EXPECT().Origin().Return(reputation.OriginCache).AnyTimes()

		selector := mocks.NewMockSelector(ctrl)
		selector.EXPECT().Select(gomock.Any(), ip).Return(source, nil)

		chk := NewPrivacyTools(selector, cache.NewMemory(), discardLogger())

		outcome, err := chk.Evaluate(ctx, Input{IP: ip})
		require.NoError(t, err)
		assert.Equal(t, ReasonVPN, outcome.Reason)
		assert.True(t, outcome.Signals.Tor)
	})

	t.Run("cache-sourced payload is not written back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockSource(ctrl)
		source.EXPECT().Fetch(gomock.Any(), ip).Return(`{"security":{"vpn":false,"tor":false}}`, nil)
		source.EXPECT().Origin().Return(reputation.OriginCache).AnyTimes()

		selector := mocks.NewMockSelector(ctrl)
		selector.EXPECT().Select(gomock.Any(), ip).Return(source, nil)

		mem := cache.NewMemory()
		chk := NewPrivacyTools(selector, mem, discardLogger())

		outcome, err := chk.Evaluate(ctx, Input{IP: ip})
		require.NoError(t, err)
		assert.False(t, outcome.Failed())

		_, ok, err := mem.Get(ctx, reputation.CacheKey(ip))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unparseable network payload fails open but is still cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockSource(ctrl)
		source.EXPECT().Fetch(gomock.Any(), ip).Return(`<html>502</html>`, nil)
		source.EXPECT().Origin().Return(reputation.OriginNetwork).AnyTimes()

		selector := mocks.NewMockSelector(ctrl)
		selector.EXPECT().Select(gomock.Any(), ip).Return(source, nil)

		mem := cache.NewMemory()
		chk := NewPrivacyTools(selector, mem, discardLogger())

		outcome, err := chk.Evaluate(ctx, Input{IP: ip})
		require.NoError(t, err)
		assert.False(t, outcome.Failed(), "parse failures must not veto")

		cached, ok, err := mem.Get(ctx, reputation.CacheKey(ip))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, `<html>502</html>`, cached)
	})

	t.Run("transport failure fails open and leaves the cache untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockSource(ctrl)
		source.EXPECT().Fetch(gomock.Any(), ip).Return("", errors.New("dial timeout"))
		source.EXPECT().Origin().Return(reputation.OriginNetwork).AnyTimes()

		selector := mocks.NewMockSelector(ctrl)
		selector.EXPECT().Select(gomock.Any(), ip).Return(source, nil)

		mem := cache.NewMemory()
		chk := NewPrivacyTools(selector, mem, discardLogger())

		outcome, err := chk.Evaluate(ctx, Input{IP: ip})
		require.NoError(t, err)
		assert.False(t, outcome.Failed())

		_, ok, err := mem.Get(ctx, reputation.CacheKey(ip))
		require.NoError(t, err)
		assert.False(t, ok, "failed lookups must not poison the cache")
	})

	t.Run("selector error aborts the evaluation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		selector := mocks.NewMockSelector(ctrl)
		selector.EXPECT().Select(gomock.Any(), ip).Return(nil, errors.New("redis down"))

		chk := NewPrivacyTools(selector, cache.NewMemory(), discardLogger())

		_, err := chk.Evaluate(ctx, Input{IP: ip})
		require.Error(t, err)
	})
}
