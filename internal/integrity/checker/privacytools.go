package checker

import (
	"context"
	"log/slog"
	"time"

	"devicegate/internal/integrity/metrics"
	"devicegate/internal/integrity/reputation"
)

// PayloadCache is the write side of the lookup cache. Only network-sourced
// payloads are written back.
type PayloadCache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// PrivacyTools vetoes callers whose IP reputation shows a VPN or Tor exit.
// The payload is resolved through the selected data source; network payloads
// refresh the cache. Transport failures and unparseable payloads fail open:
// the provider is a hint, and a provider outage must never ban a device.
type PrivacyTools struct {
	sources reputation.Selector
	cache   PayloadCache
	logger  *slog.Logger
}

// NewPrivacyTools constructs the privacy-tools checker.
func NewPrivacyTools(sources reputation.Selector, cache PayloadCache, logger *slog.Logger) *PrivacyTools {
	return &PrivacyTools{sources: sources, cache: cache, logger: logger}
}

func (p *PrivacyTools) Evaluate(ctx context.Context, in Input) (Outcome, error) {
	if in.IP == "" {
		return Pass(), nil
	}

	source, err := p.sources.Select(ctx, in.IP)
	if err != nil {
		return Outcome{}, err
	}

	payload, err := source.Fetch(ctx, in.IP)
	if err != nil {
		// Fail open on transport errors; the counter keeps the failure
		// observable. The cache is left untouched so the next evaluation
		// retries the provider.
		p.logger.WarnContext(ctx, "reputation lookup failed, failing open",
			"ip", in.IP,
			"error", err,
		)
		return Pass(), nil
	}
	metrics.ReputationLookup(string(source.Origin()))

	if source.Origin() == reputation.OriginNetwork {
		if err := p.cache.Set(ctx, reputation.CacheKey(in.IP), payload, reputation.CacheTTL); err != nil {
			// A cache write failure only costs a future network call.
			p.logger.WarnContext(ctx, "reputation cache write failed",
				"ip", in.IP,
				"error", err,
			)
		}
	}

	signals, err := reputation.Parse(payload)
	if err != nil {
		p.logger.WarnContext(ctx, "unparseable reputation payload, treating as no risk",
			"ip", in.IP,
			"error", err,
		)
		return Pass(), nil
	}

	if signals.Risky() {
		return Outcome{Reason: ReasonVPN, Signals: signals}, nil
	}
	return Outcome{Signals: signals}, nil
}
