package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/distribution/mdhash/cache"
	"github.com/distribution/mdhash/digest"
	prometheus "github.com/distribution/mdhash/metrics"
	"github.com/docker/go-metrics"
)

var (
	latencyTimer = prometheus.CacheNamespace.NewLabeledTimer("latency", "The latency of digest cache operations", "provider", "operation")
	requests     = prometheus.CacheNamespace.NewLabeledCounter("requests", "The number of digest cache lookups", "provider", "result")
)

func init() {
	metrics.Register(prometheus.CacheNamespace)
}

type prometheusCacheProvider struct {
	cache.Provider
	name string
}

// NewPrometheusCacheProvider wraps a provider, recording the latency of each
// operation and counting lookup hits and misses under name.
func NewPrometheusCacheProvider(wrap cache.Provider, name string) cache.Provider {
	return &prometheusCacheProvider{
		Provider: wrap,
		name:     name,
	}
}

func (p *prometheusCacheProvider) Get(ctx context.Context, key cache.Key) (digest.Digest, error) {
	start := time.Now()
	d, e := p.Provider.Get(ctx, key)
	latencyTimer.WithValues(p.name, "Get").UpdateSince(start)

	switch {
	case e == nil:
		requests.WithValues(p.name, "hit").Inc(1)
	case errors.Is(e, cache.ErrUnknown):
		requests.WithValues(p.name, "miss").Inc(1)
	default:
		requests.WithValues(p.name, "error").Inc(1)
	}
	return d, e
}

func (p *prometheusCacheProvider) Set(ctx context.Context, key cache.Key, dgst digest.Digest) error {
	start := time.Now()
	e := p.Provider.Set(ctx, key, dgst)
	latencyTimer.WithValues(p.name, "Set").UpdateSince(start)
	return e
}
