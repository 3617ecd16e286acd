package memory

import (
	"context"
	"math"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/cache"
	"github.com/distribution/mdhash/digest"
	"github.com/hashicorp/golang-lru/arc/v2"
	"github.com/mitchellh/mapstructure"
)

// init registers the inmemory cache provider.
func init() {
	cache.Register("inmemory", NewProvider)
}

const (
	// DefaultSize is the default cache size to use if no size is explicitly
	// configured.
	DefaultSize = 10000

	// UnlimitedSize indicates the cache size should not be limited.
	UnlimitedSize = math.MaxInt
)

// Memory holds the parameters of the inmemory provider.
type Memory struct {
	Size int `yaml:"size,omitempty"`
}

// NewCacheOptions returns new memory cache options.
func NewCacheOptions(size int) map[string]interface{} {
	return map[string]interface{}{
		"params": map[string]interface{}{
			"size": size,
		},
	}
}

type entryKey struct {
	path  string
	alg   mdhash.Algorithm
	size  int64
	mtime int64
}

func newEntryKey(key cache.Key) entryKey {
	return entryKey{
		path:  key.Path,
		alg:   key.Algorithm,
		size:  key.Size,
		mtime: key.ModTime.UnixNano(),
	}
}

type inMemoryProvider struct {
	arc *arc.ARCCache[entryKey, digest.Digest]
}

// NewProvider returns an adaptive replacement cache holding at most
// params.size digests.
func NewProvider(ctx context.Context, options map[string]interface{}) (cache.Provider, error) {
	var c Memory
	if err := mapstructure.Decode(options["params"], &c); err != nil {
		return nil, err
	}

	size := c.Size
	if size <= 0 {
		size = DefaultSize
	}

	arcCache, err := arc.NewARC[entryKey, digest.Digest](size)
	if err != nil {
		// NewARC can only fail if size is <= 0, so this unreachable
		return nil, err
	}
	return &inMemoryProvider{arc: arcCache}, nil
}

func (p *inMemoryProvider) Get(ctx context.Context, key cache.Key) (digest.Digest, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}

	dgst, ok := p.arc.Get(newEntryKey(key))
	if !ok {
		return "", cache.ErrUnknown
	}
	return dgst, nil
}

func (p *inMemoryProvider) Set(ctx context.Context, key cache.Key, dgst digest.Digest) error {
	if err := cache.CheckSet(key, dgst); err != nil {
		return err
	}

	p.arc.Add(newEntryKey(key), dgst)
	return nil
}
