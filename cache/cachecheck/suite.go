// Package cachecheck holds the behaviour tests shared by all cache
// providers.
package cachecheck

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/cache"
	"github.com/distribution/mdhash/digest"
	"github.com/stretchr/testify/require"
)

// CheckProvider runs the provider conformance tests against p.
func CheckProvider(t *testing.T, p cache.Provider) {
	ctx := context.Background()

	checkProviderEmptyKeys(ctx, t, p)
	checkProviderRoundTrip(ctx, t, p)
	checkProviderStaleEntries(ctx, t, p)
}

func checkProviderEmptyKeys(ctx context.Context, t *testing.T, p cache.Provider) {
	_, err := p.Get(ctx, cache.Key{Algorithm: mdhash.SHA256})
	require.Error(t, err, "expected error with empty path")

	_, err = p.Get(ctx, cache.Key{Path: "a"})
	require.Error(t, err, "expected error with no algorithm")

	key := cache.Key{Path: "a", Algorithm: mdhash.SHA256}
	require.Error(t, p.Set(ctx, key, ""), "expected error with empty digest")
	require.Error(t, p.Set(ctx, key, digest.FromString(mdhash.MD5, "a")), "expected error with mismatched algorithm")
}

func checkProviderRoundTrip(ctx context.Context, t *testing.T, p cache.Provider) {
	key := cache.Key{
		Path:      "/srv/data/blob",
		Size:      1024,
		ModTime:   time.Unix(1700000000, 123),
		Algorithm: mdhash.SHA256,
	}

	_, err := p.Get(ctx, key)
	require.True(t, errors.Is(err, cache.ErrUnknown), "expected unknown digest, got %v", err)

	want := digest.FromString(mdhash.SHA256, "blob")
	require.NoError(t, p.Set(ctx, key, want))

	got, err := p.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, want, got)

	// same file under another algorithm is a separate entry
	other := key
	other.Algorithm = mdhash.SHA1
	_, err = p.Get(ctx, other)
	require.True(t, errors.Is(err, cache.ErrUnknown))

	updated := digest.FromString(mdhash.SHA256, "blob v2")
	require.NoError(t, p.Set(ctx, key, updated))
	got, err = p.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, updated, got)
}

func checkProviderStaleEntries(ctx context.Context, t *testing.T, p cache.Provider) {
	key := cache.Key{
		Path:      "/srv/data/changing",
		Size:      10,
		ModTime:   time.Unix(1700000000, 0),
		Algorithm: mdhash.MD5,
	}
	require.NoError(t, p.Set(ctx, key, digest.FromString(mdhash.MD5, "0123456789")))

	grown := key
	grown.Size = 11
	_, err := p.Get(ctx, grown)
	require.True(t, errors.Is(err, cache.ErrUnknown), "size change must miss")

	touched := key
	touched.ModTime = key.ModTime.Add(time.Second)
	_, err = p.Get(ctx, touched)
	require.True(t, errors.Is(err, cache.ErrUnknown), "mtime change must miss")
}
