package buntdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/cache"
	"github.com/distribution/mdhash/cache/cachecheck"
	"github.com/distribution/mdhash/digest"
	"github.com/stretchr/testify/require"
)

func TestBuntDBProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), NewCacheOptions(":memory:", 0))
	require.NoError(t, err)
	defer p.(*Provider).Close()

	cachecheck.CheckProvider(t, p)
}

func TestPersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")
	key := cache.Key{Path: "/etc/hosts", Size: 42, ModTime: time.Unix(1600000000, 0), Algorithm: mdhash.RIPEMD160}
	want := digest.FromString(mdhash.RIPEMD160, "hosts")

	p, err := Open(Params{Path: path})
	require.NoError(t, err)
	require.NoError(t, p.Set(ctx, key, want))
	require.NoError(t, p.Close())

	p, err = Open(Params{Path: path})
	require.NoError(t, err)
	defer p.Close()

	got, err := p.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCreateWithTTL(t *testing.T) {
	p, err := cache.Create(context.Background(), "buntdb", NewCacheOptions(":memory:", time.Hour))
	require.NoError(t, err)
	defer p.(*Provider).Close()
	require.Equal(t, time.Hour, p.(*Provider).ttl)

	_, err = cache.Create(context.Background(), "buntdb", map[string]interface{}{})
	require.Error(t, err)
}
