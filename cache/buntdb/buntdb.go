// Package buntdb persists digests in a buntdb file so that repeated runs
// over the same tree skip unchanged files.
package buntdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/distribution/mdhash/cache"
	"github.com/distribution/mdhash/digest"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/buntdb"
)

func init() {
	cache.Register("buntdb", NewProvider)
}

// Params configures the buntdb provider. Path ":memory:" keeps the database
// in memory only.
type Params struct {
	Path string        `yaml:"path,omitempty"`
	TTL  time.Duration `yaml:"ttl,omitempty"`
}

// NewCacheOptions returns buntdb cache options.
func NewCacheOptions(path string, ttl time.Duration) map[string]interface{} {
	return map[string]interface{}{
		"params": map[string]interface{}{
			"path": path,
			"ttl":  ttl.String(),
		},
	}
}

type entry struct {
	Size    int64         `json:"size"`
	ModTime int64         `json:"mtime"`
	Digest  digest.Digest `json:"digest"`
}

// Provider is a cache.Provider backed by buntdb.
type Provider struct {
	db  *buntdb.DB
	ttl time.Duration
}

// NewProvider opens the database named by params.path.
func NewProvider(ctx context.Context, options map[string]interface{}) (cache.Provider, error) {
	var params Params
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &params,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(options["params"]); err != nil {
		return nil, err
	}
	return Open(params)
}

// Open opens or creates the database described by params.
func Open(params Params) (*Provider, error) {
	if params.Path == "" {
		return nil, fmt.Errorf("buntdb cache: path is required")
	}
	db, err := buntdb.Open(params.Path)
	if err != nil {
		return nil, fmt.Errorf("buntdb cache: opening %s: %w", params.Path, err)
	}
	return &Provider{db: db, ttl: params.TTL}, nil
}

// Close closes the underlying database.
func (p *Provider) Close() error {
	return p.db.Close()
}

func dbKey(key cache.Key) string {
	return "digest:" + key.Algorithm.String() + ":" + key.Path
}

func (p *Provider) Get(ctx context.Context, key cache.Key) (digest.Digest, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}

	var value string
	err := p.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(dbKey(key))
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return "", cache.ErrUnknown
	}
	if err != nil {
		return "", err
	}

	var e entry
	if err := json.Unmarshal([]byte(value), &e); err != nil {
		return "", fmt.Errorf("buntdb cache: decoding %s: %w", key.Path, err)
	}
	// the file changed since it was hashed
	if e.Size != key.Size || e.ModTime != key.ModTime.UnixNano() {
		return "", cache.ErrUnknown
	}
	if err := e.Digest.Validate(); err != nil {
		return "", fmt.Errorf("buntdb cache: %s: %w", key.Path, err)
	}
	return e.Digest, nil
}

func (p *Provider) Set(ctx context.Context, key cache.Key, dgst digest.Digest) error {
	if err := cache.CheckSet(key, dgst); err != nil {
		return err
	}

	value, err := json.Marshal(entry{
		Size:    key.Size,
		ModTime: key.ModTime.UnixNano(),
		Digest:  dgst,
	})
	if err != nil {
		return err
	}

	var opts *buntdb.SetOptions
	if p.ttl > 0 {
		opts = &buntdb.SetOptions{Expires: true, TTL: p.ttl}
	}
	return p.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(dbKey(key), string(value), opts)
		return err
	})
}
