// Package cache remembers digests of files that have already been hashed.
// Entries are keyed by path, size, modification time and algorithm so a
// changed file never hits a stale digest.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/digest"
)

// ErrUnknown is returned when no digest is cached for a key.
var ErrUnknown = errors.New("cache: unknown digest")

// Key identifies one version of a file hashed with one algorithm.
type Key struct {
	Path      string
	Size      int64
	ModTime   time.Time
	Algorithm mdhash.Algorithm
}

// Validate reports whether k can be used to address a cache entry.
func (k Key) Validate() error {
	if k.Path == "" {
		return fmt.Errorf("cache: cannot use empty path")
	}
	if k.Size < 0 {
		return fmt.Errorf("cache: invalid size %d for %s", k.Size, k.Path)
	}
	if !k.Algorithm.Available() {
		return fmt.Errorf("cache: %w: %v", mdhash.ErrUnsupported, k.Algorithm)
	}
	return nil
}

// Provider stores digests by Key.
type Provider interface {
	// Get returns the digest stored for key, or ErrUnknown.
	Get(ctx context.Context, key Key) (digest.Digest, error)

	// Set stores dgst for key. The digest must have been computed with
	// key.Algorithm.
	Set(ctx context.Context, key Key, dgst digest.Digest) error
}

// CheckSet validates the arguments of a Set call. Implementations call it
// before storing anything.
func CheckSet(key Key, dgst digest.Digest) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if err := dgst.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if dgst.Algorithm() != key.Algorithm {
		return fmt.Errorf("cache: digest %s does not match key algorithm %v", dgst, key.Algorithm)
	}
	return nil
}
