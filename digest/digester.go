package digest

import (
	"github.com/distribution/mdhash"
)

// Digester calculates the digest of written data. Writes should go directly
// to the return value of Hash, while calling Digest will return the current
// value of the digest. The underlying hash can export its state, which lets
// long running uploads be resumed after a restart.
type Digester interface {
	Hash() mdhash.ResumableHash
	Digest() Digest
	Algorithm() mdhash.Algorithm
}

// NewDigester returns a Digester for alg. It panics if alg is not available,
// as mdhash.Algorithm.New does.
func NewDigester(alg mdhash.Algorithm) Digester {
	return &digester{
		alg:  alg,
		hash: alg.New(),
	}
}

// digester provides a simple digester definition that embeds a hasher.
type digester struct {
	alg  mdhash.Algorithm
	hash mdhash.ResumableHash
}

func (d *digester) Hash() mdhash.ResumableHash {
	return d.hash
}

func (d *digester) Digest() Digest {
	return NewDigest(d.alg, d.hash)
}

func (d *digester) Algorithm() mdhash.Algorithm {
	return d.alg
}
