// Package sha512 implements the SHA-384 and SHA-512 hash algorithms as
// defined in FIPS 180-4.
package sha512

import (
	"encoding/binary"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/internal/engine"
)

func init() {
	mdhash.RegisterHash(mdhash.SHA384, func() mdhash.ResumableHash { return New384() })
	mdhash.RegisterHash(mdhash.SHA512, func() mdhash.ResumableHash { return New() })
}

const (
	// Size is the size, in bytes, of a SHA-512 checksum.
	Size = 64

	// Size384 is the size, in bytes, of a SHA-384 checksum.
	Size384 = 48

	// BlockSize is the block size, in bytes, of the SHA-512 and SHA-384
	// hash functions.
	BlockSize = 128
)

var params512 = engine.Params[uint64]{
	Name:      "sha512",
	Magic:     "sha\x07",
	Size:      Size,
	BlockSize: BlockSize,
	Order:     binary.BigEndian,
	IV: []uint64{
		0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
		0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
	},
	Compress: block,
}

var params384 = engine.Params[uint64]{
	Name:      "sha384",
	Magic:     "sha\x04",
	Size:      Size384,
	BlockSize: BlockSize,
	Order:     binary.BigEndian,
	IV: []uint64{
		0xcbbb9d5dc1059ed8, 0x629a292a367cd507, 0x9159015a3070dd17, 0x152fecd8f70e5939,
		0x67332667ffc00b31, 0x8eb44a8768581511, 0xdb0c2e0d64f98fa7, 0x47b5481dbefa4fa4,
	},
	Compress: block,
}

// New returns a new mdhash.ResumableHash computing the SHA-512 checksum.
func New() mdhash.ResumableHash {
	return engine.New(&params512)
}

// New384 returns a new mdhash.ResumableHash computing the SHA-384 checksum.
func New384() mdhash.ResumableHash {
	return engine.New(&params384)
}

// Sum512 returns the SHA512 checksum of the data.
func Sum512(data []byte) [Size]byte {
	d := engine.New(&params512)
	d.Write(data)
	var sum [Size]byte
	d.Sum(sum[:0])
	return sum
}

// Sum384 returns the SHA384 checksum of the data.
func Sum384(data []byte) [Size384]byte {
	d := engine.New(&params384)
	d.Write(data)
	var sum [Size384]byte
	d.Sum(sum[:0])
	return sum
}
