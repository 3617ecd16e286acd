// Package sha256 implements the SHA-224 and SHA-256 hash algorithms as
// defined in FIPS 180-4.
package sha256

import (
	"encoding/binary"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/internal/engine"
)

func init() {
	mdhash.RegisterHash(mdhash.SHA224, func() mdhash.ResumableHash { return New224() })
	mdhash.RegisterHash(mdhash.SHA256, func() mdhash.ResumableHash { return New() })
}

// The size of a SHA256 checksum in bytes.
const Size = 32

// The size of a SHA224 checksum in bytes.
const Size224 = 28

// The blocksize of SHA256 and SHA224 in bytes.
const BlockSize = 64

var params256 = engine.Params[uint32]{
	Name:      "sha256",
	Magic:     "sha\x03",
	Size:      Size,
	BlockSize: BlockSize,
	Order:     binary.BigEndian,
	IV: []uint32{
		0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
		0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
	},
	Compress: block,
}

// SHA-224 runs the SHA-256 transform from its own initial state and keeps
// the first seven words.
var params224 = engine.Params[uint32]{
	Name:      "sha224",
	Magic:     "sha\x02",
	Size:      Size224,
	BlockSize: BlockSize,
	Order:     binary.BigEndian,
	IV: []uint32{
		0xc1059ed8, 0x367cd507, 0x3070dd17, 0xf70e5939,
		0xffc00b31, 0x68581511, 0x64f98fa7, 0xbefa4fa4,
	},
	Compress: block,
}

// New returns a new mdhash.ResumableHash computing the SHA256 checksum.
func New() mdhash.ResumableHash {
	return engine.New(&params256)
}

// New224 returns a new mdhash.ResumableHash computing the SHA224 checksum.
func New224() mdhash.ResumableHash {
	return engine.New(&params224)
}

// Sum256 returns the SHA256 checksum of the data.
func Sum256(data []byte) [Size]byte {
	d := engine.New(&params256)
	d.Write(data)
	var sum [Size]byte
	d.Sum(sum[:0])
	return sum
}

// Sum224 returns the SHA224 checksum of the data.
func Sum224(data []byte) [Size224]byte {
	d := engine.New(&params224)
	d.Write(data)
	var sum [Size224]byte
	d.Sum(sum[:0])
	return sum
}
