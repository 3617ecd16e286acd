// Package sha1 implements the SHA-1 hash algorithm as defined in RFC 3174.
//
// SHA-1 is cryptographically broken and should not be used for secure
// applications.
package sha1

import (
	"encoding/binary"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/internal/engine"
)

func init() {
	mdhash.RegisterHash(mdhash.SHA1, func() mdhash.ResumableHash { return New() })
}

// The size of a SHA-1 checksum in bytes.
const Size = 20

// The blocksize of SHA-1 in bytes.
const BlockSize = 64

var params = engine.Params[uint32]{
	Name:      "sha1",
	Magic:     "sha\x01",
	Size:      Size,
	BlockSize: BlockSize,
	Order:     binary.BigEndian,
	IV:        []uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0},
	Compress:  block,
}

// New returns a new mdhash.ResumableHash computing the SHA-1 checksum.
func New() mdhash.ResumableHash {
	return engine.New(&params)
}

// Sum returns the SHA-1 checksum of the data.
func Sum(data []byte) [Size]byte {
	d := engine.New(&params)
	d.Write(data)
	var sum [Size]byte
	d.Sum(sum[:0])
	return sum
}
