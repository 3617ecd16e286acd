// Package md4 implements the MD4 hash algorithm as defined in RFC 1320.
//
// MD4 is cryptographically broken and should only be used where
// compatibility with legacy systems, not security, is the goal.
package md4

import (
	"encoding/binary"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/internal/engine"
)

func init() {
	mdhash.RegisterHash(mdhash.MD4, func() mdhash.ResumableHash { return New() })
}

// The size of an MD4 checksum in bytes.
const Size = 16

// The blocksize of MD4 in bytes.
const BlockSize = 64

var params = engine.Params[uint32]{
	Name:      "md4",
	Magic:     "md4\x01",
	Size:      Size,
	BlockSize: BlockSize,
	Order:     binary.LittleEndian,
	IV:        []uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476},
	Compress:  block,
}

// New returns a new mdhash.ResumableHash computing the MD4 checksum.
func New() mdhash.ResumableHash {
	return engine.New(&params)
}

// Sum returns the MD4 checksum of the data.
func Sum(data []byte) [Size]byte {
	d := engine.New(&params)
	d.Write(data)
	var sum [Size]byte
	d.Sum(sum[:0])
	return sum
}
