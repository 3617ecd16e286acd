// Package ripemd160 implements the RIPEMD-160 hash algorithm as described by
// Dobbertin, Bosselaers and Preneel.
package ripemd160

import (
	"encoding/binary"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/internal/engine"
)

func init() {
	mdhash.RegisterHash(mdhash.RIPEMD160, func() mdhash.ResumableHash { return New() })
}

// The size of the checksum in bytes.
const Size = 20

// The block size of the hash algorithm in bytes.
const BlockSize = 64

var params = engine.Params[uint32]{
	Name:      "ripemd160",
	Magic:     "rmd\x01",
	Size:      Size,
	BlockSize: BlockSize,
	Order:     binary.LittleEndian,
	IV:        []uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0},
	Compress:  block,
}

// New returns a new mdhash.ResumableHash computing the RIPEMD-160 checksum.
func New() mdhash.ResumableHash {
	return engine.New(&params)
}

// Sum returns the RIPEMD-160 checksum of the data.
func Sum(data []byte) [Size]byte {
	d := engine.New(&params)
	d.Write(data)
	var sum [Size]byte
	d.Sum(sum[:0])
	return sum
}
