// Package md5 implements the MD5 hash algorithm as defined in RFC 1321.
//
// MD5 is cryptographically broken and should not be used for secure
// applications.
package md5

import (
	"encoding/binary"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/internal/engine"
)

func init() {
	mdhash.RegisterHash(mdhash.MD5, func() mdhash.ResumableHash { return New() })
}

// The size of an MD5 checksum in bytes.
const Size = 16

// The blocksize of MD5 in bytes.
const BlockSize = 64

var params = engine.Params[uint32]{
	Name:      "md5",
	Magic:     "md5\x01",
	Size:      Size,
	BlockSize: BlockSize,
	Order:     binary.LittleEndian,
	IV:        []uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476},
	Compress:  block,
}

// New returns a new mdhash.ResumableHash computing the MD5 checksum.
func New() mdhash.ResumableHash {
	return engine.New(&params)
}

// Sum returns the MD5 checksum of the data.
func Sum(data []byte) [Size]byte {
	d := engine.New(&params)
	d.Write(data)
	var sum [Size]byte
	d.Sum(sum[:0])
	return sum
}
