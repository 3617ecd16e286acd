package md4

import (
	"encoding/binary"
	"math/bits"
)

// message word order per round
var index = [48]uint8{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	0, 4, 8, 12, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15,
	0, 8, 4, 12, 2, 10, 6, 14, 1, 9, 5, 13, 3, 11, 7, 15,
}

var shift = [3][4]int{
	{3, 7, 11, 19},
	{3, 5, 9, 13},
	{3, 9, 11, 15},
}

var constant = [3]uint32{0, 0x5a827999, 0x6ed9eba1}

func block(h []uint32, p []byte) {
	var x [16]uint32
	for len(p) >= BlockSize {
		for i := range x {
			x[i] = binary.LittleEndian.Uint32(p[4*i:])
		}

		a, b, c, d := h[0], h[1], h[2], h[3]
		for i := 0; i < 48; i++ {
			r := i / 16
			var f uint32
			switch r {
			case 0:
				f = (b & c) | (^b & d)
			case 1:
				f = (b & c) | (b & d) | (c & d)
			default:
				f = b ^ c ^ d
			}
			a = bits.RotateLeft32(a+f+x[index[i]]+constant[r], shift[r][i%4])
			a, b, c, d = d, a, b, c
		}

		h[0] += a
		h[1] += b
		h[2] += c
		h[3] += d

		p = p[BlockSize:]
	}
}
