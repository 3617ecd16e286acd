package sha1

import (
	"encoding/binary"
	"math/bits"
)

const (
	_K0 = 0x5a827999
	_K1 = 0x6ed9eba1
	_K2 = 0x8f1bbcdc
	_K3 = 0xca62c1d6
)

func block(h []uint32, p []byte) {
	// w is a circular window over the 80-word schedule.
	var w [16]uint32
	for len(p) >= BlockSize {
		for i := range w {
			w[i] = binary.BigEndian.Uint32(p[4*i:])
		}

		a, b, c, d, e := h[0], h[1], h[2], h[3], h[4]
		for i := 0; i < 80; i++ {
			if i >= 16 {
				tmp := w[(i-3)&0xf] ^ w[(i-8)&0xf] ^ w[(i-14)&0xf] ^ w[i&0xf]
				w[i&0xf] = bits.RotateLeft32(tmp, 1)
			}

			var f, k uint32
			switch {
			case i < 20:
				f, k = (b&c)|(^b&d), _K0
			case i < 40:
				f, k = b^c^d, _K1
			case i < 60:
				f, k = (b&c)|(b&d)|(c&d), _K2
			default:
				f, k = b^c^d, _K3
			}

			t := bits.RotateLeft32(a, 5) + f + e + w[i&0xf] + k
			a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
		}

		h[0] += a
		h[1] += b
		h[2] += c
		h[3] += d
		h[4] += e

		p = p[BlockSize:]
	}
}
