package block

import "encoding/binary"

// Word is the native word of a compression function.
type Word interface {
	uint32 | uint64
}

// WordSize returns the width of W in bytes.
func WordSize[W Word]() int {
	var w W
	if _, ok := any(w).(uint32); ok {
		return 4
	}
	return 8
}

// LoadWords unpacks len(dst) words from src in the given byte order.
func LoadWords[W Word](order binary.ByteOrder, dst []W, src []byte) {
	switch d := any(dst).(type) {
	case []uint32:
		for i := range d {
			d[i] = order.Uint32(src[4*i:])
		}
	case []uint64:
		for i := range d {
			d[i] = order.Uint64(src[8*i:])
		}
	}
}

// PutWords packs src into dst in the given byte order and returns the
// number of bytes written.
func PutWords[W Word](order binary.ByteOrder, dst []byte, src []W) int {
	switch s := any(src).(type) {
	case []uint32:
		for i, w := range s {
			order.PutUint32(dst[4*i:], w)
		}
		return 4 * len(s)
	case []uint64:
		for i, w := range s {
			order.PutUint64(dst[8*i:], w)
		}
		return 8 * len(s)
	}
	return 0
}
