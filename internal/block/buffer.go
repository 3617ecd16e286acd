// Package block holds the byte-level plumbing shared by every hash in this
// module: the partial block buffer that sits between arbitrary writes and a
// block transform, and word packing in either byte order.
package block

import "fmt"

// Buffer is a single block worth of not yet transformed input. The number
// of buffered bytes is always less than the block size between writes; a
// full buffer must be drained before more input is appended.
type Buffer struct {
	x    [128]byte
	n    int
	size int
}

// NewBuffer returns an empty buffer for blocks of size bytes. Only 64 and
// 128 byte blocks are in use.
func NewBuffer(size int) Buffer {
	if size <= 0 || size > 128 || size&(size-1) != 0 {
		panic(fmt.Sprintf("block: unsupported block size %d", size))
	}
	return Buffer{size: size}
}

// Size returns the block size.
func (b *Buffer) Size() int { return b.size }

// Buffered returns the number of bytes held.
func (b *Buffer) Buffered() int { return b.n }

// Free returns the number of bytes that still fit before the block is full.
func (b *Buffer) Free() int { return b.size - b.n }

// Full reports whether the buffer holds a complete block.
func (b *Buffer) Full() bool { return b.n == b.size }

// Bytes returns the buffered prefix of the block. The slice aliases the
// buffer and is only valid until the next mutation.
func (b *Buffer) Bytes() []byte { return b.x[:b.n] }

// Append copies as much of p as fits and returns the number of bytes taken.
func (b *Buffer) Append(p []byte) int {
	n := copy(b.x[b.n:b.size], p)
	b.n += n
	return n
}

// Drain returns the complete block and empties the buffer. It panics if the
// buffer is not full.
func (b *Buffer) Drain() []byte {
	if !b.Full() {
		panic("block: drain of partial block")
	}
	b.n = 0
	return b.x[:b.size]
}

// ZeroFill writes zeros from the current offset up to offset to and counts
// them as buffered.
func (b *Buffer) ZeroFill(to int) {
	if to < b.n || to > b.size {
		panic(fmt.Sprintf("block: zero fill to %d with %d of %d buffered", to, b.n, b.size))
	}
	clear(b.x[b.n:to])
	b.n = to
}

// Reset empties the buffer.
func (b *Buffer) Reset() { b.n = 0 }

// Load replaces the contents with the first n bytes of p.
func (b *Buffer) Load(p []byte, n int) error {
	if n < 0 || n >= b.size || n > len(p) {
		return fmt.Errorf("block: cannot load %d bytes into a %d byte block", n, b.size)
	}
	b.n = copy(b.x[:b.size], p[:n])
	return nil
}
