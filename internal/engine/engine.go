// Package engine implements the Merkle-Damgård streaming construction once
// for every hash in this module. An algorithm is described by its Params:
// word width, block size, byte order, initial state, digest size and the
// compression function. Everything else (buffering, length accounting,
// padding, output truncation and state snapshots) lives here.
package engine

import (
	"encoding/binary"
	"fmt"
	"hash"

	"github.com/distribution/mdhash/internal/block"
)

// maxWords bounds the state of every supported algorithm.
const maxWords = 8

// Params describes one public hash algorithm.
type Params[W block.Word] struct {
	// Name is used in error messages.
	Name string

	// Magic prefixes marshaled state so that a snapshot cannot be restored
	// into a different algorithm.
	Magic string

	// Size is the digest length in bytes. It may be shorter than the state,
	// which is how SHA-224 and SHA-384 narrow their parents.
	Size int

	// BlockSize is 64 or 128.
	BlockSize int

	// Order is used for the length suffix and the digest output.
	Order binary.ByteOrder

	// IV is the initial state. Its length fixes the number of state words.
	IV []W

	// Compress folds len(p)/BlockSize consecutive blocks into h.
	Compress func(h []W, p []byte)
}

func (p *Params[W]) validate() {
	if len(p.IV) == 0 || len(p.IV) > maxWords {
		panic(fmt.Sprintf("engine: %s: state of %d words", p.Name, len(p.IV)))
	}
	if p.Size <= 0 || p.Size > len(p.IV)*block.WordSize[W]() {
		panic(fmt.Sprintf("engine: %s: digest size %d exceeds state", p.Name, p.Size))
	}
	if p.Compress == nil || p.Order == nil {
		panic(fmt.Sprintf("engine: %s: incomplete parameters", p.Name))
	}
}

// Digest is the running state of one hash computation.
type Digest[W block.Word] struct {
	params *Params[W]
	h      [maxWords]W
	buf    block.Buffer
	len    uint64
}

var _ hash.Hash = (*Digest[uint32])(nil)

// New returns a digest initialised from p. It panics on malformed
// parameters, which are always package level constants.
func New[W block.Word](p *Params[W]) *Digest[W] {
	p.validate()
	d := &Digest[W]{params: p, buf: block.NewBuffer(p.BlockSize)}
	d.Reset()
	return d
}

// Reset restores the initial state.
func (d *Digest[W]) Reset() {
	copy(d.h[:], d.params.IV)
	d.buf.Reset()
	d.len = 0
}

// Size returns the digest length in bytes.
func (d *Digest[W]) Size() int { return d.params.Size }

// BlockSize returns the block size in bytes.
func (d *Digest[W]) BlockSize() int { return d.params.BlockSize }

// Len returns the number of bytes written since the last reset.
func (d *Digest[W]) Len() uint64 { return d.len }

func (d *Digest[W]) state() []W { return d.h[:len(d.params.IV)] }

// Write absorbs p. It never fails.
func (d *Digest[W]) Write(p []byte) (nn int, err error) {
	nn = len(p)
	d.len += uint64(nn)
	if d.buf.Buffered() > 0 {
		n := d.buf.Append(p)
		p = p[n:]
		if !d.buf.Full() {
			return
		}
		d.params.Compress(d.state(), d.buf.Drain())
	}
	if len(p) >= d.params.BlockSize {
		n := len(p) &^ (d.params.BlockSize - 1)
		d.params.Compress(d.state(), p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		d.buf.Append(p)
	}
	return
}

// Sum appends the digest of the data written so far to in. The receiver is
// not modified.
func (d *Digest[W]) Sum(in []byte) []byte {
	d0 := *d
	var out [maxWords * 8]byte
	n := d0.checkSum(out[:])
	return append(in, out[:n]...)
}

// checkSum pads and finalises d, writing the digest into out.
func (d *Digest[W]) checkSum(out []byte) int {
	bitLen := d.len << 3
	bs := d.params.BlockSize
	// the length field is two words wide; only its low 64 bits are used
	lenField := 2 * block.WordSize[W]()

	d.buf.Append([]byte{0x80})
	if d.buf.Free() < lenField {
		d.buf.ZeroFill(bs)
		d.params.Compress(d.state(), d.buf.Drain())
	}
	d.buf.ZeroFill(bs - 8)
	var tail [8]byte
	d.params.Order.PutUint64(tail[:], bitLen)
	d.buf.Append(tail[:])
	d.params.Compress(d.state(), d.buf.Drain())

	block.PutWords(d.params.Order, out, d.state())
	return d.params.Size
}
