package engine

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/distribution/mdhash/internal/block"
)

var (
	// ErrInvalidState is returned when a snapshot does not belong to the
	// algorithm it is restored into.
	ErrInvalidState = errors.New("invalid hash state identifier")

	// ErrStateSize is returned for snapshots of the wrong length.
	ErrStateSize = errors.New("invalid hash state size")
)

func (d *Digest[W]) marshaledSize() int {
	return len(d.params.Magic) + len(d.params.IV)*block.WordSize[W]() + d.params.BlockSize + 8
}

// MarshalBinary encodes the running state as
// magic || state words || block || length, with words and length in big
// endian regardless of the algorithm's byte order.
func (d *Digest[W]) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, d.marshaledSize())
	b = append(b, d.params.Magic...)
	words := make([]byte, len(d.params.IV)*block.WordSize[W]())
	block.PutWords(binary.BigEndian, words, d.state())
	b = append(b, words...)
	blk := make([]byte, d.params.BlockSize)
	copy(blk, d.buf.Bytes())
	b = append(b, blk...)
	return binary.BigEndian.AppendUint64(b, d.len), nil
}

// UnmarshalBinary restores state produced by MarshalBinary on the same
// algorithm.
func (d *Digest[W]) UnmarshalBinary(b []byte) error {
	magic := d.params.Magic
	if len(b) < len(magic) || string(b[:len(magic)]) != magic {
		return fmt.Errorf("%s: %w", d.params.Name, ErrInvalidState)
	}
	if len(b) != d.marshaledSize() {
		return fmt.Errorf("%s: %w", d.params.Name, ErrStateSize)
	}
	b = b[len(magic):]

	n := len(d.params.IV) * block.WordSize[W]()
	block.LoadWords(binary.BigEndian, d.state(), b[:n])
	b = b[n:]

	blk := b[:d.params.BlockSize]
	length := binary.BigEndian.Uint64(b[d.params.BlockSize:])
	if err := d.buf.Load(blk, int(length%uint64(d.params.BlockSize))); err != nil {
		return fmt.Errorf("%s: %w", d.params.Name, err)
	}
	d.len = length
	return nil
}

// State returns a snapshot of the running state.
func (d *Digest[W]) State() ([]byte, error) {
	return d.MarshalBinary()
}

// Restore resets the digest to a snapshot taken with State.
func (d *Digest[W]) Restore(state []byte) error {
	return d.UnmarshalBinary(state)
}
