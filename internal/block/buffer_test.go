package block

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferAppendDrain(t *testing.T) {
	b := NewBuffer(64)
	require.Equal(t, 64, b.Size())
	require.Equal(t, 0, b.Buffered())
	require.Equal(t, 64, b.Free())

	n := b.Append(bytes.Repeat([]byte{1}, 10))
	require.Equal(t, 10, n)
	require.Equal(t, 10, b.Buffered())
	require.False(t, b.Full())

	n = b.Append(bytes.Repeat([]byte{2}, 100))
	require.Equal(t, 54, n, "append must stop at the block boundary")
	require.True(t, b.Full())

	blk := b.Drain()
	require.Len(t, blk, 64)
	require.Equal(t, byte(1), blk[9])
	require.Equal(t, byte(2), blk[10])
	require.Equal(t, 0, b.Buffered())
}

func TestBufferDrainPartialPanics(t *testing.T) {
	b := NewBuffer(128)
	b.Append([]byte("abc"))
	require.Panics(t, func() { b.Drain() })
}

func TestBufferZeroFill(t *testing.T) {
	b := NewBuffer(64)
	b.Append(bytes.Repeat([]byte{0xff}, 64))
	b.Drain()

	b.Append([]byte{0x80})
	b.ZeroFill(56)
	require.Equal(t, 56, b.Buffered())
	require.Equal(t, append([]byte{0x80}, make([]byte, 55)...), b.Bytes())

	require.Panics(t, func() { b.ZeroFill(10) })
	require.Panics(t, func() { b.ZeroFill(65) })
}

func TestBufferLoad(t *testing.T) {
	b := NewBuffer(64)
	require.NoError(t, b.Load([]byte("hello world"), 5))
	require.Equal(t, []byte("hello"), b.Bytes())
	require.Error(t, b.Load(make([]byte, 64), 64))
	require.Error(t, b.Load([]byte("x"), 2))
}

func TestNewBufferSizes(t *testing.T) {
	require.NotPanics(t, func() { NewBuffer(64) })
	require.NotPanics(t, func() { NewBuffer(128) })
	require.Panics(t, func() { NewBuffer(0) })
	require.Panics(t, func() { NewBuffer(96) })
	require.Panics(t, func() { NewBuffer(256) })
}

func TestWords(t *testing.T) {
	src := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	w32 := make([]uint32, 2)
	LoadWords(binary.LittleEndian, w32, src)
	require.Equal(t, []uint32{0x04030201, 0x08070605}, w32)
	LoadWords(binary.BigEndian, w32, src)
	require.Equal(t, []uint32{0x01020304, 0x05060708}, w32)

	w64 := make([]uint64, 1)
	LoadWords(binary.BigEndian, w64, src)
	require.Equal(t, []uint64{0x0102030405060708}, w64)

	out := make([]byte, 8)
	require.Equal(t, 8, PutWords(binary.LittleEndian, out, []uint32{0x04030201, 0x08070605}))
	require.Equal(t, src, out)
	require.Equal(t, 8, PutWords(binary.BigEndian, out, []uint64{0x0102030405060708}))
	require.Equal(t, src, out)

	require.Equal(t, 4, WordSize[uint32]())
	require.Equal(t, 8, WordSize[uint64]())
}
