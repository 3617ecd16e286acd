package engine

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder is a compression function that keeps every block it sees and
// folds them into the state with a position dependent sum, which is enough
// to make chunking mistakes visible.
type recorder struct {
	blocks [][]byte
	bs     int
}

func (r *recorder) compress32(h []uint32, p []byte) {
	for len(p) > 0 {
		blk := append([]byte(nil), p[:r.bs]...)
		r.blocks = append(r.blocks, blk)
		for i, c := range blk {
			h[i%len(h)] = h[i%len(h)]*31 + uint32(c) + uint32(i)
		}
		p = p[r.bs:]
	}
}

func (r *recorder) compress64(h []uint64, p []byte) {
	for len(p) > 0 {
		blk := append([]byte(nil), p[:r.bs]...)
		r.blocks = append(r.blocks, blk)
		for i, c := range blk {
			h[i%len(h)] = h[i%len(h)]*131 + uint64(c) + uint64(i)
		}
		p = p[r.bs:]
	}
}

func newRecorder32(order binary.ByteOrder) (*Params[uint32], *recorder) {
	r := &recorder{bs: 64}
	return &Params[uint32]{
		Name:      "test32",
		Magic:     "t32\x01",
		Size:      14,
		BlockSize: 64,
		Order:     order,
		IV:        []uint32{1, 2, 3, 4},
		Compress:  r.compress32,
	}, r
}

func newRecorder64() (*Params[uint64], *recorder) {
	r := &recorder{bs: 128}
	return &Params[uint64]{
		Name:      "test64",
		Magic:     "t64\x01",
		Size:      40,
		BlockSize: 128,
		Order:     binary.BigEndian,
		IV:        []uint64{1, 2, 3, 4, 5, 6, 7, 8},
		Compress:  r.compress64,
	}, r
}

func TestPaddingLayout64(t *testing.T) {
	for _, tc := range []struct {
		n      int
		blocks int
	}{
		{0, 1}, {1, 1}, {55, 1}, {56, 2}, {63, 2}, {64, 2}, {65, 2}, {119, 2}, {120, 3},
	} {
		p, r := newRecorder32(binary.LittleEndian)
		d := New(p)
		msg := bytes.Repeat([]byte{0xaa}, tc.n)
		d.Write(msg)
		d.Sum(nil)

		require.Len(t, r.blocks, tc.blocks, "length %d", tc.n)
		padded := bytes.Join(r.blocks, nil)
		require.Equal(t, msg, padded[:tc.n])
		require.Equal(t, byte(0x80), padded[tc.n])
		require.Equal(t, make([]byte, len(padded)-8-tc.n-1), padded[tc.n+1:len(padded)-8])
		require.Equal(t, uint64(tc.n)*8, binary.LittleEndian.Uint64(padded[len(padded)-8:]))
	}
}

func TestPaddingLayout128(t *testing.T) {
	for _, tc := range []struct {
		n      int
		blocks int
	}{
		{0, 1}, {111, 1}, {112, 2}, {127, 2}, {128, 2}, {129, 2}, {239, 2}, {240, 3},
	} {
		p, r := newRecorder64()
		d := New(p)
		msg := bytes.Repeat([]byte{0x55}, tc.n)
		d.Write(msg)
		d.Sum(nil)

		require.Len(t, r.blocks, tc.blocks, "length %d", tc.n)
		padded := bytes.Join(r.blocks, nil)
		require.Equal(t, msg, padded[:tc.n])
		require.Equal(t, byte(0x80), padded[tc.n])
		// the upper half of the 128-bit length field stays zero
		require.Equal(t, make([]byte, len(padded)-8-tc.n-1), padded[tc.n+1:len(padded)-8])
		require.Equal(t, uint64(tc.n)*8, binary.BigEndian.Uint64(padded[len(padded)-8:]))
	}
}

func TestChunkInvariance(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	msg := make([]byte, 1000)
	rnd.Read(msg)

	for _, n := range []int{0, 1, 63, 64, 65, 127, 128, 129, 500, 1000} {
		p32, _ := newRecorder32(binary.BigEndian)
		whole := New(p32)
		whole.Write(msg[:n])
		want32 := whole.Sum(nil)

		p64, _ := newRecorder64()
		whole64 := New(p64)
		whole64.Write(msg[:n])
		want64 := whole64.Sum(nil)

		for trial := 0; trial < 20; trial++ {
			d32 := New(p32)
			d64 := New(p64)
			rest := msg[:n]
			for len(rest) > 0 {
				k := rnd.Intn(len(rest) + 1)
				d32.Write(rest[:k])
				d64.Write(rest[:k])
				rest = rest[k:]
			}
			require.Equal(t, want32, d32.Sum(nil), "length %d", n)
			require.Equal(t, want64, d64.Sum(nil), "length %d", n)
			require.Equal(t, uint64(n), d32.Len())
		}
	}
}

func TestSumDoesNotMutate(t *testing.T) {
	p, _ := newRecorder32(binary.BigEndian)
	d := New(p)
	d.Write([]byte("hello "))
	first := d.Sum(nil)
	require.Equal(t, first, d.Sum(nil))
	require.Equal(t, uint64(6), d.Len())

	d.Write([]byte("world"))
	other := New(p)
	other.Write([]byte("hello world"))
	require.Equal(t, other.Sum(nil), d.Sum(nil))
}

func TestSumAppendsAndTruncates(t *testing.T) {
	p, _ := newRecorder64()
	d := New(p)
	out := d.Sum([]byte("prefix"))
	require.Len(t, out, len("prefix")+40)
	require.Equal(t, []byte("prefix"), out[:6])
	require.Equal(t, 40, d.Size())
	require.Equal(t, 128, d.BlockSize())
}

func TestReset(t *testing.T) {
	p, _ := newRecorder32(binary.LittleEndian)
	fresh := New(p).Sum(nil)

	d := New(p)
	d.Write(bytes.Repeat([]byte("x"), 77))
	d.Sum(nil)
	d.Reset()
	require.Equal(t, uint64(0), d.Len())
	require.Equal(t, fresh, d.Sum(nil))
}

func TestStateRestore(t *testing.T) {
	msg := bytes.Repeat([]byte("0123456789"), 30)
	for _, split := range []int{0, 1, 64, 100, 128, 299, 300} {
		p, _ := newRecorder64()
		d := New(p)
		d.Write(msg[:split])
		state, err := d.State()
		require.NoError(t, err)
		require.Len(t, state, len(p.Magic)+8*8+128+8)

		resumed := New(p)
		require.NoError(t, resumed.Restore(state))
		require.Equal(t, uint64(split), resumed.Len())
		resumed.Write(msg[split:])

		d.Write(msg[split:])
		require.Equal(t, d.Sum(nil), resumed.Sum(nil), "split %d", split)
	}
}

func TestRestoreRejectsForeignState(t *testing.T) {
	p32, _ := newRecorder32(binary.BigEndian)
	p64, _ := newRecorder64()

	state, err := New(p32).State()
	require.NoError(t, err)

	err = New(p64).Restore(state)
	require.ErrorIs(t, err, ErrInvalidState)

	err = New(p32).Restore(state[:len(state)-1])
	require.ErrorIs(t, err, ErrStateSize)
}

func TestNewPanicsOnBadParams(t *testing.T) {
	p, _ := newRecorder32(binary.BigEndian)
	bad := *p
	bad.Size = 17
	require.Panics(t, func() { New(&bad) })

	bad = *p
	bad.IV = nil
	require.Panics(t, func() { New(&bad) })

	bad = *p
	bad.Compress = nil
	require.Panics(t, func() { New(&bad) })
}
