// Package testutil contains helpers shared by the tests of this module.
package testutil

import (
	"bytes"
	"encoding/hex"
	"hash"
	"math/rand"
	"strings"
	"testing"

	"github.com/distribution/mdhash"
	"github.com/stretchr/testify/require"
)

// Vector is a known answer: the lowercase hex digest of In.
type Vector struct {
	In  string
	Out string
}

// Million returns the classic one million 'a' test message.
func Million() string {
	return strings.Repeat("a", 1000000)
}

// HashSpec describes the hash under test.
type HashSpec struct {
	New       func() mdhash.ResumableHash
	Size      int
	BlockSize int
	Vectors   []Vector

	// Reference is an independent implementation used for cross checks on
	// lengths around block boundaries and random inputs.
	Reference func() hash.Hash
}

// CheckHash runs the behaviour every hash in this module must share:
// known answers, chunk invariance, padding boundaries, non-destructive Sum,
// Reset and State/Restore.
func CheckHash(t *testing.T, spec HashSpec) {
	t.Run("Size", func(t *testing.T) {
		h := spec.New()
		require.Equal(t, spec.Size, h.Size())
		require.Equal(t, spec.BlockSize, h.BlockSize())
		require.Len(t, h.Sum(nil), spec.Size)
	})

	t.Run("Vectors", func(t *testing.T) {
		for _, v := range spec.Vectors {
			h := spec.New()
			h.Write([]byte(v.In))
			require.Equal(t, v.Out, hex.EncodeToString(h.Sum(nil)), "input of %d bytes", len(v.In))
			require.Equal(t, uint64(len(v.In)), h.Len())

			if len(v.In) > 4096 {
				continue
			}

			// one byte at a time
			h.Reset()
			for i := 0; i < len(v.In); i++ {
				h.Write([]byte{v.In[i]})
			}
			require.Equal(t, v.Out, hex.EncodeToString(h.Sum(nil)))

			// every two-way split
			for i := 0; i <= len(v.In); i++ {
				h.Reset()
				h.Write([]byte(v.In[:i]))
				h.Write(nil)
				h.Write([]byte(v.In[i:]))
				require.Equal(t, v.Out, hex.EncodeToString(h.Sum(nil)), "split at %d", i)
			}
		}
	})

	t.Run("Boundaries", func(t *testing.T) {
		bs := spec.BlockSize
		msg := RandomBytes(7, 4*bs)
		var lengths []int
		for _, base := range []int{0, bs, 2 * bs, 3 * bs} {
			for delta := -17; delta <= 1; delta++ {
				if n := base + delta; n >= 0 {
					lengths = append(lengths, n)
				}
			}
		}
		for _, n := range lengths {
			h := spec.New()
			h.Write(msg[:n])
			ref := spec.Reference()
			ref.Write(msg[:n])
			require.Equal(t, ref.Sum(nil), h.Sum(nil), "length %d", n)
		}
	})

	t.Run("ChunkInvariance", func(t *testing.T) {
		rnd := rand.New(rand.NewSource(42))
		msg := RandomBytes(42, 3000)

		ref := spec.Reference()
		ref.Write(msg)
		want := ref.Sum(nil)

		for trial := 0; trial < 50; trial++ {
			h := spec.New()
			rest := msg
			for len(rest) > 0 {
				n := rnd.Intn(2*spec.BlockSize + 1)
				if n > len(rest) {
					n = len(rest)
				}
				h.Write(rest[:n])
				rest = rest[n:]
			}
			require.Equal(t, want, h.Sum(nil), "trial %d", trial)
		}
	})

	t.Run("SumIsNonDestructive", func(t *testing.T) {
		h := spec.New()
		h.Write([]byte("hello, "))
		first := h.Sum([]byte("prefix"))
		require.True(t, bytes.HasPrefix(first, []byte("prefix")))
		require.Equal(t, first[len("prefix"):], h.Sum(nil))

		h.Write([]byte("world"))
		whole := spec.New()
		whole.Write([]byte("hello, world"))
		require.Equal(t, whole.Sum(nil), h.Sum(nil))
	})

	t.Run("ResetAfterSum", func(t *testing.T) {
		fresh := spec.New().Sum(nil)

		h := spec.New()
		h.Write(RandomBytes(3, 3*spec.BlockSize+5))
		h.Sum(nil)
		h.Reset()
		require.Equal(t, uint64(0), h.Len())
		require.Equal(t, fresh, h.Sum(nil))

		msg := []byte("after reset")
		h.Write(msg)
		other := spec.New()
		other.Write(msg)
		require.Equal(t, other.Sum(nil), h.Sum(nil))
	})

	t.Run("StateRestore", func(t *testing.T) {
		msg := RandomBytes(11, 5*spec.BlockSize+3)
		for _, split := range []int{0, 1, spec.BlockSize - 1, spec.BlockSize, 2*spec.BlockSize + 7, len(msg)} {
			h := spec.New()
			h.Write(msg[:split])
			state, err := h.State()
			require.NoError(t, err)

			resumed := spec.New()
			require.NoError(t, resumed.Restore(state))
			require.Equal(t, uint64(split), resumed.Len())
			resumed.Write(msg[split:])

			h.Write(msg[split:])
			require.Equal(t, h.Sum(nil), resumed.Sum(nil), "split %d", split)
		}

		require.Error(t, spec.New().Restore([]byte("garbage")))
	})
}
