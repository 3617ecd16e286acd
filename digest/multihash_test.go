package digest

import (
	"errors"
	"testing"

	"github.com/distribution/mdhash"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"
)

func TestMultihashRoundTrip(t *testing.T) {
	for _, alg := range mdhash.Algorithms() {
		d := FromString(alg, "multihash")

		mh, err := d.Multihash()
		require.NoError(t, err, alg.String())

		decoded, err := multihash.Decode(mh)
		require.NoError(t, err)
		require.Equal(t, alg.Size(), decoded.Length)
		require.Equal(t, d.Encoded(), decoded.Digest)

		back, err := FromMultihash(mh)
		require.NoError(t, err)
		require.Equal(t, d, back)

		b58, err := d.B58()
		require.NoError(t, err)
		fromB58, err := FromB58(b58)
		require.NoError(t, err)
		require.Equal(t, d, fromB58)
	}
}

func TestMultihashMatchesUpstream(t *testing.T) {
	// go-multihash ships its own sha2-256.
	want, err := multihash.Sum([]byte("abc"), multihash.SHA2_256, -1)
	require.NoError(t, err)

	got, err := FromString(mdhash.SHA256, "abc").Multihash()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFromMultihashErrors(t *testing.T) {
	_, err := FromMultihash([]byte{0x12})
	require.True(t, errors.Is(err, ErrDigestInvalidFormat))

	truncated, err := multihash.Encode(make([]byte, 16), uint64(multicodec.Sha2_256))
	require.NoError(t, err)
	_, err = FromMultihash(truncated)
	require.True(t, errors.Is(err, ErrDigestInvalidLength))

	blake, err := multihash.Encode(make([]byte, 32), uint64(multicodec.Blake2b256))
	require.NoError(t, err)
	_, err = FromMultihash(blake)
	require.True(t, errors.Is(err, ErrDigestUnsupported))
}
