package digest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/distribution/mdhash"
	"github.com/stretchr/testify/require"
)

func TestParseDigest(t *testing.T) {
	for _, testcase := range []struct {
		input     string
		err       error
		algorithm mdhash.Algorithm
		hex       string
	}{
		{
			input:     "sha256:e58fcf7418d4390dec8e8fb69d88c06ec07039d651fedd3aa72af9972e7d046b",
			algorithm: mdhash.SHA256,
			hex:       "e58fcf7418d4390dec8e8fb69d88c06ec07039d651fedd3aa72af9972e7d046b",
		},
		{
			input:     "md5:d41d8cd98f00b204e9800998ecf8427e",
			algorithm: mdhash.MD5,
			hex:       "d41d8cd98f00b204e9800998ecf8427e",
		},
		{
			input:     "ripemd160:9c1185a5c5e9fc54612808977ee8f548b2258d31",
			algorithm: mdhash.RIPEMD160,
			hex:       "9c1185a5c5e9fc54612808977ee8f548b2258d31",
		},
		{
			// empty hex
			input: "sha256:",
			err:   ErrDigestInvalidFormat,
		},
		{
			// just hex
			input: "d41d8cd98f00b204e9800998ecf8427e",
			err:   ErrDigestInvalidFormat,
		},
		{
			// not hex
			input: "md5:d41d8cd98f00b204e9800998ecf8427z",
			err:   ErrDigestInvalidFormat,
		},
		{
			// upper case hex
			input: "md5:D41D8CD98F00B204E9800998ECF8427E",
			err:   ErrDigestInvalidFormat,
		},
		{
			input: "sha256:d41d8cd98f00b204e9800998ecf8427e",
			err:   ErrDigestInvalidLength,
		},
		{
			input: "foo:d41d8cd98f00b204e9800998ecf8427e",
			err:   ErrDigestUnsupported,
		},
		{
			// aliases are accepted by ParseAlgorithm but are not canonical
			input: "SHA-256:e58fcf7418d4390dec8e8fb69d88c06ec07039d651fedd3aa72af9972e7d046b",
			err:   ErrDigestUnsupported,
		},
	} {
		digest, err := Parse(testcase.input)
		if testcase.err != nil {
			require.True(t, errors.Is(err, testcase.err), "parsing %q: %v != %v", testcase.input, err, testcase.err)
			continue
		}
		require.NoError(t, err, testcase.input)
		require.Equal(t, testcase.algorithm, digest.Algorithm())
		require.Equal(t, testcase.hex, digest.Hex())

		// Parse string return value and check equality
		newParsed, err := Parse(digest.String())
		require.NoError(t, err)
		require.Equal(t, digest, newParsed)
	}
}

func TestFromString(t *testing.T) {
	for _, tc := range []struct {
		alg  mdhash.Algorithm
		want Digest
	}{
		{mdhash.MD4, "md4:a448017aaf21d8525fc10ae87aa6729d"},
		{mdhash.MD5, "md5:900150983cd24fb0d6963f7d28e17f72"},
		{mdhash.RIPEMD160, "ripemd160:8eb208f7e05d987a9b044a8e98c6b087f15a0bfc"},
		{mdhash.SHA1, "sha1:a9993e364706816aba3e25717850c26c9cd0d89d"},
		{mdhash.SHA224, "sha224:23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7"},
		{mdhash.SHA256, "sha256:ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	} {
		d := FromString(tc.alg, "abc")
		require.Equal(t, tc.want, d)
		require.NoError(t, d.Validate())

		fromReader, err := FromReader(tc.alg, strings.NewReader("abc"))
		require.NoError(t, err)
		require.Equal(t, tc.want, fromReader)
	}

	_, err := FromReader(mdhash.Algorithm(0), strings.NewReader("abc"))
	require.True(t, errors.Is(err, ErrDigestUnsupported))
}

func TestEncoded(t *testing.T) {
	d := FromBytes(mdhash.SHA1, nil)
	require.Len(t, d.Encoded(), mdhash.SHA1.Size())
	require.Equal(t, d, NewDigestFromBytes(mdhash.SHA1, d.Encoded()))
}

func TestDigesterResume(t *testing.T) {
	p := bytes.Repeat([]byte("resumable "), 100)

	first := NewDigester(mdhash.SHA512)
	first.Hash().Write(p[:333])
	state, err := first.Hash().State()
	require.NoError(t, err)

	second := NewDigester(mdhash.SHA512)
	require.NoError(t, second.Hash().Restore(state))
	second.Hash().Write(p[333:])

	require.Equal(t, mdhash.SHA512, second.Algorithm())
	require.Equal(t, FromBytes(mdhash.SHA512, p), second.Digest())
}

func TestVerifier(t *testing.T) {
	p := []byte("the quick brown fox")
	d := FromBytes(mdhash.RIPEMD160, p)

	v := d.Verifier()
	v.Write(p[:5])
	v.Write(p[5:])
	require.True(t, v.Verified())

	v = d.Verifier()
	v.Write(p[1:])
	require.False(t, v.Verified())
	require.Equal(t, FromBytes(mdhash.RIPEMD160, p[1:]), v.Digest())
}

func TestInvalidDigestPanics(t *testing.T) {
	require.Panics(t, func() { Digest("nocolon").Hex() })
	require.Panics(t, func() { Digest("bogus:00").Algorithm() })
}
