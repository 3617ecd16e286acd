package digest

import (
	"errors"
	"testing"

	"github.com/distribution/mdhash"
	godigest "github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/require"
)

func TestToOCI(t *testing.T) {
	p := []byte("oci interop")
	for _, alg := range []mdhash.Algorithm{mdhash.SHA256, mdhash.SHA384, mdhash.SHA512} {
		d := FromBytes(alg, p)

		od, err := d.ToOCI()
		require.NoError(t, err)
		require.Equal(t, d.String(), od.String())

		// go-digest computes these with the standard library.
		require.Equal(t, od, od.Algorithm().FromBytes(p))

		back, err := FromOCI(od)
		require.NoError(t, err)
		require.Equal(t, d, back)
	}
}

func TestToOCIUnsupported(t *testing.T) {
	for _, alg := range []mdhash.Algorithm{mdhash.MD4, mdhash.MD5, mdhash.RIPEMD160, mdhash.SHA1, mdhash.SHA224} {
		_, err := FromBytes(alg, nil).ToOCI()
		require.True(t, errors.Is(err, ErrDigestUnsupported), alg.String())
	}

	_, err := FromOCI(godigest.Digest("sha256:short"))
	require.True(t, errors.Is(err, ErrDigestInvalidFormat))
}
