package digest

import (
	"fmt"

	"github.com/distribution/mdhash"
	godigest "github.com/opencontainers/go-digest"
)

var ociAlgorithms = map[mdhash.Algorithm]godigest.Algorithm{
	mdhash.SHA256: godigest.SHA256,
	mdhash.SHA384: godigest.SHA384,
	mdhash.SHA512: godigest.SHA512,
}

// ToOCI converts d to the digest type used by OCI image manifests. Only the
// SHA-2 variants registered by go-digest can be converted.
func (d Digest) ToOCI() (godigest.Digest, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	alg, ok := ociAlgorithms[d.Algorithm()]
	if !ok {
		return "", fmt.Errorf("%w: %v has no OCI equivalent", ErrDigestUnsupported, d.Algorithm())
	}
	od := godigest.NewDigestFromEncoded(alg, d.Hex())
	if err := od.Validate(); err != nil {
		return "", err
	}
	return od, nil
}

// FromOCI converts an OCI digest into a Digest.
func FromOCI(od godigest.Digest) (Digest, error) {
	if err := od.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDigestInvalidFormat, err)
	}
	for alg, oalg := range ociAlgorithms {
		if oalg == od.Algorithm() {
			return Parse(string(NewDigestFromHex(alg, od.Encoded())))
		}
	}
	return "", fmt.Errorf("%w: %q", ErrDigestUnsupported, od.Algorithm())
}
