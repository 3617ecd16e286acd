package digest

import (
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/distribution/mdhash"
	_ "github.com/distribution/mdhash/md4"       // md4
	_ "github.com/distribution/mdhash/md5"       // md5
	_ "github.com/distribution/mdhash/ripemd160" // ripemd160
	_ "github.com/distribution/mdhash/sha1"      // sha1
	_ "github.com/distribution/mdhash/sha256"    // sha224, sha256
	_ "github.com/distribution/mdhash/sha512"    // sha384, sha512
)

// Digest allows simple protection of hex formatted digest strings, prefixed
// by their algorithm. Strings of type Digest have some guarantee of being in
// the correct format and it provides quick access to the components of a
// digest string.
//
// The following is an example of the contents of Digest types:
//
//	sha256:7173b809ca12ec5dee4506cd86be934c4596dd234ee82c0662eac04a8c2c71dc
//
// The algorithm portion is always one of the canonical names returned by
// mdhash.Algorithm.String and the hex portion is lowercase.
type Digest string

var (
	// ErrDigestInvalidFormat returned when digest format invalid.
	ErrDigestInvalidFormat = errors.New("invalid checksum digest format")

	// ErrDigestInvalidLength returned when digest has invalid length.
	ErrDigestInvalidLength = errors.New("invalid checksum digest length")

	// ErrDigestUnsupported returned when the digest algorithm is unsupported.
	ErrDigestUnsupported = errors.New("unsupported digest algorithm")
)

// NewDigest returns a Digest from alg and a hash.Hash object.
func NewDigest(alg mdhash.Algorithm, h hash.Hash) Digest {
	return NewDigestFromBytes(alg, h.Sum(nil))
}

// NewDigestFromBytes returns a new digest from the byte contents of p.
// Typically, this can come from hash.Hash.Sum(...) or xxx.SumXXX(...)
// functions. This is also useful for rebuilding digests from binary
// serializations.
func NewDigestFromBytes(alg mdhash.Algorithm, p []byte) Digest {
	return NewDigestFromHex(alg, hex.EncodeToString(p))
}

// NewDigestFromHex returns a Digest from alg and the hex encoded digest.
func NewDigestFromHex(alg mdhash.Algorithm, encoded string) Digest {
	return Digest(alg.String() + ":" + encoded)
}

// Parse parses s and returns the validated digest object. An error will
// be returned if the format is invalid.
func Parse(s string) (Digest, error) {
	d := Digest(s)
	return d, d.Validate()
}

// FromReader consumes the content of rd until io.EOF, returning the digest
// computed with alg.
func FromReader(alg mdhash.Algorithm, rd io.Reader) (Digest, error) {
	if !alg.Available() {
		return "", fmt.Errorf("%w: %v", ErrDigestUnsupported, alg)
	}
	digester := NewDigester(alg)
	if _, err := io.Copy(digester.Hash(), rd); err != nil {
		return "", err
	}
	return digester.Digest(), nil
}

// FromBytes digests the input and returns a Digest.
func FromBytes(alg mdhash.Algorithm, p []byte) Digest {
	digester := NewDigester(alg)
	digester.Hash().Write(p)
	return digester.Digest()
}

// FromString digests the input and returns a Digest.
func FromString(alg mdhash.Algorithm, s string) Digest {
	return FromBytes(alg, []byte(s))
}

// Validate checks that the contents of d is a valid digest, returning an
// error if not.
func (d Digest) Validate() error {
	s := string(d)
	i := strings.Index(s, ":")
	if i <= 0 || i+1 == len(s) {
		return ErrDigestInvalidFormat
	}

	alg, err := mdhash.ParseAlgorithm(s[:i])
	if err != nil || alg.String() != s[:i] {
		return fmt.Errorf("%w: %q", ErrDigestUnsupported, s[:i])
	}

	encoded := s[i+1:]
	if len(encoded) != 2*alg.Size() {
		return ErrDigestInvalidLength
	}
	for _, c := range encoded {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return ErrDigestInvalidFormat
		}
	}
	return nil
}

// Algorithm returns the algorithm portion of the digest. This will panic if
// the underlying digest is not in a valid format.
func (d Digest) Algorithm() mdhash.Algorithm {
	alg, err := mdhash.ParseAlgorithm(string(d[:d.sepIndex()]))
	if err != nil {
		panic(fmt.Sprintf("invalid digest %q: %v", string(d), err))
	}
	return alg
}

// Hex returns the hex digest portion of the digest. This will panic if the
// underlying digest is not in a valid format.
func (d Digest) Hex() string {
	return string(d[d.sepIndex()+1:])
}

// Encoded returns the raw digest bytes. This will panic if the underlying
// digest is not in a valid format.
func (d Digest) Encoded() []byte {
	p, err := hex.DecodeString(d.Hex())
	if err != nil {
		panic(fmt.Sprintf("invalid digest %q: %v", string(d), err))
	}
	return p
}

func (d Digest) String() string {
	return string(d)
}

// Verifier returns a writer object that can be used to verify a stream of
// content against the digest. If the digest is invalid, the method will
// panic.
func (d Digest) Verifier() Verifier {
	return hashVerifier{
		hash:   d.Algorithm().New(),
		digest: d,
	}
}

func (d Digest) sepIndex() int {
	i := strings.Index(string(d), ":")

	if i < 0 {
		panic(fmt.Sprintf("no ':' separator in digest %q", string(d)))
	}

	return i
}
