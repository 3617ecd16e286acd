package digest

import (
	"fmt"

	"github.com/distribution/mdhash"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
)

var multicodecs = map[mdhash.Algorithm]multicodec.Code{
	mdhash.MD4:       multicodec.Md4,
	mdhash.MD5:       multicodec.Md5,
	mdhash.RIPEMD160: multicodec.Ripemd160,
	mdhash.SHA1:      multicodec.Sha1,
	mdhash.SHA224:    multicodec.Sha2_224,
	mdhash.SHA256:    multicodec.Sha2_256,
	mdhash.SHA384:    multicodec.Sha2_384,
	mdhash.SHA512:    multicodec.Sha2_512,
}

// Multicodec returns the multicodec table entry for alg.
func Multicodec(alg mdhash.Algorithm) (multicodec.Code, error) {
	code, ok := multicodecs[alg]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrDigestUnsupported, alg)
	}
	return code, nil
}

// Multihash returns the self describing multihash encoding of d.
func (d Digest) Multihash() (multihash.Multihash, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	code, err := Multicodec(d.Algorithm())
	if err != nil {
		return nil, err
	}
	return multihash.Encode(d.Encoded(), uint64(code))
}

// B58 returns the base58 rendering of the multihash of d, the form used in
// IPFS paths.
func (d Digest) B58() (string, error) {
	mh, err := d.Multihash()
	if err != nil {
		return "", err
	}
	return mh.B58String(), nil
}

// FromMultihash decodes a multihash produced by any of the algorithms in
// this module. Truncated multihashes are rejected.
func FromMultihash(mh []byte) (Digest, error) {
	decoded, err := multihash.Decode(mh)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDigestInvalidFormat, err)
	}
	for alg, code := range multicodecs {
		if uint64(code) != decoded.Code {
			continue
		}
		if decoded.Length != alg.Size() {
			return "", ErrDigestInvalidLength
		}
		return NewDigestFromBytes(alg, decoded.Digest), nil
	}
	return "", fmt.Errorf("%w: multicodec %v", ErrDigestUnsupported, multicodec.Code(decoded.Code))
}

// FromB58 parses the base58 form returned by B58.
func FromB58(s string) (Digest, error) {
	mh, err := multihash.FromB58String(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDigestInvalidFormat, err)
	}
	return FromMultihash(mh)
}
