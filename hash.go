package mdhash

import (
	"errors"
	"fmt"
	"hash"
	"strconv"
	"strings"
)

// Algorithm identifies a hash function implemented in one of the algorithm
// packages of this module.
type Algorithm uint

const (
	MD4       Algorithm = 1 + iota // import github.com/distribution/mdhash/md4
	MD5                            // import github.com/distribution/mdhash/md5
	RIPEMD160                      // import github.com/distribution/mdhash/ripemd160
	SHA1                           // import github.com/distribution/mdhash/sha1
	SHA224                         // import github.com/distribution/mdhash/sha256
	SHA256                         // import github.com/distribution/mdhash/sha256
	SHA384                         // import github.com/distribution/mdhash/sha512
	SHA512                         // import github.com/distribution/mdhash/sha512
	maxAlgorithm
)

// ErrUnsupported is returned when an algorithm name is not recognised.
var ErrUnsupported = errors.New("unsupported hash algorithm")

var digestSizes = []uint8{
	MD4:       16,
	MD5:       16,
	RIPEMD160: 20,
	SHA1:      20,
	SHA224:    28,
	SHA256:    32,
	SHA384:    48,
	SHA512:    64,
}

var blockSizes = []uint8{
	MD4:       64,
	MD5:       64,
	RIPEMD160: 64,
	SHA1:      64,
	SHA224:    64,
	SHA256:    64,
	SHA384:    128,
	SHA512:    128,
}

var names = []string{
	MD4:       "md4",
	MD5:       "md5",
	RIPEMD160: "ripemd160",
	SHA1:      "sha1",
	SHA224:    "sha224",
	SHA256:    "sha256",
	SHA384:    "sha384",
	SHA512:    "sha512",
}

// ResumableHash is the common interface implemented by all hashes in this
// module.
type ResumableHash interface {
	// ResumableHash is a superset of hash.Hash
	hash.Hash
	// Len returns the number of bytes written to the Hash so far.
	Len() uint64
	// State returns a snapshot of the state of the Hash.
	State() ([]byte, error)
	// Restore resets the Hash to the given state.
	Restore(state []byte) error
}

var hashes = make([]func() ResumableHash, maxAlgorithm)

// Size returns the length, in bytes, of a digest resulting from the given
// algorithm. It doesn't require that the algorithm be linked into the
// program.
func (a Algorithm) Size() int {
	if a > 0 && a < maxAlgorithm {
		return int(digestSizes[a])
	}
	panic("mdhash: Size of unknown algorithm")
}

// BlockSize returns the block size, in bytes, consumed by the algorithm's
// compression function.
func (a Algorithm) BlockSize() int {
	if a > 0 && a < maxAlgorithm {
		return int(blockSizes[a])
	}
	panic("mdhash: BlockSize of unknown algorithm")
}

func (a Algorithm) String() string {
	if a > 0 && a < maxAlgorithm {
		return names[a]
	}
	return "unknown algorithm " + strconv.Itoa(int(a))
}

// New returns a new ResumableHash calculating the given algorithm. New panics
// if the algorithm's package is not linked into the binary.
func (a Algorithm) New() ResumableHash {
	if a > 0 && a < maxAlgorithm {
		f := hashes[a]
		if f != nil {
			return f()
		}
	}
	panic("mdhash: requested hash function " + a.String() + " is unavailable")
}

// Available reports whether the given algorithm is linked into the binary.
func (a Algorithm) Available() bool {
	return a > 0 && a < maxAlgorithm && hashes[a] != nil
}

// RegisterHash registers a function that returns a new instance of the given
// algorithm. This is intended to be called from the init function in
// packages that implement hash functions.
func RegisterHash(a Algorithm, f func() ResumableHash) {
	if a == 0 || a >= maxAlgorithm {
		panic("mdhash: RegisterHash of unknown algorithm")
	}
	hashes[a] = f
}

// Algorithms returns the available algorithms in a stable order.
func Algorithms() []Algorithm {
	var algs []Algorithm
	for a := Algorithm(1); a < maxAlgorithm; a++ {
		if a.Available() {
			algs = append(algs, a)
		}
	}
	return algs
}

// ParseAlgorithm maps a name to an Algorithm. Besides the canonical names
// returned by String it accepts upper case and the dashed spellings used by
// BSD style checksum files, such as "SHA-256" or "RIPEMD-160". It does not
// require the algorithm to be available.
func ParseAlgorithm(name string) (Algorithm, error) {
	canonical := strings.ToLower(strings.ReplaceAll(name, "-", ""))
	if canonical == "sha2" {
		canonical = "sha256"
	}
	for a := Algorithm(1); a < maxAlgorithm; a++ {
		if names[a] == canonical {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupported, name)
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if a == 0 || a >= maxAlgorithm {
		return nil, fmt.Errorf("%w: %d", ErrUnsupported, uint(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
