// Package register adds the hashes of this module that go-multihash does
// not ship to its registry, so that multihash.Sum and multihash.SumStream
// accept the md4 and ripemd-160 codes. Import it for its side effects:
//
//	import _ "github.com/distribution/mdhash/digest/multihash/register"
package register

import (
	"hash"

	"github.com/distribution/mdhash/md4"
	"github.com/distribution/mdhash/ripemd160"
	"github.com/multiformats/go-multicodec"
	multihash "github.com/multiformats/go-multihash/core"
)

func init() {
	multihash.Register(uint64(multicodec.Md4), func() hash.Hash { return md4.New() })
	multihash.Register(uint64(multicodec.Ripemd160), func() hash.Hash { return ripemd160.New() })
}
