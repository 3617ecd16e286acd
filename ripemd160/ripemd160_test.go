package ripemd160

import (
	"encoding/hex"
	"hash"
	"testing"

	"github.com/distribution/mdhash/testutil"
	"github.com/stretchr/testify/require"
	xripemd160 "golang.org/x/crypto/ripemd160"
)

var golden = []testutil.Vector{
	{In: "", Out: "9c1185a5c5e9fc54612808977ee8f548b2258d31"},
	{In: "a", Out: "0bdc9d2d256b3ee9daae347be6f4dc835a467ffe"},
	{In: "abc", Out: "8eb208f7e05d987a9b044a8e98c6b087f15a0bfc"},
	{In: "message digest", Out: "5d0689ef49d2fae572b881b123a85ffa21595f36"},
	{In: "abcdefghijklmnopqrstuvwxyz", Out: "f71c27109c692c1b56bbdceb5b9d2865b3708dbc"},
	{In: "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq", Out: "12a053384a9c0c88e405a06c27dcf49ada62eb2b"},
	{In: "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789", Out: "b0e20b6e3116640286ed3a87a5713079b21f5189"},
	{In: "12345678901234567890123456789012345678901234567890123456789012345678901234567890", Out: "9b752e45573d4b39f4dbd3323cab82bf63326bfb"},
	{In: testutil.Million(), Out: "52783243c1697bdbe16d37f97f68f08325dc1528"},
}

func TestRIPEMD160(t *testing.T) {
	testutil.CheckHash(t, testutil.HashSpec{
		New:       New,
		Size:      Size,
		BlockSize: BlockSize,
		Vectors:   golden,
		Reference: func() hash.Hash { return xripemd160.New() },
	})
}

func TestSum(t *testing.T) {
	for _, v := range golden {
		sum := Sum([]byte(v.In))
		require.Equal(t, v.Out, hex.EncodeToString(sum[:]))
	}
}
