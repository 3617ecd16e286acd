package md4

import (
	"encoding/hex"
	"hash"
	"testing"

	"github.com/distribution/mdhash/testutil"
	"github.com/stretchr/testify/require"
	xmd4 "golang.org/x/crypto/md4"
)

// RFC 1320, appendix A.5.
var golden = []testutil.Vector{
	{In: "", Out: "31d6cfe0d16ae931b73c59d7e0c089c0"},
	{In: "a", Out: "bde52cb31de33e46245e05fbdbd6fb24"},
	{In: "abc", Out: "a448017aaf21d8525fc10ae87aa6729d"},
	{In: "message digest", Out: "d9130a8164549fe818874806e1c7014b"},
	{In: "abcdefghijklmnopqrstuvwxyz", Out: "d79e1c308aa5bbcdeea8ed63df412da9"},
	{In: "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789", Out: "043f8582f241db351ce627e153e7f0e4"},
	{In: "12345678901234567890123456789012345678901234567890123456789012345678901234567890", Out: "e33b4ddc9c38f2199c3e7b164fcc0536"},
}

func TestMD4(t *testing.T) {
	testutil.CheckHash(t, testutil.HashSpec{
		New:       New,
		Size:      Size,
		BlockSize: BlockSize,
		Vectors:   golden,
		Reference: func() hash.Hash { return xmd4.New() },
	})
}

func TestSum(t *testing.T) {
	for _, v := range golden {
		sum := Sum([]byte(v.In))
		require.Equal(t, v.Out, hex.EncodeToString(sum[:]))
	}
}
