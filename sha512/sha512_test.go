package sha512

import (
	stdsha512 "crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/distribution/mdhash/testutil"
	"github.com/stretchr/testify/require"
)

const msg896 = "abcdefghbcdefghicdefghijdefghijkefghijklfghijklmghijklmnhijklmnoijklmnopjklmnopqklmnopqrlmnopqrsmnopqrstnopqrstu"

var golden512 = []testutil.Vector{
	{In: "", Out: "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"},
	{In: "abc", Out: "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
	{In: msg896, Out: "8e959b75dae313da8cf4f72814fc143f8f7779c6eb9f7fa17299aeadb6889018501d289e4900f7e4331b99dec4b5433ac7d329eeb6dd26545e96e55b874be909"},
	{In: testutil.Million(), Out: "e718483d0ce769644e2e42c7bc15b4638e1f98b13b2044285632a803afa973ebde0ff244877ea60a4cb0432ce577c31beb009c5c2c49aa2e4eadb217ad8cc09b"},
}

var golden384 = []testutil.Vector{
	{In: "", Out: "38b060a751ac96384cd9327eb1b1e36a21fdb71114be07434c0cc7bf63f6e1da274edebfe76f65fbd51ad2f14898b95b"},
	{In: "abc", Out: "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"},
	{In: msg896, Out: "09330c33f71147e83d192fc782cd1b4753111b173b3b05d22fa08086e3b0f712fcc7c71a557e2db966c3e9fa91746039"},
	{In: testutil.Million(), Out: "9d0e1809716474cb086e834e310a4a1ced149e9c00f248527972cec5704c2a5b07b8b3dc38ecc4ebae97ddd87f3d8985"},
}

func TestSHA512(t *testing.T) {
	testutil.CheckHash(t, testutil.HashSpec{
		New:       New,
		Size:      Size,
		BlockSize: BlockSize,
		Vectors:   golden512,
		Reference: stdsha512.New,
	})
}

func TestSHA384(t *testing.T) {
	testutil.CheckHash(t, testutil.HashSpec{
		New:       New384,
		Size:      Size384,
		BlockSize: BlockSize,
		Vectors:   golden384,
		Reference: stdsha512.New384,
	})
}

func TestSum(t *testing.T) {
	for _, v := range golden512 {
		sum := Sum512([]byte(v.In))
		require.Equal(t, v.Out, hex.EncodeToString(sum[:]))
	}
	for _, v := range golden384 {
		sum := Sum384([]byte(v.In))
		require.Equal(t, v.Out, hex.EncodeToString(sum[:]))
	}
}

func TestSHA384IsNotTruncatedSHA512(t *testing.T) {
	s384 := Sum384(nil)
	s512 := Sum512(nil)
	require.NotEqual(t, s512[:Size384], s384[:])
}

// A 128-bit length field leaves only 111 bytes of room in the final block.
func TestLengthFieldBoundary(t *testing.T) {
	for _, n := range []int{110, 111, 112, 113, 127, 128} {
		msg := testutil.RandomBytes(int64(n), n)
		want := stdsha512.Sum512(msg)
		got := Sum512(msg)
		require.Equal(t, want, got, "length %d", n)
	}
}
