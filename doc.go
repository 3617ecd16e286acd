// Package mdhash is a family of Merkle-Damgård hash functions: MD4, MD5,
// RIPEMD-160, SHA-1, SHA-224, SHA-256, SHA-384 and SHA-512.
//
// Every algorithm lives in its own package and registers itself here when
// imported, much like the standard library's crypto package:
//
//	import (
//		"github.com/distribution/mdhash"
//		_ "github.com/distribution/mdhash/sha256"
//	)
//
//	h := mdhash.SHA256.New()
//	h.Write([]byte("abc"))
//	fmt.Printf("%x\n", h.Sum(nil))
//
// All hashes share one streaming core, so they have identical buffering
// and padding behaviour and all of them can snapshot their running state
// with State and continue later with Restore.
//
// Lengths are tracked as a 64-bit byte count. Streams longer than 2^61
// bytes wrap the bit length silently, as the reference algorithms do.
package mdhash
