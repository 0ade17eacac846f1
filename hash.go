// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package densemap

import (
	"bytes"
	"encoding/binary"
	"hash/maphash"

	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"
)

// The hash functions below use XXH3 from github.com/zeebo/xxh3 with
// seed 0 and ignore the maphash.Seed, so bucket layouts are
// reproducible across runs. Use maphash.String or maphash.Bytes for
// per-map randomized hashing.

// StringHash hashes s.
func StringHash(_ maphash.Seed, s string) uint64 {
	return xxh3.HashString(s)
}

// BytesHash hashes b.
func BytesHash(_ maphash.Seed, b []byte) uint64 {
	return xxh3.Hash(b)
}

// IntHash hashes the 64-bit little endian encoding of v.
func IntHash[T constraints.Integer](_ maphash.Seed, v T) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return xxh3.Hash(buf[:])
}

// Comparable is an equal function for comparable key types.
func Comparable[K comparable](a, b K) bool {
	return a == b
}

// BytesEqual is an equal function for []byte keys. A nil and an empty
// slice are equal, so with BytesEqual both are zero keys.
func BytesEqual(a, b []byte) bool {
	return bytes.Equal(a, b)
}
