// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package densemap provides the Map type, an associative array built
// on plain slices rather than Go's built-in map. Like gomap, users
// provide an equal and a hash function for the key type.
//
// A Map keeps two independent storage regions:
//   - a bucket index, a power-of-two sized slice addressed by
//     hash(key) & (len-1). Each slot is empty or refers to a dense
//     position. Collisions are resolved by linear probing, comparing
//     keys with equal.
//   - dense key and value slices holding the entries at stable
//     positions. Positions freed by Remove are reused by later Adds.
//
// The two regions grow separately: the dense slices when few free
// positions remain, the bucket index when few empty slots remain or
// the probe load gets too high. Growing the dense slices copies
// entries by position, growing the bucket index rehashes every live
// entry.
//
// The following requirements are the user's responsibility to follow:
//   - equal(a, b) => hash(a) == hash(b)
//   - equal(a, a) must be true for all values of a.
//   - hash must be safe to call from several goroutines at once. Large
//     maps compute hashes in parallel while the bucket index grows.
//   - A Map must not be used from several goroutines at once without
//     external synchronization.
package densemap

import (
	"hash/maphash"

	"github.com/yourbasic/bit"
)

const (
	// Maximum load of the bucket index is 3/4. Linear probing degrades
	// quickly above that.
	loadFactorNum = 3
	loadFactorDen = 4

	// flags
	hashWriting = 1 // a goroutine is writing to the map
)

// Map is an associative array from K to V.
type Map[K, V any] struct {
	count int // # live entries == size of map
	flags uint32
	// writes counts structural changes, checked by iterators.
	writes uint64

	// buckets holds 0 for an empty slot or d+1 for dense position d.
	buckets []int

	keys   []K
	values []V
	live   *bit.Set // occupied dense positions
	free   []int    // dense positions released by Remove
	next   int      // first never used dense position

	cfg   Config
	seed  maphash.Seed
	hash  func(maphash.Seed, K) uint64
	equal func(K, K) bool
}

// KeyElem contains a Key and Elem.
type KeyElem[K, V any] struct {
	Key  K
	Elem V
}

// Stats describes the storage of a Map.
type Stats struct {
	Len     int // live entries
	Buckets int // length of the bucket index
	Dense   int // length of the dense key and value slices
	Free    int // dense positions waiting to be reused
}

// New instantiates a new Map with the default Config, initialized
// with any KeyElems passed. The equal func must return true for two
// values of K that are equal and false otherwise. The hash func should
// return a uniformly distributed hash value. If equal(a, b) then
// hash(a) == hash(b). The hash function is passed a
// [hash/maphash.Seed], this is meant to be used with functions and
// types in the [hash/maphash] package, though can be ignored.
//
// New panics if one of kes cannot be added.
func New[K, V any](
	equal func(a, b K) bool,
	hash func(maphash.Seed, K) uint64,
	kes ...KeyElem[K, V]) *Map[K, V] {

	m := NewHint[K, V](len(kes), equal, hash)
	for _, ke := range kes {
		if err := m.Add(ke.Key, ke.Elem); err != nil {
			panic(err)
		}
	}
	return m
}

// NewHint instantiates a new Map with a hint as to how many elements
// will be added. See [New] for discussion of the equal and hash
// arguments.
func NewHint[K, V any](
	hint int,
	equal func(a, b K) bool,
	hash func(maphash.Seed, K) uint64) *Map[K, V] {

	cfg := DefaultConfig()
	if hint > 0 {
		for overLoadFactor(hint-1, cfg.InitialBuckets, cfg.GrowThreshold) {
			cfg.InitialBuckets *= 2
		}
		if n := hint + cfg.GrowThreshold + 1; n > cfg.InitialDense {
			cfg.InitialDense = n
		}
	}
	return newMap[K, V](cfg, equal, hash)
}

// NewConfig instantiates a new Map using cfg. See [New] for discussion
// of the equal and hash arguments.
func NewConfig[K, V any](
	cfg Config,
	equal func(a, b K) bool,
	hash func(maphash.Seed, K) uint64) (*Map[K, V], error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newMap[K, V](cfg, equal, hash), nil
}

func newMap[K, V any](cfg Config,
	equal func(a, b K) bool,
	hash func(maphash.Seed, K) uint64) *Map[K, V] {

	m := &Map[K, V]{cfg: cfg, seed: maphash.MakeSeed(), hash: hash, equal: equal}
	m.reset()
	return m
}

// reset drops all storage and returns m to its configured initial
// capacity.
func (m *Map[K, V]) reset() {
	m.count = 0
	m.buckets = make([]int, m.cfg.InitialBuckets)
	m.keys = make([]K, m.cfg.InitialDense)
	m.values = make([]V, m.cfg.InitialDense)
	m.live = bit.New()
	m.free = nil
	m.next = 0
}

// Len returns the count of occupied elements in m.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.count
}

// Stats returns the current storage sizes of m.
func (m *Map[K, V]) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	return Stats{
		Len:     m.count,
		Buckets: len(m.buckets),
		Dense:   len(m.keys),
		Free:    len(m.free),
	}
}

// Get returns the element associated with key, or an error wrapping
// ErrKeyNotFound.
func (m *Map[K, V]) Get(key K) (V, error) {
	e, ok := m.Lookup(key)
	if !ok {
		return e, keyError(ErrKeyNotFound, key)
	}
	return e, nil
}

// Lookup returns the element associated with key and true if that key
// is in the Map, otherwise it returns the zero value of V and false.
func (m *Map[K, V]) Lookup(key K) (V, bool) {
	var zeroV V
	if m == nil || m.count == 0 {
		return zeroV, false
	}
	slot, ok := m.find(key)
	if !ok {
		return zeroV, false
	}
	return m.values[m.buckets[slot]-1], true
}

// Contains reports whether key is in m.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.Lookup(key)
	return ok
}

// Add associates key with elem. It returns an error wrapping
// ErrDuplicateKey if key is already present and ErrInvalidKey if key
// is the zero value of K, unless the Map's Config allows zero keys.
// m is unchanged when an error is returned.
func (m *Map[K, V]) Add(key K, elem V) error {
	if m == nil {
		// We have to panic here rather than initialize an empty map
		// because we need the user to pass in hash and equal
		// functions
		panic("Add called on nil map")
	}
	if !m.cfg.AllowZeroKey {
		var zeroK K
		if m.equal(key, zeroK) {
			return keyError(ErrInvalidKey, key)
		}
	}
	m.startWrite()
	defer m.endWrite()

	if _, ok := m.find(key); ok {
		return keyError(ErrDuplicateKey, key)
	}

	m.growDense()
	m.growBuckets()
	// The probe must be repeated: growing may have moved the slot.
	slot, _ := m.find(key)

	d := m.allocDense()
	m.keys[d] = key
	m.values[d] = elem
	m.live.Add(d)
	m.buckets[slot] = d + 1
	m.count++
	m.writes++
	return nil
}

// Remove deletes key and its associated element from m. It returns an
// error wrapping ErrKeyNotFound if key is not present.
func (m *Map[K, V]) Remove(key K) error {
	if m == nil || m.count == 0 {
		return keyError(ErrKeyNotFound, key)
	}
	m.startWrite()
	defer m.endWrite()

	slot, ok := m.find(key)
	if !ok {
		return keyError(ErrKeyNotFound, key)
	}
	d := m.buckets[slot] - 1
	m.deleteSlot(slot)

	var (
		zeroK K
		zeroV V
	)
	// Clear key and elem in case they have pointers
	m.keys[d] = zeroK
	m.values[d] = zeroV
	m.live.Delete(d)
	m.free = append(m.free, d)
	m.count--
	m.writes++

	if m.count == 0 {
		// Every dense position is free again, start over from the
		// front.
		m.free = m.free[:0]
		m.next = 0
		m.seed = maphash.MakeSeed()
	}
	return nil
}

// Set replaces the element associated with key. Set never adds a key:
// it returns an error wrapping ErrKeyNotFound if key is not present.
func (m *Map[K, V]) Set(key K, elem V) error {
	return m.Update(key, func(V) V { return elem })
}

// Update replaces the element associated with key by fn applied to the
// current element. It returns an error wrapping ErrKeyNotFound, and
// does not call fn, if key is not present.
func (m *Map[K, V]) Update(key K, fn func(cur V) V) error {
	if m == nil || m.count == 0 {
		return keyError(ErrKeyNotFound, key)
	}
	m.startWrite()
	defer m.endWrite()

	slot, ok := m.find(key)
	if !ok {
		return keyError(ErrKeyNotFound, key)
	}
	d := m.buckets[slot] - 1
	m.values[d] = fn(m.values[d])
	return nil
}

// Clear deletes all keys from m and releases its storage, returning it
// to its initial capacity.
func (m *Map[K, V]) Clear() {
	if m == nil {
		return
	}
	m.startWrite()
	defer m.endWrite()

	m.reset()
	m.seed = maphash.MakeSeed()
	m.writes++
}

func (m *Map[K, V]) startWrite() {
	if m.flags&hashWriting != 0 {
		panic("concurrent map writes")
	}
	m.flags |= hashWriting
}

func (m *Map[K, V]) endWrite() {
	m.flags &^= hashWriting
}

func (m *Map[K, V]) bucketMask() uint64 {
	return uint64(len(m.buckets) - 1)
}

// find probes the bucket index for key. It returns the slot holding key
// and true, or the first empty slot of the probe sequence and false.
func (m *Map[K, V]) find(key K) (int, bool) {
	mask := m.bucketMask()
	for i := m.hash(m.seed, key) & mask; ; i = (i + 1) & mask {
		ref := m.buckets[i]
		if ref == 0 {
			return int(i), false
		}
		if m.equal(key, m.keys[ref-1]) {
			return int(i), true
		}
	}
}

// deleteSlot empties slot i, shifting later entries of the same probe
// run back so that every remaining key stays reachable from its home
// slot.
func (m *Map[K, V]) deleteSlot(i int) {
	mask := m.bucketMask()
	for j := i; ; {
		j = int(uint64(j+1) & mask)
		ref := m.buckets[j]
		if ref == 0 {
			break
		}
		home := int(m.hash(m.seed, m.keys[ref-1]) & mask)
		if cyclicBetween(i, home, j) {
			// Still reachable from home without passing through i.
			continue
		}
		m.buckets[i] = ref
		i = j
	}
	m.buckets[i] = 0
}

// cyclicBetween reports whether h lies in the cyclic interval (i, j].
func cyclicBetween(i, h, j int) bool {
	if i <= j {
		return i < h && h <= j
	}
	return i < h || h <= j
}

// allocDense returns a free dense position, preferring released ones.
// The dense slices must have room, see growDense.
func (m *Map[K, V]) allocDense() int {
	if n := len(m.free); n > 0 {
		d := m.free[n-1]
		m.free = m.free[:n-1]
		return d
	}
	d := m.next
	m.next++
	return d
}
