// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package densemap

import (
	"iter"

	"github.com/yourbasic/bit"
)

// Iterator is instantiated by a call Iter(). It allows iterating over
// a Map.
//
// Entries are visited in dense order. Adding or removing entries while
// an Iterator is in use is not allowed and makes the next call to Next
// panic. Replacing elements with Set or Update is allowed.
type Iterator[K, V any] struct {
	key    K
	elem   V
	m      *Map[K, V]
	pos    int // dense position of the current entry
	writes uint64
}

// Key returns the key at the iterator's current position. This is
// only valid after a call to Next() that returns true.
func (it *Iterator[K, V]) Key() K {
	return it.key
}

// Elem returns the element at the iterator's current position. This
// is only valid after a call to Next() that returns true.
func (it *Iterator[K, V]) Elem() V {
	return it.elem
}

// Iter instantiates an Iterator to explore the elements of the Map.
// Each call starts over from the current set of live entries.
func (m *Map[K, V]) Iter() *Iterator[K, V] {
	if m == nil || m.count == 0 {
		return &Iterator[K, V]{}
	}
	return &Iterator[K, V]{m: m, pos: -1, writes: m.writes}
}

// Next moves the iterator to the next element. Next returns false
// when the iterator is complete.
func (it *Iterator[K, V]) Next() bool {
	m := it.m
	if m == nil {
		return false
	}
	if m.writes != it.writes {
		panic("map modified during iteration")
	}
	d := nextLive(m.live, it.pos)
	if d < 0 {
		var (
			zeroK K
			zeroV V
		)
		it.key = zeroK
		it.elem = zeroV
		it.m = nil
		return false
	}
	it.pos = d
	it.key = m.keys[d]
	it.elem = m.values[d]
	return true
}

// nextLive returns the smallest element of s greater than after, or -1.
func nextLive(s *bit.Set, after int) int {
	if after < 0 {
		if s.Contains(0) {
			return 0
		}
		after = 0
	}
	return s.Next(after)
}

// All returns an iterator over key-value pairs from m.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := m.Iter(); it.Next(); {
			if !yield(it.Key(), it.Elem()) {
				return
			}
		}
	}
}

// Keys returns an iterator over keys in m.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for it := m.Iter(); it.Next(); {
			if !yield(it.Key()) {
				return
			}
		}
	}
}

// Values returns an iterator over values in m.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for it := m.Iter(); it.Next(); {
			if !yield(it.Elem()) {
				return
			}
		}
	}
}
