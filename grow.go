// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package densemap

import (
	"context"
	"fmt"
)

// overLoadFactor reports whether adding one more entry to count entries
// held in nbuckets buckets needs a bigger bucket index.
func overLoadFactor(count, nbuckets, threshold int) bool {
	return nbuckets-count <= threshold ||
		uint64(count+1)*loadFactorDen > uint64(nbuckets)*loadFactorNum
}

// growDense doubles the dense slices when no more than GrowThreshold
// positions are left for new entries. Entries keep their positions so
// the bucket index stays valid.
func (m *Map[K, V]) growDense() {
	if len(m.keys)-m.count > m.cfg.GrowThreshold {
		return
	}
	n := len(m.keys) * 2
	keys := make([]K, n)
	copy(keys, m.keys[:m.next])
	values := make([]V, n)
	copy(values, m.values[:m.next])
	m.keys, m.values = keys, values
}

// growBuckets doubles the bucket index, as many times as needed, before
// an Add that would overload it.
func (m *Map[K, V]) growBuckets() {
	nbuckets := len(m.buckets)
	for overLoadFactor(m.count, nbuckets, m.cfg.GrowThreshold) {
		nbuckets *= 2
	}
	if nbuckets != len(m.buckets) {
		m.rehash(nbuckets)
	}
}

// rehash replaces the bucket index with one of nbuckets slots holding
// every live entry.
func (m *Map[K, V]) rehash(nbuckets int) {
	if nbuckets&(nbuckets-1) != 0 {
		panic("nbuckets is not power of 2")
	}
	hashes := m.liveHashes()
	buckets := make([]int, nbuckets)
	mask := uint64(nbuckets - 1)
	m.live.Visit(func(d int) (skip bool) {
		i := hashes[d] & mask
		for buckets[i] != 0 {
			i = (i + 1) & mask
		}
		buckets[i] = d + 1
		return false
	})
	m.buckets = buckets
}

// hashPanic carries a panic raised by the hash function on a rehash
// goroutine back to the goroutine that called into the Map.
type hashPanic struct {
	v any
}

func (p hashPanic) Error() string {
	return fmt.Sprintf("hash panicked: %v", p.v)
}

// liveHashes returns the hash of every live key indexed by dense
// position. Large maps spread the work over disjoint dense ranges; each
// task writes only its own part of the result, so placement into the
// bucket index, done afterwards by a single goroutine, cannot lose an
// entry.
func (m *Map[K, V]) liveHashes() []uint64 {
	hashes := make([]uint64, m.next)
	fill := func(start, end int) {
		for d := start; d < end; d++ {
			if m.live.Contains(d) {
				hashes[d] = m.hash(m.seed, m.keys[d])
			}
		}
	}
	if m.cfg.ParallelRehashMin == 0 || m.count < m.cfg.ParallelRehashMin {
		fill(0, m.next)
		return hashes
	}

	err := newRangeExecutor(m.cfg.Workers).execute(context.Background(), m.next,
		func(_ context.Context, start, end int) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = hashPanic{r}
				}
			}()
			fill(start, end)
			return nil
		})
	if p, ok := err.(hashPanic); ok {
		panic(p.v)
	}
	return hashes
}
