// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package densemap

import (
	"hash/maphash"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func smallConfig() Config {
	return Config{
		InitialBuckets:    8,
		InitialDense:      4,
		GrowThreshold:     2,
		ParallelRehashMin: 16,
		Workers:           4,
	}
}

func TestRandomOps(t *testing.T) {
	for name, hash := range map[string]func(maphash.Seed, uint64) uint64{
		"xxh3": IntHash[uint64],
		"bad":  badIntHash,
	} {
		t.Run(name, func(t *testing.T) {
			m, err := NewConfig[uint64, int](smallConfig(), Comparable[uint64], hash)
			require.NoError(t, err)
			expected := make(map[uint64]int)
			rng := rand.New(rand.NewSource(1))

			for op := 0; op < 20000; op++ {
				k := uint64(rng.Intn(300) + 1)
				_, present := expected[k]
				switch rng.Intn(4) {
				case 0, 1:
					err := m.Add(k, op)
					if present {
						require.ErrorIs(t, err, ErrDuplicateKey)
					} else {
						require.NoError(t, err)
						expected[k] = op
					}
				case 2:
					err := m.Remove(k)
					if present {
						require.NoError(t, err)
						delete(expected, k)
					} else {
						require.ErrorIs(t, err, ErrKeyNotFound)
					}
				case 3:
					err := m.Set(k, -op)
					if present {
						require.NoError(t, err)
						expected[k] = -op
					} else {
						require.ErrorIs(t, err, ErrKeyNotFound)
					}
				}
				require.Equal(t, len(expected), m.Len())
				if op%1000 == 0 {
					checkInvariants(t, m)
				}
			}
			checkInvariants(t, m)

			got := make(map[uint64]int, m.Len())
			for k, v := range m.All() {
				got[k] = v
			}
			if diff := cmp.Diff(expected, got); diff != "" {
				t.Errorf("contents mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParallelRehash(t *testing.T) {
	build := func(parallelMin int) *Map[int, int] {
		cfg := smallConfig()
		cfg.ParallelRehashMin = parallelMin
		m, err := NewConfig[int, int](cfg, Comparable[int], intHash)
		require.NoError(t, err)
		for i := 1; i <= 5000; i++ {
			require.NoError(t, m.Add(i, i))
			if i%3 == 0 {
				require.NoError(t, m.Remove(i/3))
			}
		}
		return m
	}
	seq := build(0)
	par := build(1)
	checkInvariants(t, par)

	// IntHash ignores the seed so both maps place entries identically.
	if diff := cmp.Diff(seq.buckets, par.buckets); diff != "" {
		t.Errorf("bucket index mismatch (-seq +par):\n%s", diff)
	}
	if diff := cmp.Diff(seq.keys, par.keys); diff != "" {
		t.Errorf("dense keys mismatch (-seq +par):\n%s", diff)
	}
	require.True(t, Equal(seq, par))
}

func TestParallelRehashPanic(t *testing.T) {
	cfg := smallConfig()
	cfg.ParallelRehashMin = 1
	explode := false
	m, err := NewConfig[int, int](cfg, Comparable[int], func(seed maphash.Seed, k int) uint64 {
		if explode && k == 3 {
			panic("boom")
		}
		return IntHash(seed, k)
	})
	require.NoError(t, err)
	for i := 1; i <= 6; i++ {
		require.NoError(t, m.Add(i, i))
	}
	before := m.Stats()
	require.Equal(t, 8, before.Buckets)

	// the next Add grows the bucket index and rehashes key 3
	explode = true
	require.PanicsWithValue(t, "boom", func() { _ = m.Add(7, 7) })
	require.Equal(t, 6, m.Len())
	require.Equal(t, before.Buckets, m.Stats().Buckets)
	explode = false
	require.NoError(t, m.Add(7, 7))
	checkInvariants(t, m)
}

func TestOverLoadFactor(t *testing.T) {
	for _, tc := range []struct {
		count, nbuckets, threshold int
		over                       bool
	}{
		{count: 0, nbuckets: 128, threshold: 5, over: false},
		{count: 95, nbuckets: 128, threshold: 5, over: false},
		{count: 96, nbuckets: 128, threshold: 5, over: true},
		{count: 10, nbuckets: 16, threshold: 5, over: false},
		{count: 11, nbuckets: 16, threshold: 5, over: true},
		{count: 0, nbuckets: 8, threshold: 7, over: false},
		{count: 1, nbuckets: 8, threshold: 7, over: true},
	} {
		if got := overLoadFactor(tc.count, tc.nbuckets, tc.threshold); got != tc.over {
			t.Errorf("overLoadFactor(%d, %d, %d) = %t, want %t",
				tc.count, tc.nbuckets, tc.threshold, got, tc.over)
		}
	}
}
