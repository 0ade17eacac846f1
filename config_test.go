// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package densemap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader(""))
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), cfg)
	})
	t.Run("overlay", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader(
			"initial_buckets: 1024\nallow_zero_key: true\nworkers: 2\n"))
		require.NoError(t, err)
		expected := DefaultConfig()
		expected.InitialBuckets = 1024
		expected.AllowZeroKey = true
		expected.Workers = 2
		require.Equal(t, expected, cfg)
	})
	t.Run("invalid", func(t *testing.T) {
		_, err := LoadConfig(strings.NewReader("initial_buckets: 100\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.Contains(t, err.Error(), "power of two")
	})
	t.Run("malformed", func(t *testing.T) {
		_, err := LoadConfig(strings.NewReader("initial_buckets: [1\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "decoding config")
	})
}

func TestConfigValidate(t *testing.T) {
	for name, tc := range map[string]struct {
		modify func(*Config)
		msg    string
	}{
		"default": {modify: func(*Config) {}},
		"threshold": {
			modify: func(c *Config) { c.GrowThreshold = 0 },
			msg:    "grow_threshold",
		},
		"not power of two": {
			modify: func(c *Config) { c.InitialBuckets = 96 },
			msg:    "power of two",
		},
		"zero buckets": {
			modify: func(c *Config) { c.InitialBuckets = 0 },
			msg:    "initial_buckets (0)",
		},
		"buckets below threshold": {
			modify: func(c *Config) { c.InitialBuckets = 4 },
			msg:    "initial_buckets (4)",
		},
		"dense below threshold": {
			modify: func(c *Config) { c.InitialDense = 5 },
			msg:    "initial_dense (5)",
		},
		"negative parallel": {
			modify: func(c *Config) { c.ParallelRehashMin = -1 },
			msg:    "parallel_rehash_min",
		},
		"negative workers": {
			modify: func(c *Config) { c.Workers = -1 },
			msg:    "workers",
		},
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if tc.msg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.Contains(t, err.Error(), tc.msg)

			_, err = NewConfig[string, int](cfg, Comparable[string], StringHash)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
