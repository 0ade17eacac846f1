// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package densemap

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultInitialBuckets    = 128
	defaultInitialDense      = 16
	defaultGrowThreshold     = 5
	defaultParallelRehashMin = 4096
)

// Config controls the initial sizes and growth behavior of a Map.
type Config struct {
	// InitialBuckets is the length of the bucket index of an empty
	// map. Must be a power of two.
	InitialBuckets int `yaml:"initial_buckets"`
	// InitialDense is the length of the dense key and value arrays of
	// an empty map.
	InitialDense int `yaml:"initial_dense"`
	// GrowThreshold is the number of free slots at which the bucket
	// index or the dense arrays are doubled.
	GrowThreshold int `yaml:"grow_threshold"`
	// ParallelRehashMin is the live entry count from which key hashes
	// are recomputed in parallel when the bucket index grows. Zero
	// disables parallel rehashing.
	ParallelRehashMin int `yaml:"parallel_rehash_min"`
	// Workers bounds the goroutines used by a parallel rehash. Zero
	// means runtime.NumCPU().
	Workers int `yaml:"workers"`
	// AllowZeroKey accepts the zero value of K as a key.
	AllowZeroKey bool `yaml:"allow_zero_key"`
}

// DefaultConfig returns the configuration used by New and NewHint.
func DefaultConfig() Config {
	return Config{
		InitialBuckets:    defaultInitialBuckets,
		InitialDense:      defaultInitialDense,
		GrowThreshold:     defaultGrowThreshold,
		ParallelRehashMin: defaultParallelRehashMin,
	}
}

// LoadConfig reads a YAML document from r on top of DefaultConfig and
// validates the result. An empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports whether c describes a usable map.
func (c Config) Validate() error {
	switch {
	case c.GrowThreshold < 1:
		return errors.Wrapf(ErrInvalidConfig,
			"grow_threshold must be at least 1, got %d", c.GrowThreshold)
	case c.InitialBuckets&(c.InitialBuckets-1) != 0:
		return errors.Wrapf(ErrInvalidConfig,
			"initial_buckets must be a power of two, got %d", c.InitialBuckets)
	case c.InitialBuckets <= c.GrowThreshold:
		return errors.Wrapf(ErrInvalidConfig,
			"initial_buckets (%d) must exceed grow_threshold (%d)",
			c.InitialBuckets, c.GrowThreshold)
	case c.InitialDense <= c.GrowThreshold:
		return errors.Wrapf(ErrInvalidConfig,
			"initial_dense (%d) must exceed grow_threshold (%d)",
			c.InitialDense, c.GrowThreshold)
	case c.ParallelRehashMin < 0:
		return errors.Wrapf(ErrInvalidConfig,
			"parallel_rehash_min must not be negative, got %d", c.ParallelRehashMin)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig,
			"workers must not be negative, got %d", c.Workers)
	}
	return nil
}
