// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"unsafe"

	"github.com/aristanetworks/densemap"
	"github.com/phuslu/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// load adds every pair of the YAML mapping read from r to m, in
// document order. Scalar values are stored as written.
func load(r io.Reader, m *densemap.Map[string, string], l *log.Logger) error {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return errors.Wrap(err, "decoding data")
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: expected a mapping", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return errors.Errorf("line %d: keys and values must be scalars", k.Line)
		}
		if err := m.Add(k.Value, v.Value); err != nil {
			return errors.Wrapf(err, "line %d", k.Line)
		}
		l.Debug().Str("key", k.Value).Str("value", v.Value).Msg("added")
	}
	return nil
}

// footprint estimates the bytes held by m's storage, not counting the
// string contents.
func footprint(m *densemap.Map[string, string]) uint64 {
	s := m.Stats()
	var str string
	entry := 2 * unsafe.Sizeof(str)
	return uint64(s.Buckets)*uint64(unsafe.Sizeof(int(0))) +
		uint64(s.Dense)*uint64(entry) +
		uint64(s.Free)*uint64(unsafe.Sizeof(int(0))) +
		uint64(s.Dense+7)/8
}
