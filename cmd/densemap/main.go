// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command densemap loads a YAML mapping of string keys to string values
// into a densemap.Map and reports the resulting contents and storage.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aristanetworks/densemap"
	"github.com/dustin/go-humanize"
	"github.com/phuslu/log"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("densemap", flag.ContinueOnError)
	flags.SetOutput(stderr)
	dataPath := flags.String("data", "", "YAML mapping of keys to values to load")
	configPath := flags.String("config", "", "YAML map configuration")
	remove := flags.String("remove", "", "comma separated keys to remove after loading")
	verbose := flags.Bool("v", false, "log every operation")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s -data <file> [flags]\n", args[0])
		flags.PrintDefaults()
	}
	if err := flags.Parse(args[1:]); err != nil {
		return 2
	}
	if *dataPath == "" {
		flags.Usage()
		return 2
	}

	l := log.Logger{
		Level:  log.InfoLevel,
		Writer: &log.IOWriter{Writer: stderr},
	}
	if *verbose {
		l.Level = log.DebugLevel
	}

	cfg := densemap.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = readConfig(*configPath); err != nil {
			l.Error().Err(err).Str("path", *configPath).Msg("reading config")
			return 1
		}
	}

	m, err := densemap.NewConfig[string, string](cfg,
		densemap.Comparable[string], densemap.StringHash)
	if err != nil {
		l.Error().Err(err).Msg("creating map")
		return 1
	}

	f, err := os.Open(*dataPath)
	if err != nil {
		l.Error().Err(err).Msg("opening data")
		return 1
	}
	defer f.Close()
	if err := load(f, m, &l); err != nil {
		l.Error().Err(err).Str("path", *dataPath).Msg("loading data")
		return 1
	}

	if *remove != "" {
		for _, k := range strings.Split(*remove, ",") {
			if err := m.Remove(k); err != nil {
				l.Warn().Err(err).Msg("remove")
				continue
			}
			l.Debug().Str("key", k).Msg("removed")
		}
	}

	s := m.Stats()
	l.Info().
		Int("len", s.Len).
		Int("buckets", s.Buckets).
		Int("dense", s.Dense).
		Int("free", s.Free).
		Str("footprint", humanize.Bytes(footprint(m))).
		Msg("loaded")
	fmt.Fprintln(stdout, m)
	return 0
}

func readConfig(path string) (densemap.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return densemap.Config{}, err
	}
	defer f.Close()
	return densemap.LoadConfig(f)
}
