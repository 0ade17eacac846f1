// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package densemap

import "github.com/pkg/errors"

var (
	// ErrInvalidKey is returned by Add when the key is the zero value of
	// its type and the map was not configured to accept zero keys.
	ErrInvalidKey = errors.New("invalid key")
	// ErrDuplicateKey is returned by Add when an equal key is already
	// present.
	ErrDuplicateKey = errors.New("key already exists")
	// ErrKeyNotFound is returned by Remove, Get, Set and Update when the
	// key is not present.
	ErrKeyNotFound = errors.New("key not found")
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid config")
)

func keyError(err error, key any) error {
	return errors.Wrapf(err, "key %v", key)
}
