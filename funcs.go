// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package densemap

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	strHeader = "densemap.Map["
	strFooter = "]"
)

// String converts m to a string representation, formatting keys and
// elems with fmt's %v verb. Entries are sorted by their key's
// representation.
func (m *Map[K, V]) String() string {
	return StringFunc(m,
		func(key K) string { return fmt.Sprint(key) },
		func(elem V) string { return fmt.Sprint(elem) },
	)
}

// String converts m to a string representation using K's and V's
// String functions.
func String[K fmt.Stringer, V fmt.Stringer](m *Map[K, V]) string {
	return StringFunc(m,
		func(key K) string { return key.String() },
		func(elem V) string { return elem.String() },
	)
}

type strKE struct {
	k string
	e string
}

// StringFunc converts m to a string representation with the help of
// strK and strE functions to stringify m's keys and elems.
func StringFunc[K, V any](m *Map[K, V],
	strK func(key K) string,
	strE func(elem V) string) string {
	if m.Len() == 0 {
		return strHeader + strFooter
	}
	strs := make([]strKE, 0, m.Len())
	s := 0
	for k, e := range m.All() {
		ke := strKE{k: strK(k), e: strE(e)}
		s += len(ke.k) + len(ke.e)
		strs = append(strs, ke)
	}
	slices.SortFunc(strs, func(a, b strKE) bool { return a.k < b.k })

	var b strings.Builder
	b.Grow(len(strHeader) + len(strFooter) +
		len(strs)*2 - 1 + // space for delimiters
		s) // space for keys and elems
	b.WriteString(strHeader)
	for i, ke := range strs {
		if i != 0 {
			b.WriteByte(' ')
		}
		b.WriteString(ke.k)
		b.WriteByte(':')
		b.WriteString(ke.e)
	}
	b.WriteString(strFooter)
	return b.String()
}

// Equal returns true if the same set of keys and elems are in m1 and
// m2. Elements are compared using ==.
func Equal[K any, V comparable](m1, m2 *Map[K, V]) bool {
	return EqualFunc(m1, m2, func(a, b V) bool { return a == b })
}

// EqualFunc returns true if the same set of keys and elems are in m1
// and m2. Elements are compared using eq.
func EqualFunc[K, V any](m1, m2 *Map[K, V], eq func(V, V) bool) bool {
	if m1.Len() != m2.Len() {
		return false
	}
	for k, e1 := range m1.All() {
		e2, ok := m2.Lookup(k)
		if !ok || !eq(e1, e2) {
			return false
		}
	}
	return true
}
