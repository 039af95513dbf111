// Package view provides cache identity for query results: hierarchical
// keys addressing each fetched view, pure constructors per operation, and
// the declarative table of which key prefixes each mutation invalidates.
package view

import (
	"slices"
	"strings"
)

// Key is an ordered, hierarchical identifier for one cached query result.
// Keys form a prefix hierarchy: invalidating a shorter key invalidates
// every key extending it. A Key is an immutable value; all methods return
// copies.
type Key struct {
	segments []string
}

// NewKey builds a key from raw segments.
func NewKey(segments ...string) Key {
	return Key{segments: slices.Clone(segments)}
}

// Segments returns a copy of the key's segments.
func (k Key) Segments() []string {
	return slices.Clone(k.segments)
}

// Len returns the number of segments.
func (k Key) Len() int { return len(k.segments) }

// IsZero reports whether the key has no segments.
func (k Key) IsZero() bool { return len(k.segments) == 0 }

// Append returns a new key extending k with additional segments.
func (k Key) Append(segments ...string) Key {
	out := make([]string, 0, len(k.segments)+len(segments))
	out = append(out, k.segments...)
	out = append(out, segments...)
	return Key{segments: out}
}

// Equal reports whether two keys are segment-wise identical.
func (k Key) Equal(other Key) bool {
	return slices.Equal(k.segments, other.segments)
}

// HasPrefix reports whether prefix's segments are a leading subsequence
// of k's. Every key is a prefix of itself; the zero key is a prefix of
// everything.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix.segments) > len(k.segments) {
		return false
	}
	return slices.Equal(k.segments[:len(prefix.segments)], prefix.segments)
}

// String joins the segments with "/" for logging and map addressing.
// Filter qualifiers are query-encoded and caller-supplied IDs are
// path-escaped before they become segments, so the separator cannot
// appear inside a segment.
func (k Key) String() string {
	return strings.Join(k.segments, "/")
}
