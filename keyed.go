package schemadiff

import (
	"fmt"
	"sort"
	"strings"
)

// keyedComparison compares two collections of records matched by identity.
// Records with the same identity are checked with equal, and value renders
// the record for the `changed` entries of the diff. key is the display form
// of the identity used in the diff.
type keyedComparison[T any] struct {
	identity func(T) string
	key      func(T) string
	equal    func(a, b T) bool
	value    func(T) string
}

// keyedSet holds records indexed by identity. order lists each identity
// once, at the position it was first seen, and keys maps it to its display
// key.
type keyedSet[T any] struct {
	order []string
	items map[string]T
	keys  map[string]string
}

// newKeyedSet indexes records by identity. When two records share an
// identity the last one wins; see Snapshot.Validate for detecting that case.
func newKeyedSet[T any](records []T, identity, key func(T) string) keyedSet[T] {
	s := keyedSet[T]{
		order: make([]string, 0, len(records)),
		items: make(map[string]T, len(records)),
		keys:  make(map[string]string, len(records)),
	}
	for _, r := range records {
		id := identity(r)
		if _, ok := s.items[id]; !ok {
			s.order = append(s.order, id)
		}
		s.items[id] = r
		s.keys[id] = key(r)
	}
	return s
}

func (s keyedSet[T]) has(id string) bool {
	_, ok := s.items[id]
	return ok
}

// missingFrom returns the sorted display keys of s that are not in other.
func (s keyedSet[T]) missingFrom(other keyedSet[T]) []string {
	keys := make([]string, 0)
	for _, id := range s.order {
		if !other.has(id) {
			keys = append(keys, s.keys[id])
		}
	}
	sort.Strings(keys)
	return keys
}

// sharedWith returns the sorted display keys present in both s and other.
func (s keyedSet[T]) sharedWith(other keyedSet[T]) []string {
	keys := make([]string, 0)
	for _, id := range s.order {
		if other.has(id) {
			keys = append(keys, s.keys[id])
		}
	}
	sort.Strings(keys)
	return keys
}

func (k keyedComparison[T]) compare(a, b []T) ObjectDiff {
	setA := newKeyedSet(a, k.identity, k.key)
	setB := newKeyedSet(b, k.identity, k.key)

	d := ObjectDiff{
		OnlyInA: setA.missingFrom(setB),
		OnlyInB: setB.missingFrom(setA),
		Changed: make([]Change, 0),
	}

	// changed entries follow the order identities first appear in A
	for _, id := range setA.order {
		recB, ok := setB.items[id]
		if !ok {
			continue
		}
		recA := setA.items[id]
		if k.equal(recA, recB) {
			continue
		}
		d.Changed = append(d.Changed, Change{
			Key:    setA.keys[id],
			ValueA: k.value(recA),
			ValueB: k.value(recB),
		})
	}

	return d
}

// Normalize returns the canonical string form of a metadata value used when
// comparing column fields. nil values (including typed nil pointers) become
// the empty string, everything else is formatted and trimmed.
func Normalize(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case *string:
		if val == nil {
			return ""
		}
		return strings.TrimSpace(*val)
	case *int:
		if val == nil {
			return ""
		}
		return fmt.Sprintf("%d", *val)
	case *bool:
		if val == nil {
			return ""
		}
		return fmt.Sprintf("%t", *val)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", val))
	}
}

func optionalEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func optionalString(s *string) string {
	if s == nil {
		return "NULL"
	}
	return *s
}
