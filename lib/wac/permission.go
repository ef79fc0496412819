// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wac

import (
	"fmt"
	"strings"
)

// Permission is one Web Access Control access mode. The vocabulary is
// closed: exactly Read, Write, Append, and Control exist. Each mode is
// a distinct bit so that a [PermissionSet] is a plain bitmask.
type Permission uint8

const (
	// Read covers retrieving a resource's representation.
	Read Permission = 1 << iota

	// Write covers replacing or deleting a resource.
	Write

	// Append covers adding to a resource without modifying existing
	// content. Write does not imply Append in the algebra — they are
	// independent set members, mirroring the source vocabulary.
	Append

	// Control covers modifying the access-control document itself.
	Control
)

// allModes lists every mode in canonical order. Iteration over the
// vocabulary (element enumeration, String output) follows this order.
var allModes = [...]Permission{Read, Write, Append, Control}

// modeNames maps each mode to its canonical lowercase name.
var modeNames = map[Permission]string{
	Read:    "read",
	Write:   "write",
	Append:  "append",
	Control: "control",
}

// String returns the canonical lowercase name of the mode.
func (p Permission) String() string {
	if name, ok := modeNames[p]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Permission) MarshalText() ([]byte, error) {
	name, ok := modeNames[p]
	if !ok {
		return nil, &InvalidInputError{Kind: "permission", Value: fmt.Sprintf("%d", uint8(p))}
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Permission) UnmarshalText(data []byte) error {
	parsed, err := ParsePermission(string(data))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePermission parses a canonical mode name ("read", "write",
// "append", "control"). Returns an *InvalidInputError for anything
// outside the vocabulary.
func ParsePermission(name string) (Permission, error) {
	switch name {
	case "read":
		return Read, nil
	case "write":
		return Write, nil
	case "append":
		return Append, nil
	case "control":
		return Control, nil
	default:
		return 0, &InvalidInputError{Kind: "permission", Value: name}
	}
}

// PermissionSet is a set of access modes. The zero value is the empty
// set. PermissionSet is a value type: every operation returns a new
// set and no operation mutates its receiver or operands.
type PermissionSet uint8

// AllPermissions is the set containing every mode in the vocabulary.
// It is exactly the full enumeration — there is no wildcard sentinel.
const AllPermissions = PermissionSet(uint8(Read) | uint8(Write) | uint8(Append) | uint8(Control))

// NewPermissionSet builds a set from the given modes. Duplicates
// collapse by construction.
func NewPermissionSet(modes ...Permission) PermissionSet {
	var s PermissionSet
	for _, m := range modes {
		s |= PermissionSet(m)
	}
	return s
}

// ParsePermissionSet parses mode names into a set. Returns an
// *InvalidInputError on the first name outside the vocabulary.
func ParsePermissionSet(names ...string) (PermissionSet, error) {
	var s PermissionSet
	for _, name := range names {
		mode, err := ParsePermission(name)
		if err != nil {
			return 0, err
		}
		s |= PermissionSet(mode)
	}
	return s, nil
}

// Union returns the set of modes in either operand.
func (s PermissionSet) Union(other PermissionSet) PermissionSet {
	return s | other
}

// Intersect returns the set of modes in both operands.
func (s PermissionSet) Intersect(other PermissionSet) PermissionSet {
	return s & other
}

// Subtract returns the modes of s that are not in other.
func (s PermissionSet) Subtract(other PermissionSet) PermissionSet {
	return s &^ other
}

// Includes reports whether every mode of other is in s.
func (s PermissionSet) Includes(other PermissionSet) bool {
	return s&other == other
}

// Contains reports whether the single mode p is in s.
func (s PermissionSet) Contains(p Permission) bool {
	return s&PermissionSet(p) != 0
}

// IsEmpty reports whether the set has no modes.
func (s PermissionSet) IsEmpty() bool {
	return s == 0
}

// Equal reports whether both sets contain exactly the same modes.
func (s PermissionSet) Equal(other PermissionSet) bool {
	return s == other
}

// Len returns the number of modes in the set.
func (s PermissionSet) Len() int {
	count := 0
	for _, m := range allModes {
		if s.Contains(m) {
			count++
		}
	}
	return count
}

// Permissions returns the modes of the set in canonical order.
func (s PermissionSet) Permissions() []Permission {
	modes := make([]Permission, 0, 4)
	for _, m := range allModes {
		if s.Contains(m) {
			modes = append(modes, m)
		}
	}
	return modes
}

// Names returns the canonical names of the set's modes in canonical
// order.
func (s PermissionSet) Names() []string {
	names := make([]string, 0, 4)
	for _, m := range s.Permissions() {
		names = append(names, m.String())
	}
	return names
}

// String returns the comma-joined canonical names, or "(none)" for
// the empty set.
func (s PermissionSet) String() string {
	if s.IsEmpty() {
		return "(none)"
	}
	return strings.Join(s.Names(), ",")
}

// UnionPermissions folds Union over the given sets. Folding over zero
// sets fails with ErrEmptyReduction: there is no identity element to
// distinguish "union of nothing" from "the empty set someone granted".
func UnionPermissions(sets ...PermissionSet) (PermissionSet, error) {
	if len(sets) == 0 {
		return 0, ErrEmptyReduction
	}
	result := sets[0]
	for _, s := range sets[1:] {
		result = result.Union(s)
	}
	return result, nil
}

// IntersectPermissions folds Intersect over the given sets. Folding
// over zero sets fails with ErrEmptyReduction.
func IntersectPermissions(sets ...PermissionSet) (PermissionSet, error) {
	if len(sets) == 0 {
		return 0, ErrEmptyReduction
	}
	result := sets[0]
	for _, s := range sets[1:] {
		result = result.Intersect(s)
	}
	return result, nil
}
