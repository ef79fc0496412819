// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wac

import (
	"sort"
	"strings"
)

// ResourceSet is a set of accessTo resource labels. Labels are opaque
// to the algebra — typically IRIs, but nothing here parses them. The
// zero value is the empty set. Like the other set types, ResourceSet
// has value semantics: operations return new sets and never mutate
// their operands.
type ResourceSet struct {
	members map[string]struct{}
}

// NewResourceSet builds a set from the given labels. The empty label
// is outside the accepted shape and fails with *InvalidInputError.
func NewResourceSet(labels ...string) (ResourceSet, error) {
	if len(labels) == 0 {
		return ResourceSet{}, nil
	}
	members := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if label == "" {
			return ResourceSet{}, &InvalidInputError{Kind: "resource", Value: label}
		}
		members[label] = struct{}{}
	}
	return ResourceSet{members: members}, nil
}

// Union returns the set of labels in either operand.
func (s ResourceSet) Union(other ResourceSet) ResourceSet {
	if s.IsEmpty() {
		return other.Clone()
	}
	if other.IsEmpty() {
		return s.Clone()
	}
	members := make(map[string]struct{}, len(s.members)+len(other.members))
	for label := range s.members {
		members[label] = struct{}{}
	}
	for label := range other.members {
		members[label] = struct{}{}
	}
	return ResourceSet{members: members}
}

// Intersect returns the set of labels in both operands.
func (s ResourceSet) Intersect(other ResourceSet) ResourceSet {
	if s.IsEmpty() || other.IsEmpty() {
		return ResourceSet{}
	}
	members := make(map[string]struct{})
	for label := range s.members {
		if _, ok := other.members[label]; ok {
			members[label] = struct{}{}
		}
	}
	if len(members) == 0 {
		return ResourceSet{}
	}
	return ResourceSet{members: members}
}

// Subtract returns the labels of s that are not in other.
func (s ResourceSet) Subtract(other ResourceSet) ResourceSet {
	if s.IsEmpty() {
		return ResourceSet{}
	}
	if other.IsEmpty() {
		return s.Clone()
	}
	members := make(map[string]struct{})
	for label := range s.members {
		if _, ok := other.members[label]; !ok {
			members[label] = struct{}{}
		}
	}
	if len(members) == 0 {
		return ResourceSet{}
	}
	return ResourceSet{members: members}
}

// Includes reports whether every label of other is in s.
func (s ResourceSet) Includes(other ResourceSet) bool {
	for label := range other.members {
		if _, ok := s.members[label]; !ok {
			return false
		}
	}
	return true
}

// Contains reports whether the single label is in s.
func (s ResourceSet) Contains(label string) bool {
	_, ok := s.members[label]
	return ok
}

// IsEmpty reports whether the set has no labels.
func (s ResourceSet) IsEmpty() bool {
	return len(s.members) == 0
}

// Equal reports whether both sets contain exactly the same labels.
func (s ResourceSet) Equal(other ResourceSet) bool {
	if len(s.members) != len(other.members) {
		return false
	}
	for label := range s.members {
		if _, ok := other.members[label]; !ok {
			return false
		}
	}
	return true
}

// Len returns the number of labels in the set.
func (s ResourceSet) Len() int {
	return len(s.members)
}

// Clone returns an independent copy of the set.
func (s ResourceSet) Clone() ResourceSet {
	if s.IsEmpty() {
		return ResourceSet{}
	}
	members := make(map[string]struct{}, len(s.members))
	for label := range s.members {
		members[label] = struct{}{}
	}
	return ResourceSet{members: members}
}

// Labels returns the labels in sorted order.
func (s ResourceSet) Labels() []string {
	labels := make([]string, 0, len(s.members))
	for label := range s.members {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// String returns the comma-joined labels in sorted order, or "(none)"
// for the empty set.
func (s ResourceSet) String() string {
	if s.IsEmpty() {
		return "(none)"
	}
	return strings.Join(s.Labels(), ",")
}
