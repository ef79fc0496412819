// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wac

import (
	"errors"
	"testing"
)

func TestParsePermission(t *testing.T) {
	tests := []struct {
		name string
		want Permission
		ok   bool
	}{
		{"read", Read, true},
		{"write", Write, true},
		{"append", Append, true},
		{"control", Control, true},
		{"READ", 0, false},
		{"delete", 0, false},
		{"", 0, false},
	}
	for _, test := range tests {
		got, err := ParsePermission(test.name)
		if test.ok {
			if err != nil {
				t.Errorf("ParsePermission(%q): unexpected error %v", test.name, err)
			}
			if got != test.want {
				t.Errorf("ParsePermission(%q) = %v, want %v", test.name, got, test.want)
			}
			continue
		}
		if err == nil {
			t.Errorf("ParsePermission(%q): expected error, got %v", test.name, got)
		}
		if !IsInvalidInput(err, "permission") {
			t.Errorf("ParsePermission(%q): error %v is not an invalid-permission error", test.name, err)
		}
	}
}

func TestPermissionSetOperations(t *testing.T) {
	readWrite := NewPermissionSet(Read, Write)
	writeControl := NewPermissionSet(Write, Control)

	if got := readWrite.Union(writeControl); !got.Equal(NewPermissionSet(Read, Write, Control)) {
		t.Errorf("union = %v, want read,write,control", got)
	}
	if got := readWrite.Intersect(writeControl); !got.Equal(NewPermissionSet(Write)) {
		t.Errorf("intersect = %v, want write", got)
	}
	if got := readWrite.Subtract(writeControl); !got.Equal(NewPermissionSet(Read)) {
		t.Errorf("subtract = %v, want read", got)
	}
	if !readWrite.Includes(NewPermissionSet(Read)) {
		t.Error("read,write should include read")
	}
	if readWrite.Includes(writeControl) {
		t.Error("read,write should not include write,control")
	}
	if !AllPermissions.Includes(readWrite.Union(writeControl)) {
		t.Error("AllPermissions should include every combination")
	}
}

func TestPermissionSetDuplicatesCollapse(t *testing.T) {
	s := NewPermissionSet(Read, Read, Write, Read)
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	if !s.Equal(NewPermissionSet(Write, Read)) {
		t.Errorf("set = %v, want read,write regardless of construction order", s)
	}
}

func TestAllPermissionsIsFullEnumeration(t *testing.T) {
	if AllPermissions.Len() != 4 {
		t.Fatalf("AllPermissions has %d modes, want 4", AllPermissions.Len())
	}
	for _, m := range []Permission{Read, Write, Append, Control} {
		if !AllPermissions.Contains(m) {
			t.Errorf("AllPermissions missing %v", m)
		}
	}
}

func TestPermissionSetString(t *testing.T) {
	tests := []struct {
		set  PermissionSet
		want string
	}{
		{NewPermissionSet(), "(none)"},
		{NewPermissionSet(Write), "write"},
		{NewPermissionSet(Control, Read), "read,control"},
		{AllPermissions, "read,write,append,control"},
	}
	for _, test := range tests {
		if got := test.set.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}

func TestUnionPermissionsFold(t *testing.T) {
	got, err := UnionPermissions(
		NewPermissionSet(Read),
		NewPermissionSet(Write),
		NewPermissionSet(Read, Append),
	)
	if err != nil {
		t.Fatalf("UnionPermissions: %v", err)
	}
	if !got.Equal(NewPermissionSet(Read, Write, Append)) {
		t.Errorf("fold = %v, want read,write,append", got)
	}
}

func TestIntersectPermissionsFold(t *testing.T) {
	got, err := IntersectPermissions(
		NewPermissionSet(Read, Write, Control),
		NewPermissionSet(Read, Control),
		NewPermissionSet(Control, Append),
	)
	if err != nil {
		t.Fatalf("IntersectPermissions: %v", err)
	}
	if !got.Equal(NewPermissionSet(Control)) {
		t.Errorf("fold = %v, want control", got)
	}
}

func TestPermissionFoldEmptyReduction(t *testing.T) {
	if _, err := UnionPermissions(); !errors.Is(err, ErrEmptyReduction) {
		t.Errorf("UnionPermissions() error = %v, want ErrEmptyReduction", err)
	}
	if _, err := IntersectPermissions(); !errors.Is(err, ErrEmptyReduction) {
		t.Errorf("IntersectPermissions() error = %v, want ErrEmptyReduction", err)
	}
}

func TestPermissionTextRoundTrip(t *testing.T) {
	for _, m := range []Permission{Read, Write, Append, Control} {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", m, err)
		}
		var back Permission
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != m {
			t.Errorf("round trip of %v produced %v", m, back)
		}
	}
}
