// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wac

import (
	"testing"
)

// resources builds a ResourceSet from labels, failing the test on
// invalid input.
func resources(t *testing.T, labels ...string) ResourceSet {
	t.Helper()
	s, err := NewResourceSet(labels...)
	if err != nil {
		t.Fatalf("NewResourceSet(%v): %v", labels, err)
	}
	return s
}

func TestNewResourceSetRejectsEmptyLabel(t *testing.T) {
	if _, err := NewResourceSet("https://pod.example/docs/", ""); err == nil {
		t.Fatal("expected error for empty label")
	} else if !IsInvalidInput(err, "resource") {
		t.Errorf("error %v is not an invalid-resource error", err)
	}
}

func TestResourceSetOperations(t *testing.T) {
	docs := "https://pod.example/docs/"
	notes := "https://pod.example/notes/"
	inbox := "https://pod.example/inbox/"

	a := resources(t, docs, notes)
	b := resources(t, notes, inbox)

	if got := a.Union(b); !got.Equal(resources(t, docs, notes, inbox)) {
		t.Errorf("union = %v", got)
	}
	if got := a.Intersect(b); !got.Equal(resources(t, notes)) {
		t.Errorf("intersect = %v, want notes", got)
	}
	if got := a.Subtract(b); !got.Equal(resources(t, docs)) {
		t.Errorf("subtract = %v, want docs", got)
	}
	if !a.Includes(resources(t, docs)) {
		t.Error("a should include docs")
	}
	if a.Includes(b) {
		t.Error("a should not include b")
	}
}

func TestResourceSetLabelsSorted(t *testing.T) {
	s := resources(t, "https://pod.example/c", "https://pod.example/a", "https://pod.example/b")
	labels := s.Labels()
	want := []string{"https://pod.example/a", "https://pod.example/b", "https://pod.example/c"}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("Labels()[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestResourceSetZeroValue(t *testing.T) {
	var empty ResourceSet
	if !empty.IsEmpty() {
		t.Error("zero-value ResourceSet should be empty")
	}
	docs := resources(t, "https://pod.example/docs/")
	if got := empty.Union(docs); !got.Equal(docs) {
		t.Errorf("empty ∪ docs = %v, want docs", got)
	}
	if got := docs.Intersect(empty); !got.IsEmpty() {
		t.Errorf("docs ∩ empty = %v, want empty", got)
	}
}
