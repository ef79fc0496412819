// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wac

import (
	"errors"
	"fmt"
)

// InvalidInputError reports a value outside its domain: an unknown
// access mode name, a malformed agent descriptor, or an empty
// resource label. Callers can use errors.As to extract the structured
// information:
//
//	var invalidErr *wac.InvalidInputError
//	if errors.As(err, &invalidErr) {
//	    log.Printf("bad %s: %q", invalidErr.Kind, invalidErr.Value)
//	}
type InvalidInputError struct {
	// Kind names the domain the value failed to fit: "permission",
	// "agent", "resource", or "subject".
	Kind string

	// Value is the offending input, verbatim.
	Value string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("wac: invalid %s %q", e.Kind, e.Value)
}

// IsInvalidInput checks whether err is an *InvalidInputError for the
// given kind.
func IsInvalidInput(err error, kind string) bool {
	var invalidErr *InvalidInputError
	if errors.As(err, &invalidErr) {
		return invalidErr.Kind == kind
	}
	return false
}

// ErrMissingAccessTo is returned when a rule is built without an
// explicit accessTo and the store has no default resource to fill it
// from.
var ErrMissingAccessTo = errors.New("wac: no accessTo given and the store has no default resource")

// ErrEmptyReduction is returned when a set fold or an aggregate query
// has zero contributing operands. There is no identity element to
// start from, so the result would be meaningless. Callers should treat
// this as "no data" rather than a fault: an empty store answering
// [Store.PermissionsFor] is a normal condition, not a bug.
var ErrEmptyReduction = errors.New("wac: reduction over zero operands")
