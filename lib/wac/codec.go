// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wac

// Codec translates between a serialized access-control document and a
// [Store]. The RDF/Turtle codec lives outside this module; the algebra
// interacts with it purely through this boundary. Concrete codecs for
// this module's own formats are lib/policydef (authoring text) and
// lib/snapshot (binary).
type Codec interface {
	// Decode parses source text into a populated store. Statements
	// the codec cannot map to permission/agent/accessTo concepts are
	// attached to the owning subject's rule as passthrough data;
	// statements with no subject structure at all are returned in
	// unrecognized.
	Decode(text string) (store *Store, unrecognized []Statement, err error)

	// Encode serializes every rule of the store back to source text.
	// Permissions, agents, accessTo, default markers, and passthrough
	// data round-trip without loss. Encode does not prune: callers
	// wanting garbage collection run [Store.Minify] first.
	Encode(store *Store) (text string, err error)
}
