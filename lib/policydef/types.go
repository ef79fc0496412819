// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package policydef

// Document is the authored form of an access-control document.
type Document struct {
	// AccessTo is the document-level default resource label. Rules
	// that name no resources of their own apply to it. Optional when
	// every rule carries explicit resources.
	AccessTo string `json:"access_to,omitempty" yaml:"access_to,omitempty"`

	// Rules maps subject identifiers to rule definitions. Subject
	// identifiers are opaque handles used to target grants for later
	// deletion.
	Rules map[string]RuleDef `json:"rules" yaml:"rules"`
}

// RuleDef is the authored form of one grant.
type RuleDef struct {
	// Permissions lists access mode names: "read", "write", "append",
	// "control". Anything else is rejected at parse time.
	Permissions []string `json:"permissions,omitempty" yaml:"permissions,omitempty"`

	// Agents lists agent descriptors in text form: "public",
	// "authenticated", "webid:<iri>", "group:<iri>", "origin:<origin>".
	Agents []string `json:"agents,omitempty" yaml:"agents,omitempty"`

	// AccessTo lists the resource labels this rule applies to. Empty
	// means the document-level default.
	AccessTo []string `json:"access_to,omitempty" yaml:"access_to,omitempty"`

	// Default is the acl:default marker. Omitted means unset — the
	// distinction matters because rule intersection collapses
	// disagreeing markers to unset.
	Default *bool `json:"default,omitempty" yaml:"default,omitempty"`

	// DefaultForNew is the legacy acl:defaultForNew marker.
	DefaultForNew *bool `json:"default_for_new,omitempty" yaml:"default_for_new,omitempty"`

	// Passthrough holds serialized statements the algebra does not
	// model, in source order. They ride along uninterpreted and are
	// emitted back verbatim by Format.
	Passthrough []string `json:"passthrough,omitempty" yaml:"passthrough,omitempty"`
}
