// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package policydef

import (
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/webacl/lib/wac"
)

// Format serializes a store to canonical indented JSON. Every stored
// rule is emitted, effective or not — callers wanting garbage
// collection run store.Minify first.
func Format(store *wac.Store) ([]byte, error) {
	doc := FromStore(store)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("formatting policy document: %w", err)
	}
	return append(data, '\n'), nil
}

// FromStore converts a store back into its authored document form.
// Set-valued fields come out in the algebra's deterministic order
// (canonical mode order, sorted agents and labels), so formatting the
// same store twice yields identical bytes.
func FromStore(store *wac.Store) *Document {
	doc := &Document{
		AccessTo: store.DefaultResource(),
		Rules:    make(map[string]RuleDef, store.Len()),
	}
	for subject, rule := range store.Rules() {
		doc.Rules[subject] = fromRule(rule)
	}
	return doc
}

// fromRule converts one algebra rule into its authored form.
func fromRule(rule wac.Rule) RuleDef {
	def := RuleDef{
		Permissions:   rule.Permissions.Names(),
		AccessTo:      rule.AccessTo.Labels(),
		Default:       optionalBool(rule.Default),
		DefaultForNew: optionalBool(rule.DefaultForNew),
	}
	for _, a := range rule.Agents.Agents() {
		def.Agents = append(def.Agents, a.String())
	}
	for _, st := range rule.Passthrough {
		def.Passthrough = append(def.Passthrough, string(st))
	}
	return def
}

// optionalBool maps the tri-state flag back onto an authored optional
// bool: unset disappears from the output entirely.
func optionalBool(f wac.Flag) *bool {
	switch f {
	case wac.FlagTrue:
		v := true
		return &v
	case wac.FlagFalse:
		v := false
		return &v
	default:
		return nil
	}
}
