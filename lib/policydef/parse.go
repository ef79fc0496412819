// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package policydef

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/webacl/lib/wac"
)

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result and builds a store from it. The input format
// is the same JSON emitted by [Format], extended with // line
// comments, /* block comments */, and trailing commas.
func Parse(data []byte) (*wac.Store, error) {
	stripped := jsonc.ToJSON(data)

	var doc Document
	if err := json.Unmarshal(stripped, &doc); err != nil {
		return nil, fmt.Errorf("parsing policy document: %w", err)
	}

	return doc.Store()
}

// ParseYAML unmarshals a YAML policy document and builds a store from
// it. Same document shape as [Parse], for operator-written files.
func ParseYAML(data []byte) (*wac.Store, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML policy document: %w", err)
	}

	return doc.Store()
}

// Store converts the authored document into a wac.Store. Every rule
// definition is validated: unknown mode names, malformed agent
// descriptors, and empty resource labels are reported with the
// offending subject identifier.
func (d *Document) Store() (*wac.Store, error) {
	store := wac.NewStore(d.AccessTo)

	for subject, def := range d.Rules {
		rule, err := def.rule()
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", subject, err)
		}
		if err := store.SetRule(subject, rule); err != nil {
			return nil, fmt.Errorf("rule %q: %w", subject, err)
		}
	}

	return store, nil
}

// rule converts one definition into its algebra form.
func (def RuleDef) rule() (wac.Rule, error) {
	permissions, err := wac.ParsePermissionSet(def.Permissions...)
	if err != nil {
		return wac.Rule{}, err
	}

	agents, err := wac.ParseAgentSet(def.Agents...)
	if err != nil {
		return wac.Rule{}, err
	}

	accessTo, err := wac.NewResourceSet(def.AccessTo...)
	if err != nil {
		return wac.Rule{}, err
	}

	rule := wac.Rule{
		Permissions:   permissions,
		Agents:        agents,
		AccessTo:      accessTo,
		Default:       flagOf(def.Default),
		DefaultForNew: flagOf(def.DefaultForNew),
	}
	for _, st := range def.Passthrough {
		rule.Passthrough = append(rule.Passthrough, wac.Statement(st))
	}
	return rule, nil
}

// flagOf maps an authored optional bool onto the tri-state flag.
func flagOf(v *bool) wac.Flag {
	if v == nil {
		return wac.FlagUnset
	}
	return wac.FlagOf(*v)
}
