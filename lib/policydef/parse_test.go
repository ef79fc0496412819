// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package policydef

import (
	"strings"
	"testing"

	"github.com/bureau-foundation/webacl/lib/wac"
)

const jsoncDocument = `{
	// The docs container and everything resolved against it.
	"access_to": "https://pod.example/docs/",
	"rules": {
		"owner": {
			"permissions": ["read", "write", "control"],
			"agents": ["webid:https://alice.example/card#me"],
			"default": true,
		},
		"team": {
			"permissions": ["read"],
			/* group membership is resolved by the enforcement layer */
			"agents": ["group:https://team.example/list#staff", "authenticated"],
		},
	},
}
`

const yamlDocument = `
access_to: https://pod.example/docs/
rules:
  owner:
    permissions: [read, write, control]
    agents:
      - webid:https://alice.example/card#me
    default: true
  team:
    permissions: [read]
    agents:
      - group:https://team.example/list#staff
      - authenticated
`

// requireOwnerTeamStore asserts the store shape both fixture
// documents describe.
func requireOwnerTeamStore(t *testing.T, store *wac.Store) {
	t.Helper()

	if store.DefaultResource() != "https://pod.example/docs/" {
		t.Errorf("default resource = %q", store.DefaultResource())
	}
	if store.Len() != 2 {
		t.Fatalf("store has %d rules, want 2", store.Len())
	}

	owner, ok := store.Rule("owner")
	if !ok {
		t.Fatal("owner rule missing")
	}
	if !owner.Permissions.Equal(wac.NewPermissionSet(wac.Read, wac.Write, wac.Control)) {
		t.Errorf("owner permissions = %v", owner.Permissions)
	}
	if !owner.Agents.Contains(wac.WebID("https://alice.example/card#me")) {
		t.Errorf("owner agents = %v", owner.Agents)
	}
	if owner.Default != wac.FlagTrue {
		t.Errorf("owner Default = %v, want true", owner.Default)
	}
	if owner.DefaultForNew != wac.FlagUnset {
		t.Errorf("owner DefaultForNew = %v, want unset", owner.DefaultForNew)
	}
	// The document default fills the rule's accessTo.
	if !owner.AccessTo.Contains("https://pod.example/docs/") {
		t.Errorf("owner accessTo = %v", owner.AccessTo)
	}

	team, ok := store.Rule("team")
	if !ok {
		t.Fatal("team rule missing")
	}
	if !team.Agents.Equal(wac.NewAgentSet(
		wac.Authenticated,
		wac.Group("https://team.example/list#staff"),
	)) {
		t.Errorf("team agents = %v", team.Agents)
	}
}

func TestParseJSONC(t *testing.T) {
	store, err := Parse([]byte(jsoncDocument))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	requireOwnerTeamStore(t, store)
}

func TestParseYAML(t *testing.T) {
	store, err := ParseYAML([]byte(yamlDocument))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	requireOwnerTeamStore(t, store)
}

func TestParseRejectsUnknownPermission(t *testing.T) {
	_, err := Parse([]byte(`{
		"access_to": "https://pod.example/docs/",
		"rules": {"bad": {"permissions": ["delete"], "agents": ["public"]}}
	}`))
	if err == nil {
		t.Fatal("expected error for unknown permission")
	}
	if !strings.Contains(err.Error(), `"bad"`) {
		t.Errorf("error %q does not name the offending subject", err)
	}
	if !wac.IsInvalidInput(err, "permission") {
		t.Errorf("error %v is not an invalid-permission error", err)
	}
}

func TestParseRejectsMalformedAgent(t *testing.T) {
	_, err := Parse([]byte(`{
		"access_to": "https://pod.example/docs/",
		"rules": {"bad": {"permissions": ["read"], "agents": ["somebody"]}}
	}`))
	if !wac.IsInvalidInput(err, "agent") {
		t.Errorf("error = %v, want invalid-agent error", err)
	}
}

func TestParseMissingAccessTo(t *testing.T) {
	// No document default and no per-rule resources: the rule cannot
	// be scoped.
	_, err := Parse([]byte(`{
		"rules": {"r": {"permissions": ["read"], "agents": ["public"]}}
	}`))
	if err == nil {
		t.Fatal("expected ErrMissingAccessTo")
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	store, err := Parse([]byte(jsoncDocument))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// Attach passthrough data to verify it rides along.
	opaque := wac.Rule{Passthrough: []wac.Statement{"ex:s ex:p ex:o ."}}
	if err := store.SetRule("opaque", opaque); err != nil {
		t.Fatalf("SetRule: %v", err)
	}

	formatted, err := Format(store)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	back, err := Parse(formatted)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	if back.Len() != store.Len() {
		t.Fatalf("round trip changed rule count: %d → %d", store.Len(), back.Len())
	}
	for subject, original := range store.Rules() {
		reparsed, ok := back.Rule(subject)
		if !ok {
			t.Errorf("round trip dropped %q", subject)
			continue
		}
		if !reparsed.Equal(original) {
			t.Errorf("round trip changed %q:\n  before %+v\n  after  %+v", subject, original, reparsed)
		}
	}
}

func TestFormatDeterministic(t *testing.T) {
	store, err := ParseYAML([]byte(yamlDocument))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	first, err := Format(store)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	second, err := Format(store)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if string(first) != string(second) {
		t.Error("formatting the same store twice produced different bytes")
	}
}
