// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wac

import (
	"sort"
	"strconv"
	"strings"
)

// subjectBase is the identifier base used when AddRule is called
// without a subject id: generated ids are "rule1", "rule2", and so on.
const subjectBase = "rule"

// Store is the in-memory form of an access-control document: a
// mutable mapping from subject identifier to [Rule], plus the
// document-level default resource that fills accessTo when a rule is
// added without one.
//
// Subject identifiers are opaque to the algebra. They exist so that
// callers can target specific grants for later deletion; every query
// decomposes into rectangle operations on the rules themselves.
//
// Store mutations rewrite the mapping in place. The store is not safe
// for concurrent use — a caller with concurrent readers and writers
// must impose its own synchronization, for example a single-writer
// lock around the store.
type Store struct {
	rules           map[string]Rule
	defaultResource string
}

// NewStore creates an empty store. defaultResource is the label used
// to fill accessTo when rules are added without one; pass "" for a
// store with no default, in which case every rule must name its
// resources explicitly or fail with ErrMissingAccessTo.
func NewStore(defaultResource string) *Store {
	return &Store{
		rules:           make(map[string]Rule),
		defaultResource: defaultResource,
	}
}

// DefaultResource returns the document-level default resource label,
// or "" when the store has none.
func (s *Store) DefaultResource() string {
	return s.defaultResource
}

// Len returns the number of stored rules.
func (s *Store) Len() int {
	return len(s.rules)
}

// Subjects returns the stored subject identifiers in sorted order.
func (s *Store) Subjects() []string {
	subjects := make([]string, 0, len(s.rules))
	for id := range s.rules {
		subjects = append(subjects, id)
	}
	sort.Strings(subjects)
	return subjects
}

// Rule returns a copy of the rule stored under subjectID. The copy
// shares no state with the store.
func (s *Store) Rule(subjectID string) (Rule, bool) {
	r, ok := s.rules[subjectID]
	if !ok {
		return Rule{}, false
	}
	return r.Clone(), true
}

// Rules returns a copy of the full mapping. Mutating the returned map
// or its rules does not affect the store.
func (s *Store) Rules() map[string]Rule {
	out := make(map[string]Rule, len(s.rules))
	for id, r := range s.rules {
		out[id] = r.Clone()
	}
	return out
}

// resolveAccessTo fills an empty resource set from the store default.
func (s *Store) resolveAccessTo(resources ResourceSet) (ResourceSet, error) {
	if !resources.IsEmpty() {
		return resources.Clone(), nil
	}
	if s.defaultResource == "" {
		return ResourceSet{}, ErrMissingAccessTo
	}
	return NewResourceSet(s.defaultResource)
}

// freshSubjectID derives an unused subject identifier from base: the
// base's trailing digits (or 1 when it has none) are incremented until
// the candidate is unused. The scheme is deterministic — the same
// store contents and base always produce the same identifier.
func (s *Store) freshSubjectID(base string) string {
	prefix := strings.TrimRight(base, "0123456789")
	n := 1
	if digits := base[len(prefix):]; digits != "" {
		if parsed, err := strconv.Atoi(digits); err == nil {
			n = parsed
		}
	}
	for {
		candidate := prefix + strconv.Itoa(n)
		if _, taken := s.rules[candidate]; !taken {
			return candidate
		}
		n++
	}
}

// buildRule normalizes the query/target triple shared by AddRule,
// HasRule, and DeleteRule: clone the operand sets and fill accessTo
// from the store default.
func (s *Store) buildRule(permissions PermissionSet, agents AgentSet, resources ResourceSet) (Rule, error) {
	accessTo, err := s.resolveAccessTo(resources)
	if err != nil {
		return Rule{}, err
	}
	return Rule{
		Permissions: permissions,
		Agents:      agents.Clone(),
		AccessTo:    accessTo,
	}, nil
}

// AddRule stores a grant of the given modes to the given agents. An
// empty resources set is filled from the store default (failing with
// ErrMissingAccessTo when there is none). An empty subjectID is
// assigned via the fresh-identifier scheme from the base "rule". Any
// existing rule under the resulting identifier is overwritten. Returns
// the identifier the rule was stored under.
func (s *Store) AddRule(permissions PermissionSet, agents AgentSet, resources ResourceSet, subjectID string) (string, error) {
	rule, err := s.buildRule(permissions, agents, resources)
	if err != nil {
		return "", err
	}
	if subjectID == "" {
		subjectID = s.freshSubjectID(subjectBase)
	}
	s.rules[subjectID] = rule
	return subjectID, nil
}

// SetRule stores a fully formed rule — passthrough and default
// markers included — under subjectID, overwriting any existing entry.
// This is the insert codecs use when decoding a document. An empty
// accessTo is filled from the store default; an empty subjectID is
// rejected with *InvalidInputError.
func (s *Store) SetRule(subjectID string, rule Rule) error {
	if subjectID == "" {
		return &InvalidInputError{Kind: "subject", Value: subjectID}
	}
	accessTo, err := s.resolveAccessTo(rule.AccessTo)
	if err != nil {
		return err
	}
	stored := rule.Clone()
	stored.AccessTo = accessTo
	s.rules[subjectID] = stored
	return nil
}

// HasRule reports whether granting the given modes to the given
// agents would be redundant: every (mode, agent) pair of the query is
// already covered by some stored rule. No single rule needs to cover
// the query on its own.
//
// The query rectangle is subtracted by each stored rule in turn; the
// working remainder can only shrink or fragment, never grow, so the
// loop terminates after at most one pass over the store. Store order
// does not affect the answer, only how quickly the remainder empties.
func (s *Store) HasRule(permissions PermissionSet, agents AgentSet, resources ResourceSet) (bool, error) {
	query, err := s.buildRule(permissions, agents, resources)
	if err != nil {
		return false, err
	}

	remaining := []Rule{query}
	for _, stored := range s.rules {
		var next []Rule
		for _, fragment := range remaining {
			next = append(next, fragment.Subtract(stored)...)
		}
		remaining = next
		if len(remaining) == 0 {
			return true, nil
		}
	}
	return len(remaining) == 0, nil
}

// DeleteRule removes the given grant from every stored subject. Each
// stored rule is replaced by its remainder after subtracting the
// target rectangle; see DeleteFromSubject for how fragments map back
// to subject identifiers.
func (s *Store) DeleteRule(permissions PermissionSet, agents AgentSet, resources ResourceSet) error {
	target, err := s.buildRule(permissions, agents, resources)
	if err != nil {
		return err
	}
	// Snapshot the ids: DeleteFromSubject rewrites the mapping.
	for _, id := range s.Subjects() {
		s.DeleteFromSubject(id, target)
	}
	return nil
}

// DeleteSubject removes the entire entry for subjectID. Removing an
// unknown identifier is a no-op.
func (s *Store) DeleteSubject(subjectID string) {
	delete(s.rules, subjectID)
}

// DeleteFromSubject subtracts target from the rule stored under
// subjectID. When the subtraction yields exactly one fragment, it
// replaces the stored rule in place and the caller-visible identifier
// stays stable. Any other fragment count (0, or 2 after a split)
// deletes the original entry and reinserts each surviving fragment
// under a fresh identifier derived from the original. Unknown
// identifiers are a no-op.
func (s *Store) DeleteFromSubject(subjectID string, target Rule) {
	stored, ok := s.rules[subjectID]
	if !ok {
		return
	}
	fragments := stored.Subtract(target)
	if len(fragments) == 1 {
		s.rules[subjectID] = fragments[0]
		return
	}
	delete(s.rules, subjectID)
	for _, fragment := range fragments {
		s.rules[s.freshSubjectID(subjectID)] = fragment
	}
}

// DeleteAgents removes every mode for the given agents across the
// whole store: shorthand for DeleteRule(AllPermissions, agents).
func (s *Store) DeleteAgents(agents AgentSet) error {
	return s.DeleteRule(AllPermissions, agents, ResourceSet{})
}

// DeletePermissions removes the given modes from every stored rule,
// scoped to each rule's own agent set. The per-rule scoping matters: a
// store-wide DeleteRule with a broad agent set would subtract agents a
// rule never granted to, and the unaffected-permissions piece of the
// decomposition could then surface mode/agent combinations the store
// never contained.
func (s *Store) DeletePermissions(permissions PermissionSet) {
	for _, id := range s.Subjects() {
		stored, ok := s.rules[id]
		if !ok {
			continue
		}
		target := Rule{
			Permissions: permissions,
			Agents:      stored.Agents.Clone(),
			AccessTo:    stored.AccessTo.Clone(),
		}
		s.DeleteFromSubject(id, target)
	}
}

// PermissionsFor returns the union of modes over every stored rule
// whose agent set includes (is a superset of) the queried agents.
// Fails with ErrEmptyReduction when no rule qualifies — "nothing
// matched" is deliberately distinct from "matched rules granting no
// modes".
func (s *Store) PermissionsFor(agents AgentSet) (PermissionSet, error) {
	var matched []PermissionSet
	for _, r := range s.rules {
		if r.Agents.Includes(agents) {
			matched = append(matched, r.Permissions)
		}
	}
	return UnionPermissions(matched...)
}

// AgentsWith returns the union of agents over every stored rule whose
// mode set includes the queried modes. Same empty-reduction failure
// mode as PermissionsFor.
func (s *Store) AgentsWith(permissions PermissionSet) (AgentSet, error) {
	var matched []AgentSet
	for _, r := range s.rules {
		if r.Permissions.Includes(permissions) {
			matched = append(matched, r.Agents)
		}
	}
	return UnionAgents(matched...)
}

// Minify removes every entry whose rule has no effect, mutating the
// store, and returns a copy of the surviving mapping. Applying Minify
// twice yields the same result as once.
func (s *Store) Minify() map[string]Rule {
	for id, r := range s.rules {
		if r.HasNoEffect() {
			delete(s.rules, id)
		}
	}
	return s.Rules()
}
