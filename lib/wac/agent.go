// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wac

import (
	"fmt"
	"sort"
	"strings"
)

// AgentClass is the category of an agent descriptor.
type AgentClass uint8

const (
	// ClassPublic matches everyone, authenticated or not. A set
	// containing the public agent is the "everyone" grant.
	ClassPublic AgentClass = iota + 1

	// ClassAuthenticated matches any authenticated identity. This is
	// an independent set member: public does not imply authenticated
	// and no subset relation between them exists in the algebra.
	ClassAuthenticated

	// ClassWebID identifies a single agent by WebID.
	ClassWebID

	// ClassGroup identifies the members of a group document.
	ClassGroup

	// ClassOrigin identifies requests from a web origin.
	ClassOrigin
)

// String returns the canonical lowercase class name.
func (c AgentClass) String() string {
	switch c {
	case ClassPublic:
		return "public"
	case ClassAuthenticated:
		return "authenticated"
	case ClassWebID:
		return "webid"
	case ClassGroup:
		return "group"
	case ClassOrigin:
		return "origin"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Agent is one agent descriptor: a class plus, for the parameterized
// classes, an identifier. Agent is a comparable value type — two
// descriptors are the same set member exactly when class and
// identifier match. The zero value is invalid.
type Agent struct {
	class AgentClass
	id    string
}

// Public is the agent descriptor matching everyone.
var Public = Agent{class: ClassPublic}

// Authenticated is the agent descriptor matching any authenticated
// identity.
var Authenticated = Agent{class: ClassAuthenticated}

// WebID returns the descriptor for a single agent identified by
// WebID.
func WebID(iri string) Agent {
	return Agent{class: ClassWebID, id: iri}
}

// Group returns the descriptor for the members of a group document.
func Group(iri string) Agent {
	return Agent{class: ClassGroup, id: iri}
}

// Origin returns the descriptor for requests from a web origin.
func Origin(origin string) Agent {
	return Agent{class: ClassOrigin, id: origin}
}

// Class returns the agent's category.
func (a Agent) Class() AgentClass {
	return a.class
}

// ID returns the identifier for webid/group/origin agents, and ""
// for public/authenticated.
func (a Agent) ID() string {
	return a.id
}

// IsZero reports whether a is the invalid zero descriptor.
func (a Agent) IsZero() bool {
	return a.class == 0
}

// String returns the text form: "public", "authenticated", or
// "<class>:<id>" for the parameterized classes.
func (a Agent) String() string {
	if a.id == "" {
		return a.class.String()
	}
	return a.class.String() + ":" + a.id
}

// MarshalText implements encoding.TextMarshaler.
func (a Agent) MarshalText() ([]byte, error) {
	if a.IsZero() {
		return nil, &InvalidInputError{Kind: "agent", Value: ""}
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Agent) UnmarshalText(data []byte) error {
	parsed, err := ParseAgent(string(data))
	if err != nil {
		return fmt.Errorf("unmarshal Agent: %w", err)
	}
	*a = parsed
	return nil
}

// ParseAgent parses the text form produced by [Agent.String]. The
// parameterized classes require a non-empty identifier; any class
// token outside the vocabulary fails with *InvalidInputError.
func ParseAgent(text string) (Agent, error) {
	switch text {
	case "public":
		return Public, nil
	case "authenticated":
		return Authenticated, nil
	}
	class, id, found := strings.Cut(text, ":")
	if !found || id == "" {
		return Agent{}, &InvalidInputError{Kind: "agent", Value: text}
	}
	switch class {
	case "webid":
		return WebID(id), nil
	case "group":
		return Group(id), nil
	case "origin":
		return Origin(id), nil
	default:
		return Agent{}, &InvalidInputError{Kind: "agent", Value: text}
	}
}

// AgentSet is a set of agent descriptors. The zero value is the empty
// set and is ready to use. AgentSet has value semantics: every
// operation returns a new set and no operation mutates its receiver
// or operands, so sets can be shared freely across rules without
// aliasing surprises.
type AgentSet struct {
	members map[Agent]struct{}
}

// NewAgentSet builds a set from the given descriptors. Duplicates
// collapse by construction; zero-value descriptors are ignored.
func NewAgentSet(agents ...Agent) AgentSet {
	if len(agents) == 0 {
		return AgentSet{}
	}
	members := make(map[Agent]struct{}, len(agents))
	for _, a := range agents {
		if a.IsZero() {
			continue
		}
		members[a] = struct{}{}
	}
	return AgentSet{members: members}
}

// ParseAgentSet parses descriptor text forms into a set.
func ParseAgentSet(texts ...string) (AgentSet, error) {
	agents := make([]Agent, 0, len(texts))
	for _, text := range texts {
		a, err := ParseAgent(text)
		if err != nil {
			return AgentSet{}, err
		}
		agents = append(agents, a)
	}
	return NewAgentSet(agents...), nil
}

// Union returns the set of descriptors in either operand.
func (s AgentSet) Union(other AgentSet) AgentSet {
	if s.IsEmpty() {
		return other.Clone()
	}
	if other.IsEmpty() {
		return s.Clone()
	}
	members := make(map[Agent]struct{}, len(s.members)+len(other.members))
	for a := range s.members {
		members[a] = struct{}{}
	}
	for a := range other.members {
		members[a] = struct{}{}
	}
	return AgentSet{members: members}
}

// Intersect returns the set of descriptors in both operands.
func (s AgentSet) Intersect(other AgentSet) AgentSet {
	if s.IsEmpty() || other.IsEmpty() {
		return AgentSet{}
	}
	members := make(map[Agent]struct{})
	for a := range s.members {
		if _, ok := other.members[a]; ok {
			members[a] = struct{}{}
		}
	}
	if len(members) == 0 {
		return AgentSet{}
	}
	return AgentSet{members: members}
}

// Subtract returns the descriptors of s that are not in other.
func (s AgentSet) Subtract(other AgentSet) AgentSet {
	if s.IsEmpty() {
		return AgentSet{}
	}
	if other.IsEmpty() {
		return s.Clone()
	}
	members := make(map[Agent]struct{})
	for a := range s.members {
		if _, ok := other.members[a]; !ok {
			members[a] = struct{}{}
		}
	}
	if len(members) == 0 {
		return AgentSet{}
	}
	return AgentSet{members: members}
}

// Includes reports whether every descriptor of other is in s. This is
// a literal subset check: a set containing only the public agent does
// NOT include a webid descriptor, even though the public agent matches
// everyone at enforcement time. The algebra reasons about descriptors,
// not about the identities they match.
func (s AgentSet) Includes(other AgentSet) bool {
	for a := range other.members {
		if _, ok := s.members[a]; !ok {
			return false
		}
	}
	return true
}

// Contains reports whether the single descriptor a is in s.
func (s AgentSet) Contains(a Agent) bool {
	_, ok := s.members[a]
	return ok
}

// IsEmpty reports whether the set has no descriptors.
func (s AgentSet) IsEmpty() bool {
	return len(s.members) == 0
}

// Equal reports whether both sets contain exactly the same
// descriptors.
func (s AgentSet) Equal(other AgentSet) bool {
	if len(s.members) != len(other.members) {
		return false
	}
	for a := range s.members {
		if _, ok := other.members[a]; !ok {
			return false
		}
	}
	return true
}

// Len returns the number of descriptors in the set.
func (s AgentSet) Len() int {
	return len(s.members)
}

// Clone returns an independent copy of the set.
func (s AgentSet) Clone() AgentSet {
	if s.IsEmpty() {
		return AgentSet{}
	}
	members := make(map[Agent]struct{}, len(s.members))
	for a := range s.members {
		members[a] = struct{}{}
	}
	return AgentSet{members: members}
}

// Agents returns the descriptors sorted by class, then identifier.
// The order is deterministic so callers can rely on it for output and
// serialization.
func (s AgentSet) Agents() []Agent {
	agents := make([]Agent, 0, len(s.members))
	for a := range s.members {
		agents = append(agents, a)
	}
	sort.Slice(agents, func(i, j int) bool {
		if agents[i].class != agents[j].class {
			return agents[i].class < agents[j].class
		}
		return agents[i].id < agents[j].id
	})
	return agents
}

// String returns the comma-joined text forms in sorted order, or
// "(none)" for the empty set.
func (s AgentSet) String() string {
	if s.IsEmpty() {
		return "(none)"
	}
	texts := make([]string, 0, len(s.members))
	for _, a := range s.Agents() {
		texts = append(texts, a.String())
	}
	return strings.Join(texts, ",")
}

// UnionAgents folds Union over the given sets. Folding over zero sets
// fails with ErrEmptyReduction.
func UnionAgents(sets ...AgentSet) (AgentSet, error) {
	if len(sets) == 0 {
		return AgentSet{}, ErrEmptyReduction
	}
	result := sets[0].Clone()
	for _, s := range sets[1:] {
		result = result.Union(s)
	}
	return result, nil
}

// IntersectAgents folds Intersect over the given sets. Folding over
// zero sets fails with ErrEmptyReduction.
func IntersectAgents(sets ...AgentSet) (AgentSet, error) {
	if len(sets) == 0 {
		return AgentSet{}, ErrEmptyReduction
	}
	result := sets[0].Clone()
	for _, s := range sets[1:] {
		result = result.Intersect(s)
	}
	return result, nil
}
