// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wac

// Flag is a tri-state boolean for the acl:default / acl:defaultForNew
// markers. The third state exists because [Rule.Intersect] must
// collapse two rules whose markers disagree to "unset" — neither true
// nor false survives the intersection.
type Flag int8

const (
	// FlagUnset means the marker is absent from the rule.
	FlagUnset Flag = iota

	// FlagFalse means the marker is explicitly false.
	FlagFalse

	// FlagTrue means the marker is explicitly true.
	FlagTrue
)

// FlagOf converts a plain bool to its Flag value.
func FlagOf(v bool) Flag {
	if v {
		return FlagTrue
	}
	return FlagFalse
}

// Bool reports whether the flag is explicitly true.
func (f Flag) Bool() bool {
	return f == FlagTrue
}

// String returns "unset", "false", or "true".
func (f Flag) String() string {
	switch f {
	case FlagFalse:
		return "false"
	case FlagTrue:
		return "true"
	default:
		return "unset"
	}
}

// sharedFlag returns the common value of two flags, or FlagUnset when
// they disagree.
func sharedFlag(a, b Flag) Flag {
	if a == b {
		return a
	}
	return FlagUnset
}

// Statement is an opaque fragment of the source document that the
// algebra does not model: a serialized statement the codec could not
// map to permission, agent, or accessTo concepts. Statements compare
// by value and are carried through the algebra uninterpreted.
type Statement string

// Rule is one grant: a rectangle in access-mode × agent space, scoped
// to a set of target resources. Rules are value objects — the algebra
// never mutates a rule, it produces new ones. A rule inside a [Store]
// changes only by wholesale replacement.
type Rule struct {
	// Permissions is the mode dimension of the rectangle.
	Permissions PermissionSet

	// Agents is the agent dimension of the rectangle.
	Agents AgentSet

	// AccessTo is the set of resource labels the grant applies to.
	// The algebra carries it through operations but does not
	// partition on it; see the package documentation.
	AccessTo ResourceSet

	// Default is the acl:default marker: the rule also applies to
	// resources that inherit their ACL from this document.
	Default Flag

	// DefaultForNew is the legacy acl:defaultForNew marker.
	DefaultForNew Flag

	// Passthrough holds statements from the source document that the
	// algebra does not understand, in source order. A rule with
	// passthrough data is never ineffective: dropping it would destroy
	// statements this package cannot reconstruct.
	Passthrough []Statement
}

// HasNoEffect reports whether the rule carries no authorization
// meaning: no passthrough data, and at least one of the three sets is
// empty (an empty dimension makes the rectangle empty). Ineffective
// rules are candidates for garbage collection via [Store.Minify].
func (r Rule) HasNoEffect() bool {
	if len(r.Passthrough) > 0 {
		return false
	}
	return r.Permissions.IsEmpty() || r.Agents.IsEmpty() || r.AccessTo.IsEmpty()
}

// Clone returns a deep copy of the rule. The copy shares no state
// with the original.
func (r Rule) Clone() Rule {
	out := Rule{
		Permissions:   r.Permissions,
		Agents:        r.Agents.Clone(),
		AccessTo:      r.AccessTo.Clone(),
		Default:       r.Default,
		DefaultForNew: r.DefaultForNew,
	}
	if len(r.Passthrough) > 0 {
		out.Passthrough = make([]Statement, len(r.Passthrough))
		copy(out.Passthrough, r.Passthrough)
	}
	return out
}

// Equal reports structural equality on all fields: set equality on
// permissions, agents, and accessTo; exact flag values; and
// order-sensitive equality on passthrough.
func (r Rule) Equal(other Rule) bool {
	if !r.Permissions.Equal(other.Permissions) {
		return false
	}
	if !r.Agents.Equal(other.Agents) {
		return false
	}
	if !r.AccessTo.Equal(other.AccessTo) {
		return false
	}
	if r.Default != other.Default || r.DefaultForNew != other.DefaultForNew {
		return false
	}
	if len(r.Passthrough) != len(other.Passthrough) {
		return false
	}
	for i, st := range r.Passthrough {
		if other.Passthrough[i] != st {
			return false
		}
	}
	return true
}

// containsStatement reports whether st appears in the rule's
// passthrough data.
func (r Rule) containsStatement(st Statement) bool {
	for _, have := range r.Passthrough {
		if have == st {
			return true
		}
	}
	return false
}

// Intersect returns the overlap of two rules: modes, agents, and
// accessTo intersect as sets, passthrough keeps the statements present
// verbatim in both operands (in the receiver's order), and each
// default marker collapses to its shared value or FlagUnset when the
// operands disagree.
func (r Rule) Intersect(other Rule) Rule {
	out := Rule{
		Permissions:   r.Permissions.Intersect(other.Permissions),
		Agents:        r.Agents.Intersect(other.Agents),
		AccessTo:      r.AccessTo.Intersect(other.AccessTo),
		Default:       sharedFlag(r.Default, other.Default),
		DefaultForNew: sharedFlag(r.DefaultForNew, other.DefaultForNew),
	}
	for _, st := range r.Passthrough {
		if other.containsStatement(st) {
			out.Passthrough = append(out.Passthrough, st)
		}
	}
	return out
}

// Subtract computes the receiver's rectangle minus other's rectangle,
// decomposed into at most two disjoint pieces:
//
//  1. The unaffected-agents piece: agents of r not touched by other
//     keep all of r's modes.
//  2. The unaffected-permissions piece: agents shared with other keep
//     only the modes other does not grant.
//
// Together the pieces cover the remainder exactly, and no (mode,
// agent) pair appears in both. Pieces inherit r's accessTo,
// passthrough, and default markers; accessTo is not a subtraction
// dimension (see the package documentation). Pieces that have no
// effect are dropped, so the result has 0, 1, or 2 rules.
func (r Rule) Subtract(other Rule) []Rule {
	pieces := make([]Rule, 0, 2)

	unaffectedAgents := r.Clone()
	unaffectedAgents.Agents = r.Agents.Subtract(other.Agents)
	if !unaffectedAgents.HasNoEffect() {
		pieces = append(pieces, unaffectedAgents)
	}

	unaffectedModes := r.Clone()
	unaffectedModes.Permissions = r.Permissions.Subtract(other.Permissions)
	unaffectedModes.Agents = r.Agents.Intersect(other.Agents)
	if !unaffectedModes.HasNoEffect() {
		pieces = append(pieces, unaffectedModes)
	}

	return pieces
}
