// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wac implements the rule algebra behind Web Access Control
// documents: grants that couple a set of access modes with a set of
// agent identities, scoped to one or more target resources.
//
// # Rectangles
//
// Each [Rule] is a rectangle in the two-dimensional space of access
// modes × agents: the rule grants every (mode, agent) pair in the
// Cartesian product of its [PermissionSet] and [AgentSet]. The algebra
// on rules has two primitives:
//
//   - [Rule.Intersect] computes the overlap of two rectangles.
//   - [Rule.Subtract] computes the exact remainder of one rectangle
//     minus another, decomposed into at most two disjoint rectangles.
//
// Everything else — coverage queries, partial deletion, aggregate
// views — is built from these two operations by [Store].
//
// # Coverage
//
// [Store.HasRule] answers "is this (mode-set, agent-set) combination
// already implied by the accumulated grants?" by repeated subtraction:
// the query rectangle is subtracted by every stored rule in turn, and
// coverage holds exactly when nothing remains. No single stored rule
// needs to cover the query by itself.
//
// # Resource scoping
//
// The algebra does not partition on accessTo. When two operands carry
// different accessTo sets, intersection intersects them but
// subtraction inherits the first operand's accessTo and computes the
// difference as if accessTo were irrelevant. Resource-path hierarchy
// (folder defaults applying to contents) is likewise outside this
// package: accessTo labels are opaque.
//
// # Passthrough
//
// Source documents can contain statements the algebra does not model.
// Each rule carries them as an ordered list of opaque [Statement]
// values. A rule with passthrough data is never considered
// ineffective, so partial deletion and minification cannot silently
// destroy statements this package does not understand.
//
// # Concurrency
//
// Set and rule operations are pure value transformations. [Store]
// mutates its mapping in place and is not safe for concurrent use;
// callers that share a store across goroutines must impose their own
// synchronization.
package wac
