// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package policydef provides parsing and formatting for authored
// access-control documents. A policy definition is the human-facing
// form of a wac.Store: the document-level default resource plus a
// mapping from subject identifier to rule definition.
//
// Two authoring formats are supported:
//
//   - JSONC (JSON extended with // line comments, /* block comments */,
//     and trailing commas) via [Parse]. This is the format for
//     documents stored and transported as JSON.
//   - YAML via [ParseYAML], for operator-written policy files.
//
// [Format] emits canonical JSON. Effective rules round-trip through
// Parse/Format without loss: permissions, agents, accessTo, default
// markers, and passthrough statements all survive. Ineffective rules
// are preserved too — pruning is the caller's decision via
// wac.Store.Minify, never the codec's.
//
// The typical flow:
//
//  1. Parse or ParseYAML: authored bytes → *wac.Store
//  2. query and mutate the store through the wac algebra
//  3. Format: *wac.Store → canonical JSON bytes
package policydef
