// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot serializes a wac.Store to a compact, verifiable
// binary form and back.
//
// A snapshot is a small container:
//
//	magic "WACS" (4 bytes)
//	format version (1 byte)
//	BLAKE3 keyed digest of the compressed body (32 bytes)
//	zstd-compressed body (remaining bytes)
//
// The body is CBOR in Core Deterministic Encoding (RFC 8949 §4.2):
// sorted map keys, smallest integer encoding, no indefinite-length
// items. The same store contents always produce identical snapshot
// bytes, so the digest doubles as a cheap change-detection token
// (ETag-style) — compare digests, not bodies.
//
// The digest uses BLAKE3 keyed hashing with a fixed domain key, so a
// snapshot digest can never collide with hashes computed in other
// Bureau hash domains. [Decode] verifies the digest before touching
// the body and fails with [ErrDigestMismatch] on corruption.
package snapshot
