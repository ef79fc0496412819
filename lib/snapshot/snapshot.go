// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/webacl/lib/wac"
)

// formatVersion is the current snapshot format version. Bumped on any
// incompatible change to the container layout or body schema.
const formatVersion = 1

// magic identifies a snapshot. Four bytes so a truncated or foreign
// file is rejected before any decoding work.
var magic = [4]byte{'W', 'A', 'C', 'S'}

// headerSize is magic + version + digest.
const headerSize = 4 + 1 + 32

// digestDomainKey is the BLAKE3 keyed-hash domain key for snapshot
// digests. A fixed constant — changing it invalidates every existing
// snapshot digest. Readable ASCII, zero-padded to the 32 bytes keyed
// mode requires, so the key is inspectable in hex dumps.
var digestDomainKey = [32]byte{
	'b', 'u', 'r', 'e', 'a', 'u', '.', 'w', 'e', 'b', 'a', 'c', 'l', '.',
	's', 'n', 'a', 'p', 's', 'h', 'o', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// ErrDigestMismatch is returned by Decode when the embedded digest
// does not match the snapshot body. The snapshot was corrupted or
// truncated after encoding.
var ErrDigestMismatch = errors.New("snapshot: digest mismatch")

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding so that equal stores produce identical snapshot bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder configured to accept standard CBOR.
// Unknown fields are ignored for forward compatibility.
var decMode cbor.DecMode

// zstdEncoder and zstdDecoder are reused across calls to avoid
// repeated initialization overhead. Both are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}

	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("snapshot: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("snapshot: zstd decoder initialization failed: " + err.Error())
	}
}

// storeBody is the CBOR schema of a serialized store.
type storeBody struct {
	DefaultResource string              `cbor:"1,keyasint,omitempty"`
	Rules           map[string]ruleBody `cbor:"2,keyasint"`
}

// ruleBody is the CBOR schema of one serialized rule. Set-valued
// fields are stored in the algebra's deterministic order (canonical
// mode order, sorted agents and labels).
type ruleBody struct {
	Permissions   []string `cbor:"1,keyasint,omitempty"`
	Agents        []string `cbor:"2,keyasint,omitempty"`
	AccessTo      []string `cbor:"3,keyasint,omitempty"`
	Default       int8     `cbor:"4,keyasint,omitempty"`
	DefaultForNew int8     `cbor:"5,keyasint,omitempty"`
	Passthrough   []string `cbor:"6,keyasint,omitempty"`
}

// Encode serializes a store to snapshot bytes. Every stored rule is
// written, effective or not — callers wanting garbage collection run
// store.Minify first.
func Encode(store *wac.Store) ([]byte, error) {
	body := storeBody{
		DefaultResource: store.DefaultResource(),
		Rules:           make(map[string]ruleBody, store.Len()),
	}
	for subject, rule := range store.Rules() {
		body.Rules[subject] = encodeRule(rule)
	}

	encoded, err := encMode.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot body: %w", err)
	}
	compressed := zstdEncoder.EncodeAll(encoded, nil)
	digest := keyedDigest(compressed)

	out := make([]byte, 0, headerSize+len(compressed))
	out = append(out, magic[:]...)
	out = append(out, formatVersion)
	out = append(out, digest[:]...)
	out = append(out, compressed...)
	return out, nil
}

// Decode parses snapshot bytes back into a store. The embedded digest
// is verified against the body before decompression; corruption fails
// with ErrDigestMismatch.
func Decode(data []byte) (*wac.Store, error) {
	compressed, err := verify(data)
	if err != nil {
		return nil, err
	}

	encoded, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing snapshot body: %w", err)
	}

	var body storeBody
	if err := decMode.Unmarshal(encoded, &body); err != nil {
		return nil, fmt.Errorf("decoding snapshot body: %w", err)
	}

	store := wac.NewStore(body.DefaultResource)
	for subject, rb := range body.Rules {
		rule, err := decodeRule(rb)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", subject, err)
		}
		if err := store.SetRule(subject, rule); err != nil {
			return nil, fmt.Errorf("rule %q: %w", subject, err)
		}
	}
	return store, nil
}

// Digest returns the embedded digest of a snapshot without decoding
// the body, after verifying it matches. Two snapshots of equal stores
// have equal digests, so this is the change-detection token.
func Digest(data []byte) ([32]byte, error) {
	if _, err := verify(data); err != nil {
		return [32]byte{}, err
	}
	var digest [32]byte
	copy(digest[:], data[5:headerSize])
	return digest, nil
}

// verify checks the container framing and the digest, returning the
// compressed body.
func verify(data []byte) ([]byte, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("snapshot is %d bytes, want at least %d", len(data), headerSize)
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return nil, fmt.Errorf("bad snapshot magic %q", data[:4])
	}
	if version := data[4]; version != formatVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d, want %d", version, formatVersion)
	}

	var embedded [32]byte
	copy(embedded[:], data[5:headerSize])
	compressed := data[headerSize:]
	if keyedDigest(compressed) != embedded {
		return nil, ErrDigestMismatch
	}
	return compressed, nil
}

// keyedDigest computes the snapshot-domain BLAKE3 keyed hash of data.
func keyedDigest(data []byte) [32]byte {
	// NewKeyed requires exactly 32 bytes, which the fixed-size key
	// guarantees, so this cannot fail.
	hasher, err := blake3.NewKeyed(digestDomainKey[:])
	if err != nil {
		panic("snapshot: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var digest [32]byte
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// encodeRule converts one algebra rule into its CBOR schema form.
func encodeRule(rule wac.Rule) ruleBody {
	rb := ruleBody{
		Permissions:   rule.Permissions.Names(),
		AccessTo:      rule.AccessTo.Labels(),
		Default:       int8(rule.Default),
		DefaultForNew: int8(rule.DefaultForNew),
	}
	for _, a := range rule.Agents.Agents() {
		rb.Agents = append(rb.Agents, a.String())
	}
	for _, st := range rule.Passthrough {
		rb.Passthrough = append(rb.Passthrough, string(st))
	}
	return rb
}

// decodeRule converts one CBOR schema form back into an algebra rule.
func decodeRule(rb ruleBody) (wac.Rule, error) {
	permissions, err := wac.ParsePermissionSet(rb.Permissions...)
	if err != nil {
		return wac.Rule{}, err
	}
	agents, err := wac.ParseAgentSet(rb.Agents...)
	if err != nil {
		return wac.Rule{}, err
	}
	accessTo, err := wac.NewResourceSet(rb.AccessTo...)
	if err != nil {
		return wac.Rule{}, err
	}
	defaultFlag, err := decodeFlag(rb.Default)
	if err != nil {
		return wac.Rule{}, err
	}
	defaultForNew, err := decodeFlag(rb.DefaultForNew)
	if err != nil {
		return wac.Rule{}, err
	}

	rule := wac.Rule{
		Permissions:   permissions,
		Agents:        agents,
		AccessTo:      accessTo,
		Default:       defaultFlag,
		DefaultForNew: defaultForNew,
	}
	for _, st := range rb.Passthrough {
		rule.Passthrough = append(rule.Passthrough, wac.Statement(st))
	}
	return rule, nil
}

// decodeFlag validates a serialized tri-state flag.
func decodeFlag(v int8) (wac.Flag, error) {
	switch f := wac.Flag(v); f {
	case wac.FlagUnset, wac.FlagFalse, wac.FlagTrue:
		return f, nil
	default:
		return wac.FlagUnset, fmt.Errorf("invalid flag value %d", v)
	}
}
