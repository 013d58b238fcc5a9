// Package blobdial identifies and transforms the textual encodings applied
// to opaque binary blobs encountered during cryptographic-blob analysis:
// tokens, cookies, and ciphertexts captured from protocol traces, before
// block-cipher-mode or padding-oracle analysis is attempted.
//
// Given one or more blobs it determines which known dialects of hex,
// base32, base64, percent-encoding or compression framing each blob
// plausibly is, disambiguates among several blobs assumed to share an
// encoding, applies or reverses ordered sequences of encodings, and (via
// the blocksize package) estimates likely cipher block sizes from observed
// blob lengths.
//
// # Basic Usage
//
// Classifying captured tokens and decoding with the best guess:
//
//	keys := blobdial.Intersect(tokens)
//	if key, ok := blobdial.BestGuess(keys); ok {
//	    plain, err := blobdial.Decode(key, tokens[0])
//	    ...
//	}
//
// Reversing a layered token (percent-escaped base64 over raw deflate):
//
//	raw, err := blobdial.DecodeChain(
//	    []string{"percent/lower", "base64/rfc3548", "zlib/raw-deflate"},
//	    token)
//
// # Package Structure
//
// This package provides convenient top-level functions over a process-wide
// registry built once at initialization and never mutated. For
// registry-level control, use the dialect and classify packages directly.
//
// All functions operate on raw bytes. Inputs held as Go strings must cross
// the text boundary first: DecodeString and EncodeString convert text to
// bytes using UTF-8, and every charset check beyond that point sees the
// byte representation, not character semantics.
package blobdial

import (
	"github.com/arloliu/blobdial/blocksize"
	"github.com/arloliu/blobdial/classify"
	"github.com/arloliu/blobdial/dialect"
)

// defaultRegistry is the process-wide catalogue, built once at package
// initialization and read-only thereafter.
var defaultRegistry = dialect.NewRegistry()

// DefaultRegistry returns the process-wide registry backing the top-level
// functions.
func DefaultRegistry() *dialect.Registry {
	return defaultRegistry
}

// ListKeys returns every supported encoding key in "<name>/<dialect>" form,
// sorted lexicographically. The keys are stable and intended for external
// display and selection.
func ListKeys() []string {
	return defaultRegistry.Keys()
}

// Decode decodes blob under the named encoding.
//
// Parameters:
//   - key: Registry key in "<name>/<dialect>" form; see ListKeys
//   - blob: Bytes to decode
//
// Returns:
//   - []byte: Decoded bytes
//   - error: errs.ErrUnknownEncoding for an unregistered key, or
//     errs.ErrMalformedInput (wrapped with detail) on any decode
//     inconsistency; no partial output is ever returned
func Decode(key string, blob []byte) ([]byte, error) {
	return defaultRegistry.Decode(key, blob)
}

// DecodeString decodes text under the named encoding. The string is
// converted to bytes using UTF-8 before any processing; this is the
// explicit text boundary, and all charset checks operate on the byte
// representation.
func DecodeString(key string, text string) ([]byte, error) {
	return defaultRegistry.Decode(key, []byte(text))
}

// Encode encodes blob under the named encoding.
//
// Parameters:
//   - key: Registry key in "<name>/<dialect>" form; see ListKeys
//   - blob: Bytes to encode
//
// Returns:
//   - []byte: Encoded bytes
//   - error: errs.ErrUnknownEncoding for an unregistered key; encoding
//     itself cannot fail for the text families
func Encode(key string, blob []byte) ([]byte, error) {
	return defaultRegistry.Encode(key, blob)
}

// EncodeString encodes text under the named encoding, converting it to
// bytes using UTF-8 first. See DecodeString for the text-boundary contract.
func EncodeString(key string, text string) ([]byte, error) {
	return defaultRegistry.Encode(key, []byte(text))
}

// DecodeAll decodes every blob under the named encoding, failing fast on
// the first error with no partial results.
func DecodeAll(key string, blobs [][]byte) ([][]byte, error) {
	out := make([][]byte, 0, len(blobs))
	for _, b := range blobs {
		decoded, err := defaultRegistry.Decode(key, b)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}

	return out, nil
}

// EncodeAll encodes every blob under the named encoding, failing fast on
// the first error with no partial results.
func EncodeAll(key string, blobs [][]byte) ([][]byte, error) {
	out := make([][]byte, 0, len(blobs))
	for _, b := range blobs {
		encoded, err := defaultRegistry.Encode(key, b)
		if err != nil {
			return nil, err
		}
		out = append(out, encoded)
	}

	return out, nil
}

// DecodeChain decodes blob once per key, strictly in the given order. For
// keys ["percent/lower", "base64/rfc3548"], blob is first decoded as
// percent/lower, then the result as base64/rfc3548. The first failing stage
// aborts the chain.
//
// DecodeChain and EncodeChain do not mirror each other: reversing a blob
// produced by EncodeChain requires passing the exact reverse key order.
func DecodeChain(keys []string, blob []byte) ([]byte, error) {
	return defaultRegistry.DecodeChain(keys, blob)
}

// EncodeChain encodes blob once per key, strictly in the given order. See
// DecodeChain for the ordering contract.
func EncodeChain(keys []string, blob []byte) ([]byte, error) {
	return defaultRegistry.EncodeChain(keys, blob)
}

// Classify evaluates blob against every registered variant and partitions
// the keys into definite matches (Likely) and structurally valid but
// underdetermined ones (Possible). It never fails; uncertainty is a result,
// not an error.
func Classify(blob []byte) classify.Classification {
	return classify.Blob(defaultRegistry, blob)
}

// Intersect combines classifications across blobs assumed to share an
// encoding and returns the keys that were never excluded by any blob and
// matched definitively for at least one, sorted.
func Intersect(blobs [][]byte) []string {
	return classify.Intersect(defaultRegistry, blobs)
}

// BestGuess picks the key with the minimal priority among keys, typically
// the survivors returned by Intersect.
func BestGuess(keys []string) (string, bool) {
	return classify.BestGuess(defaultRegistry, keys)
}

// BlockSizes reports the candidate cipher/digest block sizes that every
// blob's byte length is aligned to, from the common set {8, 16, 20}.
func BlockSizes(blobs [][]byte) []int {
	return blocksize.Common(blocksize.DistinctLengths(blobs))
}
