package dialect

import (
	"fmt"
	"sort"

	"github.com/arloliu/blobdial/errs"
)

// familyFunc constructs one variant of an encoding family.
type familyFunc func(dialect string, priority int) Encoding

func hexFamily(d string, p int) Encoding    { return newHex(d, p) }
func base32Family(d string, p int) Encoding { return newBase32(d, p) }
func base64Family(d string, p int) Encoding { return newBase64(d, p) }
func pctFamily(d string, p int) Encoding    { return newPercent(d, p) }
func gzipFamily(d string, p int) Encoding   { return newGzip(d, p) }
func zlibFamily(d string, p int) Encoding   { return newZlib(d, p) }
func zstdFamily(d string, p int) Encoding   { return newZstd(d, p) }
func lz4Family(d string, p int) Encoding    { return newLZ4(d, p) }

// builtinTable is the fixed catalogue of (family, dialect, priority)
// triples. Construction order carries no meaning beyond giving each variant
// its priority; priorities are unique so that best-guess selection is
// deterministic.
var builtinTable = []struct {
	family   familyFunc
	dialect  string
	priority int
}{
	{hexFamily, "upper", 100},
	{hexFamily, "lower", 101},
	{hexFamily, "mixed", 102},
	{base32Family, "rfc3548upper", 150},
	{base32Family, "rfc3548lower", 151},
	{base32Family, "rfc3548upper-nopad", 160},
	{base32Family, "rfc3548lower-nopad", 161},
	{base64Family, "rfc3548", 200},
	{base64Family, "rfc3548-nopad", 201},
	{base64Family, "rfc3548-newline", 202},
	{base64Family, "rfc3548-intpad", 203},
	{base64Family, "filename", 210},
	{base64Family, "filename-nopad", 211},
	{base64Family, "filename-intpad", 212},
	{base64Family, "url1", 230},
	{base64Family, "url1-nopad", 231},
	{base64Family, "url1-intpad", 232},
	{base64Family, "otkurl", 235},
	{base64Family, "otkurl-nopad", 236},
	{base64Family, "otkurl-intpad", 237},
	{base64Family, "url2", 240},
	{base64Family, "url2-nopad", 241},
	{base64Family, "url2-intpad", 242},
	{base64Family, "url3", 250},
	{base64Family, "url3-nopad", 251},
	{base64Family, "url3-intpad", 252},
	{base64Family, "url4", 260},
	{base64Family, "url4-nopad", 261},
	{base64Family, "url4-intpad", 262},
	{base64Family, "url5", 265},
	{base64Family, "url5-nopad", 266},
	{base64Family, "url5-intpad", 267},
	{base64Family, "url6", 268},
	{base64Family, "url6-nopad", 269},
	{base64Family, "url6-intpad", 270},
	{base64Family, "xmlnmtoken", 271},
	{base64Family, "xmlnmtoken-nopad", 272},
	{base64Family, "xmlnmtoken-intpad", 273},
	{base64Family, "xmlname", 280},
	{base64Family, "xmlname-nopad", 281},
	{base64Family, "xmlname-intpad", 282},
	{pctFamily, "upper-plus", 400},
	{pctFamily, "upper", 401},
	{pctFamily, "lower-plus", 410},
	{pctFamily, "lower", 411},
	{pctFamily, "mixed-plus", 420},
	{pctFamily, "mixed", 421},
	{gzipFamily, "standard", 500},
	{zlibFamily, "standard", 510},
	{zlibFamily, "raw-deflate", 520},
	{zstdFamily, "standard", 530},
	{lz4Family, "frame", 540},
}

// Registry is the immutable catalogue of encoding variants, keyed by
// "<name>/<dialect>". It is built once and never mutated afterward, so it
// is safe for concurrent use without locking.
type Registry struct {
	byKey map[string]Encoding
	keys  []string
}

// NewRegistry builds a registry holding the full built-in catalogue.
//
// Returns:
//   - *Registry: Immutable registry over the built-in dialect table
func NewRegistry() *Registry {
	r := &Registry{
		byKey: make(map[string]Encoding, len(builtinTable)),
		keys:  make([]string, 0, len(builtinTable)),
	}
	for _, entry := range builtinTable {
		enc := entry.family(entry.dialect, entry.priority)
		key := enc.Name() + "/" + enc.Dialect()
		if _, dup := r.byKey[key]; dup {
			panic(fmt.Sprintf("duplicate encoding key: %s", key))
		}
		r.byKey[key] = enc
		r.keys = append(r.keys, key)
	}
	sort.Strings(r.keys)

	return r
}

// Lookup returns the variant registered under key.
//
// Parameters:
//   - key: Registry key in "<name>/<dialect>" form
//
// Returns:
//   - Encoding: The registered variant
//   - error: errs.ErrUnknownEncoding if key is not registered
func (r *Registry) Lookup(key string) (Encoding, error) {
	enc, ok := r.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownEncoding, key)
	}

	return enc, nil
}

// Keys returns all registered keys in lexicographic order. The returned
// slice is shared; callers must not modify it.
func (r *Registry) Keys() []string {
	return r.keys
}

// Decode decodes blob under the variant registered at key.
func (r *Registry) Decode(key string, blob []byte) ([]byte, error) {
	enc, err := r.Lookup(key)
	if err != nil {
		return nil, err
	}

	return enc.Decode(blob)
}

// Encode encodes blob under the variant registered at key.
func (r *Registry) Encode(key string, blob []byte) ([]byte, error) {
	enc, err := r.Lookup(key)
	if err != nil {
		return nil, err
	}

	return enc.Encode(blob)
}

// DecodeChain decodes blob once per key, strictly in the given order,
// threading each stage's output into the next. The first failing stage
// aborts the chain with no partial result.
//
// DecodeChain does not mirror EncodeChain: to reverse a chain produced by
// EncodeChain the caller must pass the keys in the exact reverse order.
func (r *Registry) DecodeChain(keys []string, blob []byte) ([]byte, error) {
	var err error
	for i, key := range keys {
		blob, err = r.Decode(key, blob)
		if err != nil {
			return nil, fmt.Errorf("decode chain stage %d (%s): %w", i, key, err)
		}
	}

	return blob, nil
}

// EncodeChain encodes blob once per key, strictly in the given order. See
// DecodeChain for the ordering contract.
func (r *Registry) EncodeChain(keys []string, blob []byte) ([]byte, error) {
	var err error
	for i, key := range keys {
		blob, err = r.Encode(key, blob)
		if err != nil {
			return nil, fmt.Errorf("encode chain stage %d (%s): %w", i, key, err)
		}
	}

	return blob, nil
}
