package dialect

import "bytes"

// Result is the tri-state outcome of classifying a blob against one
// encoding variant.
//
// Uncertainty is a first-class value, not an error: a short alphanumeric
// string satisfies several charsets at once and classification must report
// that without failing.
type Result uint8

const (
	// NoMatch means the blob is structurally invalid for the variant.
	NoMatch Result = 0x1
	// Match means the blob is a definite example of the variant.
	Match Result = 0x2
	// Ambiguous means the blob is structurally valid but underdetermined,
	// e.g. percent-encoding input that contains no '%' at all.
	Ambiguous Result = 0x3
)

func (r Result) String() string {
	switch r {
	case NoMatch:
		return "NoMatch"
	case Match:
		return "Match"
	case Ambiguous:
		return "Ambiguous"
	default:
		return "Unknown"
	}
}

// Encoding is the capability interface implemented by every variant in the
// catalogue.
//
// Implementations are pure functions over their input: they never retain or
// modify the input slice, and returned slices are newly allocated and owned
// by the caller.
type Encoding interface {
	// Name identifies the encoding family (hex, base32, base64, percent,
	// gzip, zlib, zstd, lz4).
	Name() string

	// Dialect identifies the sub-variant within the family (e.g.
	// "url1-nopad").
	Dialect() string

	// Priority is the unique preference rank of this variant; lower values
	// mark more specific dialects and win best-guess selection.
	Priority() int

	// Classify reports whether blob is structurally a valid example of
	// this variant. It never fails: uncertainty is reported as Ambiguous.
	Classify(blob []byte) Result

	// Decode reverses the encoding. It fails with an error wrapping
	// errs.ErrMalformedInput on any charset, length, padding or escape
	// inconsistency, with no partial output.
	Decode(blob []byte) ([]byte, error)

	// Encode applies the encoding. The text families cannot fail; the
	// compression families report backend errors.
	Encode(blob []byte) ([]byte, error)
}

// byteSet is a fixed membership table over all byte values.
type byteSet [256]bool

func makeByteSet(chars ...string) *byteSet {
	var s byteSet
	for _, c := range chars {
		for i := 0; i < len(c); i++ {
			s[c[i]] = true
		}
	}

	return &s
}

func (s *byteSet) contains(b byte) bool {
	return s[b]
}

const (
	upperAlpha = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerAlpha = "abcdefghijklmnopqrstuvwxyz"
	digits     = "0123456789"
)

// variant carries the rule-set fields shared by every encoding family.
//
// A nil charset means the variant is structurally validated instead of
// charset-constrained (percent-encoding and the compression layers).
type variant struct {
	name     string
	dialect  string
	priority int

	charset    *byteSet
	extraneous []byte
}

func (v *variant) Name() string { return v.name }

func (v *variant) Dialect() string { return v.dialect }

func (v *variant) Priority() int { return v.priority }

// charsetOK reports whether every byte of blob belongs to the variant's
// charset or its tolerated extraneous characters. A byte outside that union
// forces NoMatch unconditionally, before any dialect-specific test runs.
func (v *variant) charsetOK(blob []byte) bool {
	if v.charset == nil {
		return true
	}
	for _, b := range blob {
		if !v.charset.contains(b) {
			return false
		}
	}

	return true
}

// stripExtraneous removes the variant's tolerated incidental characters
// (e.g. embedded newlines) before structural tests and decoding.
func (v *variant) stripExtraneous(blob []byte) []byte {
	if len(v.extraneous) == 0 {
		return blob
	}
	out := make([]byte, 0, len(blob))
	for _, b := range blob {
		if bytes.IndexByte(v.extraneous, b) < 0 {
			out = append(out, b)
		}
	}

	return out
}
