package dialect

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/arloliu/blobdial/errs"
)

// unreservedChars is the byte set left unescaped by the percent encoder:
// ASCII letters and digits only.
var unreservedChars = makeByteSet(upperAlpha, lowerAlpha, digits)

// percentDialect implements percent (URL) escaping. The charset is
// unconstrained; validity is structural: every '%' must be followed by
// exactly two hex digits of the configured case. An optional '+'-for-space
// substitution applies on both encode and decode.
//
// net/url is deliberately not used here: it cannot express the configured
// digit case, the '+' policy, or the byte-level unreserved set required for
// analyzing captured blobs.
type percentDialect struct {
	variant
	hexchars *byteSet
	plus     bool
	upper    bool
}

var _ Encoding = (*percentDialect)(nil)

func newPercent(dialectName string, priority int) *percentDialect {
	e := &percentDialect{
		variant: variant{
			name:     "percent",
			dialect:  dialectName,
			priority: priority,
		},
		plus:  strings.Contains(dialectName, "plus"),
		upper: true,
	}

	switch {
	case strings.Contains(dialectName, "mixed"):
		e.hexchars = makeByteSet(hexMixed)
	case strings.Contains(dialectName, "upper"):
		e.hexchars = makeByteSet(hexUpper)
	default:
		e.hexchars = makeByteSet(hexLower)
		e.upper = false
	}

	return e
}

func (e *percentDialect) Classify(blob []byte) Result {
	chunks := bytes.Split(blob, []byte{'%'})
	if len(chunks) < 2 {
		// No escape at all: trivially a no-op match, indistinguishable
		// from "not percent-encoded".
		return Ambiguous
	}
	for _, c := range chunks[1:] {
		if len(c) < 2 {
			return NoMatch
		}
		if !e.hexchars.contains(c[0]) || !e.hexchars.contains(c[1]) {
			return NoMatch
		}
	}

	return Match
}

// Decode accepts both hex-digit cases in escapes regardless of dialect;
// only classification is case-strict.
func (e *percentDialect) Decode(blob []byte) ([]byte, error) {
	b := blob
	if e.plus {
		b = bytes.ReplaceAll(b, []byte{'+'}, []byte{' '})
	}
	if len(b) == 0 {
		return []byte{}, nil
	}

	chunks := bytes.Split(b, []byte{'%'})
	out := make([]byte, 0, len(b))
	out = append(out, chunks[0]...)
	for _, c := range chunks[1:] {
		if len(c) < 2 {
			return nil, fmt.Errorf("%w: truncated percent escape", errs.ErrMalformedInput)
		}
		hi, ok1 := unhexDigit(c[0])
		lo, ok2 := unhexDigit(c[1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: invalid percent escape %%%s", errs.ErrMalformedInput, c[:2])
		}
		out = append(out, hi<<4|lo)
		out = append(out, c[2:]...)
	}

	return out, nil
}

func (e *percentDialect) Encode(blob []byte) ([]byte, error) {
	hexdigits := "0123456789abcdef"
	if e.upper {
		hexdigits = "0123456789ABCDEF"
	}

	out := make([]byte, 0, len(blob))
	for _, c := range blob {
		switch {
		case unreservedChars.contains(c):
			out = append(out, c)
		case e.plus && c == ' ':
			out = append(out, '+')
		default:
			out = append(out, '%', hexdigits[c>>4], hexdigits[c&0x0f])
		}
	}

	return out, nil
}

func unhexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
