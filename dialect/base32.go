package dialect

import (
	"bytes"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/arloliu/blobdial/errs"
)

const (
	base32UpperAlphabet = upperAlpha + "234567"
	base32LowerAlphabet = lowerAlpha + "234567"
)

// base32Dialect implements the RFC 3548 base32 alphabet in upper or lower
// case, optionally with the pad run stripped.
type base32Dialect struct {
	variant
	pad    byte
	policy padPolicy
	lower  bool
}

var _ Encoding = (*base32Dialect)(nil)

func newBase32(dialectName string, priority int) *base32Dialect {
	e := &base32Dialect{
		variant: variant{
			name:     "base32",
			dialect:  dialectName,
			priority: priority,
		},
		pad:   '=',
		lower: strings.Contains(dialectName, "lower"),
	}

	if strings.HasSuffix(dialectName, "-nopad") {
		e.policy = padNone
	}

	if e.lower {
		e.charset = makeByteSet(base32LowerAlphabet, string(e.pad))
	} else {
		e.charset = makeByteSet(base32UpperAlphabet, string(e.pad))
	}

	return e
}

// base32PadLen gives the required pad run for an unpadded length, keyed on
// length mod 8. Any remainder outside the table is invalid.
var base32PadLens = map[int]int{0: 0, 7: 1, 5: 3, 4: 4, 2: 6}

func base32PadLen(unpadded int) (int, bool) {
	n, ok := base32PadLens[unpadded%8]

	return n, ok
}

func (e *base32Dialect) Classify(blob []byte) Result {
	if !e.charsetOK(blob) {
		return NoMatch
	}

	nopad := bytes.TrimRight(blob, string(e.pad))
	guess, ok := base32PadLen(len(nopad))
	if !ok {
		return NoMatch
	}

	// Bad pads are rejected, only missing pads are tolerated.
	if e.policy == padNone {
		if bytes.IndexByte(blob, e.pad) >= 0 {
			return NoMatch
		}

		return Match
	}

	if bytes.IndexByte(nopad, e.pad) >= 0 || len(blob) != len(nopad)+guess {
		return NoMatch
	}

	return Match
}

func (e *base32Dialect) Decode(blob []byte) ([]byte, error) {
	b := blob
	if e.policy == padNone {
		if bytes.IndexByte(b, e.pad) >= 0 {
			return nil, fmt.Errorf("%w: unpadded base32 string contains pad character", errs.ErrMalformedInput)
		}
		padlen, ok := base32PadLen(len(b))
		if !ok {
			return nil, fmt.Errorf("%w: invalid length for unpadded base32 string", errs.ErrMalformedInput)
		}
		padded := make([]byte, 0, len(b)+padlen)
		padded = append(padded, b...)
		for i := 0; i < padlen; i++ {
			padded = append(padded, e.pad)
		}
		b = padded
	}

	// Decoding case-folds regardless of the dialect's configured case.
	out, err := base32.StdEncoding.DecodeString(string(bytes.ToUpper(b)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}

	return out, nil
}

func (e *base32Dialect) Encode(blob []byte) ([]byte, error) {
	out := []byte(base32.StdEncoding.EncodeToString(blob))

	if e.policy == padNone {
		out = bytes.TrimRight(out, string(e.pad))
	}
	if e.lower {
		out = bytes.ToLower(out)
	}

	return out, nil
}
