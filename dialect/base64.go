package dialect

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/arloliu/blobdial/errs"
)

// padPolicy selects how a dialect represents the RFC padding run.
type padPolicy uint8

const (
	// padStandard keeps the literal pad characters.
	padStandard padPolicy = iota
	// padNone strips the pad run; it is reconstructible from the length.
	padNone
	// padInt replaces the pad run with a single decimal digit 0-2 holding
	// the removed pad-character count.
	padInt
)

// base64Symbols holds the three substitution symbols that distinguish the
// base64 dialect families observed in the wild.
type base64Symbols struct {
	c62, c63, pad byte
}

// Dialect prefixes seen in captured tokens: RFC 3548/4648 standard,
// filename-safe, several URL-safe schemes, the OpenTok URL scheme, and the
// XML NMTOKEN/Name alphabets.
var base64Dialects = map[string]base64Symbols{
	"rfc3548":    {'+', '/', '='},
	"filename":   {'+', '-', '='},
	"url1":       {'-', '_', '='},
	"url2":       {'-', '_', '.'},
	"url3":       {'_', '-', '.'},
	"url4":       {'-', '_', '!'},
	"url5":       {'+', '/', '$'},
	"url6":       {'*', '/', '='},
	"otkurl":     {'-', '_', '*'},
	"xmlnmtoken": {'.', '-', '='},
	"xmlname":    {'_', ':', '='},
}

// base64Dialect implements one base64 variant: a symbol set plus a padding
// policy, with optional tolerance for embedded newlines.
type base64Dialect struct {
	variant
	syms     base64Symbols
	policy   padPolicy
	toStd    [256]byte // dialect symbols -> canonical +/=
	fromStd  [256]byte // canonical +/= -> dialect symbols
	remapped bool
}

var _ Encoding = (*base64Dialect)(nil)

func newBase64(dialectName string, priority int) *base64Dialect {
	prefix, _, _ := strings.Cut(dialectName, "-")
	syms, ok := base64Dialects[prefix]
	if !ok {
		panic(fmt.Sprintf("unknown base64 dialect: %s", dialectName))
	}

	e := &base64Dialect{
		variant: variant{
			name:     "base64",
			dialect:  dialectName,
			priority: priority,
		},
		syms: syms,
	}

	switch {
	case strings.HasSuffix(dialectName, "-intpad"):
		e.policy = padInt
	case strings.HasSuffix(dialectName, "-nopad"):
		e.policy = padNone
	default:
		e.policy = padStandard
	}

	if strings.HasSuffix(dialectName, "-newline") {
		e.extraneous = []byte("\r\n")
	}

	e.charset = makeByteSet(upperAlpha, lowerAlpha, digits,
		string([]byte{syms.c62, syms.c63, syms.pad}), string(e.extraneous))

	for i := range e.toStd {
		e.toStd[i] = byte(i)
		e.fromStd[i] = byte(i)
	}
	if syms != base64Dialects["rfc3548"] {
		e.remapped = true
		e.toStd[syms.c62] = '+'
		e.toStd[syms.c63] = '/'
		e.toStd[syms.pad] = '='
		e.fromStd['+'] = syms.c62
		e.fromStd['/'] = syms.c63
		e.fromStd['='] = syms.pad
	}

	return e
}

// base64PadLen infers the pad run length for an unpadded length. A derived
// value of 3 is invalid: base64 groups never require exactly three pad
// characters.
func base64PadLen(unpadded int) (int, bool) {
	n := (4 - unpadded%4) % 4
	if n == 3 {
		return 0, false
	}

	return n, true
}

func (e *base64Dialect) Classify(blob []byte) Result {
	if !e.charsetOK(blob) {
		return NoMatch
	}
	b := e.stripExtraneous(blob)

	var nopad []byte
	var padlen int
	if e.policy == padInt {
		if len(b) == 0 {
			return NoMatch
		}
		last := b[len(b)-1]
		if last < '0' || last > '2' {
			return NoMatch
		}
		nopad = b[:len(b)-1]
		padlen = int(last - '0')
	} else {
		nopad = bytes.TrimRight(b, string(e.syms.pad))
		padlen = len(b) - len(nopad)
	}

	guess, ok := base64PadLen(len(nopad))
	if !ok {
		return NoMatch
	}

	// Bad pads are rejected, only missing pads are tolerated.
	if e.policy == padNone {
		if bytes.IndexByte(b, e.syms.pad) >= 0 {
			return NoMatch
		}

		return Match
	}

	// The pad symbol must not appear before the trailing run, and the run
	// must have exactly the inferred length.
	if bytes.IndexByte(nopad, e.syms.pad) >= 0 || padlen != guess {
		return NoMatch
	}

	return Match
}

func (e *base64Dialect) Decode(blob []byte) ([]byte, error) {
	b := e.stripExtraneous(blob)

	switch e.policy {
	case padInt:
		if len(b) == 0 {
			return nil, fmt.Errorf("%w: empty int-padded base64 string", errs.ErrMalformedInput)
		}
		last := b[len(b)-1]
		if last < '0' || last > '2' {
			return nil, fmt.Errorf("%w: int-padded base64 string must end in a digit 0-2", errs.ErrMalformedInput)
		}
		padlen := int(last - '0')
		guess, ok := base64PadLen(len(b) - 1)
		if !ok || padlen != guess {
			return nil, fmt.Errorf("%w: invalid length for int-padded base64 string", errs.ErrMalformedInput)
		}
		padded := make([]byte, 0, len(b)-1+padlen)
		padded = append(padded, b[:len(b)-1]...)
		for i := 0; i < padlen; i++ {
			padded = append(padded, e.syms.pad)
		}
		b = padded

	case padNone:
		if bytes.IndexByte(b, e.syms.pad) >= 0 {
			return nil, fmt.Errorf("%w: unpadded base64 string contains pad character", errs.ErrMalformedInput)
		}
		padlen, ok := base64PadLen(len(b))
		if !ok {
			return nil, fmt.Errorf("%w: invalid length for unpadded base64 string", errs.ErrMalformedInput)
		}
		padded := make([]byte, 0, len(b)+padlen)
		padded = append(padded, b...)
		for i := 0; i < padlen; i++ {
			padded = append(padded, e.syms.pad)
		}
		b = padded
	}

	if e.remapped {
		mapped := make([]byte, len(b))
		for i, c := range b {
			mapped[i] = e.toStd[c]
		}
		b = mapped
	}

	out := make([]byte, base64.StdEncoding.DecodedLen(len(b)))
	n, err := base64.StdEncoding.Decode(out, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}

	return out[:n], nil
}

func (e *base64Dialect) Encode(blob []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(blob)))
	base64.StdEncoding.Encode(out, blob)

	if e.remapped {
		for i, c := range out {
			out[i] = e.fromStd[c]
		}
	}

	switch e.policy {
	case padNone:
		out = bytes.TrimRight(out, string(e.syms.pad))
	case padInt:
		stripped := bytes.TrimRight(out, string(e.syms.pad))
		padlen := len(out) - len(stripped)
		out = append(stripped, byte('0'+padlen))
	}

	return out, nil
}
