package dialect

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/arloliu/blobdial/errs"
)

const (
	hexUpper = "ABCDEF" + digits
	hexLower = "abcdef" + digits
	hexMixed = "ABCDEF" + "abcdef" + digits
)

// hexDialect implements hexadecimal encoding with an upper, lower, or mixed
// digit-case charset.
type hexDialect struct {
	variant
	upper bool
}

var _ Encoding = (*hexDialect)(nil)

func newHex(dialectName string, priority int) *hexDialect {
	e := &hexDialect{
		variant: variant{
			name:     "hex",
			dialect:  dialectName,
			priority: priority,
		},
	}

	switch {
	case strings.Contains(dialectName, "mixed"):
		e.charset = makeByteSet(hexMixed)
	case strings.Contains(dialectName, "upper"):
		e.upper = true
		e.charset = makeByteSet(hexUpper)
	default:
		e.charset = makeByteSet(hexLower)
	}

	return e
}

func (e *hexDialect) Classify(blob []byte) Result {
	if !e.charsetOK(blob) {
		return NoMatch
	}

	// Digit membership is already enforced by the charset; only the even
	// length remains to check.
	if len(blob)%2 != 0 {
		return NoMatch
	}

	return Match
}

// Decode accepts both digit cases regardless of dialect; only
// classification is case-strict.
func (e *hexDialect) Decode(blob []byte) ([]byte, error) {
	out := make([]byte, hex.DecodedLen(len(blob)))
	n, err := hex.Decode(out, blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}

	return out[:n], nil
}

func (e *hexDialect) Encode(blob []byte) ([]byte, error) {
	out := make([]byte, hex.EncodedLen(len(blob)))
	hex.Encode(out, blob)
	if e.upper {
		out = bytes.ToUpper(out)
	}

	return out, nil
}
