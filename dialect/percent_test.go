package dialect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/blobdial/errs"
)

func TestPercentClassify(t *testing.T) {
	upper := newPercent("upper", 401)
	lower := newPercent("lower", 411)
	mixed := newPercent("mixed", 421)

	// No '%' at all: trivially a no-op match, so underdetermined.
	require.Equal(t, Ambiguous, upper.Classify([]byte("hello world")))
	require.Equal(t, Ambiguous, upper.Classify([]byte("")))

	require.Equal(t, Match, upper.Classify([]byte("a%2Fb")))
	require.Equal(t, Match, lower.Classify([]byte("a%2fb")))
	require.Equal(t, Match, mixed.Classify([]byte("a%2Fb%2fc")))

	// Escape digit case must follow the dialect.
	require.Equal(t, NoMatch, upper.Classify([]byte("a%2fb")))
	require.Equal(t, NoMatch, lower.Classify([]byte("a%2Fb")))

	// Truncated or non-hex escapes.
	require.Equal(t, NoMatch, upper.Classify([]byte("abc%")))
	require.Equal(t, NoMatch, upper.Classify([]byte("abc%2")))
	require.Equal(t, NoMatch, upper.Classify([]byte("abc%zz")))
	require.Equal(t, NoMatch, upper.Classify([]byte("a%%41")))
}

func TestPercentDecode(t *testing.T) {
	upper := newPercent("upper", 401)

	got, err := upper.Decode([]byte("a%20b%2Fc"))
	require.NoError(t, err)
	require.Equal(t, []byte("a b/c"), got)

	// Decoding accepts both escape cases regardless of dialect.
	got, err = upper.Decode([]byte("%2f"))
	require.NoError(t, err)
	require.Equal(t, []byte("/"), got)

	got, err = upper.Decode([]byte(""))
	require.NoError(t, err)
	require.Empty(t, got)

	// Bytes outside escapes pass through untouched.
	got, err = upper.Decode([]byte("no escapes"))
	require.NoError(t, err)
	require.Equal(t, []byte("no escapes"), got)

	_, err = upper.Decode([]byte("abc%2"))
	require.ErrorIs(t, err, errs.ErrMalformedInput)
	_, err = upper.Decode([]byte("abc%zz"))
	require.ErrorIs(t, err, errs.ErrMalformedInput)
	_, err = upper.Decode([]byte("%"))
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestPercentDecode_Plus(t *testing.T) {
	plus := newPercent("upper-plus", 400)
	noPlus := newPercent("upper", 401)

	got, err := plus.Decode([]byte("a+b"))
	require.NoError(t, err)
	require.Equal(t, []byte("a b"), got)

	got, err = noPlus.Decode([]byte("a+b"))
	require.NoError(t, err)
	require.Equal(t, []byte("a+b"), got)
}

func TestPercentEncode(t *testing.T) {
	upper := newPercent("upper", 401)
	lower := newPercent("lower", 411)
	plus := newPercent("upper-plus", 400)

	out, err := upper.Encode([]byte("a b/c"))
	require.NoError(t, err)
	require.Equal(t, []byte("a%20b%2Fc"), out)

	out, err = lower.Encode([]byte("a b/c"))
	require.NoError(t, err)
	require.Equal(t, []byte("a%20b%2fc"), out)

	out, err = plus.Encode([]byte("a b+c"))
	require.NoError(t, err)
	require.Equal(t, []byte("a+b%2Bc"), out)

	// Letters and digits stay literal, everything else is escaped.
	out, err = upper.Encode([]byte{0x00, 'A', 0xff})
	require.NoError(t, err)
	require.Equal(t, []byte("%00A%FF"), out)
}

func TestPercentRoundTrip_AllDialects(t *testing.T) {
	payloads := [][]byte{
		{},
		[]byte("plain"),
		[]byte("a b+c% d"),
		{0x00, 0x20, 0x2b, 0x7f, 0xff},
	}

	for _, name := range []string{
		"upper-plus", "upper", "lower-plus", "lower", "mixed-plus", "mixed",
	} {
		e := newPercent(name, 0)
		t.Run(name, func(t *testing.T) {
			for _, b := range payloads {
				encoded, err := e.Encode(b)
				require.NoError(t, err)

				decoded, err := e.Decode(encoded)
				require.NoError(t, err)
				require.Equal(t, b, decoded)
			}
		})
	}
}
