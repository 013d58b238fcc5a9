package dialect

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/blobdial/errs"
)

func TestNewRegistry_Catalogue(t *testing.T) {
	reg := NewRegistry()
	keys := reg.Keys()

	require.Len(t, keys, len(builtinTable))
	require.True(t, sort.StringsAreSorted(keys))

	// Every key resolves and reports its own identity.
	for _, key := range keys {
		enc, err := reg.Lookup(key)
		require.NoError(t, err)
		require.Equal(t, key, enc.Name()+"/"+enc.Dialect())
	}

	// Reference dialects that must be present.
	for _, key := range []string{
		"hex/upper", "hex/lower", "hex/mixed",
		"base32/rfc3548upper", "base32/rfc3548lower-nopad",
		"base64/rfc3548", "base64/url1-nopad", "base64/otkurl-intpad",
		"base64/xmlname", "percent/upper-plus", "percent/mixed",
		"gzip/standard", "zlib/raw-deflate", "zstd/standard", "lz4/frame",
	} {
		_, err := reg.Lookup(key)
		require.NoError(t, err, "missing %s", key)
	}
}

func TestNewRegistry_UniquePriorities(t *testing.T) {
	reg := NewRegistry()

	seen := make(map[int]string)
	for _, key := range reg.Keys() {
		enc, err := reg.Lookup(key)
		require.NoError(t, err)
		prev, dup := seen[enc.Priority()]
		require.False(t, dup, "priority %d shared by %s and %s", enc.Priority(), prev, key)
		seen[enc.Priority()] = key
	}
}

func TestRegistryLookup_Unknown(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Lookup("base64/no-such-dialect")
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)

	_, err = reg.Decode("nope/nope", []byte("41"))
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)
	_, err = reg.Encode("nope/nope", []byte("41"))
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)
}

func TestRegistryDecodeChain(t *testing.T) {
	reg := NewRegistry()

	// "attack at dawn" encoded as base64/rfc3548 then percent/lower.
	blob := []byte("YXR0YWNrIGF0IGRhd24%3d")

	got, err := reg.DecodeChain([]string{"percent/lower", "base64/rfc3548"}, blob)
	require.NoError(t, err)
	require.Equal(t, []byte("attack at dawn"), got)

	// Chain equals the manual stage-by-stage application.
	step, err := reg.Decode("percent/lower", blob)
	require.NoError(t, err)
	manual, err := reg.Decode("base64/rfc3548", step)
	require.NoError(t, err)
	require.Equal(t, manual, got)
}

func TestRegistryChain_FailFast(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.DecodeChain([]string{"hex/upper", "base64/rfc3548"}, []byte("4"))
	require.ErrorIs(t, err, errs.ErrMalformedInput)
	require.Contains(t, err.Error(), "stage 0 (hex/upper)")

	_, err = reg.DecodeChain([]string{"hex/upper", "bogus/key"}, []byte("41"))
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)
	require.Contains(t, err.Error(), "stage 1")
}

func TestRegistryChain_NoImplicitMirror(t *testing.T) {
	reg := NewRegistry()
	plain := []byte("attack at dawn")

	chain := []string{"base64/rfc3548", "percent/lower"}
	encoded, err := reg.EncodeChain(chain, plain)
	require.NoError(t, err)

	// The decode chain does not auto-reverse; the caller passes the keys
	// in the exact reverse order.
	reversed := []string{"percent/lower", "base64/rfc3548"}
	decoded, err := reg.DecodeChain(reversed, encoded)
	require.NoError(t, err)
	require.Equal(t, plain, decoded)
}

func TestRegistryRoundTrip_AllVariants(t *testing.T) {
	reg := NewRegistry()

	// Lengths span all residue classes mod 3, 4 and 8.
	payloads := make([][]byte, 0, 25)
	for n := 0; n < 25; n++ {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(i*89 + 17)
		}
		payloads = append(payloads, b)
	}

	for _, key := range reg.Keys() {
		t.Run(key, func(t *testing.T) {
			for _, b := range payloads {
				encoded, err := reg.Encode(key, b)
				require.NoError(t, err)

				decoded, err := reg.Decode(key, encoded)
				require.NoError(t, err)
				require.Equal(t, b, decoded, "len %d", len(b))
			}
		})
	}
}
