package dialect

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/blobdial/errs"
)

// Compression layers are registered like any other dialect so that chained
// transforms can reverse compression-wrapped tokens (a SAML redirect
// binding is raw-deflate under base64 under percent). Their charset is
// unconstrained; classification is structural, by frame magic where one
// exists.

// gzipDialect wraps the gzip member format.
type gzipDialect struct {
	variant
}

var _ Encoding = (*gzipDialect)(nil)

func newGzip(dialectName string, priority int) *gzipDialect {
	return &gzipDialect{variant{name: "gzip", dialect: dialectName, priority: priority}}
}

func (e *gzipDialect) Classify(blob []byte) Result {
	if len(blob) >= 2 && blob[0] == 0x1f && blob[1] == 0x8b {
		return Match
	}

	return NoMatch
}

func (e *gzipDialect) Decode(blob []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	if err := r.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}

	return out, nil
}

func (e *gzipDialect) Encode(blob []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(blob); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// zlibDialect wraps the zlib stream format ("standard") or headerless
// deflate ("raw-deflate").
type zlibDialect struct {
	variant
	raw bool
}

var _ Encoding = (*zlibDialect)(nil)

func newZlib(dialectName string, priority int) *zlibDialect {
	return &zlibDialect{
		variant: variant{name: "zlib", dialect: dialectName, priority: priority},
		raw:     dialectName == "raw-deflate",
	}
}

func (e *zlibDialect) Classify(blob []byte) Result {
	if e.raw {
		// Headerless deflate carries no magic; any blob could be one.
		return Ambiguous
	}

	// CMF low nibble 8 selects deflate; the CMF/FLG pair is a multiple
	// of 31.
	if len(blob) >= 2 && blob[0]&0x0f == 8 && (uint(blob[0])<<8|uint(blob[1]))%31 == 0 {
		return Match
	}

	return NoMatch
}

func (e *zlibDialect) Decode(blob []byte) ([]byte, error) {
	var r io.ReadCloser
	var err error
	if e.raw {
		r = flate.NewReader(bytes.NewReader(blob))
	} else {
		r, err = zlib.NewReader(bytes.NewReader(blob))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
		}
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	if err := r.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}

	return out, nil
}

func (e *zlibDialect) Encode(blob []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser
	var err error
	if e.raw {
		w, err = flate.NewWriter(&buf, flate.DefaultCompression)
	} else {
		w, err = zlib.NewWriterLevel(&buf, zlib.DefaultCompression)
	}
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(blob); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// zstdDialect wraps the Zstandard frame format. The codec backend is
// selected at build time: valyala/gozstd when cgo is available,
// klauspost/compress/zstd otherwise.
type zstdDialect struct {
	variant
}

var _ Encoding = (*zstdDialect)(nil)

func newZstd(dialectName string, priority int) *zstdDialect {
	return &zstdDialect{variant{name: "zstd", dialect: dialectName, priority: priority}}
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

func (e *zstdDialect) Classify(blob []byte) Result {
	if len(blob) >= 4 && bytes.Equal(blob[:4], zstdMagic) {
		return Match
	}

	return NoMatch
}

func (e *zstdDialect) Decode(blob []byte) ([]byte, error) {
	out, err := zstdDecompress(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}

	return out, nil
}

func (e *zstdDialect) Encode(blob []byte) ([]byte, error) {
	return zstdCompress(blob)
}

// lz4Dialect wraps the LZ4 frame format, which is self-describing and
// carries a magic number (the block format does not and cannot be
// classified or sized without out-of-band metadata).
type lz4Dialect struct {
	variant
}

var _ Encoding = (*lz4Dialect)(nil)

func newLZ4(dialectName string, priority int) *lz4Dialect {
	return &lz4Dialect{variant{name: "lz4", dialect: dialectName, priority: priority}}
}

var lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}

func (e *lz4Dialect) Classify(blob []byte) Result {
	if len(blob) >= 4 && bytes.Equal(blob[:4], lz4Magic) {
		return Match
	}

	return NoMatch
}

func (e *lz4Dialect) Decode(blob []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(blob))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}

	return out, nil
}

func (e *lz4Dialect) Encode(blob []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(blob); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
