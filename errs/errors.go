// Package errs defines sentinel error values shared across blobdial packages.
//
// Call sites wrap these with context using fmt.Errorf("%w: ...", errs.ErrX)
// so callers can match the error kind with errors.Is while still seeing the
// detail that triggered it.
package errs

import "errors"

var (
	// ErrUnknownEncoding indicates a registry lookup with a key that does
	// not name any registered encoding dialect.
	ErrUnknownEncoding = errors.New("unknown encoding key")

	// ErrMalformedInput indicates input that cannot be decoded under the
	// selected dialect: a charset violation, an invalid length, bad or
	// misplaced padding, or a truncated/invalid escape sequence.
	ErrMalformedInput = errors.New("malformed input")
)
