//go:build cgo

package dialect

import (
	"github.com/valyala/gozstd"
)

func zstdCompress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

func zstdDecompress(data []byte) ([]byte, error) {
	return gozstd.Decompress(nil, data)
}
