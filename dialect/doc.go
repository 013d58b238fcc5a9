// Package dialect implements the encoding-variant catalogue used for
// analyzing opaque binary blobs captured during protocol analysis.
//
// An encoding variant is the concrete rule set for one (family, dialect)
// pair: its structural charset, tolerated incidental characters, padding
// policy, and encode/decode/classify operations. The built-in catalogue
// covers many real-world dialects of hex, base32, base64 and
// percent-encoding, plus the compression layers (gzip, zlib, raw deflate,
// zstd, lz4) commonly found beneath them in captured tokens.
//
// Variants are assembled into an immutable, priority-ordered Registry built
// once at construction; lower priority values mark more specific dialects
// and are preferred when several variants match the same blob.
//
// All types in this package are immutable after construction and safe for
// concurrent use without locking.
package dialect
