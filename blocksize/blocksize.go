// Package blocksize derives candidate cipher and digest block sizes from
// the distribution of blob byte-lengths.
//
// A set of ciphertexts whose lengths are all multiples of 16 is a strong
// signal of a 128-bit block cipher; lengths aligned to 20 suggest SHA-1
// digests. The results feed downstream mode-of-operation analysis.
package blocksize

import "sort"

// commonSizes are the block sizes worth testing against observed lengths:
// 64-bit and 128-bit cipher blocks and the SHA-1 digest size.
var commonSizes = []int{8, 16, 20}

// DistinctLengths returns the sorted set of distinct byte lengths observed
// across blobs.
func DistinctLengths(blobs [][]byte) []int {
	seen := make(map[int]struct{}, len(blobs))
	for _, b := range blobs {
		seen[len(b)] = struct{}{}
	}

	lengths := make([]int, 0, len(seen))
	for n := range seen {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)

	return lengths
}

// GCD folds the greatest common divisor across lengths, seeded at 0
// (gcd(0, x) = x). It returns 0 for empty input. The result is the largest
// block size the observed lengths could all be aligned to.
func GCD(lengths []int) int {
	divisor := 0
	for _, n := range lengths {
		divisor = gcd(divisor, n)
	}

	return divisor
}

// Common returns the subset of {8, 16, 20} that every observed length is an
// exact multiple of.
func Common(lengths []int) []int {
	var out []int
	for _, size := range commonSizes {
		aligned := true
		for _, n := range lengths {
			if gcd(n, size) != size {
				aligned = false
				break
			}
		}
		if aligned {
			out = append(out, size)
		}
	}

	return out
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
