// Package classify partitions blobs against the encoding-variant catalogue
// and combines classifications across multiple blobs that are assumed to
// share an encoding.
//
// Classification never fails: uncertainty is a first-class result
// (a variant lands in Possible), not an error. Only decoding fails.
package classify

import (
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/blobdial/dialect"
)

// Classification is the outcome of evaluating one blob against every
// registered variant: Likely holds the keys that matched definitively,
// Possible the keys that are structurally valid but underdetermined.
// Excluded variants appear in neither. Both slices are sorted.
type Classification struct {
	Likely   []string
	Possible []string
}

// Blob evaluates blob against every variant in reg.
//
// Parameters:
//   - reg: Registry to classify against
//   - blob: Raw bytes under analysis
//
// Returns:
//   - Classification: Sorted likely/possible key partitions
func Blob(reg *dialect.Registry, blob []byte) Classification {
	var cl Classification
	for _, key := range reg.Keys() {
		enc, err := reg.Lookup(key)
		if err != nil {
			continue
		}
		switch enc.Classify(blob) {
		case dialect.Match:
			cl.Likely = append(cl.Likely, key)
		case dialect.Ambiguous:
			cl.Possible = append(cl.Possible, key)
		case dialect.NoMatch:
		}
	}

	return cl
}

// Intersect combines classifications across blobs assumed to share an
// encoding and returns the surviving keys, sorted.
//
// A key survives when it was never excluded by any blob and earned a
// definite match from at least one: the running intersection of
// likely ∪ possible, minus the running intersection of possible alone.
// Keys that were merely possible in every blob never earned a match
// anywhere and are discarded. This lets ambiguous short samples be
// disambiguated by combining several samples.
//
// Protocol traces repeat identical tokens heavily, so per-blob
// classifications are memoized under the blob's xxHash64.
func Intersect(reg *dialect.Registry, blobs [][]byte) []string {
	surviving := keySet(reg.Keys())
	onlyPossible := keySet(reg.Keys())

	cache := make(map[uint64]Classification)
	for _, blob := range blobs {
		sum := xxhash.Sum64(blob)
		cl, ok := cache[sum]
		if !ok {
			cl = Blob(reg, blob)
			cache[sum] = cl
		}

		valid := make(map[string]struct{}, len(cl.Likely)+len(cl.Possible))
		for _, k := range cl.Likely {
			valid[k] = struct{}{}
		}
		for _, k := range cl.Possible {
			valid[k] = struct{}{}
		}
		intersectInto(surviving, valid)

		possible := make(map[string]struct{}, len(cl.Possible))
		for _, k := range cl.Possible {
			possible[k] = struct{}{}
		}
		intersectInto(onlyPossible, possible)
	}

	out := make([]string, 0, len(surviving))
	for k := range surviving {
		if _, ok := onlyPossible[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)

	return out
}

// BestGuess picks the surviving key with the minimal priority. Equal
// priorities (impossible among built-ins, whose priorities are unique)
// break toward the lexicographically smaller key. Keys not present in reg
// are ignored.
//
// Returns:
//   - string: Best key, or "" when keys is empty
//   - bool: Whether a best key was found
func BestGuess(reg *dialect.Registry, keys []string) (string, bool) {
	best := ""
	bestPriority := 0
	found := false
	for _, key := range keys {
		enc, err := reg.Lookup(key)
		if err != nil {
			continue
		}
		p := enc.Priority()
		if !found || p < bestPriority || (p == bestPriority && key < best) {
			best = key
			bestPriority = p
			found = true
		}
	}

	return best, found
}

func keySet(keys []string) map[string]struct{} {
	s := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}

	return s
}

func intersectInto(dst map[string]struct{}, other map[string]struct{}) {
	for k := range dst {
		if _, ok := other[k]; !ok {
			delete(dst, k)
		}
	}
}
