package value

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
)

// tag bytes disambiguate otherwise-colliding encodings across variants
// (e.g. the empty Set vs. the empty Tuple).
const (
	tagInt byte = iota
	tagBool
	tagStr
	tagSet
	tagTuple
	tagFcn
	tagRecord
)

// hashUint64s folds a tag and a sequence of child fingerprints into one
// fingerprint. Children must already be in canonical (sorted, for
// unordered collections) order by the time they reach here.
func hashUint64s(tag byte, parts ...uint64) uint64 {
	h := fnv.New64a()
	h.Write([]byte{tag})
	buf := make([]byte, 8)
	for _, p := range parts {
		binary.LittleEndian.PutUint64(buf, p)
		h.Write(buf)
	}
	return h.Sum64()
}

func hashString(tag byte, s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte{tag})
	h.Write([]byte(s))
	return h.Sum64()
}

func hashInt(n int64) uint64 {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(n))
	h := fnv.New64a()
	h.Write([]byte{tagInt})
	h.Write(buf)
	return h.Sum64()
}

// sortedFingerprints returns the fingerprints of vs sorted ascending, the
// canonical order used to make Set/function hashing invariant under
// construction-time permutation.
func sortedFingerprints(vs []Value) []uint64 {
	out := make([]uint64, len(vs))
	for i, v := range vs {
		out[i] = v.Fingerprint()
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
