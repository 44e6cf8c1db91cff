// Package value implements the tagged value universe the evaluator
// computes over: Int, Bool, Str, Set, Tuple, and FcnRcd (function/record).
//
// Every Value carries a canonical Fingerprint, a hash invariant under
// permutation of set elements and of function/record domain ordering.
// Fingerprints are the sole basis for equality and for set/state
// de-duplication — the evaluator must never compare values by walking
// their structure, because a Set's or FcnRcd's internal slice order is
// unspecified.
//
// Values are immutable. Every operation that looks like a mutation
// (Set.union, FcnRcd.update, Tuple.append, ...) returns a new Value and
// leaves its receiver untouched, the same copy-on-write discipline the
// evaluator's Context uses for forking branches.
package value
