// Package hclconst parses an optional "-const-file" convenience file — a
// flat HCL attribute-syntax file such as:
//
//	N = 2
//	M = N * 2
//
// — and evaluates it into a map of constant name to value.Value, per
// SPEC_FULL.md's domain-stack entry for hcl/v2 and go-cty. This is a
// second, friendlier way to supply constants alongside the spec-mandated
// "-const name=expr" raw-TLA+-expression-text flag; it is not part of the
// core interpreter and nothing in internal/eval or internal/enumerate
// depends on it.
//
// cty.Value is deliberately not reused as the evaluator's own value
// representation: a TLA+ function/record's domain can be an arbitrary
// set of values, not just strings, which cty's object/map types cannot
// express. This package converts a decoded cty.Value into a value.Value
// and then gets out of the way.
package hclconst
