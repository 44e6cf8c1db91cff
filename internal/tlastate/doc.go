// Package tlastate implements the evaluator's notion of State: a mapping
// from variable name to value, holding both unprimed entries (the current
// assignment) and, during next-state evaluation, primed entries (the
// tentative successor assignment under construction).
//
// States are immutable. WithVar returns a new State holding a copy of the
// receiver's entries, the same copy-on-write discipline the
// value package uses for its own operations — a Context can fork into
// many branches without any branch observing another's in-progress
// writes.
package tlastate
