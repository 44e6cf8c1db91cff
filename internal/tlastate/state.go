package tlastate

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/vkazan/tlarun/internal/value"
)

// primedSuffix marks a key as the tentative successor-state copy of a
// declared variable, e.g. "x'" alongside "x".
const primedSuffix = "'"

// State maps declared variable names (and, transiently, their primed
// counterparts) to Values.
type State struct {
	vars map[string]value.Value
}

// Empty returns a State with no bindings.
func Empty() State {
	return State{vars: map[string]value.Value{}}
}

// New builds a State from an initial set of unprimed bindings.
func New(bindings map[string]value.Value) State {
	s := Empty()
	for k, v := range bindings {
		s.vars[k] = v
	}
	return s
}

// Has reports whether name (which may itself carry a trailing "'") is
// bound in s.
func (s State) Has(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// Get returns the value bound to name, and whether it was present.
func (s State) Get(name string) (value.Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// WithVar returns a copy of s with name bound to v, leaving s untouched.
func (s State) WithVar(name string, v value.Value) State {
	out := make(map[string]value.Value, len(s.vars)+1)
	for k, existing := range s.vars {
		out[k] = existing
	}
	out[name] = v
	return State{vars: out}
}

// Names returns the unprimed variable names currently bound, sorted.
func (s State) Names() []string {
	var out []string
	for k := range s.vars {
		if !strings.HasSuffix(k, primedSuffix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Deprime renames each primed entry back to its unprimed name, replacing
// the unprimed entry of that name, producing the successor state that
// next-state evaluation committed to. Unprimed entries are not all
// dropped: a variable with no primed entry (no disjunct constrained it)
// keeps its prior unprimed value.
func (s State) Deprime() State {
	out := make(map[string]value.Value, len(s.vars))
	for k, v := range s.vars {
		if strings.HasSuffix(k, primedSuffix) {
			out[strings.TrimSuffix(k, primedSuffix)] = v
		}
	}
	for k, v := range s.vars {
		if strings.HasSuffix(k, primedSuffix) {
			continue
		}
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return State{vars: out}
}

// Fingerprint returns a hash over (name, value-fingerprint) pairs sorted
// by name, used for state de-duplication during enumeration. Only
// unprimed entries participate — a State is compared by the assignment
// it represents, not by scratch work still in progress on primed keys.
func (s State) Fingerprint() uint64 {
	names := s.Names()
	h := fnv.New64a()
	buf := make([]byte, 8)
	for _, name := range names {
		h.Write([]byte(name))
		binary.LittleEndian.PutUint64(buf, s.vars[name].Fingerprint())
		h.Write(buf)
	}
	return h.Sum64()
}
