package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vkazan/tlarun/internal/tlaerr"
)

// Kind identifies which of the §3 value variants a Value holds.
type Kind int

const (
	Int Kind = iota
	Bool
	Str
	Set
	Tuple
	FcnRcd
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "Int"
	case Bool:
		return "Bool"
	case Str:
		return "Str"
	case Set:
		return "Set"
	case Tuple:
		return "Tuple"
	case FcnRcd:
		return "FcnRcd"
	default:
		return "?"
	}
}

// Value is the single, immutable representation every evaluator branch
// computes with. Exactly one group of fields is meaningful depending on
// Kind; the rest are zero.
type Value struct {
	kind Kind

	i int64
	b bool
	s string

	elems []Value // Set: de-duplicated, fingerprint-sorted

	tup []Value // Tuple: ordered, 1-indexed by convention

	dom      []Value // FcnRcd: domain, parallel to rng
	rng      []Value // FcnRcd: range
	isRecord bool    // FcnRcd: true iff every domain element is a Str

	fp uint64
}

// NewInt constructs an integer value.
func NewInt(n int64) Value {
	return Value{kind: Int, i: n, fp: hashInt(n)}
}

// NewBool constructs a boolean value.
func NewBool(b bool) Value {
	tag := uint64(0)
	if b {
		tag = 1
	}
	return Value{kind: Bool, b: b, fp: hashUint64s(tagBool, tag)}
}

// NewStr constructs a string value.
func NewStr(s string) Value {
	return Value{kind: Str, s: s, fp: hashString(tagStr, s)}
}

// True and False are the two Bool values BOOLEAN ranges over.
var (
	True  = NewBool(true)
	False = NewBool(false)
)

func (v Value) Kind() Kind { return v.kind }

// Fingerprint returns v's canonical hash. It is invariant under
// permutation of Set elements and of FcnRcd domain ordering, and is the
// sole basis for equality used anywhere in the evaluator.
func (v Value) Fingerprint() uint64 { return v.fp }

// Equal reports fingerprint equality, never structural equality — two
// sets built from elements added in different orders are Equal.
func (v Value) Equal(other Value) bool { return v.fp == other.fp }

// Less gives a deterministic total order over values by fingerprint, the
// same order CHOOSE iterates a domain in regardless of construction history.
func (v Value) Less(other Value) bool { return v.fp < other.fp }

func (v Value) AsInt() (int64, bool) {
	if v.kind != Int {
		return 0, false
	}
	return v.i, true
}

func (v Value) AsBool() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsStr() (string, bool) {
	if v.kind != Str {
		return "", false
	}
	return v.s, true
}

// IsRecord reports whether a FcnRcd value's domain is entirely strings —
// the only distinction between a "function" and a "record" in this model.
func (v Value) IsRecord() bool { return v.kind == FcnRcd && v.isRecord }

func typeMismatch(op string, want Kind, got Value) error {
	return tlaerr.New(tlaerr.KindTypeMismatch, "%s expects %s, got %s (%s)", op, want, got.kind, got.String())
}

// String renders v the way TLA+ itself would print it, used for error
// messages and debug logging — not for fingerprinting or equality.
func (v Value) String() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Bool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case Str:
		return `"` + v.s + `"`
	case Set:
		parts := make([]string, len(v.elems))
		for i, e := range v.elems {
			parts[i] = e.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case Tuple:
		parts := make([]string, len(v.tup))
		for i, e := range v.tup {
			parts[i] = e.String()
		}
		return "<<" + strings.Join(parts, ", ") + ">>"
	case FcnRcd:
		if v.isRecord {
			// Records print field-sorted for readability; this has no
			// bearing on the fingerprint, which is order-independent.
			type kv struct {
				k string
				v Value
			}
			pairs := make([]kv, len(v.dom))
			for i, d := range v.dom {
				s, _ := d.AsStr()
				pairs[i] = kv{s, v.rng[i]}
			}
			sort.Slice(pairs, func(i, j int) bool { return pairs[i].k < pairs[j].k })
			parts := make([]string, len(pairs))
			for i, p := range pairs {
				parts[i] = fmt.Sprintf("%s |-> %s", p.k, p.v.String())
			}
			return "[" + strings.Join(parts, ", ") + "]"
		}
		parts := make([]string, len(v.dom))
		for i := range v.dom {
			parts[i] = fmt.Sprintf("%s :> %s", v.dom[i].String(), v.rng[i].String())
		}
		return "(" + strings.Join(parts, " @@ ") + ")"
	default:
		return "?"
	}
}
