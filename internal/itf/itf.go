package itf

import (
	"encoding/json"
	"fmt"

	"github.com/vkazan/tlarun/internal/tlastate"
	"github.com/vkazan/tlarun/internal/value"
)

// Wrapped is one ITF-encoded value: {"#type": T, "#value": v}.
type Wrapped struct {
	Type  string `json:"#type"`
	Value any    `json:"#value"`
}

// Encode converts v into its ITF wrapping. Sets serialize as an element
// array in fingerprint-sorted order (already guaranteed by value.Set's
// own construction); functions whose domain isn't entirely strings
// serialize as a "map" of [key, value] pairs rather than an object,
// since an ITF object key must be a string and a TLA+ function's
// domain need not be.
func Encode(v value.Value) (Wrapped, error) {
	switch v.Kind() {
	case value.Int:
		n, _ := v.AsInt()
		return Wrapped{Type: "int", Value: n}, nil
	case value.Bool:
		b, _ := v.AsBool()
		return Wrapped{Type: "bool", Value: b}, nil
	case value.Str:
		s, _ := v.AsStr()
		return Wrapped{Type: "string", Value: s}, nil
	case value.Set:
		return encodeSet(v)
	case value.Tuple:
		return encodeTuple(v)
	case value.FcnRcd:
		if v.IsRecord() {
			return encodeRecord(v)
		}
		return encodeMap(v)
	default:
		return Wrapped{}, fmt.Errorf("itf: value of kind %s has no ITF encoding", v.Kind())
	}
}

func encodeSet(v value.Value) (Wrapped, error) {
	elems, err := v.Elems()
	if err != nil {
		return Wrapped{}, err
	}
	out := make([]Wrapped, len(elems))
	for i, e := range elems {
		w, err := Encode(e)
		if err != nil {
			return Wrapped{}, fmt.Errorf("itf: encoding set element %d: %w", i, err)
		}
		out[i] = w
	}
	return Wrapped{Type: "set", Value: out}, nil
}

func encodeTuple(v value.Value) (Wrapped, error) {
	n, err := v.Length()
	if err != nil {
		return Wrapped{}, err
	}
	out := make([]Wrapped, n)
	for i := 0; i < n; i++ {
		elem, err := v.At(i + 1)
		if err != nil {
			return Wrapped{}, err
		}
		w, err := Encode(elem)
		if err != nil {
			return Wrapped{}, fmt.Errorf("itf: encoding tuple element %d: %w", i+1, err)
		}
		out[i] = w
	}
	return Wrapped{Type: "tup", Value: out}, nil
}

func encodeRecord(v value.Value) (Wrapped, error) {
	dom, err := v.Domain()
	if err != nil {
		return Wrapped{}, err
	}
	fields, err := dom.Elems()
	if err != nil {
		return Wrapped{}, err
	}
	out := make(map[string]Wrapped, len(fields))
	for _, f := range fields {
		name, _ := f.AsStr()
		val, err := v.Apply(f)
		if err != nil {
			return Wrapped{}, err
		}
		w, err := Encode(val)
		if err != nil {
			return Wrapped{}, fmt.Errorf("itf: encoding record field %q: %w", name, err)
		}
		out[name] = w
	}
	return Wrapped{Type: "record", Value: out}, nil
}

func encodeMap(v value.Value) (Wrapped, error) {
	dom, err := v.Domain()
	if err != nil {
		return Wrapped{}, err
	}
	keys, err := dom.Elems()
	if err != nil {
		return Wrapped{}, err
	}
	out := make([][2]Wrapped, len(keys))
	for i, k := range keys {
		kw, err := Encode(k)
		if err != nil {
			return Wrapped{}, fmt.Errorf("itf: encoding map key %d: %w", i, err)
		}
		rv, err := v.Apply(k)
		if err != nil {
			return Wrapped{}, err
		}
		vw, err := Encode(rv)
		if err != nil {
			return Wrapped{}, fmt.Errorf("itf: encoding map value %d: %w", i, err)
		}
		out[i] = [2]Wrapped{kw, vw}
	}
	return Wrapped{Type: "map", Value: out}, nil
}

// EncodeState encodes every variable in s into the ITF object a state
// serializes to, per §6: a JSON object mapping variable name to its
// ITF value. encoding/json sorts map keys when marshaling, which is
// what gives "keys sorted" here rather than any explicit sort step.
func EncodeState(s tlastate.State) (map[string]Wrapped, error) {
	names := s.Names()
	out := make(map[string]Wrapped, len(names))
	for _, name := range names {
		v, _ := s.Get(name)
		w, err := Encode(v)
		if err != nil {
			return nil, fmt.Errorf("itf: encoding variable %q: %w", name, err)
		}
		out[name] = w
	}
	return out, nil
}

// MarshalState renders s as ITF JSON.
func MarshalState(s tlastate.State) ([]byte, error) {
	m, err := EncodeState(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// MarshalStates renders a set of states as a JSON array of ITF state
// objects, the shape §6's "outputs: sets of States" takes on the wire.
func MarshalStates(states []tlastate.State) ([]byte, error) {
	out := make([]map[string]Wrapped, len(states))
	for i, s := range states {
		m, err := EncodeState(s)
		if err != nil {
			return nil, fmt.Errorf("itf: encoding state %d: %w", i, err)
		}
		out[i] = m
	}
	return json.Marshal(out)
}
