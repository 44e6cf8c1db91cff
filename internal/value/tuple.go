package value

// NewTuple builds a Tuple value from elems, in order. Unlike Set, element
// order is part of a Tuple's identity and is never resorted.
func NewTuple(elems ...Value) Value {
	tup := make([]Value, len(elems))
	copy(tup, elems)
	fps := make([]uint64, len(tup))
	for i, e := range tup {
		fps[i] = e.fp
	}
	return Value{kind: Tuple, tup: tup, fp: hashUint64s(tagTuple, fps...)}
}

// Length returns the Tuple's arity.
func (v Value) Length() (int, error) {
	if v.kind != Tuple {
		return 0, typeMismatch("Len", Tuple, v)
	}
	return len(v.tup), nil
}

// At returns the 1-indexed element of a Tuple, the TLA+ convention.
func (v Value) At(i int) (Value, error) {
	if v.kind != Tuple {
		return Value{}, typeMismatch("Tuple index", Tuple, v)
	}
	if i < 1 || i > len(v.tup) {
		return Value{}, domainErrorf("index %d out of range for tuple of length %d", i, len(v.tup))
	}
	return v.tup[i-1], nil
}

// Head returns the first element of a non-empty Tuple.
func (v Value) Head() (Value, error) {
	return v.At(1)
}

// Tail returns v with its first element removed.
func (v Value) Tail() (Value, error) {
	if v.kind != Tuple {
		return Value{}, typeMismatch("Tail", Tuple, v)
	}
	if len(v.tup) == 0 {
		return Value{}, domainErrorf("Tail of empty tuple")
	}
	return NewTuple(v.tup[1:]...), nil
}

// Append returns v with elem added to the end.
func (v Value) Append(elem Value) (Value, error) {
	if v.kind != Tuple {
		return Value{}, typeMismatch("Append", Tuple, v)
	}
	out := make([]Value, len(v.tup)+1)
	copy(out, v.tup)
	out[len(v.tup)] = elem
	return NewTuple(out...), nil
}

// Concat returns v followed by other.
func (v Value) Concat(other Value) (Value, error) {
	if v.kind != Tuple || other.kind != Tuple {
		return Value{}, typeMismatch("\\o", Tuple, pickWrongTuple(v, other))
	}
	out := make([]Value, 0, len(v.tup)+len(other.tup))
	out = append(out, v.tup...)
	out = append(out, other.tup...)
	return NewTuple(out...), nil
}

// ToFcn reinterprets a Tuple as a FcnRcd over domain 1..Len(v), the view
// used when a sequence operator needs function application semantics.
func (v Value) ToFcn() (Value, error) {
	if v.kind != Tuple {
		return Value{}, typeMismatch("ToFcn", Tuple, v)
	}
	dom := make([]Value, len(v.tup))
	for i := range v.tup {
		dom[i] = NewInt(int64(i + 1))
	}
	return NewFunction(dom, v.tup)
}

func pickWrongTuple(a, b Value) Value {
	if a.kind != Tuple {
		return a
	}
	return b
}

func domainErrorf(format string, args ...any) error {
	return newDomainError(format, args...)
}
