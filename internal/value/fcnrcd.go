package value

import "sort"

// NewFunction builds a FcnRcd value from parallel domain/range slices. The
// domain need not be pre-sorted; fingerprinting canonicalizes it. dom and
// rng must have equal length.
func NewFunction(dom, rng []Value) (Value, error) {
	if len(dom) != len(rng) {
		return Value{}, newDomainError("function domain/range length mismatch: %d vs %d", len(dom), len(rng))
	}
	return buildFcnRcd(dom, rng, allStrings(dom)), nil
}

// NewRecord builds a FcnRcd value whose domain is entirely strings — a
// TLA+ record — from field names and their values. names and vals must
// have equal length.
func NewRecord(names []string, vals []Value) (Value, error) {
	if len(names) != len(vals) {
		return Value{}, newDomainError("record field/value length mismatch: %d vs %d", len(names), len(vals))
	}
	dom := make([]Value, len(names))
	for i, n := range names {
		dom[i] = NewStr(n)
	}
	return buildFcnRcd(dom, vals, true), nil
}

func allStrings(dom []Value) bool {
	for _, d := range dom {
		if d.kind != Str {
			return false
		}
	}
	return len(dom) > 0
}

type fcnPair struct {
	d, r Value
}

// buildFcnRcd canonicalizes (dom, rng) pairs by sorting on domain
// fingerprint, de-duplicating exact repeats (last write wins, matching
// [x \in S |-> e] construction order), and computing the
// permutation-invariant fingerprint over the resulting pairs.
func buildFcnRcd(dom, rng []Value, isRecord bool) Value {
	pairs := make([]fcnPair, len(dom))
	for i := range dom {
		pairs[i] = fcnPair{dom[i], rng[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].d.fp < pairs[j].d.fp })

	deduped := pairs[:0:0]
	for i, p := range pairs {
		if i > 0 && p.d.fp == pairs[i-1].d.fp {
			deduped[len(deduped)-1] = p
			continue
		}
		deduped = append(deduped, p)
	}

	outDom := make([]Value, len(deduped))
	outRng := make([]Value, len(deduped))
	tag := tagFcn
	if isRecord {
		tag = tagRecord
	}
	fps := make([]uint64, 0, 2*len(deduped))
	for i, p := range deduped {
		outDom[i] = p.d
		outRng[i] = p.r
		fps = append(fps, p.d.fp, p.r.fp)
	}
	return Value{
		kind:     FcnRcd,
		dom:      outDom,
		rng:      outRng,
		isRecord: isRecord,
		fp:       hashUint64s(tag, fps...),
	}
}

// Domain returns a FcnRcd's domain as a Set.
func (v Value) Domain() (Value, error) {
	if v.kind != FcnRcd {
		return Value{}, typeMismatch("DOMAIN", FcnRcd, v)
	}
	return NewSet(v.dom...), nil
}

// Values returns a FcnRcd's range as a slice, one value per domain
// element in the FcnRcd's internal order (not a TLA+ builtin).
func (v Value) Values() ([]Value, error) {
	if v.kind != FcnRcd {
		return nil, typeMismatch("Values", FcnRcd, v)
	}
	return v.rng, nil
}

// Apply returns f[arg], the value f maps arg to.
func (v Value) Apply(arg Value) (Value, error) {
	if v.kind != FcnRcd {
		return Value{}, typeMismatch("function application", FcnRcd, v)
	}
	for i, d := range v.dom {
		if d.fp == arg.fp {
			return v.rng[i], nil
		}
	}
	return Value{}, newDomainError("%s is not in the domain of %s", arg.String(), v.String())
}

// ApplyPath walks successive Apply calls, the semantics of f[a][b]...
// chained indexing / nested record field access (f.a.b desugars to this).
func (v Value) ApplyPath(args ...Value) (Value, error) {
	cur := v
	for _, a := range args {
		next, err := cur.Apply(a)
		if err != nil {
			return Value{}, err
		}
		cur = next
	}
	return cur, nil
}

// Update returns a copy of v with f[arg] set to newVal, leaving arguments
// outside v's existing domain to be added — the [EXCEPT !<domain>] base
// case once the except-path has bottomed out.
func (v Value) Update(arg, newVal Value) (Value, error) {
	if v.kind != FcnRcd {
		return Value{}, typeMismatch("EXCEPT", FcnRcd, v)
	}
	dom := make([]Value, len(v.dom), len(v.dom)+1)
	copy(dom, v.dom)
	rng := make([]Value, len(v.rng), len(v.rng)+1)
	copy(rng, v.rng)
	for i, d := range dom {
		if d.fp == arg.fp {
			rng[i] = newVal
			return buildFcnRcd(dom, rng, v.isRecord), nil
		}
	}
	dom = append(dom, arg)
	rng = append(rng, newVal)
	return buildFcnRcd(dom, rng, v.isRecord && arg.kind == Str), nil
}

// UpdatePath applies Update at the end of a chain of Apply steps along
// path, the semantics of [f EXCEPT ![a][b] = newVal].
func (v Value) UpdatePath(path []Value, newVal Value) (Value, error) {
	if len(path) == 0 {
		return newVal, nil
	}
	if len(path) == 1 {
		return v.Update(path[0], newVal)
	}
	head := path[0]
	inner, err := v.Apply(head)
	if err != nil {
		return Value{}, err
	}
	updatedInner, err := inner.UpdatePath(path[1:], newVal)
	if err != nil {
		return Value{}, err
	}
	return v.Update(head, updatedInner)
}

// Compose returns the function @@ operator: f's bindings take precedence,
// g supplies any domain element f doesn't define.
func (v Value) Compose(g Value) (Value, error) {
	if v.kind != FcnRcd || g.kind != FcnRcd {
		return Value{}, typeMismatch("@@", FcnRcd, pickWrongFcn(v, g))
	}
	dom := make([]Value, 0, len(v.dom)+len(g.dom))
	rng := make([]Value, 0, len(v.dom)+len(g.dom))
	seen := make(map[uint64]struct{}, len(v.dom))
	for i, d := range v.dom {
		dom = append(dom, d)
		rng = append(rng, v.rng[i])
		seen[d.fp] = struct{}{}
	}
	for i, d := range g.dom {
		if _, ok := seen[d.fp]; ok {
			continue
		}
		dom = append(dom, d)
		rng = append(rng, g.rng[i])
	}
	return buildFcnRcd(dom, rng, v.isRecord && g.isRecord), nil
}

// ToTuple reinterprets a FcnRcd over domain 1..n as a Tuple, the inverse
// of Tuple.ToFcn.
func (v Value) ToTuple() (Value, error) {
	if v.kind != FcnRcd {
		return Value{}, typeMismatch("ToTuple", FcnRcd, v)
	}
	n := len(v.dom)
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		elem, err := v.Apply(NewInt(int64(i + 1)))
		if err != nil {
			return Value{}, newDomainError("not a 1..%d indexed function: %v", n, err)
		}
		out[i] = elem
	}
	return NewTuple(out...), nil
}

func pickWrongFcn(a, b Value) Value {
	if a.kind != FcnRcd {
		return a
	}
	return b
}
