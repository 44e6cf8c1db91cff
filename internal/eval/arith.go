package eval

import (
	"github.com/vkazan/tlarun/internal/syntax"
	"github.com/vkazan/tlarun/internal/tlaerr"
	"github.com/vkazan/tlarun/internal/value"
)

func arithSymbol(k syntax.Kind) string {
	switch k {
	case syntax.KindAdd:
		return "+"
	case syntax.KindSub:
		return "-"
	case syntax.KindMul:
		return "*"
	case syntax.KindMod:
		return "%"
	default:
		return "?"
	}
}

func asInt(n *syntax.Node, v value.Value, op string) (int64, error) {
	i, ok := v.AsInt()
	if !ok {
		return 0, atPos(n, tlaerr.New(tlaerr.KindTypeMismatch, "%s expects an integer, got %s", op, v.Kind()))
	}
	return i, nil
}

func evalArith(ctx Context, n *syntax.Node) ([]Branch, error) {
	pairs, err := evalPair(ctx, n.Children[0], n.Children[1])
	if err != nil {
		return nil, err
	}
	op := arithSymbol(n.Kind)
	out := make([]Branch, len(pairs))
	for i, p := range pairs {
		l, err := asInt(n, p.L, op)
		if err != nil {
			return nil, err
		}
		r, err := asInt(n, p.R, op)
		if err != nil {
			return nil, err
		}
		var result int64
		switch n.Kind {
		case syntax.KindAdd:
			result = l + r
		case syntax.KindSub:
			result = l - r
		case syntax.KindMul:
			result = l * r
		case syntax.KindMod:
			if r == 0 {
				return nil, atPos(n, tlaerr.New(tlaerr.KindDomain, "modulo by zero"))
			}
			result = l % r
		}
		out[i] = Branch{Value: value.NewInt(result), Ctx: p.Ctx}
	}
	return out, nil
}

func evalNeg(ctx Context, n *syntax.Node) ([]Branch, error) {
	branches, err := Eval(ctx, n.Children[0])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(branches))
	for i, b := range branches {
		iv, err := asInt(n, b.Value, "unary -")
		if err != nil {
			return nil, err
		}
		out[i] = Branch{Value: value.NewInt(-iv), Ctx: b.Ctx}
	}
	return out, nil
}

func evalRange(ctx Context, n *syntax.Node) ([]Branch, error) {
	pairs, err := evalPair(ctx, n.Children[0], n.Children[1])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(pairs))
	for i, p := range pairs {
		lo, err := asInt(n, p.L, "..")
		if err != nil {
			return nil, err
		}
		hi, err := asInt(n, p.R, "..")
		if err != nil {
			return nil, err
		}
		elems := make([]value.Value, 0, max64(0, hi-lo+1))
		for v := lo; v <= hi; v++ {
			elems = append(elems, value.NewInt(v))
		}
		out[i] = Branch{Value: value.NewSet(elems...), Ctx: p.Ctx}
	}
	return out, nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func evalSetBinary(ctx Context, n *syntax.Node) ([]Branch, error) {
	pairs, err := evalPair(ctx, n.Children[0], n.Children[1])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(pairs))
	for i, p := range pairs {
		var result value.Value
		var err error
		switch n.Kind {
		case syntax.KindCup:
			result, err = p.L.Union(p.R)
		case syntax.KindCap:
			result, err = p.L.Intersect(p.R)
		case syntax.KindSetMinus:
			result, err = p.L.Diff(p.R)
		case syntax.KindCartesian:
			result, err = cartesianProduct(p.L, p.R)
		}
		if err != nil {
			return nil, atPos(n, err)
		}
		out[i] = Branch{Value: result, Ctx: p.Ctx}
	}
	return out, nil
}

func cartesianProduct(a, b value.Value) (value.Value, error) {
	aElems, err := a.Elems()
	if err != nil {
		return value.Value{}, err
	}
	bElems, err := b.Elems()
	if err != nil {
		return value.Value{}, err
	}
	var out []value.Value
	for _, ae := range aElems {
		for _, be := range bElems {
			out = append(out, value.NewTuple(ae, be))
		}
	}
	return value.NewSet(out...), nil
}

func evalSubsetOf(ctx Context, n *syntax.Node) ([]Branch, error) {
	branches, err := Eval(ctx, n.Children[0])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(branches))
	for i, b := range branches {
		elems, err := b.Value.Elems()
		if err != nil {
			return nil, atPos(n, err)
		}
		powerset := powersetOf(elems)
		out[i] = Branch{Value: value.NewSet(powerset...), Ctx: b.Ctx}
	}
	return out, nil
}

func powersetOf(elems []value.Value) []value.Value {
	subsets := []value.Value{value.NewSet()}
	for _, e := range elems {
		extended := make([]value.Value, len(subsets))
		copy(extended, subsets)
		for _, s := range subsets {
			existing, _ := s.Elems()
			extended = append(extended, value.NewSet(append(append([]value.Value{}, existing...), e)...))
		}
		subsets = extended
	}
	return subsets
}

func evalDomainOf(ctx Context, n *syntax.Node) ([]Branch, error) {
	branches, err := Eval(ctx, n.Children[0])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(branches))
	for i, b := range branches {
		fn, err := coerceFcn(b.Value)
		if err != nil {
			return nil, atPos(n, err)
		}
		dom, err := fn.Domain()
		if err != nil {
			return nil, atPos(n, err)
		}
		out[i] = Branch{Value: dom, Ctx: b.Ctx}
	}
	return out, nil
}

func evalCardinality(ctx Context, n *syntax.Node) ([]Branch, error) {
	branches, err := Eval(ctx, n.Children[0])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(branches))
	for i, b := range branches {
		size, err := b.Value.Size()
		if err != nil {
			return nil, atPos(n, err)
		}
		out[i] = Branch{Value: value.NewInt(int64(size)), Ctx: b.Ctx}
	}
	return out, nil
}
