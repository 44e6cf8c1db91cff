package eval

import (
	"github.com/vkazan/tlarun/internal/syntax"
	"github.com/vkazan/tlarun/internal/value"
)

// These built-ins (§4.5's "Sequences") accept either a Tuple or a FcnRcd
// with an integral domain. value.Value's Length/Head/Tail/Append/Concat
// only know about Tuple, so coerceSeq views a FcnRcd as a Tuple first via
// the same ToTuple conversion Tuple.ToFcn inverts.
func coerceSeq(v value.Value) (value.Value, error) {
	if v.Kind() == value.FcnRcd {
		return v.ToTuple()
	}
	return v, nil
}

func evalLen(ctx Context, n *syntax.Node) ([]Branch, error) {
	branches, err := Eval(ctx, n.Children[0])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(branches))
	for i, b := range branches {
		seq, err := coerceSeq(b.Value)
		if err != nil {
			return nil, atPos(n, err)
		}
		l, err := seq.Length()
		if err != nil {
			return nil, atPos(n, err)
		}
		out[i] = Branch{Value: value.NewInt(int64(l)), Ctx: b.Ctx}
	}
	return out, nil
}

func evalHead(ctx Context, n *syntax.Node) ([]Branch, error) {
	branches, err := Eval(ctx, n.Children[0])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(branches))
	for i, b := range branches {
		seq, err := coerceSeq(b.Value)
		if err != nil {
			return nil, atPos(n, err)
		}
		h, err := seq.Head()
		if err != nil {
			return nil, atPos(n, err)
		}
		out[i] = Branch{Value: h, Ctx: b.Ctx}
	}
	return out, nil
}

func evalTail(ctx Context, n *syntax.Node) ([]Branch, error) {
	branches, err := Eval(ctx, n.Children[0])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(branches))
	for i, b := range branches {
		seq, err := coerceSeq(b.Value)
		if err != nil {
			return nil, atPos(n, err)
		}
		t, err := seq.Tail()
		if err != nil {
			return nil, atPos(n, err)
		}
		out[i] = Branch{Value: t, Ctx: b.Ctx}
	}
	return out, nil
}

func evalAppend(ctx Context, n *syntax.Node) ([]Branch, error) {
	pairs, err := evalPair(ctx, n.Children[0], n.Children[1])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(pairs))
	for i, p := range pairs {
		seq, err := coerceSeq(p.L)
		if err != nil {
			return nil, atPos(n, err)
		}
		r, err := seq.Append(p.R)
		if err != nil {
			return nil, atPos(n, err)
		}
		out[i] = Branch{Value: r, Ctx: p.Ctx}
	}
	return out, nil
}

func evalConcat(ctx Context, n *syntax.Node) ([]Branch, error) {
	pairs, err := evalPair(ctx, n.Children[0], n.Children[1])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(pairs))
	for i, p := range pairs {
		l, err := coerceSeq(p.L)
		if err != nil {
			return nil, atPos(n, err)
		}
		r, err := coerceSeq(p.R)
		if err != nil {
			return nil, atPos(n, err)
		}
		res, err := l.Concat(r)
		if err != nil {
			return nil, atPos(n, err)
		}
		out[i] = Branch{Value: res, Ctx: p.Ctx}
	}
	return out, nil
}

func evalTupleLit(ctx Context, n *syntax.Node) ([]Branch, error) {
	valSets, ctxs, err := evalList(ctx, n.Children)
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(valSets))
	for i, vals := range valSets {
		out[i] = Branch{Value: value.NewTuple(vals...), Ctx: ctxs[i]}
	}
	return out, nil
}
