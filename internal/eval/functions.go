package eval

import (
	"github.com/vkazan/tlarun/internal/syntax"
	"github.com/vkazan/tlarun/internal/tlaerr"
	"github.com/vkazan/tlarun/internal/value"
)

// evalFunctionValue builds the FcnRcd a function literal or a named
// function definition denotes: enumerate every binder combination, apply
// body to each, and pair each domain element (the single bound value, or
// a Tuple of them when binders > 1, per §4.5) with its result.
func evalFunctionValue(ctx Context, binders []syntax.Binder, body *syntax.Node) ([]Branch, error) {
	combos, err := bindBinders(ctx, binders)
	if err != nil {
		return nil, err
	}
	dom := make([]value.Value, len(combos))
	rng := make([]value.Value, len(combos))
	for i, c := range combos {
		bodyBranches, err := Eval(c.Ctx, body)
		if err != nil {
			return nil, err
		}
		if len(bodyBranches) != 1 {
			return nil, atPos(body, tlaerr.New(tlaerr.KindAssertion,
				"function body must evaluate to a single deterministic value, got %d branches", len(bodyBranches)))
		}
		dom[i] = bindingKey(c.Values)
		rng[i] = bodyBranches[0].Value
	}
	fn, err := value.NewFunction(dom, rng)
	if err != nil {
		return nil, atPos(body, err)
	}
	return one(fn, ctx)
}

func evalFuncLit(ctx Context, n *syntax.Node) ([]Branch, error) {
	return evalFunctionValue(ctx, n.Binders, n.Children[0])
}

// coerceFcn views a Tuple as the FcnRcd over 1..Len(v) that ToFcn
// builds, the inverse of sequences.go's coerceSeq, so that any operator
// working purely in terms of FcnRcd (Apply, ApplyPath, UpdatePath,
// Domain) also accepts a sequence per §4.5's "tuple-as-function"
// indexing rule.
func coerceFcn(v value.Value) (value.Value, error) {
	if v.Kind() == value.Tuple {
		return v.ToFcn()
	}
	return v, nil
}

// evalFuncApp evaluates `f[a]` / `f[a,b,...]`. A multi-argument
// application applies f to the Tuple of its arguments, per §4.5.
func evalFuncApp(ctx Context, n *syntax.Node) ([]Branch, error) {
	fBranches, err := Eval(ctx, n.Children[0])
	if err != nil {
		return nil, err
	}
	var out []Branch
	for _, fb := range fBranches {
		fn, err := coerceFcn(fb.Value)
		if err != nil {
			return nil, atPos(n, err)
		}
		argVals, argCtxs, err := evalList(fb.Ctx, n.Children[1:])
		if err != nil {
			return nil, err
		}
		for i, vals := range argVals {
			var arg value.Value
			if len(vals) == 1 {
				arg = vals[0]
			} else {
				arg = value.NewTuple(vals...)
			}
			res, err := fn.Apply(arg)
			if err != nil {
				return nil, atPos(n, err)
			}
			out = append(out, Branch{Value: res, Ctx: argCtxs[i]})
		}
	}
	return out, nil
}

// evalSetOfFuncs builds `[S -> T]`: every function whose domain is
// exactly S's elements and whose range values are drawn from T.
func evalSetOfFuncs(ctx Context, n *syntax.Node) ([]Branch, error) {
	pairs, err := evalPair(ctx, n.Children[0], n.Children[1])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(pairs))
	for i, p := range pairs {
		domElems, err := p.L.Elems()
		if err != nil {
			return nil, atPos(n, err)
		}
		rngElems, err := p.R.Elems()
		if err != nil {
			return nil, atPos(n, err)
		}
		fns, err := allFunctions(domElems, rngElems)
		if err != nil {
			return nil, atPos(n, err)
		}
		out[i] = Branch{Value: value.NewSet(fns...), Ctx: p.Ctx}
	}
	return out, nil
}

// allFunctions enumerates every function from domElems into rngElems, by
// building every |rngElems|^|domElems| assignment of range choices.
func allFunctions(domElems, rngElems []value.Value) ([]value.Value, error) {
	assignments := [][]value.Value{{}}
	for range domElems {
		var next [][]value.Value
		for _, a := range assignments {
			for _, r := range rngElems {
				next = append(next, append(append([]value.Value{}, a...), r))
			}
		}
		assignments = next
	}
	out := make([]value.Value, len(assignments))
	for i, a := range assignments {
		fn, err := value.NewFunction(domElems, a)
		if err != nil {
			return nil, err
		}
		out[i] = fn
	}
	return out, nil
}

// evalSetOfRecords builds `[f1: S1, f2: S2, ...]`: every record with
// fields f1, f2, ... drawn respectively from each field's domain.
func evalSetOfRecords(ctx Context, n *syntax.Node) ([]Branch, error) {
	names := make([]string, len(n.Binders))
	domains := make([]*syntax.Node, len(n.Binders))
	for i, b := range n.Binders {
		names[i] = b.Name
		domains[i] = b.Domain
	}
	valSets, ctxs, err := evalList(ctx, domains)
	if err != nil {
		return nil, err
	}
	out := make([]Branch, 0, len(valSets))
	for i, domVals := range valSets {
		fieldElemSets := make([][]value.Value, len(domVals))
		for j, domVal := range domVals {
			elems, err := domVal.Elems()
			if err != nil {
				return nil, atPos(n, err)
			}
			fieldElemSets[j] = elems
		}
		combos := [][]value.Value{{}}
		for _, elems := range fieldElemSets {
			var next [][]value.Value
			for _, c := range combos {
				for _, e := range elems {
					next = append(next, append(append([]value.Value{}, c...), e))
				}
			}
			combos = next
		}
		records := make([]value.Value, len(combos))
		for k, c := range combos {
			rec, err := value.NewRecord(names, c)
			if err != nil {
				return nil, atPos(n, err)
			}
			records[k] = rec
		}
		out = append(out, Branch{Value: value.NewSet(records...), Ctx: ctxs[i]})
	}
	return out, nil
}

// evalRecordLit builds `[f1 |-> e1, f2 |-> e2, ...]`.
func evalRecordLit(ctx Context, n *syntax.Node) ([]Branch, error) {
	names := make([]string, len(n.Binders))
	exprs := make([]*syntax.Node, len(n.Binders))
	for i, b := range n.Binders {
		names[i] = b.Name
		exprs[i] = b.Domain
	}
	valSets, ctxs, err := evalList(ctx, exprs)
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(valSets))
	for i, vals := range valSets {
		rec, err := value.NewRecord(names, vals)
		if err != nil {
			return nil, atPos(n, err)
		}
		out[i] = Branch{Value: rec, Ctx: ctxs[i]}
	}
	return out, nil
}

// evalFieldAccess evaluates `r.f`, desugared to `r["f"]`.
func evalFieldAccess(ctx Context, n *syntax.Node) ([]Branch, error) {
	branches, err := Eval(ctx, n.Children[0])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(branches))
	for i, b := range branches {
		v, err := b.Value.Apply(value.NewStr(n.Text))
		if err != nil {
			return nil, atPos(n, err)
		}
		out[i] = Branch{Value: v, Ctx: b.Ctx}
	}
	return out, nil
}

// evalExceptPath threads evaluation across one EXCEPT clause's chain of
// `.field` and `[arg]` selectors, collecting the resolved path values.
func evalExceptPath(ctx Context, path []syntax.ExceptPathStep) ([]bindCombo, error) {
	combos := []bindCombo{{Ctx: ctx}}
	for _, step := range path {
		var next []bindCombo
		for _, c := range combos {
			if step.Arg == nil {
				next = append(next, bindCombo{
					Values: append(append([]value.Value{}, c.Values...), value.NewStr(step.Field)),
					Ctx:    c.Ctx,
				})
				continue
			}
			argBranches, err := Eval(c.Ctx, step.Arg)
			if err != nil {
				return nil, err
			}
			for _, ab := range argBranches {
				next = append(next, bindCombo{
					Values: append(append([]value.Value{}, c.Values...), ab.Value),
					Ctx:    ab.Ctx,
				})
			}
		}
		combos = next
	}
	return combos, nil
}

// evalExcept implements `[f EXCEPT !p1 = e1, !p2 = e2, ...]`: clauses
// compose left-to-right on a running value, and `@` inside each RHS
// resolves to the running value's current entry at that clause's path.
func evalExcept(ctx Context, n *syntax.Node) ([]Branch, error) {
	baseBranches, err := Eval(ctx, n.ExceptBase)
	if err != nil {
		return nil, err
	}
	var out []Branch
	for _, bb := range baseBranches {
		branches, err := applyExceptClauses(bb.Ctx, bb.Value, n.ExceptClauses)
		if err != nil {
			return nil, atPos(n, err)
		}
		out = append(out, branches...)
	}
	return out, nil
}

func applyExceptClauses(ctx Context, running value.Value, clauses []syntax.ExceptClause) ([]Branch, error) {
	results := []Branch{{Value: running, Ctx: ctx}}
	for _, clause := range clauses {
		var next []Branch
		for _, r := range results {
			pathCombos, err := evalExceptPath(r.Ctx, clause.Path)
			if err != nil {
				return nil, err
			}
			fn, err := coerceFcn(r.Value)
			if err != nil {
				return nil, err
			}
			for _, pc := range pathCombos {
				rhsCtx := pc.Ctx
				if prev, err := fn.ApplyPath(pc.Values...); err == nil {
					rhsCtx = rhsCtx.WithAt(prev)
				}
				rhsBranches, err := Eval(rhsCtx, clause.RHS)
				if err != nil {
					return nil, err
				}
				for _, rb := range rhsBranches {
					updated, err := fn.UpdatePath(pc.Values, rb.Value)
					if err != nil {
						return nil, err
					}
					if r.Value.Kind() == value.Tuple {
						updated, err = updated.ToTuple()
						if err != nil {
							return nil, err
						}
					}
					next = append(next, Branch{Value: updated, Ctx: rb.Ctx})
				}
			}
		}
		results = next
	}
	return results, nil
}

func evalCompose(ctx Context, n *syntax.Node) ([]Branch, error) {
	pairs, err := evalPair(ctx, n.Children[0], n.Children[1])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(pairs))
	for i, p := range pairs {
		r, err := p.L.Compose(p.R)
		if err != nil {
			return nil, atPos(n, err)
		}
		out[i] = Branch{Value: r, Ctx: p.Ctx}
	}
	return out, nil
}

// evalPairFunc evaluates `a :> b`, the single-point function `{a |-> b}`.
func evalPairFunc(ctx Context, n *syntax.Node) ([]Branch, error) {
	pairs, err := evalPair(ctx, n.Children[0], n.Children[1])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(pairs))
	for i, p := range pairs {
		fn, err := value.NewFunction([]value.Value{p.L}, []value.Value{p.R})
		if err != nil {
			return nil, atPos(n, err)
		}
		out[i] = Branch{Value: fn, Ctx: p.Ctx}
	}
	return out, nil
}
