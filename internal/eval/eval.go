package eval

import (
	"github.com/vkazan/tlarun/internal/syntax"
	"github.com/vkazan/tlarun/internal/tlaerr"
	"github.com/vkazan/tlarun/internal/value"
)

// Eval is the recursive dispatcher described in §4.5: given a node and a
// Context, it returns every branch that evaluation produces. Most node
// kinds return exactly one branch; quantifiers, disjunctions, and CHOOSE
// can return more (or, for CHOOSE, must collapse to exactly one witness).
func Eval(ctx Context, n *syntax.Node) ([]Branch, error) {
	if n == nil {
		return nil, tlaerr.New(tlaerr.KindAssertion, "eval: nil node")
	}

	switch n.Kind {
	// literals
	case syntax.KindNumber:
		return one(value.NewInt(n.Num), ctx)
	case syntax.KindBool:
		return one(value.NewBool(n.Bool), ctx)
	case syntax.KindString:
		return one(value.NewStr(n.Text), ctx)
	case syntax.KindBooleanSet:
		return one(value.NewSet(value.True, value.False), ctx)

	// references
	case syntax.KindIdent:
		return evalIdent(ctx, n)
	case syntax.KindPrimed:
		return Eval(ctx.WithPrimed(true), n.Children[0])

	// boolean
	case syntax.KindNot:
		return evalNot(ctx, n)
	case syntax.KindAnd:
		return evalAnd(ctx, n)
	case syntax.KindOr:
		return evalOr(ctx, n)
	case syntax.KindImplies:
		return evalImplies(ctx, n)

	// equality / comparison
	case syntax.KindEq:
		return evalEq(ctx, n)
	case syntax.KindNeq:
		return evalNeq(ctx, n)
	case syntax.KindLt, syntax.KindLe, syntax.KindGt, syntax.KindGe:
		return evalIntCompare(ctx, n)

	// arithmetic
	case syntax.KindAdd, syntax.KindSub, syntax.KindMul, syntax.KindMod:
		return evalArith(ctx, n)
	case syntax.KindNeg:
		return evalNeg(ctx, n)
	case syntax.KindRange:
		return evalRange(ctx, n)

	// set algebra
	case syntax.KindCup, syntax.KindCap, syntax.KindSetMinus, syntax.KindCartesian:
		return evalSetBinary(ctx, n)
	case syntax.KindSubsetOf:
		return evalSubsetOf(ctx, n)
	case syntax.KindDomainOf:
		return evalDomainOf(ctx, n)
	case syntax.KindCardinality:
		return evalCardinality(ctx, n)

	// functions/records
	case syntax.KindFuncLit:
		return evalFuncLit(ctx, n)
	case syntax.KindFuncApp:
		return evalFuncApp(ctx, n)
	case syntax.KindSetOfFuncs:
		return evalSetOfFuncs(ctx, n)
	case syntax.KindSetOfRecords:
		return evalSetOfRecords(ctx, n)
	case syntax.KindRecordLit:
		return evalRecordLit(ctx, n)
	case syntax.KindFieldAccess:
		return evalFieldAccess(ctx, n)
	case syntax.KindExcept:
		return evalExcept(ctx, n)
	case syntax.KindCompose:
		return evalCompose(ctx, n)
	case syntax.KindPairFunc:
		return evalPairFunc(ctx, n)

	// sequences
	case syntax.KindConcat:
		return evalConcat(ctx, n)
	case syntax.KindLen:
		return evalLen(ctx, n)
	case syntax.KindAppend:
		return evalAppend(ctx, n)
	case syntax.KindHead:
		return evalHead(ctx, n)
	case syntax.KindTail:
		return evalTail(ctx, n)

	// tuples
	case syntax.KindTupleLit:
		return evalTupleLit(ctx, n)

	// sets
	case syntax.KindSetLit:
		return evalSetLit(ctx, n)
	case syntax.KindSetMap:
		return evalSetMap(ctx, n)
	case syntax.KindSetFilter:
		return evalSetFilter(ctx, n)
	case syntax.KindIn:
		return evalIn(ctx, n)
	case syntax.KindNotin:
		return evalNotin(ctx, n)

	// quantifiers
	case syntax.KindForAll:
		return evalForAll(ctx, n)
	case syntax.KindExists:
		return evalExists(ctx, n)

	// control
	case syntax.KindIf:
		return evalIf(ctx, n)
	case syntax.KindCase:
		return evalCase(ctx, n)
	case syntax.KindLet:
		return evalLet(ctx, n)
	case syntax.KindChoose:
		return evalChoose(ctx, n)

	// state-change bookkeeping
	case syntax.KindUnchanged:
		return evalUnchanged(ctx, n)
	case syntax.KindEnabled:
		return Eval(ctx, n.Children[0])
	case syntax.KindAt:
		return evalAt(ctx, n)

	case syntax.KindOpCall:
		return evalOpCall(ctx, n)

	case syntax.KindError:
		return nil, atPos(n, tlaerr.New(tlaerr.KindParse, "%s", n.Text))

	default:
		return nil, atPos(n, tlaerr.New(tlaerr.KindAssertion, "eval: unhandled node kind %v", n.Kind))
	}
}

// one wraps a deterministic single-value result into the standard
// []Branch shape.
func one(v value.Value, ctx Context) ([]Branch, error) {
	return []Branch{{Value: v, Ctx: ctx}}, nil
}

func atPos(n *syntax.Node, err error) error {
	return tlaerr.AtPos(err, tlaerr.Position{Line: n.Pos.Line, Column: n.Pos.Col})
}

// evalIdent resolves a bare identifier in the order §4.5 prescribes:
// state variable (under the current primed flag), quantifier/LET/param
// binding, operator or function definition, constant.
func evalIdent(ctx Context, n *syntax.Node) ([]Branch, error) {
	name := n.Text
	key := name
	if ctx.Primed {
		key = name + "'"
	}
	if v, ok := ctx.State.Get(key); ok {
		return one(v, ctx)
	}
	if v, ok := ctx.Locals[name]; ok {
		return one(v, ctx)
	}
	if op, ok := ctx.LocalOps[name]; ok {
		if len(op.Params) > 0 {
			return nil, atPos(n, tlaerr.New(tlaerr.KindUnboundIdentifier,
				"%q names an operator with %d parameters, used here without arguments", name, len(op.Params)))
		}
		return Eval(op.Scope.WithState(ctx.State), op.Body)
	}
	if def, ok := ctx.Env.OpDefs[name]; ok {
		if len(def.Params) > 0 {
			return nil, atPos(n, tlaerr.New(tlaerr.KindUnboundIdentifier,
				"%q names an operator with %d parameters, used here without arguments", name, len(def.Params)))
		}
		return Eval(freshCallCtx(ctx), def.Body)
	}
	if fn, ok := ctx.LocalFuncs[name]; ok {
		return evalFunctionValue(fn.Scope.WithState(ctx.State), fn.Binders, fn.Body)
	}
	if fdef, ok := ctx.Env.FuncDefs[name]; ok {
		return evalFunctionValue(freshCallCtx(ctx), fdef.Binders, fdef.Body)
	}
	if v, ok := ctx.Env.Constants[name]; ok {
		return one(v, ctx)
	}
	return nil, atPos(n, tlaerr.New(tlaerr.KindUnboundIdentifier, "unbound identifier %q", name))
}

// freshCallCtx builds the context an operator/function definition's body
// evaluates in: same State and Env, but no inherited Locals, Primed flag,
// or `@` binding — definitions are looked up lexically at module scope,
// not dynamically scoped into the call site.
func freshCallCtx(ctx Context) Context {
	return Context{Env: ctx.Env, State: ctx.State, Locals: map[string]value.Value{}, GoCtx: ctx.GoCtx}
}

func evalNot(ctx Context, n *syntax.Node) ([]Branch, error) {
	branches, err := Eval(ctx, n.Children[0])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(branches))
	for i, b := range branches {
		bv, ok := b.Value.AsBool()
		if !ok {
			return nil, atPos(n, tlaerr.New(tlaerr.KindTypeMismatch, "~ expects a boolean operand"))
		}
		out[i] = Branch{Value: value.NewBool(!bv), Ctx: b.Ctx}
	}
	return out, nil
}

func evalAnd(ctx Context, n *syntax.Node) ([]Branch, error) {
	branches, err := Eval(ctx, n.Children[0])
	if err != nil {
		return nil, err
	}
	for _, child := range n.Children[1:] {
		var next []Branch
		for _, b := range branches {
			bv, ok := b.Value.AsBool()
			if !ok {
				return nil, atPos(n, tlaerr.New(tlaerr.KindTypeMismatch, "/\\ expects boolean operands"))
			}
			if !bv {
				next = append(next, b)
				continue
			}
			subBranches, err := Eval(b.Ctx, child)
			if err != nil {
				return nil, err
			}
			for _, sb := range subBranches {
				sv, ok := sb.Value.AsBool()
				if !ok {
					return nil, atPos(n, tlaerr.New(tlaerr.KindTypeMismatch, "/\\ expects boolean operands"))
				}
				next = append(next, Branch{Value: value.NewBool(sv), Ctx: sb.Ctx})
			}
		}
		branches = next
	}
	return branches, nil
}

func evalOr(ctx Context, n *syntax.Node) ([]Branch, error) {
	var all []Branch
	for _, child := range n.Children {
		sub, err := Eval(ctx, child)
		if err != nil {
			return nil, err
		}
		for _, sb := range sub {
			if _, ok := sb.Value.AsBool(); !ok {
				return nil, atPos(n, tlaerr.New(tlaerr.KindTypeMismatch, "\\/ expects boolean operands"))
			}
		}
		all = append(all, sub...)
	}
	return mergeDisjunctive(ctx, all), nil
}

func evalImplies(ctx Context, n *syntax.Node) ([]Branch, error) {
	pBranches, err := Eval(ctx, n.Children[0])
	if err != nil {
		return nil, err
	}
	var all []Branch
	for _, pb := range pBranches {
		pv, ok := pb.Value.AsBool()
		if !ok {
			return nil, atPos(n, tlaerr.New(tlaerr.KindTypeMismatch, "=> expects a boolean antecedent"))
		}
		if !pv {
			all = append(all, Branch{Value: value.True, Ctx: pb.Ctx})
			continue
		}
		qBranches, err := Eval(pb.Ctx, n.Children[1])
		if err != nil {
			return nil, err
		}
		all = append(all, qBranches...)
	}
	return mergeDisjunctive(ctx, all), nil
}

// pairResult is one (left, right) value combination produced by
// threading state left-to-right across two operand nodes.
type pairResult struct {
	L, R value.Value
	Ctx  Context
}

func evalPair(ctx Context, l, r *syntax.Node) ([]pairResult, error) {
	lBranches, err := Eval(ctx, l)
	if err != nil {
		return nil, err
	}
	var out []pairResult
	for _, lb := range lBranches {
		rBranches, err := Eval(lb.Ctx, r)
		if err != nil {
			return nil, err
		}
		for _, rb := range rBranches {
			out = append(out, pairResult{L: lb.Value, R: rb.Value, Ctx: rb.Ctx})
		}
	}
	return out, nil
}

// evalList threads state left-to-right across a list of expressions
// (tuple/set elements, operator-call arguments), forking on every
// element's own branches, and returns one combination per resulting
// branch.
func evalList(ctx Context, nodes []*syntax.Node) ([][]value.Value, []Context, error) {
	vals := [][]value.Value{{}}
	ctxs := []Context{ctx}
	for _, n := range nodes {
		var nextVals [][]value.Value
		var nextCtxs []Context
		for i, c := range ctxs {
			branches, err := Eval(c, n)
			if err != nil {
				return nil, nil, err
			}
			for _, b := range branches {
				nextVals = append(nextVals, append(append([]value.Value{}, vals[i]...), b.Value))
				nextCtxs = append(nextCtxs, b.Ctx)
			}
		}
		vals, ctxs = nextVals, nextCtxs
	}
	return vals, ctxs, nil
}

func evalEq(ctx Context, n *syntax.Node) ([]Branch, error) {
	lhs, rhs := n.Children[0], n.Children[1]
	if key, ok := assignableVarKey(ctx, lhs); ok {
		if !ctx.State.Has(key) {
			rBranches, err := Eval(ctx, rhs)
			if err != nil {
				return nil, err
			}
			out := make([]Branch, len(rBranches))
			for i, rb := range rBranches {
				out[i] = Branch{Value: value.True, Ctx: rb.Ctx.WithState(rb.Ctx.State.WithVar(key, rb.Value))}
			}
			return out, nil
		}
		existing, _ := ctx.State.Get(key)
		rBranches, err := Eval(ctx, rhs)
		if err != nil {
			return nil, err
		}
		out := make([]Branch, len(rBranches))
		for i, rb := range rBranches {
			out[i] = Branch{Value: value.NewBool(existing.Equal(rb.Value)), Ctx: rb.Ctx}
		}
		return out, nil
	}

	pairs, err := evalPair(ctx, lhs, rhs)
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(pairs))
	for i, p := range pairs {
		out[i] = Branch{Value: value.NewBool(p.L.Equal(p.R)), Ctx: p.Ctx}
	}
	return out, nil
}

func evalNeq(ctx Context, n *syntax.Node) ([]Branch, error) {
	pairs, err := evalPair(ctx, n.Children[0], n.Children[1])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(pairs))
	for i, p := range pairs {
		out[i] = Branch{Value: value.NewBool(!p.L.Equal(p.R)), Ctx: p.Ctx}
	}
	return out, nil
}

// assignableVarKey reports whether lhs is a reference this evaluation
// mode is allowed to assign to — a primed variable always, or a bare
// variable while evaluating Init — and if so, the state key it would be
// assigned under.
func assignableVarKey(ctx Context, lhs *syntax.Node) (string, bool) {
	if lhs.Kind == syntax.KindPrimed && lhs.Children[0].Kind == syntax.KindIdent {
		name := lhs.Children[0].Text
		if isDeclaredVar(ctx, name) {
			return name + "'", true
		}
		return "", false
	}
	if lhs.Kind == syntax.KindIdent && ctx.Env.AllowUnprimedAssign {
		if isDeclaredVar(ctx, lhs.Text) {
			return lhs.Text, true
		}
	}
	return "", false
}

func isDeclaredVar(ctx Context, name string) bool {
	for _, v := range ctx.Env.VarNames {
		if v == name {
			return true
		}
	}
	return false
}

func evalIntCompare(ctx Context, n *syntax.Node) ([]Branch, error) {
	pairs, err := evalPair(ctx, n.Children[0], n.Children[1])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(pairs))
	for i, p := range pairs {
		li, ok := p.L.AsInt()
		if !ok {
			return nil, atPos(n, tlaerr.New(tlaerr.KindTypeMismatch, "comparison expects integers, got %s", p.L.Kind()))
		}
		ri, ok := p.R.AsInt()
		if !ok {
			return nil, atPos(n, tlaerr.New(tlaerr.KindTypeMismatch, "comparison expects integers, got %s", p.R.Kind()))
		}
		var result bool
		switch n.Kind {
		case syntax.KindLt:
			result = li < ri
		case syntax.KindLe:
			result = li <= ri
		case syntax.KindGt:
			result = li > ri
		case syntax.KindGe:
			result = li >= ri
		}
		out[i] = Branch{Value: value.NewBool(result), Ctx: p.Ctx}
	}
	return out, nil
}
