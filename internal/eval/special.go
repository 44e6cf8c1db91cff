package eval

import (
	"github.com/vkazan/tlarun/internal/syntax"
	"github.com/vkazan/tlarun/internal/tlaerr"
	"github.com/vkazan/tlarun/internal/value"
)

// evalUnchanged implements `UNCHANGED v` / `UNCHANGED <<v1,...,vn>>` by
// binding each named variable's primed key to its current value.
func evalUnchanged(ctx Context, n *syntax.Node) ([]Branch, error) {
	names, err := collectUnchangedVars(ctx, n.Children[0])
	if err != nil {
		return nil, err
	}
	state := ctx.State
	for _, name := range names {
		v, ok := state.Get(name)
		if !ok {
			return nil, atPos(n, tlaerr.New(tlaerr.KindUnboundIdentifier, "UNCHANGED: %q has no current value", name))
		}
		state = state.WithVar(name+"'", v)
	}
	return one(value.True, ctx.WithState(state))
}

// collectUnchangedVars flattens an UNCHANGED argument into the plain
// state-variable names it denotes: a direct variable reference, a tuple
// of them, or a zero-parameter definition name that expands (possibly
// through another such name) to either.
func collectUnchangedVars(ctx Context, n *syntax.Node) ([]string, error) {
	switch n.Kind {
	case syntax.KindTupleLit:
		var out []string
		for _, c := range n.Children {
			sub, err := collectUnchangedVars(ctx, c)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	case syntax.KindIdent:
		name := n.Text
		if isDeclaredVar(ctx, name) {
			return []string{name}, nil
		}
		if op, ok := ctx.LocalOps[name]; ok && len(op.Params) == 0 {
			return collectUnchangedVars(ctx, op.Body)
		}
		if def, ok := ctx.Env.OpDefs[name]; ok && len(def.Params) == 0 {
			return collectUnchangedVars(ctx, def.Body)
		}
		return nil, atPos(n, tlaerr.New(tlaerr.KindUnboundIdentifier,
			"UNCHANGED: %q does not name a variable or a definition expanding to variables", name))
	default:
		return nil, atPos(n, tlaerr.New(tlaerr.KindAssertion, "UNCHANGED: unsupported argument shape"))
	}
}

// evalAt resolves `@` inside an EXCEPT clause's RHS to the path's
// previous value, set by applyExceptClauses before evaluating the RHS.
func evalAt(ctx Context, n *syntax.Node) ([]Branch, error) {
	if ctx.At == nil {
		return nil, atPos(n, tlaerr.New(tlaerr.KindAssertion, "@ used outside an EXCEPT clause"))
	}
	return one(*ctx.At, ctx)
}

// evalOpCall dispatches a user operator call to its LET-local or
// module-level definition; built-in standard-module operators (Len,
// Head, Cardinality, ...) never reach here, since the parser gives them
// their own dedicated Kind.
func evalOpCall(ctx Context, n *syntax.Node) ([]Branch, error) {
	name := n.Text
	if op, ok := ctx.LocalOps[name]; ok {
		return callOperator(ctx, op.Scope, op.Params, op.Body, n)
	}
	if def, ok := ctx.Env.OpDefs[name]; ok {
		return callOperator(ctx, freshCallCtx(ctx), def.Params, def.Body, n)
	}
	return nil, atPos(n, tlaerr.New(tlaerr.KindUnboundIdentifier, "unbound operator %q", name))
}

// callOperator evaluates args in the caller's context, then runs body
// in scope (the operator's lexical home) extended with the arguments
// bound to its parameters.
func callOperator(ctx Context, scope Context, params []string, body *syntax.Node, n *syntax.Node) ([]Branch, error) {
	if len(params) != len(n.Children) {
		return nil, atPos(n, tlaerr.New(tlaerr.KindUnboundIdentifier,
			"%q expects %d arguments, got %d", n.Text, len(params), len(n.Children)))
	}
	argVals, argCtxs, err := evalList(ctx, n.Children)
	if err != nil {
		return nil, err
	}
	var out []Branch
	for i, vals := range argVals {
		callCtx := scope.WithState(argCtxs[i].State)
		for j, p := range params {
			callCtx = callCtx.WithLocal(p, vals[j])
		}
		branches, err := Eval(callCtx, body)
		if err != nil {
			return nil, err
		}
		out = append(out, branches...)
	}
	return out, nil
}
