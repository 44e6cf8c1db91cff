package eval

import (
	"sort"

	"github.com/vkazan/tlarun/internal/ctxlog"
	"github.com/vkazan/tlarun/internal/syntax"
	"github.com/vkazan/tlarun/internal/tlaerr"
)

func evalIf(ctx Context, n *syntax.Node) ([]Branch, error) {
	condBranches, err := Eval(ctx, n.IfCond)
	if err != nil {
		return nil, err
	}
	var out []Branch
	for _, cb := range condBranches {
		bv, ok := cb.Value.AsBool()
		if !ok {
			return nil, atPos(n, tlaerr.New(tlaerr.KindTypeMismatch, "IF condition must be boolean"))
		}
		branch := n.IfElse
		if bv {
			branch = n.IfThen
		}
		branches, err := Eval(cb.Ctx, branch)
		if err != nil {
			return nil, err
		}
		out = append(out, branches...)
	}
	return out, nil
}

// evalCase evaluates CASE arms in source order, taking the first whose
// condition holds; OTHER, if present, is tried only once every
// conditioned arm has failed.
func evalCase(ctx Context, n *syntax.Node) ([]Branch, error) {
	var other *syntax.Node
	for _, arm := range n.CaseArms {
		if arm.Cond == nil {
			other = arm.Result
			continue
		}
		condBranches, err := Eval(ctx, arm.Cond)
		if err != nil {
			return nil, err
		}
		var matched []Branch
		for _, cb := range condBranches {
			bv, ok := cb.Value.AsBool()
			if !ok {
				return nil, atPos(n, tlaerr.New(tlaerr.KindTypeMismatch, "CASE condition must be boolean"))
			}
			if bv {
				matched = append(matched, cb)
			}
		}
		if len(matched) == 0 {
			continue
		}
		var out []Branch
		for _, m := range matched {
			branches, err := Eval(m.Ctx, arm.Result)
			if err != nil {
				return nil, err
			}
			out = append(out, branches...)
		}
		return out, nil
	}
	if other != nil {
		return Eval(ctx, other)
	}
	return nil, atPos(n, tlaerr.New(tlaerr.KindNonexhaustiveCase, "CASE: no arm matched and no OTHER"))
}

// evalLet binds each LET definition in turn, each one's Scope capturing
// the context built up by the definitions before it, then evaluates the
// body under the fully extended scope.
func evalLet(ctx Context, n *syntax.Node) ([]Branch, error) {
	scope := ctx
	for _, def := range n.LetDefs {
		switch def.Kind {
		case syntax.KindOpDef:
			scope = scope.WithLocalOp(def.Name, &LocalOp{Params: def.Params, Body: def.Body, Scope: scope})
		case syntax.KindFuncDef:
			scope = scope.WithLocalFunc(def.Name, &LocalFunc{Binders: def.Binders, Body: def.Body, Scope: scope})
		default:
			return nil, atPos(def, tlaerr.New(tlaerr.KindAssertion, "LET: unexpected definition kind %v", def.Kind))
		}
	}
	return Eval(scope, n.LetBody)
}

// evalChoose implements `CHOOSE v \in S : P`, iterating S's (possibly
// multi-binder) domain in fingerprint-sorted order per §4.5 and returning
// the first element satisfying P.
func evalChoose(ctx Context, n *syntax.Node) ([]Branch, error) {
	combos, err := bindBinders(ctx, n.Binders)
	if err != nil {
		return nil, err
	}
	sort.Slice(combos, func(i, j int) bool {
		return bindingKey(combos[i].Values).Fingerprint() < bindingKey(combos[j].Values).Fingerprint()
	})
	for _, c := range combos {
		branches, err := Eval(c.Ctx, n.Children[0])
		if err != nil {
			return nil, err
		}
		for _, b := range branches {
			bv, ok := b.Value.AsBool()
			if !ok {
				return nil, atPos(n, tlaerr.New(tlaerr.KindTypeMismatch, "CHOOSE predicate must be boolean"))
			}
			if bv {
				witness := bindingKey(c.Values)
				ctxlog.FromContext(ctx.GoCtx).Debug("CHOOSE selected witness", "value", witness.String())
				return one(witness, ctx)
			}
		}
	}
	return nil, atPos(n, tlaerr.New(tlaerr.KindNoWitness, "CHOOSE: no element of the domain satisfies the predicate"))
}
