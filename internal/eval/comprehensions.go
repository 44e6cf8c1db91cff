package eval

import (
	"github.com/vkazan/tlarun/internal/syntax"
	"github.com/vkazan/tlarun/internal/tlaerr"
	"github.com/vkazan/tlarun/internal/value"
)

func evalSetLit(ctx Context, n *syntax.Node) ([]Branch, error) {
	valSets, ctxs, err := evalList(ctx, n.Children)
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(valSets))
	for i, vals := range valSets {
		out[i] = Branch{Value: value.NewSet(vals...), Ctx: ctxs[i]}
	}
	return out, nil
}

// evalSetMap builds `{ e : v1 \in S1, v2 \in S2, ... }`: one element per
// binder combination. The comprehension denotes a single set value, so
// (as with function literals) every combination's element is collected
// into one result under the incoming Context rather than forked into
// separate branches.
func evalSetMap(ctx Context, n *syntax.Node) ([]Branch, error) {
	combos, err := bindBinders(ctx, n.Binders)
	if err != nil {
		return nil, err
	}
	var elems []value.Value
	for _, c := range combos {
		branches, err := Eval(c.Ctx, n.Children[0])
		if err != nil {
			return nil, err
		}
		for _, b := range branches {
			elems = append(elems, b.Value)
		}
	}
	return one(value.NewSet(elems...), ctx)
}

// evalSetFilter builds `{ v \in S : p }`. Multi-binder filters are
// generalized the same way function literals are: the kept element is
// the single bound value, or a Tuple of them when there is more than
// one binder slot.
func evalSetFilter(ctx Context, n *syntax.Node) ([]Branch, error) {
	combos, err := bindBinders(ctx, n.Binders)
	if err != nil {
		return nil, err
	}
	var elems []value.Value
	for _, c := range combos {
		branches, err := Eval(c.Ctx, n.Children[0])
		if err != nil {
			return nil, err
		}
		for _, b := range branches {
			bv, ok := b.Value.AsBool()
			if !ok {
				return nil, atPos(n, tlaerr.New(tlaerr.KindTypeMismatch, "set-filter predicate must be boolean"))
			}
			if bv {
				elems = append(elems, bindingKey(c.Values))
			}
		}
	}
	return one(value.NewSet(elems...), ctx)
}

// evalIn and evalNotin handle `e \in S` / `e \notin S` nodes built
// directly (not through the rewriter's existential desugaring, which
// replaces every standalone occurrence before Eval ever sees one).
func evalIn(ctx Context, n *syntax.Node) ([]Branch, error) {
	pairs, err := evalPair(ctx, n.Children[0], n.Children[1])
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(pairs))
	for i, p := range pairs {
		has, err := p.R.Contains(p.L)
		if err != nil {
			return nil, atPos(n, err)
		}
		out[i] = Branch{Value: value.NewBool(has), Ctx: p.Ctx}
	}
	return out, nil
}

func evalNotin(ctx Context, n *syntax.Node) ([]Branch, error) {
	branches, err := evalIn(ctx, n)
	if err != nil {
		return nil, err
	}
	out := make([]Branch, len(branches))
	for i, b := range branches {
		bv, _ := b.Value.AsBool()
		out[i] = Branch{Value: value.NewBool(!bv), Ctx: b.Ctx}
	}
	return out, nil
}

// evalForAll evaluates `\A v \in S : p`. Universal quantification is not
// a disjunctive construct (§4.6 names only `\/`, disjunction lists, and
// `\E`), so it folds to a single boolean rather than forking branches; a
// well-formed predicate here does not itself assign state.
func evalForAll(ctx Context, n *syntax.Node) ([]Branch, error) {
	combos, err := bindBinders(ctx, n.Binders)
	if err != nil {
		return nil, err
	}
	result := true
	for _, c := range combos {
		branches, err := Eval(c.Ctx, n.Children[0])
		if err != nil {
			return nil, err
		}
		for _, b := range branches {
			bv, ok := b.Value.AsBool()
			if !ok {
				return nil, atPos(n, tlaerr.New(tlaerr.KindTypeMismatch, "\\A body must be boolean"))
			}
			if !bv {
				result = false
			}
		}
	}
	return one(value.NewBool(result), ctx)
}

// evalExists evaluates `\E v \in S : p`, one of §4.6's disjunctive
// constructs: every binder combination forks an independent branch, and
// the branch-merging policy then decides whether to keep them all or
// collapse to a single "any true" boolean.
func evalExists(ctx Context, n *syntax.Node) ([]Branch, error) {
	combos, err := bindBinders(ctx, n.Binders)
	if err != nil {
		return nil, err
	}
	var all []Branch
	for _, c := range combos {
		branches, err := Eval(c.Ctx, n.Children[0])
		if err != nil {
			return nil, err
		}
		for _, b := range branches {
			if _, ok := b.Value.AsBool(); !ok {
				return nil, atPos(n, tlaerr.New(tlaerr.KindTypeMismatch, "\\E body must be boolean"))
			}
		}
		all = append(all, branches...)
	}
	return mergeDisjunctive(ctx, all), nil
}
