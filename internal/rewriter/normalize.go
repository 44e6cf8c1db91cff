package rewriter

import (
	"fmt"

	"github.com/vkazan/tlarun/internal/syntax"
)

type state struct {
	counter int
}

func (s *state) freshName() string {
	s.counter++
	return fmt.Sprintf("__k%d", s.counter)
}

// rewrite walks n bottom-up, normalizing every multi-binder \A/\E into a
// right-nested chain of single-binder quantifiers and desugaring every
// standalone \in/\notin into an existential, per §4.3 items 2 and 3.
func rewrite(n *syntax.Node, st *state) *syntax.Node {
	if n == nil {
		return nil
	}

	out := *n // shallow copy; every subtree field below is replaced explicitly

	out.Children = rewriteNodeSlice(n.Children, st)
	out.Binders = rewriteBinders(n.Binders, st)
	out.ExceptBase = rewrite(n.ExceptBase, st)
	out.ExceptClauses = rewriteExceptClauses(n.ExceptClauses, st)
	out.CaseArms = rewriteCaseArms(n.CaseArms, st)
	out.LetDefs = rewriteNodeSlice(n.LetDefs, st)
	out.LetBody = rewrite(n.LetBody, st)
	out.IfCond = rewrite(n.IfCond, st)
	out.IfThen = rewrite(n.IfThen, st)
	out.IfElse = rewrite(n.IfElse, st)
	out.Body = rewrite(n.Body, st)

	switch out.Kind {
	case syntax.KindForAll, syntax.KindExists:
		return normalizeQuantifier(&out)
	case syntax.KindIn:
		return desugarIn(&out, st)
	case syntax.KindNotin:
		return desugarNotin(&out, st)
	default:
		return &out
	}
}

func rewriteNodeSlice(ns []*syntax.Node, st *state) []*syntax.Node {
	if ns == nil {
		return nil
	}
	out := make([]*syntax.Node, len(ns))
	for i, c := range ns {
		out[i] = rewrite(c, st)
	}
	return out
}

func rewriteBinders(bs []syntax.Binder, st *state) []syntax.Binder {
	if bs == nil {
		return nil
	}
	out := make([]syntax.Binder, len(bs))
	for i, b := range bs {
		out[i] = syntax.Binder{Name: b.Name, Pattern: b.Pattern, Domain: rewrite(b.Domain, st)}
	}
	return out
}

func rewriteExceptClauses(cs []syntax.ExceptClause, st *state) []syntax.ExceptClause {
	if cs == nil {
		return nil
	}
	out := make([]syntax.ExceptClause, len(cs))
	for i, c := range cs {
		path := make([]syntax.ExceptPathStep, len(c.Path))
		for j, step := range c.Path {
			path[j] = syntax.ExceptPathStep{Field: step.Field, Arg: rewrite(step.Arg, st)}
		}
		out[i] = syntax.ExceptClause{Path: path, RHS: rewrite(c.RHS, st)}
	}
	return out
}

func rewriteCaseArms(arms []syntax.CaseArm, st *state) []syntax.CaseArm {
	if arms == nil {
		return nil
	}
	out := make([]syntax.CaseArm, len(arms))
	for i, a := range arms {
		out[i] = syntax.CaseArm{Cond: rewrite(a.Cond, st), Result: rewrite(a.Result, st)}
	}
	return out
}

// normalizeQuantifier turns a quantifier with N binders into a
// right-nested chain of N quantifiers of the same kind, each with one
// binder, the innermost holding the original body.
func normalizeQuantifier(n *syntax.Node) *syntax.Node {
	if len(n.Binders) <= 1 {
		return n
	}
	body := n.Children[0]
	cur := &syntax.Node{Kind: n.Kind, Pos: n.Pos, End: n.End, Binders: n.Binders[len(n.Binders)-1:], Children: []*syntax.Node{body}}
	for i := len(n.Binders) - 2; i >= 0; i-- {
		cur = &syntax.Node{Kind: n.Kind, Pos: n.Pos, End: n.End, Binders: n.Binders[i : i+1], Children: []*syntax.Node{cur}}
	}
	return cur
}

// desugarIn replaces `e \in S` with `\E k \in S : e = k` for a fresh k,
// per §4.3 item 3.
func desugarIn(n *syntax.Node, st *state) *syntax.Node {
	e, s := n.Children[0], n.Children[1]
	return buildExistsEq(n, e, s, st)
}

// desugarNotin replaces `e \notin S` with the negation of desugarIn.
func desugarNotin(n *syntax.Node, st *state) *syntax.Node {
	e, s := n.Children[0], n.Children[1]
	exists := buildExistsEq(n, e, s, st)
	return &syntax.Node{Kind: syntax.KindNot, Pos: n.Pos, End: n.End, Children: []*syntax.Node{exists}}
}

func buildExistsEq(at *syntax.Node, e, s *syntax.Node, st *state) *syntax.Node {
	fresh := st.freshName()
	k := &syntax.Node{Kind: syntax.KindIdent, Pos: at.Pos, End: at.End, Text: fresh}
	eq := &syntax.Node{Kind: syntax.KindEq, Pos: at.Pos, End: at.End, Children: []*syntax.Node{e, k}}
	return &syntax.Node{
		Kind:     syntax.KindExists,
		Pos:      at.Pos,
		End:      at.End,
		Binders:  []syntax.Binder{{Name: fresh, Domain: s}},
		Children: []*syntax.Node{eq},
	}
}
