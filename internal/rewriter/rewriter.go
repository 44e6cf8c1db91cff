package rewriter

import (
	"github.com/vkazan/tlarun/internal/syntax"
	"github.com/vkazan/tlarun/internal/tlaerr"
)

// Rewrite strips comments from src, parses it, and normalizes the result
// into the restricted tree shape internal/eval consumes: single-binder
// quantifiers only, no standalone \in/\notin tests. It is the only
// entry point callers outside this package should use.
func Rewrite(src string) (*syntax.Node, error) {
	stripped := stripComments(src)

	mod, err := syntax.Parse(stripped)
	if err != nil {
		return nil, tlaerr.New(tlaerr.KindParse, "%s", err)
	}

	if bad := firstErrorNode(mod); bad != nil {
		return nil, tlaerr.AtPos(
			tlaerr.New(tlaerr.KindParse, "%s", bad.Text),
			tlaerr.Position{Line: bad.Pos.Line, Column: bad.Pos.Col},
		)
	}

	st := &state{}
	return rewrite(mod, st), nil
}

// firstErrorNode returns the first KindError node found anywhere in the
// tree, in document order, or nil if parsing produced none.
func firstErrorNode(n *syntax.Node) *syntax.Node {
	if n == nil {
		return nil
	}
	if n.Kind == syntax.KindError {
		return n
	}
	for _, c := range n.Children {
		if found := firstErrorNode(c); found != nil {
			return found
		}
	}
	for _, b := range n.Binders {
		if found := firstErrorNode(b.Domain); found != nil {
			return found
		}
	}
	if found := firstErrorNode(n.ExceptBase); found != nil {
		return found
	}
	for _, c := range n.ExceptClauses {
		for _, step := range c.Path {
			if found := firstErrorNode(step.Arg); found != nil {
				return found
			}
		}
		if found := firstErrorNode(c.RHS); found != nil {
			return found
		}
	}
	for _, a := range n.CaseArms {
		if found := firstErrorNode(a.Cond); found != nil {
			return found
		}
		if found := firstErrorNode(a.Result); found != nil {
			return found
		}
	}
	for _, d := range n.LetDefs {
		if found := firstErrorNode(d); found != nil {
			return found
		}
	}
	if found := firstErrorNode(n.LetBody); found != nil {
		return found
	}
	if found := firstErrorNode(n.IfCond); found != nil {
		return found
	}
	if found := firstErrorNode(n.IfThen); found != nil {
		return found
	}
	if found := firstErrorNode(n.IfElse); found != nil {
		return found
	}
	return firstErrorNode(n.Body)
}
