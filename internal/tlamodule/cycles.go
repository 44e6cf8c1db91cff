package tlamodule

import (
	"fmt"

	"github.com/vkazan/tlarun/internal/depgraph"
	"github.com/vkazan/tlarun/internal/syntax"
)

// checkDefinitionCycles builds a dependency graph of operator/function
// definition names — an edge from A to B means B's body mentions A — and
// fails if it contains a cycle, per the "Operator-definition cycle
// detection" supplement.
func checkDefinitionCycles(m *Module) error {
	g := depgraph.New()
	for name := range m.OpDefs {
		g.AddNode(name)
	}
	for name := range m.FuncDefs {
		if !g.HasNode(name) {
			g.AddNode(name)
		}
	}

	addEdges := func(name string, body *syntax.Node) {
		for _, ref := range referencedNames(body) {
			if ref == name || !g.HasNode(ref) {
				continue
			}
			// Edge already recorded is harmless; AddEdge only fails on
			// missing nodes or self-reference, both already filtered.
			_ = g.AddEdge(ref, name)
		}
	}
	for _, d := range m.OpDefs {
		addEdges(d.Name, d.Body)
	}
	for _, d := range m.FuncDefs {
		addEdges(d.Name, d.Body)
	}

	if err := g.DetectCycles(); err != nil {
		return fmt.Errorf("operator/function definitions form a cycle: %w", err)
	}
	return nil
}

// referencedNames collects every identifier and operator-call name
// mentioned anywhere under n, including inside binder domains, EXCEPT
// clauses, CASE arms, LET bodies, and IF branches. It over-approximates:
// a bound parameter or quantifier variable that happens to share a name
// with a top-level definition is indistinguishable here from a genuine
// reference, which only ever makes the cycle check more conservative,
// never less safe.
func referencedNames(n *syntax.Node) []string {
	var out []string
	var walk func(*syntax.Node)
	walk = func(n *syntax.Node) {
		if n == nil {
			return
		}
		switch n.Kind {
		case syntax.KindIdent, syntax.KindOpCall:
			out = append(out, n.Text)
		}
		for _, c := range n.Children {
			walk(c)
		}
		for _, b := range n.Binders {
			walk(b.Domain)
		}
		walk(n.ExceptBase)
		for _, c := range n.ExceptClauses {
			for _, step := range c.Path {
				walk(step.Arg)
			}
			walk(c.RHS)
		}
		for _, a := range n.CaseArms {
			walk(a.Cond)
			walk(a.Result)
		}
		for _, d := range n.LetDefs {
			walk(d.Body)
		}
		walk(n.LetBody)
		walk(n.IfCond)
		walk(n.IfThen)
		walk(n.IfElse)
		walk(n.Body)
	}
	walk(n)
	return out
}
