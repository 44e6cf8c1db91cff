package tlamodule

import (
	"fmt"

	"github.com/vkazan/tlarun/internal/syntax"
	"github.com/vkazan/tlarun/internal/tlaerr"
)

// OpDef is one `Name(p1, ..., pn) == Body` operator definition.
type OpDef struct {
	Name   string
	Params []string
	Body   *syntax.Node
}

// FuncDef is one `Name[v1 \in S1, ...] == Body` function definition.
type FuncDef struct {
	Name    string
	Binders []syntax.Binder
	Body    *syntax.Node
}

// Module is the result of walking a module's top-level declarations.
type Module struct {
	Name      string
	Constants []string
	Vars      []string
	OpDefs    map[string]*OpDef
	FuncDefs  map[string]*FuncDef

	// Actions is the disjunct list of Next's body when Next's body is a
	// top-level \/, or a single-element list holding the whole body
	// otherwise. Empty if there is no Next definition.
	Actions []*syntax.Node
}

// InitBody returns the body of the Init definition, failing if Extract
// never saw one — callers ask for this only once they actually need to
// compute initial states, per §4.4's "fails... if either is missing when
// states are to be generated."
func (m *Module) InitBody() (*syntax.Node, error) {
	d, ok := m.OpDefs["Init"]
	if !ok {
		return nil, tlaerr.New(tlaerr.KindAssertion, "module %q has no Init definition", m.Name)
	}
	return d.Body, nil
}

// NextBody returns the body of the Next definition, with the same
// missing-definition contract as InitBody.
func (m *Module) NextBody() (*syntax.Node, error) {
	d, ok := m.OpDefs["Next"]
	if !ok {
		return nil, tlaerr.New(tlaerr.KindAssertion, "module %q has no Next definition", m.Name)
	}
	return d.Body, nil
}

// Extract walks mod's top-level declarations once, per §4.4. It fails if
// Init or Next is defined more than once, or if any operator/function
// definition's dependency graph contains a cycle.
func Extract(mod *syntax.Node) (*Module, error) {
	m := &Module{
		Name:     mod.Name,
		OpDefs:   make(map[string]*OpDef),
		FuncDefs: make(map[string]*FuncDef),
	}

	seenInit, seenNext := 0, 0
	for _, c := range mod.Children {
		switch c.Kind {
		case syntax.KindConstDecl:
			m.Constants = append(m.Constants, c.Name)
		case syntax.KindVarDecl:
			m.Vars = append(m.Vars, c.Name)
		case syntax.KindOpDef:
			if c.Name == "Init" {
				seenInit++
			}
			if c.Name == "Next" {
				seenNext++
			}
			m.OpDefs[c.Name] = &OpDef{Name: c.Name, Params: c.Params, Body: c.Body}
		case syntax.KindFuncDef:
			m.FuncDefs[c.Name] = &FuncDef{Name: c.Name, Binders: c.Binders, Body: c.Body}
		}
	}

	if seenInit > 1 {
		return nil, tlaerr.New(tlaerr.KindParse, "module %q defines Init more than once", m.Name)
	}
	if seenNext > 1 {
		return nil, tlaerr.New(tlaerr.KindParse, "module %q defines Next more than once", m.Name)
	}

	if err := checkDefinitionCycles(m); err != nil {
		return nil, tlaerr.New(tlaerr.KindAssertion, "%s", err)
	}

	if next, ok := m.OpDefs["Next"]; ok {
		if next.Body != nil && next.Body.Kind == syntax.KindOr {
			m.Actions = next.Body.Children
		} else {
			m.Actions = []*syntax.Node{next.Body}
		}
	}

	return m, nil
}

func (m *Module) String() string {
	return fmt.Sprintf("module %s (%d constants, %d vars, %d op defs, %d func defs)",
		m.Name, len(m.Constants), len(m.Vars), len(m.OpDefs), len(m.FuncDefs))
}
