package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkazan/tlarun/internal/syntax"
)

func opDef(t *testing.T, mod *syntax.Node, name string) *syntax.Node {
	t.Helper()
	for _, c := range mod.Children {
		if c.Kind == syntax.KindOpDef && c.Name == name {
			return c
		}
	}
	require.Failf(t, "definition not found", "no operator definition named %q", name)
	return nil
}

func TestParseCounterModule(t *testing.T) {
	src := `---- MODULE Counter ----
VARIABLE x
Init == x = 0
Next == x' = x + 1
====`
	mod, err := syntax.Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "Counter", mod.Name)

	var varDecls, opDefs int
	for _, c := range mod.Children {
		switch c.Kind {
		case syntax.KindVarDecl:
			varDecls++
			assert.Equal(t, "x", c.Name)
		case syntax.KindOpDef:
			opDefs++
		}
	}
	assert.Equal(t, 1, varDecls)
	assert.Equal(t, 2, opDefs)

	next := opDef(t, mod, "Next")
	require.Equal(t, syntax.KindEq, next.Body.Kind)
}

func TestParseDisjunctiveActionList(t *testing.T) {
	src := `---- MODULE TwoCounters ----
VARIABLES a, b
Init == a = 0 /\ b = 0
Next ==
  \/ a' = a + 1 /\ UNCHANGED b
  \/ b' = b + 1 /\ UNCHANGED a
====`
	mod, err := syntax.Parse(src)
	require.NoError(t, err)

	next := opDef(t, mod, "Next")
	require.Equal(t, syntax.KindOr, next.Body.Kind)
	assert.Len(t, next.Body.Children, 2)
	for _, disjunct := range next.Body.Children {
		require.Equal(t, syntax.KindAnd, disjunct.Kind)
		assert.Len(t, disjunct.Children, 2)
	}
}

func TestParseFunctionLiteralAndExcept(t *testing.T) {
	src := `---- MODULE Fn ----
CONSTANT N
VARIABLE f
Init == f = [i \in 1..N |-> 0]
Next == \E i \in 1..N : f' = [f EXCEPT ![i] = 1]
====`
	mod, err := syntax.Parse(src)
	require.NoError(t, err)

	init := opDef(t, mod, "Init")
	require.Equal(t, syntax.KindEq, init.Body.Kind)
	funcLit := init.Body.Children[1]
	require.Equal(t, syntax.KindFuncLit, funcLit.Kind)
	require.Len(t, funcLit.Binders, 1)
	assert.Equal(t, "i", funcLit.Binders[0].Name)

	next := opDef(t, mod, "Next")
	require.Equal(t, syntax.KindExists, next.Body.Kind)
	eq := next.Body.Children[0]
	require.Equal(t, syntax.KindEq, eq.Kind)
	except := eq.Children[1]
	require.Equal(t, syntax.KindExcept, except.Kind)
	require.Len(t, except.ExceptClauses, 1)
	require.Len(t, except.ExceptClauses[0].Path, 1)
}

func TestParseRecordLiteralAndFieldAccess(t *testing.T) {
	src := `---- MODULE Rec ----
VARIABLE r
Init == r = [a |-> 0, b |-> 0]
Next == r' = [r EXCEPT !.a = r.a + 1]
====`
	mod, err := syntax.Parse(src)
	require.NoError(t, err)

	init := opDef(t, mod, "Init")
	recLit := init.Body.Children[1]
	require.Equal(t, syntax.KindRecordLit, recLit.Kind)
	require.Len(t, recLit.Binders, 2)

	next := opDef(t, mod, "Next")
	except := next.Body.Children[1]
	require.Equal(t, syntax.KindExcept, except.Kind)
	require.Len(t, except.ExceptClauses[0].Path, 1)
	assert.Equal(t, "a", except.ExceptClauses[0].Path[0].Field)
}

func TestParseCaseAndChoose(t *testing.T) {
	src := `---- MODULE M ----
VARIABLE x
Pick == CHOOSE v \in {1,2,3} : v > 1
Classify == CASE x = 0 -> "zero" [] x > 0 -> "pos" [] OTHER -> "neg"
====`
	mod, err := syntax.Parse(src)
	require.NoError(t, err)

	pick := opDef(t, mod, "Pick")
	require.Equal(t, syntax.KindChoose, pick.Body.Kind)
	require.Len(t, pick.Body.Binders, 1)

	classify := opDef(t, mod, "Classify")
	require.Equal(t, syntax.KindCase, classify.Body.Kind)
	require.Len(t, classify.Body.CaseArms, 3)
	assert.Nil(t, classify.Body.CaseArms[2].Cond)
}
