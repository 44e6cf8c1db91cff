package rewriter

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

func TestRewriteStripsCommentsAndKeepsLineNumbers(t *testing.T) {
	src := `---- MODULE M ----
\* a line comment
VARIABLE x
(* a
   block comment *)
Init == x = 0
====`
	mod, err := Rewrite(src)
	require.NoError(t, err)
	assert.Equal(t, "M", mod.Name)

	init := opDef(t, mod, "Init")
	assert.Equal(t, 6, init.Pos.Line)
}

func TestRewriteNormalizesMultiBinderQuantifierRightNested(t *testing.T) {
	src := `---- MODULE M ----
VARIABLES a, b, c
Spec == \E x, y \in {1,2}, z \in {3} : a = x /\ b = y /\ c = z
====`
	mod, err := Rewrite(src)
	require.NoError(t, err)

	spec := opDef(t, mod, "Spec")
	outer := spec.Body
	require.Equal(t, syntax.KindExists, outer.Kind)
	require.Len(t, outer.Binders, 1)
	assert.Equal(t, "x", outer.Binders[0].Name)

	mid := outer.Children[0]
	require.Equal(t, syntax.KindExists, mid.Kind)
	require.Len(t, mid.Binders, 1)
	assert.Equal(t, "y", mid.Binders[0].Name)
	assert.Equal(t, syntax.KindSetLit, mid.Binders[0].Domain.Kind)

	inner := mid.Children[0]
	require.Equal(t, syntax.KindExists, inner.Kind)
	require.Len(t, inner.Binders, 1)
	assert.Equal(t, "z", inner.Binders[0].Name)

	require.Equal(t, syntax.KindAnd, inner.Children[0].Kind)
}

func TestRewriteDesugarsStandaloneIn(t *testing.T) {
	src := `---- MODULE M ----
CONSTANT S
VARIABLE x
Init == x \in S
====`
	mod, err := Rewrite(src)
	require.NoError(t, err)

	init := opDef(t, mod, "Init")
	require.Equal(t, syntax.KindExists, init.Body.Kind)
	require.Len(t, init.Body.Binders, 1)
	assert.NotEmpty(t, init.Body.Binders[0].Name)

	eq := init.Body.Children[0]
	require.Equal(t, syntax.KindEq, eq.Kind)
	require.Equal(t, syntax.KindIdent, eq.Children[1].Kind)
	assert.Equal(t, init.Body.Binders[0].Name, eq.Children[1].Text)
}

func TestRewriteDesugarsStandaloneNotin(t *testing.T) {
	src := `---- MODULE M ----
CONSTANT S
VARIABLE x
Init == x \notin S
====`
	mod, err := Rewrite(src)
	require.NoError(t, err)

	init := opDef(t, mod, "Init")
	require.Equal(t, syntax.KindNot, init.Body.Kind)
	require.Equal(t, syntax.KindExists, init.Body.Children[0].Kind)
}

func TestRewriteLeavesBinderInMembershipUndesugared(t *testing.T) {
	src := `---- MODULE M ----
CONSTANT S
VARIABLE x
Init == \E v \in S : v = x
====`
	mod, err := Rewrite(src)
	require.NoError(t, err)

	init := opDef(t, mod, "Init")
	require.Equal(t, syntax.KindExists, init.Body.Kind)
	assert.Equal(t, "v", init.Body.Binders[0].Name)
}

func TestRewriteReportsParseErrorWithPosition(t *testing.T) {
	src := `---- MODULE M ----
Init == x / 0
====`
	_, err := Rewrite(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at 2:")
}
