package tlamodule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkazan/tlarun/internal/rewriter"
	"github.com/vkazan/tlarun/internal/syntax"
	"github.com/vkazan/tlarun/internal/tlamodule"
)

func TestExtractCollectsDeclarationsAndActions(t *testing.T) {
	src := `---- MODULE M ----
CONSTANT N
VARIABLES a, b
Init == a = 0 /\ b = 0
Next ==
  \/ a' = a + 1 /\ UNCHANGED b
  \/ b' = b + 1 /\ UNCHANGED a
====`
	mod, err := rewriter.Rewrite(src)
	require.NoError(t, err)

	m, err := tlamodule.Extract(mod)
	require.NoError(t, err)

	assert.Equal(t, "M", m.Name)
	assert.Equal(t, []string{"N"}, m.Constants)
	assert.ElementsMatch(t, []string{"a", "b"}, m.Vars)
	assert.Len(t, m.Actions, 2)

	init, err := m.InitBody()
	require.NoError(t, err)
	assert.Equal(t, syntax.KindAnd, init.Kind)
}

func TestExtractWrapsSingleActionNext(t *testing.T) {
	src := `---- MODULE M ----
VARIABLE x
Init == x = 0
Next == x' = x + 1
====`
	mod, err := rewriter.Rewrite(src)
	require.NoError(t, err)

	m, err := tlamodule.Extract(mod)
	require.NoError(t, err)
	require.Len(t, m.Actions, 1)
	assert.Equal(t, syntax.KindEq, m.Actions[0].Kind)
}

func TestExtractFailsOnDuplicateNext(t *testing.T) {
	src := `---- MODULE M ----
VARIABLE x
Next == x' = x
Next == x' = x + 1
====`
	mod, err := rewriter.Rewrite(src)
	require.NoError(t, err)

	_, err = tlamodule.Extract(mod)
	assert.Error(t, err)
}

func TestExtractFailsOnMissingInitOnlyWhenRequested(t *testing.T) {
	src := `---- MODULE M ----
VARIABLE x
Next == x' = x + 1
====`
	mod, err := rewriter.Rewrite(src)
	require.NoError(t, err)

	m, err := tlamodule.Extract(mod)
	require.NoError(t, err)

	_, err = m.InitBody()
	assert.Error(t, err)
}

func TestExtractDetectsOperatorDefinitionCycle(t *testing.T) {
	src := `---- MODULE M ----
A == B + 1
B == A + 1
====`
	mod, err := rewriter.Rewrite(src)
	require.NoError(t, err)

	_, err = tlamodule.Extract(mod)
	assert.Error(t, err)
}
