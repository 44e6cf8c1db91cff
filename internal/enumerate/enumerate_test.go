package enumerate_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkazan/tlarun/internal/ctxlog"
	"github.com/vkazan/tlarun/internal/enumerate"
	"github.com/vkazan/tlarun/internal/syntax"
	"github.com/vkazan/tlarun/internal/tlamodule"
	"github.com/vkazan/tlarun/internal/tlastate"
	"github.com/vkazan/tlarun/internal/value"
)

// testCtx installs a discard logger, the way the teacher's dag tests
// install a no-op logger rather than exercising real output.
func testCtx(t *testing.T) context.Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
	return ctxlog.WithLogger(context.Background(), logger)
}

func ident(name string) *syntax.Node { return &syntax.Node{Kind: syntax.KindIdent, Text: name} }
func primed(n *syntax.Node) *syntax.Node {
	return &syntax.Node{Kind: syntax.KindPrimed, Children: []*syntax.Node{n}}
}
func num(n int64) *syntax.Node { return &syntax.Node{Kind: syntax.KindNumber, Num: n} }
func eq(l, r *syntax.Node) *syntax.Node {
	return &syntax.Node{Kind: syntax.KindEq, Children: []*syntax.Node{l, r}}
}
func add(l, r *syntax.Node) *syntax.Node {
	return &syntax.Node{Kind: syntax.KindAdd, Children: []*syntax.Node{l, r}}
}
func and(ns ...*syntax.Node) *syntax.Node { return &syntax.Node{Kind: syntax.KindAnd, Children: ns} }
func or(ns ...*syntax.Node) *syntax.Node  { return &syntax.Node{Kind: syntax.KindOr, Children: ns} }
func unchanged(n *syntax.Node) *syntax.Node {
	return &syntax.Node{Kind: syntax.KindUnchanged, Children: []*syntax.Node{n}}
}

// existsInRange builds the post-rewrite shape of `e \in {lo..hi}`-style
// membership-as-assignment: `\E fresh \in lo..hi : e = fresh`, matching
// what internal/rewriter's desugarIn produces.
func existsInRange(e *syntax.Node, lo, hi int64, fresh string) *syntax.Node {
	k := ident(fresh)
	rng := &syntax.Node{Kind: syntax.KindRange, Children: []*syntax.Node{num(lo), num(hi)}}
	return &syntax.Node{
		Kind:     syntax.KindExists,
		Binders:  []syntax.Binder{{Name: fresh, Domain: rng}},
		Children: []*syntax.Node{eq(e, k)},
	}
}

func TestInitKeepsOnlyTrueBranchesAndDedupes(t *testing.T) {
	// VARIABLE x  Init == x = 0
	m := &tlamodule.Module{
		Name: "M",
		Vars: []string{"x"},
		OpDefs: map[string]*tlamodule.OpDef{
			"Init": {Name: "Init", Body: eq(ident("x"), num(0))},
		},
	}
	states, err := enumerate.Init(testCtx(t), m, nil)
	require.NoError(t, err)
	require.Len(t, states, 1)
	xv, ok := states[0].Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(0), mustInt(t, xv))
}

func TestNextComputesSingleSuccessor(t *testing.T) {
	// VARIABLE x  Init == x = 0  Next == x' = x + 1
	m := &tlamodule.Module{
		Name: "M",
		Vars: []string{"x"},
		OpDefs: map[string]*tlamodule.OpDef{
			"Init": {Name: "Init", Body: eq(ident("x"), num(0))},
			"Next": {Name: "Next", Body: eq(primed(ident("x")), add(ident("x"), num(1)))},
		},
	}
	ctx := testCtx(t)
	initial, err := enumerate.Init(ctx, m, nil)
	require.NoError(t, err)
	require.Len(t, initial, 1)

	successors, err := enumerate.Next(ctx, m, nil, initial[0])
	require.NoError(t, err)
	require.Len(t, successors, 1)
	xv, ok := successors[0].Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), mustInt(t, xv))
}

func TestNextDiscardsBranchesLeavingAPrimedVariableUnassigned(t *testing.T) {
	// VARIABLE x, y  Next == x' = x + 1 (y' never assigned, so the one
	// branch produced must be discarded rather than erroring).
	m := &tlamodule.Module{
		Name: "M",
		Vars: []string{"x", "y"},
		OpDefs: map[string]*tlamodule.OpDef{
			"Next": {Name: "Next", Body: eq(primed(ident("x")), add(ident("x"), num(1)))},
		},
	}
	state := tlastate.New(map[string]value.Value{"x": value.NewInt(0), "y": value.NewInt(0)})
	successors, err := enumerate.Next(testCtx(t), m, nil, state)
	require.NoError(t, err)
	assert.Empty(t, successors)
}

func TestNextKeepsBothDisjunctsWhenEachAssignsDifferentVars(t *testing.T) {
	// VARIABLES a, b
	// Next == \/ a' = a + 1 /\ UNCHANGED b
	//         \/ b' = b + 1 /\ UNCHANGED a
	m := &tlamodule.Module{
		Name: "M",
		Vars: []string{"a", "b"},
		OpDefs: map[string]*tlamodule.OpDef{
			"Next": {Name: "Next", Body: or(
				and(eq(primed(ident("a")), add(ident("a"), num(1))), unchanged(ident("b"))),
				and(eq(primed(ident("b")), add(ident("b"), num(1))), unchanged(ident("a"))),
			)},
		},
	}
	state := tlastate.New(map[string]value.Value{"a": value.NewInt(0), "b": value.NewInt(0)})
	successors, err := enumerate.Next(testCtx(t), m, nil, state)
	require.NoError(t, err)
	require.Len(t, successors, 2)

	var sums []int64
	for _, s := range successors {
		av := mustInt(t, mustGet(t, s, "a"))
		bv := mustInt(t, mustGet(t, s, "b"))
		sums = append(sums, av+bv)
	}
	assert.ElementsMatch(t, []int64{1, 1}, sums)
}

func TestReachableStopsAtMaxStates(t *testing.T) {
	// VARIABLE x  Init == x \in {1,2}  Next == x' \in {x, x+1}
	// (example 2 of spec.md's worked examples). The successor set isn't
	// a constant range, so it's built as a two-element set literal
	// rather than through existsInRange.
	nextSet := &syntax.Node{Kind: syntax.KindSetLit, Children: []*syntax.Node{
		ident("x"), add(ident("x"), num(1)),
	}}
	m := &tlamodule.Module{
		Name: "M",
		Vars: []string{"x"},
		OpDefs: map[string]*tlamodule.OpDef{
			"Init": {Name: "Init", Body: existsInRange(ident("x"), 1, 2, "__k1")},
			"Next": {Name: "Next", Body: &syntax.Node{
				Kind:     syntax.KindExists,
				Binders:  []syntax.Binder{{Name: "__k2", Domain: nextSet}},
				Children: []*syntax.Node{eq(primed(ident("x")), ident("__k2"))},
			}},
		},
	}

	ctx := testCtx(t)
	initial, err := enumerate.Init(ctx, m, nil)
	require.NoError(t, err)
	require.Len(t, initial, 2)

	result, err := enumerate.Reachable(ctx, m, nil, initial, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, enumerate.ErrMaxStatesReached)
	require.NotNil(t, result)
	assert.Len(t, result.States, 3)

	var xs []int64
	for _, s := range result.States {
		xs = append(xs, mustInt(t, mustGet(t, s, "x")))
	}
	assert.ElementsMatch(t, []int64{1, 2, 3}, xs)
	assert.NotEmpty(t, result.Edges)
}

func TestReachableUnboundedTerminatesOnAFiniteStateSpace(t *testing.T) {
	// VARIABLES a, b  Init == a=0 /\ b=0
	// Next == \/ (a'=a+1 /\ UNCHANGED b) \/ (b'=b+1 /\ UNCHANGED a), each
	// disjunct guarded so the reachable set stays finite (example 3 of
	// spec.md's worked examples, capped at one step in each direction).
	m := &tlamodule.Module{
		Name: "M",
		Vars: []string{"a", "b"},
		OpDefs: map[string]*tlamodule.OpDef{
			"Init": {Name: "Init", Body: and(eq(ident("a"), num(0)), eq(ident("b"), num(0)))},
			"Next": {Name: "Next", Body: or(
				and(eq(primed(ident("a")), num(1)), unchanged(ident("b")), eq(ident("a"), num(0)), eq(ident("b"), num(0))),
				and(eq(primed(ident("b")), num(1)), unchanged(ident("a")), eq(ident("b"), num(0)), eq(ident("a"), num(0))),
			)},
		},
	}
	ctx := testCtx(t)
	initial, err := enumerate.Init(ctx, m, nil)
	require.NoError(t, err)
	require.Len(t, initial, 1)

	result, err := enumerate.Reachable(ctx, m, nil, initial, 0)
	require.NoError(t, err)
	assert.Len(t, result.States, 3) // {a=0,b=0}, {a=1,b=0}, {a=0,b=1}
}

func mustInt(t *testing.T, v value.Value) int64 {
	t.Helper()
	i, ok := v.AsInt()
	require.True(t, ok)
	return i
}

func mustGet(t *testing.T, s tlastate.State, name string) value.Value {
	t.Helper()
	v, ok := s.Get(name)
	require.True(t, ok, "state has no %q", name)
	return v
}
