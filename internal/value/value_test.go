package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkazan/tlarun/internal/value"
)

func TestSetEqualityIsOrderInvariant(t *testing.T) {
	a := value.NewSet(value.NewInt(1), value.NewInt(2), value.NewInt(3))
	b := value.NewSet(value.NewInt(3), value.NewInt(1), value.NewInt(2), value.NewInt(1))

	assert.True(t, a.Equal(b))

	size, err := b.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestSetOperations(t *testing.T) {
	a := value.NewSet(value.NewInt(1), value.NewInt(2), value.NewInt(3))
	b := value.NewSet(value.NewInt(2), value.NewInt(3), value.NewInt(4))

	union, err := a.Union(b)
	require.NoError(t, err)
	assert.True(t, union.Equal(value.NewSet(value.NewInt(1), value.NewInt(2), value.NewInt(3), value.NewInt(4))))

	inter, err := a.Intersect(b)
	require.NoError(t, err)
	assert.True(t, inter.Equal(value.NewSet(value.NewInt(2), value.NewInt(3))))

	diff, err := a.Diff(b)
	require.NoError(t, err)
	assert.True(t, diff.Equal(value.NewSet(value.NewInt(1))))

	sub, err := value.NewSet(value.NewInt(2)).IsSubsetOf(a)
	require.NoError(t, err)
	assert.True(t, sub)
}

func TestTupleOperationsPreserveOrder(t *testing.T) {
	tup := value.NewTuple(value.NewInt(10), value.NewInt(20), value.NewInt(30))

	head, err := tup.Head()
	require.NoError(t, err)
	assert.True(t, head.Equal(value.NewInt(10)))

	tail, err := tup.Tail()
	require.NoError(t, err)
	assert.True(t, tail.Equal(value.NewTuple(value.NewInt(20), value.NewInt(30))))

	appended, err := tup.Append(value.NewInt(40))
	require.NoError(t, err)
	n, err := appended.Length()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	reordered := value.NewTuple(value.NewInt(30), value.NewInt(20), value.NewInt(10))
	assert.False(t, tup.Equal(reordered), "tuple equality must be order-sensitive unlike set equality")
}

func TestTupleConcat(t *testing.T) {
	a := value.NewTuple(value.NewInt(1), value.NewInt(2))
	b := value.NewTuple(value.NewInt(3))

	got, err := a.Concat(b)
	require.NoError(t, err)
	assert.True(t, got.Equal(value.NewTuple(value.NewInt(1), value.NewInt(2), value.NewInt(3))))
}

func TestFunctionApplyAndDomainError(t *testing.T) {
	fn, err := value.NewFunction(
		[]value.Value{value.NewInt(1), value.NewInt(2)},
		[]value.Value{value.NewStr("a"), value.NewStr("b")},
	)
	require.NoError(t, err)

	got, err := fn.Apply(value.NewInt(2))
	require.NoError(t, err)
	s, ok := got.AsStr()
	require.True(t, ok)
	assert.Equal(t, "b", s)

	_, err = fn.Apply(value.NewInt(99))
	assert.Error(t, err)
}

func TestFunctionUpdate(t *testing.T) {
	fn, err := value.NewFunction(
		[]value.Value{value.NewInt(1), value.NewInt(2)},
		[]value.Value{value.NewInt(100), value.NewInt(200)},
	)
	require.NoError(t, err)

	updated, err := fn.Update(value.NewInt(2), value.NewInt(999))
	require.NoError(t, err)

	got, err := updated.Apply(value.NewInt(2))
	require.NoError(t, err)
	assert.True(t, got.Equal(value.NewInt(999)))

	// original left untouched
	orig, err := fn.Apply(value.NewInt(2))
	require.NoError(t, err)
	assert.True(t, orig.Equal(value.NewInt(200)))
}

func TestRecordFieldAccessAndIsRecord(t *testing.T) {
	rec, err := value.NewRecord([]string{"x", "y"}, []value.Value{value.NewInt(1), value.NewInt(2)})
	require.NoError(t, err)
	assert.True(t, rec.IsRecord())

	got, err := rec.Apply(value.NewStr("y"))
	require.NoError(t, err)
	assert.True(t, got.Equal(value.NewInt(2)))
}

func TestComposeGivesPrecedenceToLeftOperand(t *testing.T) {
	f, err := value.NewFunction([]value.Value{value.NewInt(1)}, []value.Value{value.NewStr("f")})
	require.NoError(t, err)
	g, err := value.NewFunction(
		[]value.Value{value.NewInt(1), value.NewInt(2)},
		[]value.Value{value.NewStr("g1"), value.NewStr("g2")},
	)
	require.NoError(t, err)

	composed, err := f.Compose(g)
	require.NoError(t, err)

	at1, err := composed.Apply(value.NewInt(1))
	require.NoError(t, err)
	s1, _ := at1.AsStr()
	assert.Equal(t, "f", s1)

	at2, err := composed.Apply(value.NewInt(2))
	require.NoError(t, err)
	s2, _ := at2.AsStr()
	assert.Equal(t, "g2", s2)
}

func TestTupleFcnRoundTrip(t *testing.T) {
	tup := value.NewTuple(value.NewStr("a"), value.NewStr("b"), value.NewStr("c"))

	fn, err := tup.ToFcn()
	require.NoError(t, err)

	back, err := fn.ToTuple()
	require.NoError(t, err)

	assert.True(t, tup.Equal(back))
}
