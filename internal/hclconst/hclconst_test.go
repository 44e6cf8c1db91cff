package hclconst_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkazan/tlarun/internal/hclconst"
	"github.com/vkazan/tlarun/internal/value"
)

func writeConstFile(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "consts.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEvaluatesFlatAttributes(t *testing.T) {
	path := writeConstFile(t, `
N = 2
Name = "grid"
Flag = true
`)
	consts, err := hclconst.Load(path, nil)
	require.NoError(t, err)

	n, ok := consts["N"].AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(2), n)

	s, ok := consts["Name"].AsStr()
	require.True(t, ok)
	assert.Equal(t, "grid", s)

	b, ok := consts["Flag"].AsBool()
	require.True(t, ok)
	assert.True(t, b)
}

func TestLoadOrdersCrossReferencingConstants(t *testing.T) {
	// M references N, so N must be evaluated first regardless of the
	// order attributes happen to appear in the map returned by
	// JustAttributes (which is unordered).
	path := writeConstFile(t, `
M = N * 2
N = 3
`)
	consts, err := hclconst.Load(path, nil)
	require.NoError(t, err)

	m, ok := consts["M"].AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(6), m)
}

func TestLoadRejectsDependencyCycle(t *testing.T) {
	path := writeConstFile(t, `
A = B + 1
B = A + 1
`)
	_, err := hclconst.Load(path, nil)
	require.Error(t, err)
}

func TestLoadMergesOverBaseConstants(t *testing.T) {
	path := writeConstFile(t, `
Doubled = Base * 2
`)
	base := map[string]value.Value{"Base": value.NewInt(5)}
	consts, err := hclconst.Load(path, base)
	require.NoError(t, err)

	d, ok := consts["Doubled"].AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(10), d)
	assert.Equal(t, int64(5), mustInt(t, consts["Base"]))
}

func TestLoadRejectsUndefinedReference(t *testing.T) {
	path := writeConstFile(t, `
M = Missing + 1
`)
	_, err := hclconst.Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing")
}

func mustInt(t *testing.T, v value.Value) int64 {
	t.Helper()
	n, ok := v.AsInt()
	require.True(t, ok)
	return n
}
