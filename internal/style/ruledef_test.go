package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapstack/geoviz-cli/internal/coerce"
)

func TestCompile_IntRules(t *testing.T) {
	defs := []RuleDef{
		{Name: "low", Op: "lt", Value: "10", Color: "#00ff00", Size: 0.5},
		{Name: "mid", Op: "between", Min: "10", Max: "20", Color: "#ffff00", Size: 0.5},
		{Name: "rest", Op: "any", Color: "#ff0000", Size: 1},
	}

	rules, err := Compile(defs, coerce.Int)
	require.NoError(t, err)
	require.Len(t, rules, 3)

	st, ok := rules.Resolve(5)
	require.True(t, ok)
	assert.Equal(t, "#00ff00", st.Color)

	st, ok = rules.Resolve(15)
	require.True(t, ok)
	assert.Equal(t, "#ffff00", st.Color)

	st, ok = rules.Resolve(99)
	require.True(t, ok)
	assert.Equal(t, "#ff0000", st.Color)
	assert.Equal(t, 1.0, st.Size)
}

func TestCompile_StringIn(t *testing.T) {
	defs := []RuleDef{
		{Op: "in", Values: []string{"EF4", "EF5"}, Color: "#800000"},
	}

	rules, err := Compile(defs, coerce.String)
	require.NoError(t, err)

	_, ok := rules.Resolve("EF1")
	assert.False(t, ok)

	st, ok := rules.Resolve("EF5")
	require.True(t, ok)
	assert.Equal(t, "#800000", st.Color)
}

func TestCompile_UnknownOp(t *testing.T) {
	_, err := Compile([]RuleDef{{Name: "bad", Op: "matches"}}, coerce.Int)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown op "matches"`)
}

func TestCompile_BadOperand(t *testing.T) {
	_, err := Compile([]RuleDef{{Op: "eq", Value: "abc"}}, coerce.Int)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `operand "abc"`)
}

func TestCompile_InWithoutValues(t *testing.T) {
	_, err := Compile([]RuleDef{{Op: "in"}}, coerce.Float)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op in requires values")
}

func TestCompile_PreservesOrder(t *testing.T) {
	// Overlapping rules keep their declared order after compilation.
	defs := []RuleDef{
		{Op: "ge", Value: "0", Color: "#111111"},
		{Op: "ge", Value: "0", Color: "#222222"},
	}

	rules, err := Compile(defs, coerce.Float)
	require.NoError(t, err)

	st, ok := rules.Resolve(1)
	require.True(t, ok)
	assert.Equal(t, "#111111", st.Color)
}
