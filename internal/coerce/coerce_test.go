package coerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	v, err := Int("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = Int(" -7 ")
	require.NoError(t, err)
	assert.Equal(t, int64(-7), v)

	_, err = Int("abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"abc" is not an integer`)

	_, err = Int("1.5")
	assert.Error(t, err)
}

func TestFloat(t *testing.T) {
	v, err := Float("2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	v, err = Float("10")
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)

	_, err = Float("")
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	v, err := String("  keep as is ")
	require.NoError(t, err)
	assert.Equal(t, "  keep as is ", v)
}
