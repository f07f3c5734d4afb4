package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductIsCanonicalOrder(t *testing.T) {
	u, err := New([]TypeEntry{{Type: "obj", Objects: []string{"o1", "o2"}}})
	require.NoError(t, err)

	tuples, err := u.Product([]string{"obj", "obj"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"o1", "o1"}, {"o1", "o2"}, {"o2", "o1"}, {"o2", "o2"},
	}, tuples)
}

func TestProductEmptyParamTypesYieldsOneEmptyTuple(t *testing.T) {
	u, err := New(nil)
	require.NoError(t, err)
	tuples, err := u.Product(nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{}}, tuples)
}

func TestProductUndeclaredTypeErrors(t *testing.T) {
	u, err := New(nil)
	require.NoError(t, err)
	_, err = u.Product([]string{"obj"})
	assert.Error(t, err)
}

func TestTypeOfReverseMapping(t *testing.T) {
	u, err := New([]TypeEntry{{Type: "obj", Objects: []string{"o1", "o2"}}})
	require.NoError(t, err)
	typ, ok := u.TypeOf("o2")
	require.True(t, ok)
	assert.Equal(t, "obj", typ)

	_, ok = u.TypeOf("missing")
	assert.False(t, ok)
}
