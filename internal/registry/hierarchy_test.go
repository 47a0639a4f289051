package registry

import (
	"errors"
	"testing"

	"github.com/specialistvlad/reflectgo/internal/reflecterr"
	"github.com/specialistvlad/reflectgo/internal/typeinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addShape(t *testing.T, r *Registry, id string, parents ...string) {
	t.Helper()
	require.NoError(t, r.AddLoader(id, func(typ *typeinfo.Type) error {
		b := typeinfo.Build(typ)
		for _, p := range parents {
			b.Parent(p)
		}
		return b.Err()
	}))
}

func TestAncestorsAndFindFunction(t *testing.T) {
	r := New(nil)
	require.NoError(t, r.AddLoader("Shape", func(typ *typeinfo.Type) error {
		return typeinfo.Build(typ).Fn("area", func() float64 { return 0 }).Err()
	}))
	addShape(t, r, "Polygon", "Shape")
	addShape(t, r, "Square", "Polygon")
	require.NoError(t, r.Alias("Polygon", "Poly"))

	ancestors, err := r.Ancestors("Square")
	require.NoError(t, err)
	assert.Equal(t, []string{"Polygon", "Shape"}, ancestors)

	ok, err := r.IsChildOf("Square", "Poly")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.IsChildOf("Shape", "Square")
	require.NoError(t, err)
	assert.False(t, ok)

	ov, owner, err := r.FindFunction("Square", "area")
	require.NoError(t, err)
	assert.Equal(t, "Shape", owner.ID())
	assert.Equal(t, 1, ov.Len())

	_, _, err = r.FindFunction("Square", "volume")
	require.ErrorIs(t, err, reflecterr.ErrNoMatchingOverload)
}

func TestValidate(t *testing.T) {
	t.Run("clean hierarchy", func(t *testing.T) {
		r := New(nil)
		addShape(t, r, "Shape")
		addShape(t, r, "Square", "Shape")
		require.NoError(t, r.Validate())
	})

	t.Run("undeclared parent", func(t *testing.T) {
		r := New(nil)
		addShape(t, r, "Square", "Ghost")

		err := r.Validate()
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"type 'Square': parent 'Ghost' is not declared"}, verr.Problems)
		assert.False(t, errors.Is(err, reflecterr.ErrCyclicHierarchy))
	})

	t.Run("cycle", func(t *testing.T) {
		r := New(nil)
		addShape(t, r, "A", "B")
		addShape(t, r, "B", "A")

		err := r.Validate()
		require.ErrorIs(t, err, reflecterr.ErrCyclicHierarchy)
		assert.Contains(t, err.Error(), "registry validation failed")

		_, err = r.Ancestors("A")
		require.ErrorIs(t, err, reflecterr.ErrCyclicHierarchy)
	})

	t.Run("failing loader", func(t *testing.T) {
		r := New(nil)
		boom := errors.New("boom")
		require.NoError(t, r.AddLoader("Bad", func(*typeinfo.Type) error { return boom }))
		require.ErrorIs(t, r.Validate(), boom)
	})
}
