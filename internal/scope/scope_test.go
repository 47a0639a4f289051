package scope

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	testCases := []struct {
		name      string
		id        string
		expectErr bool
		expected  []string
	}{
		{name: "single segment", id: "Point", expected: []string{"Point"}},
		{name: "nested", id: "geo.shapes.Point", expected: []string{"geo", "shapes", "Point"}},
		{name: "dots inside brackets", id: "map[string]geo.Point", expected: []string{"map[string]geo", "Point"}},
		{name: "generic", id: "geo.Box[geo.Point]", expected: []string{"geo", "Box[geo.Point]"}},
		{name: "error - empty", id: "", expectErr: true},
		{name: "error - empty segment", id: "geo..Point", expectErr: true},
		{name: "error - trailing dot", id: "geo.", expectErr: true},
		{name: "error - padded segment", id: "geo. Point", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			segments, err := Split(tc.id)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, segments)
		})
	}
}

func TestAddType_BuildsTree(t *testing.T) {
	root := New()
	require.NoError(t, root.AddType("geo.Point"))
	require.NoError(t, root.AddType("geo.shapes.Circle"))
	require.NoError(t, root.AddType("int"))
	require.Error(t, root.AddType(""))

	assert.Equal(t, []string{"int"}, root.Types())
	assert.Equal(t, []string{"geo"}, root.Scopes())

	geo := root.Scope("geo")
	require.NotNil(t, geo)
	assert.Equal(t, []string{"Point"}, geo.Types())
	assert.Equal(t, "geo", geo.Name())

	shapes := root.Scope("geo.shapes")
	require.NotNil(t, shapes)
	assert.Equal(t, "geo.shapes", shapes.FullName())
	assert.Same(t, shapes, geo.Scope("shapes"))

	assert.Nil(t, root.Scope("geo.missing"))
	assert.Same(t, root, root.Scope(""))
	assert.Equal(t, "", root.FullName())
}

func TestHasType(t *testing.T) {
	root := New()
	require.NoError(t, root.AddType("geo.Point"))

	assert.True(t, root.HasType("geo.Point"))
	assert.False(t, root.HasType("geo"))
	assert.False(t, root.HasType("Point"))
	assert.True(t, root.Scope("geo").HasType("Point"))
}

func TestPrint(t *testing.T) {
	root := New()
	require.NoError(t, root.AddType("geo.Point"))
	require.NoError(t, root.AddType("geo.shapes.Circle"))
	require.NoError(t, root.AddType("int"))

	expected := "int\n" +
		"geo.\n" +
		"  Point\n" +
		"  shapes.\n" +
		"    Circle\n"
	assert.Equal(t, expected, root.Print(0))
}

func TestAddType_Concurrent(t *testing.T) {
	root := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, root.AddType(fmt.Sprintf("ns%d.T%d", i%5, i)))
			_ = root.Scope(fmt.Sprintf("ns%d", i%5)).Types()
		}(i)
	}
	wg.Wait()

	assert.Len(t, root.Scopes(), 5)
	total := 0
	for _, name := range root.Scopes() {
		total += len(root.Scope(name).Types())
	}
	assert.Equal(t, 50, total)
}
