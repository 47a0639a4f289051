package app_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/reflectgo/internal/app"
	"github.com/specialistvlad/reflectgo/internal/reflecterr"
	"github.com/specialistvlad/reflectgo/internal/registry"
	"github.com/specialistvlad/reflectgo/internal/testutil"
	"github.com/specialistvlad/reflectgo/internal/typeinfo"
	"github.com/specialistvlad/reflectgo/modules/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const shoutManifest = `
type "notes.Shout" {
  aliases = ["Shout"]
  traits  = { doc = "Loud text" }

  function "Upper" {
    handler = "text.Upper"
    params  = [string]
    return  = string
  }
}
`

func TestBuildReport_ReflectedStruct(t *testing.T) {
	result := testutil.RunApp(t, nil, app.Config{}, nil)
	require.NoError(t, result.Err)

	got, err := app.BuildReport(result.App.Registry(), "Circle")
	require.NoError(t, err)

	want := []app.TypeReport{{
		ID:      "geometry.Circle",
		Aliases: []string{"Circle"},
		Parents: []string{"geometry.Shape"},
		Fields: []app.FieldReport{
			{Name: "Center", Type: "geometry.Point"},
			{Name: "Radius", Type: "float64"},
		},
		Functions: []app.FunctionReport{
			{Name: "geometry.Circle", Overloads: []string{
				"geometry.Circle()",
				"geometry.Circle(geometry.Circle)",
				"geometry.Circle(geometry.Point, float64)",
			}},
			{Name: "new", Overloads: []string{"*geometry.Circle()"}},
			{Name: "assign", Overloads: []string{"*geometry.Circle(*geometry.Circle, geometry.Circle)"}},
			{Name: "Area", Overloads: []string{"float64(geometry.Circle)"}},
			{Name: "Perimeter", Overloads: []string{"float64(geometry.Circle)"}},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestDump_YAML(t *testing.T) {
	files := map[string]string{"notes/shout.hcl": shoutManifest}
	result := testutil.RunApp(t, files, app.Config{OutputFormat: "yaml"}, func(a *app.App) error {
		return a.Dump("Shout")
	})
	require.NoError(t, result.Err)

	var got []app.TypeReport
	require.NoError(t, yaml.Unmarshal([]byte(result.Output), &got))

	want := []app.TypeReport{{
		ID:      "notes.Shout",
		Aliases: []string{"Shout"},
		Traits:  map[string]string{"doc": `"Loud text"`},
		Functions: []app.FunctionReport{
			{Name: "Upper", Overloads: []string{"string(string)"}},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dump mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, result.LogOutput, "Manifests loaded.")
}

func TestDump_Text(t *testing.T) {
	result := testutil.RunApp(t, nil, app.Config{}, func(a *app.App) error {
		return a.Dump()
	})
	require.NoError(t, result.Err)

	assert.Contains(t, result.Output, "scopes:\n  geometry.\n    Circle\n")
	assert.Contains(t, result.Output, "type geometry.Rect\n  parents: [geometry.Shape]\n")
	assert.Contains(t, result.Output, "type text.Strings\n  traits: [static]\n")
}

func TestCheck(t *testing.T) {
	t.Run("valid registry", func(t *testing.T) {
		result := testutil.RunApp(t, nil, app.Config{}, func(a *app.App) error {
			return a.Check()
		})
		require.NoError(t, result.Err)
		assert.Equal(t, "ok: 6 types\n", result.Output)
	})

	t.Run("undeclared parent", func(t *testing.T) {
		files := map[string]string{"orphan.hcl": `
type "notes.Orphan" {
  parents = ["notes.Missing"]
}
`}
		result := testutil.RunApp(t, files, app.Config{}, func(a *app.App) error {
			return a.Check()
		})
		require.Error(t, result.Err)

		var verr *registry.ValidationError
		require.True(t, errors.As(result.Err, &verr))
		assert.Equal(t, []string{"type 'notes.Orphan': parent 'notes.Missing' is not declared"}, verr.Problems)
		assert.Empty(t, result.Output)
	})

	t.Run("cyclic hierarchy from a module", func(t *testing.T) {
		cyclic := &testutil.SimpleModule{Loaders: map[string]registry.Loader{
			"loop.A": func(t *typeinfo.Type) error { return typeinfo.Build(t).Parent("loop.B").Err() },
			"loop.B": func(t *typeinfo.Type) error { return typeinfo.Build(t).Parent("loop.A").Err() },
		}}
		result := testutil.RunApp(t, nil, app.Config{}, func(a *app.App) error {
			return a.Check()
		}, cyclic)
		assert.ErrorIs(t, result.Err, reflecterr.ErrCyclicHierarchy)
	})
}

func TestEval(t *testing.T) {
	files := map[string]string{"shout.hcl": shoutManifest}

	t.Run("text output", func(t *testing.T) {
		result := testutil.RunApp(t, files, app.Config{}, func(a *app.App) error {
			return a.Eval(`notes::Shout::Upper(text::Strings::Join(["a", "b"], "+"))`)
		})
		require.NoError(t, result.Err)
		assert.Equal(t, "\"A+B\"\n", result.Output)
	})

	t.Run("yaml output", func(t *testing.T) {
		result := testutil.RunApp(t, files, app.Config{OutputFormat: "yaml"}, func(a *app.App) error {
			return a.Eval(`text::Strings::Vocabulary("b a b")`)
		})
		require.NoError(t, result.Err)

		var got map[string]string
		require.NoError(t, yaml.Unmarshal([]byte(result.Output), &got))
		assert.Equal(t, map[string]string{
			"expr":   `text::Strings::Vocabulary("b a b")`,
			"result": `["a","b"]`,
		}, got)
	})

	t.Run("errors keep their kind", func(t *testing.T) {
		result := testutil.RunApp(t, files, app.Config{}, func(a *app.App) error {
			return a.Eval(`geometry::Point::Dist(geometry::Point(0, 0), "far")`)
		})
		assert.ErrorIs(t, result.Err, reflecterr.ErrNoMatchingOverload)
	})
}

func TestNewApp_Failures(t *testing.T) {
	t.Run("manifest parity", func(t *testing.T) {
		files := map[string]string{"bad.hcl": `
type "notes.Bad" {
  function "Upper" {
    handler = "text.Upper"
    params  = [int]
    return  = string
  }
}
`}
		result := testutil.RunApp(t, files, app.Config{}, func(a *app.App) error {
			return a.Check()
		})
		assert.ErrorIs(t, result.Err, reflecterr.ErrInvalidFunction)
	})

	t.Run("manifest syntax", func(t *testing.T) {
		files := map[string]string{"broken.hcl": `type "notes.Broken" {`}
		result := testutil.RunApp(t, files, app.Config{}, nil)
		require.Error(t, result.Err)
		assert.Contains(t, result.Err.Error(), "failed to load manifests")
		assert.Nil(t, result.App)
	})

	t.Run("module panics are recovered", func(t *testing.T) {
		dup := &testutil.SimpleModule{Handlers: map[string]any{"text.Upper": func(string) string { return "" }}}
		result := testutil.RunApp(t, nil, app.Config{}, nil, &text.Module{}, dup)
		require.Error(t, result.Err)
		assert.Contains(t, result.Err.Error(), "application startup panicked")
		assert.Contains(t, result.Err.Error(), "handler with name 'text.Upper' already registered")
	})
}
