package argument

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type celsius float64

type names []string

type point struct{ X, Y int }

func (p point) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

func TestIsConvertibleTo(t *testing.T) {
	testCases := []struct {
		name     string
		from     Argument
		to       Argument
		expected Match
	}{
		{name: "void to void", from: Void(), to: Void(), expected: Exact},
		{name: "identical basic", from: For[int](), to: For[int](), expected: Exact},
		{name: "identical struct", from: For[point](), to: For[point](), expected: Exact},
		{name: "int to float64", from: For[int](), to: For[float64](), expected: None},
		{name: "float64 to int", from: For[float64](), to: For[int](), expected: None},
		{name: "named float to float64", from: For[celsius](), to: For[float64](), expected: None},
		{name: "string to int", from: For[string](), to: For[int](), expected: None},
		{name: "pointer to element", from: For[*point](), to: For[point](), expected: Convertible},
		{name: "element to pointer", from: For[point](), to: For[*point](), expected: None},
		{name: "value to implemented interface", from: For[point](), to: For[fmt.Stringer](), expected: Convertible},
		{name: "value to any", from: For[int](), to: For[any](), expected: Convertible},
		{name: "value to unimplemented interface", from: For[int](), to: For[io.Reader](), expected: None},
		{name: "unnamed slice to named slice", from: For[[]string](), to: For[names](), expected: Convertible},
		{name: "void to pointer", from: Void(), to: For[*point](), expected: Convertible},
		{name: "void to int", from: Void(), to: For[int](), expected: None},
		{name: "value to void", from: For[int](), to: Void(), expected: None},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.from.IsConvertibleTo(tc.to))
		})
	}
}

func TestCombine_KeepsWeakest(t *testing.T) {
	assert.Equal(t, Exact, Combine(Exact, Exact))
	assert.Equal(t, Convertible, Combine(Exact, Convertible))
	assert.Equal(t, None, Combine(Convertible, None))
	assert.Equal(t, None, Combine(None, Exact))
}

func TestOfValue(t *testing.T) {
	assert.True(t, OfValue(nil).IsVoid())
	assert.Equal(t, reflect.TypeOf(""), OfValue("x").Type())

	args := OfValues(1, 2.5, &strings.Builder{})
	assert.Equal(t, []string{"int", "float64", "*strings.Builder"}, []string{args[0].String(), args[1].String(), args[2].String()})
}

func TestMatch_String(t *testing.T) {
	assert.Equal(t, "exact", Exact.String())
	assert.Equal(t, "convertible", Convertible.String())
	assert.Equal(t, "none", None.String())
}
