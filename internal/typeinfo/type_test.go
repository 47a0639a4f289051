package typeinfo

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/specialistvlad/reflectgo/internal/argument"
	"github.com/specialistvlad/reflectgo/internal/reflecterr"
	"github.com/specialistvlad/reflectgo/internal/traits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type point struct {
	X, Y   int
	hidden string
}

func (p point) Dist() float64 { return math.Hypot(float64(p.X), float64(p.Y)) }

func (p *point) Scale(k int) { p.X, p.Y = p.X*k, p.Y*k }

func TestType_Functions(t *testing.T) {
	typ := New("geo.Point")

	require.NoError(t, typ.AddFunction("dist", func(x float64) float64 { return x }))
	require.NoError(t, typ.AddFunction("dist", func(x int) float64 { return float64(x) * 2 }))
	require.NoError(t, typ.AddFunction("area", func() float64 { return 0 }))

	err := typ.AddFunction("dist", func(y float64) float64 { return y })
	require.ErrorIs(t, err, reflecterr.ErrAmbiguousOverload)

	assert.Equal(t, []string{"dist", "area"}, typ.Functions())
	assert.True(t, typ.HasFunction("dist"))
	assert.False(t, typ.HasFunction("missing"))

	out, err := typ.Call("dist", 3)
	require.NoError(t, err)
	assert.Equal(t, 6.0, out)

	out, err = typ.Call("dist", 1.5)
	require.NoError(t, err)
	assert.Equal(t, 1.5, out)

	_, err = typ.Call("dist", "far")
	require.ErrorIs(t, err, reflecterr.ErrNoMatchingOverload)

	_, err = typ.Call("missing")
	require.ErrorIs(t, err, reflecterr.ErrNoMatchingOverload)
	assert.Contains(t, err.Error(), "<missing> of <geo.Point>")
}

func TestType_FunctionCreatesEmptySet(t *testing.T) {
	typ := New("T")

	_, ok := typ.Overloads("f")
	assert.False(t, ok)

	ov := typ.Function("f")
	assert.Equal(t, 0, ov.Len())
	assert.False(t, typ.HasFunction("f"))
	assert.Same(t, ov, typ.Function("f"))
}

func TestType_Parents(t *testing.T) {
	typ := New("Child")

	require.NoError(t, typ.AddParent("Parent"))
	require.NoError(t, typ.AddParent("Interface"))
	require.ErrorIs(t, typ.AddParent("Parent"), reflecterr.ErrDuplicateRegistration)
	require.ErrorIs(t, typ.AddParent("Child"), reflecterr.ErrCyclicHierarchy)
	require.ErrorIs(t, typ.AddParent(""), reflecterr.ErrInvalidIdentifier)

	assert.Equal(t, []string{"Parent", "Interface"}, typ.Parents())
	assert.True(t, typ.IsChildOf("Interface"))
	assert.False(t, typ.IsChildOf("Other"))
}

func TestType_Fields(t *testing.T) {
	typ := New("T")

	require.NoError(t, typ.AddField(NewField("value", reflect.TypeOf(0))))
	require.ErrorIs(t, typ.AddField(NewField("value", reflect.TypeOf(""))), reflecterr.ErrDuplicateRegistration)
	require.ErrorIs(t, typ.AddField(NewField("", reflect.TypeOf(""))), reflecterr.ErrInvalidIdentifier)

	f, ok := typ.Field("value")
	require.True(t, ok)
	assert.Equal(t, "int", f.Type().String())
	assert.False(t, f.Accessible())

	_, err := f.Get(struct{}{})
	require.ErrorIs(t, err, reflecterr.ErrInvalidCall)
}

func TestBuilder_StopsAtFirstError(t *testing.T) {
	b := Build(New("geo.Point")).
		Cons(func(x, y int) point { return point{X: x, Y: y} }).
		Fn("dist", func(float64) float64 { return 0 }).
		Fn("dist", func(float64) float64 { return 1 }).
		Fn("after", func() {})

	require.ErrorIs(t, b.Err(), reflecterr.ErrAmbiguousOverload)
	assert.False(t, b.Type().HasFunction("after"))
}

func TestBuilder_Traits(t *testing.T) {
	b := Build(New("T")).
		Trait("interface").
		TraitValue("doc", cty.StringVal("a test type")).
		Fn("area", func() float64 { return 0 }).
		FnTrait("area", "virtual").
		Field("value", reflect.TypeOf(0)).
		Parent("Base")
	require.NoError(t, b.Err())

	typ := b.Type()
	assert.True(t, typ.Traits().Is("interface"))
	ov, ok := typ.Overloads("area")
	require.True(t, ok)
	assert.True(t, ov.Traits().Is("virtual"))

	expected := "type T\n" +
		"  parents: [Base]\n" +
		"  traits: [doc=\"a test type\", interface]\n" +
		"  field value int\n" +
		"  function area\n" +
		"    traits: [virtual]\n" +
		"    float64()\n"
	assert.Equal(t, expected, typ.Print())
}

func TestReflectStruct(t *testing.T) {
	b := ReflectStruct[point](Build(New("geo.Point")))
	require.NoError(t, b.Err())
	typ := b.Type()

	zero, err := typ.Construct()
	require.NoError(t, err)
	assert.Equal(t, point{}, zero)

	copied, err := typ.Construct(point{X: 1, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, point{X: 1, Y: 2}, copied)

	allocated, err := typ.Call(AllocatorName)
	require.NoError(t, err)
	assert.IsType(t, &point{}, allocated)

	names := []string{}
	for _, f := range typ.Fields() {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"X", "Y"}, names)

	dist, err := typ.Call("Dist", point{X: 3, Y: 4})
	require.NoError(t, err)
	assert.Equal(t, 5.0, dist)

	p := &point{X: 1, Y: 2}
	_, err = typ.Call("Scale", p, 3)
	require.NoError(t, err)
	assert.Equal(t, point{X: 3, Y: 6}, *p)

	// Value methods accept pointers through dereferencing.
	dist, err = typ.Call("Dist", p)
	require.NoError(t, err)
	assert.InDelta(t, 6.708, dist, 0.001)

	ov, _ := typ.Overloads("Dist")
	assert.True(t, ov.Functions()[0].Traits().Is("const"))
	ov, _ = typ.Overloads("Scale")
	assert.True(t, ov.Functions()[0].Traits().Is("mutating"))
}

func TestReflectStruct_Assign(t *testing.T) {
	typ := ReflectStruct[point](Build(New("geo.Point"))).Type()

	dst := &point{X: 1, Y: 1}
	out, err := typ.Call(AssignName, dst, point{X: 5, Y: 6})
	require.NoError(t, err)
	assert.Same(t, dst, out)
	assert.Equal(t, point{X: 5, Y: 6}, *dst)

	ov, ok := typ.Overloads(AssignName)
	require.True(t, ok)
	assert.Equal(t, "*typeinfo.point(*typeinfo.point, typeinfo.point)", ov.Functions()[0].String())
	assert.True(t, ov.Functions()[0].Traits().Is("mutating"))
}

func TestBuilder_FnTraitValue(t *testing.T) {
	b := Build(New("T")).
		Fn("area", func() float64 { return 0 }).
		FnTraitValue("area", "doc", cty.StringVal("surface")).
		FnTraitValue("later", "cost", cty.NumberIntVal(3))
	require.NoError(t, b.Err())

	ov, ok := b.Type().Overloads("area")
	require.True(t, ok)
	doc, ok := ov.Traits().Value("doc")
	require.True(t, ok)
	assert.Equal(t, "surface", doc.AsString())

	// The set is created on demand, like Function.
	later, ok := b.Type().Overloads("later")
	require.True(t, ok)
	assert.Equal(t, 0, later.Len())
	assert.True(t, later.Traits().Is("cost"))
}

func TestType_TraitsUnderConcurrentPrint(t *testing.T) {
	typ := New("T")
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = typ.Print()
		}
	}()
	for i := 0; i < 200; i++ {
		b := Build(typ).
			Trait(fmt.Sprintf("flag%d", i)).
			TraitValue("doc", cty.NumberIntVal(int64(i))).
			FnTraitValue("area", "rank", cty.NumberIntVal(int64(i)))
		require.NoError(t, b.Err())
	}
	<-done

	assert.True(t, typ.Traits().Is("flag199"))
	other := &traits.Traits{}
	other.Add("merged")
	typ.MergeTraits(other)
	assert.True(t, typ.Traits().Is("merged"))
}

func TestReflectStruct_FieldAccess(t *testing.T) {
	typ := ReflectStruct[point](Build(New("geo.Point"))).Type()
	x, ok := typ.Field("X")
	require.True(t, ok)
	require.True(t, x.Accessible())

	p := point{X: 7}
	v, err := x.Get(p)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	require.NoError(t, x.Set(&p, 9))
	assert.Equal(t, 9, p.X)

	require.ErrorIs(t, x.Set(p, 1), reflecterr.ErrInvalidCall)
	require.ErrorIs(t, x.Set(&p, "nine"), reflecterr.ErrInvalidCall)
	_, err = x.Get(struct{ X int }{})
	require.ErrorIs(t, err, reflecterr.ErrInvalidCall)
}

func TestReflectStruct_RejectsNonStruct(t *testing.T) {
	b := ReflectStruct[int](Build(New("int")))
	require.Error(t, b.Err())
}

func TestResolve_UsesReturnShape(t *testing.T) {
	typ := New("T")
	require.NoError(t, typ.AddFunction("get", func() int { return 1 }))

	_, err := typ.Resolve("get", argument.For[int](), nil)
	require.NoError(t, err)
	_, err = typ.Resolve("get", argument.For[string](), nil)
	require.ErrorIs(t, err, reflecterr.ErrNoMatchingOverload)
}
