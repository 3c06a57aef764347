package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/wrapgen/internal/diag"
	"github.com/origadmin/wrapgen/internal/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"_", ""},
		{"x", "X"},
		{"x_", "X"},
		{"x__", "X"},
		{"__x_", "X"},
		{"a_b", "AB"},
		{"aBCD_efgh", "AbcdEfgh"},
		{"abcd_efgh_ijkl", "AbcdEfghIjkl"},
		{"bt_trace_class", "BtTraceClass"},
		{"BT_COMPONENT_CLASS_TYPE_SOURCE", "BtComponentClassTypeSource"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestGoParam(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"type", "type_"},
		{"func", "func_"},
		{"range", "range_"},
		{"out", "out_"},
		{"h", "h_"},
		{"cs", "cs_"},
		{"len", "len_"},
		{"uint32", "uint32_"},
		{"string", "string_"},
		{"_", "arg"},
		{"", "arg"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, GoParam(tt.in))
		})
	}

	names := GoParams([]model.ArgInfo{{Name: "_"}, {Name: "_"}, {Name: "value"}, {Name: "value"}})
	assert.Equal(t, []string{"arg", "arg1", "value", "value1"}, names)
}

func TestMethodName(t *testing.T) {
	assert.Equal(t, "GetName", MethodName("get_name"))
	assert.Equal(t, "NativeAsConst", MethodName("as_const"))
	assert.Equal(t, "NativeIsEmpty", MethodName("is_empty"))
	assert.Equal(t, "Fn2dPoint", MethodName("2d_point"))
	assert.Equal(t, "Fn", MethodName("_"))
}

func TestNameResolver_Collisions(t *testing.T) {
	regs := model.NewRegistries()
	regs.Enums.Put("bt_clock", &model.EnumInfo{
		Name: "bt_clock",
		Kind: model.Uint32,
		Values: []model.EnumValue{
			{Label: "A", Literal: "0", Const: "bt_clock_A"},
			{Label: "A", Literal: "0", Const: "bt_clock_A"},
			{Label: "B", Literal: "1", Const: "bt_clock_B"},
		},
	})
	regs.Types.Put("bt_clock", &model.TypeInfo{
		RawName: "bt_clock",
		Functions: []model.FuncInfo{
			{Name: "get_name", EntryPoint: "bt_clock_get_name"},
			{Name: "get__name", EntryPoint: "bt_clock_get__name"},
			{Name: "is_empty", EntryPoint: "bt_clock_is_empty"},
			{Name: "create", EntryPoint: "bt_clock_create", Constructor: true},
		},
	})
	regs.Types.Put("bt_stream", &model.TypeInfo{RawName: "bt_stream"})

	bag := diag.NewBag()
	NewNameResolver(bag).Resolve(regs)

	e, _ := regs.Enums.Get("bt_clock")
	assert.Equal(t, "BtClock", e.Wrapper)
	assert.Equal(t, "BtClockA", e.Values[0].GoName)
	assert.Equal(t, "", e.Values[1].GoName)
	assert.Equal(t, "BtClockB", e.Values[2].GoName)

	ti, _ := regs.Types.Get("bt_clock")
	assert.Equal(t, "BtClockHandle", ti.Name)
	require.Len(t, ti.Functions, 4)
	assert.Equal(t, "GetName", ti.Functions[0].GoName)
	assert.Equal(t, "GetName2", ti.Functions[1].GoName)
	assert.Equal(t, "NativeIsEmpty", ti.Functions[2].GoName)
	assert.Equal(t, "BtClockHandleCreate", ti.Functions[3].GoName)

	st, _ := regs.Types.Get("bt_stream")
	assert.Equal(t, "BtStream", st.Name)

	assert.Equal(t, 2, bag.Count(diag.NameCollision))
}

func TestNameResolver_EnumHelperCollision(t *testing.T) {
	regs := model.NewRegistries()
	regs.Enums.Put("bt_a", &model.EnumInfo{
		Name:   "bt_a",
		Kind:   model.Int32,
		Values: []model.EnumValue{{Label: "b_from_int32", Literal: "1", Const: "bt_a_b_from_int32"}},
	})
	regs.Enums.Put("bt_a_b", &model.EnumInfo{
		Name:   "bt_a_b",
		Kind:   model.Int32,
		Values: []model.EnumValue{{Label: "OK", Literal: "0", Const: "bt_a_b_BT_A_B_OK"}},
	})
	regs.Types.Put("bt_x", &model.TypeInfo{
		RawName: "bt_x",
		Functions: []model.FuncInfo{
			{Name: "get_mode", EntryPoint: "bt_x_get_mode", SelfType: "*const bt_x", ConstSelf: true, Return: "bt_a_b"},
		},
	})

	bag := diag.NewBag()
	NewNameResolver(bag).Resolve(regs)

	a, _ := regs.Enums.Get("bt_a")
	assert.Equal(t, "BtAFromInt32", a.FromName())
	assert.Equal(t, "ParseBtA", a.ParseName())
	assert.Equal(t, "BtABFromInt32", a.Values[0].GoName)

	ab, _ := regs.Enums.Get("bt_a_b")
	assert.Equal(t, "BtAB", ab.Wrapper)
	assert.Equal(t, "BtABFromInt322", ab.FromName())
	assert.Equal(t, "ParseBtAB", ab.ParseName())
	assert.Equal(t, 1, bag.Count(diag.NameCollision))

	// The return glue calls the renamed helper.
	rewritten := NewTypeConverter(TypeConverterOptions{BoolType: "bt_bool", FalseConst: "BT_FALSE"}).Rewrite(regs)
	x, _ := rewritten.Types.Get("bt_x")
	require.Len(t, x.Functions, 1)
	assert.Equal(t, "BtABFromInt322(int32(", x.Functions[0].PreCall)
}
