package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/wrapgen/internal/decl"
	"github.com/origadmin/wrapgen/internal/diag"
	"github.com/origadmin/wrapgen/internal/model"
)

const corpus = `
pub type bt_stream_create_status = ::std::os::raw::c_int;
pub const bt_stream_create_status_BT_STREAM_CREATE_STATUS_OK: bt_stream_create_status = 0;
pub struct bt_trace { _unused: [u8; 0] }
pub struct bt_stream_class { _unused: [u8; 0] }
extern "C" {
    pub fn bt_trace_get_name(trace: *const bt_trace) -> *const ::std::os::raw::c_char;
    pub fn bt_trace_set_name(trace: *mut bt_trace, name: *const ::std::os::raw::c_char, len: u64);
    pub fn bt_clock_get_frequency(clock: *const bt_clock) -> u64;
    pub fn bt_trace_create(tc: *mut bt_trace_class) -> *mut bt_trace;
    pub fn bt_stream_create_with_id(sc: *mut bt_stream_class, id: u64, out: *mut *mut bt_stream) -> bt_stream_create_status;
    pub fn bt_make_create_thing(x: u32) -> *mut bt_thing;
    pub fn bt_version_get_major() -> u64;
    pub fn other_get(o: *mut other) -> u32;
    pub fn bt_tracefoo_get(t: *mut bt_trace) -> u32;
}
`

func classify(t *testing.T, src string) (*model.Registries, *diag.Bag, int) {
	t.Helper()
	c := decl.Parse([]byte(src))
	regs := model.NewRegistries()
	regs.Enums.Put("bt_stream_create_status", &model.EnumInfo{Name: "bt_stream_create_status"})
	for _, s := range c.Structs {
		regs.Types.Put(s.Name, &model.TypeInfo{Name: s.Name, RawName: s.Name})
	}
	bag := diag.NewBag()
	n := Classify(c, regs, "bt", bag)
	return regs, bag, n
}

func TestClassify(t *testing.T) {
	regs, bag, n := classify(t, corpus)
	assert.Equal(t, 5, n)
	assert.Equal(t, 4, bag.Count(diag.UnhandledFunction))
	assert.Equal(t, n, regs.FunctionCount())

	assert.Equal(t, []string{"bt_clock", "bt_stream", "bt_stream_class", "bt_trace"}, regs.Types.Keys())
	assert.False(t, regs.Types.Has("bt_thing"), "rejected constructors do not create entities")

	trace, _ := regs.Types.Get("bt_trace")
	require.Len(t, trace.Functions, 3)

	get := trace.Functions[0]
	assert.Equal(t, "get_name", get.Name)
	assert.Equal(t, "bt_trace_get_name", get.EntryPoint)
	assert.Equal(t, "*const bt_trace", get.SelfType)
	assert.Equal(t, "*const ::std::os::raw::c_char", get.Return)
	assert.True(t, get.ConstSelf)
	assert.False(t, get.Constructor)
	assert.Empty(t, get.Args)

	set := trace.Functions[1]
	assert.False(t, set.ConstSelf)
	assert.Equal(t, "", set.Return)
	assert.Equal(t, []model.ArgInfo{
		{Name: "name", FullType: "*const ::std::os::raw::c_char", NewType: "*const ::std::os::raw::c_char"},
		{Name: "len", FullType: "u64", NewType: "u64"},
	}, set.Args)

	create := trace.Functions[2]
	assert.Equal(t, "create", create.Name)
	assert.True(t, create.Constructor)
	assert.Equal(t, "", create.SelfType)
	require.Len(t, create.Args, 1)
	assert.Equal(t, "tc", create.Args[0].Name)

	stream, _ := regs.Types.Get("bt_stream")
	require.Len(t, stream.Functions, 1)
	withID := stream.Functions[0]
	assert.Equal(t, "create_with_id", withID.Name)
	assert.True(t, withID.Constructor)
	require.Len(t, withID.Args, 3)
	assert.Equal(t, "*mut *mut bt_stream", withID.Args[2].FullType)

	clock, _ := regs.Types.Get("bt_clock")
	assert.Equal(t, "BtClock", clock.Name)
}

func TestClassify_AddingOneFunctionAddsOne(t *testing.T) {
	_, _, base := classify(t, corpus)

	extra := corpus + `extern "C" { pub fn bt_trace_get_uuid(trace: *const bt_trace) -> bt_uuid; }`
	_, _, more := classify(t, extra)
	assert.Equal(t, base+1, more)

	unhandled := corpus + `extern "C" { pub fn bt_get_thing(x: u32) -> u32; }`
	_, bag, same := classify(t, unhandled)
	assert.Equal(t, base, same)
	assert.Equal(t, 5, bag.Count(diag.UnhandledFunction))
}

func TestClassify_Deterministic(t *testing.T) {
	a, _, na := classify(t, corpus)
	b, _, nb := classify(t, corpus)
	assert.Equal(t, na, nb)
	assert.Equal(t, a.Types.Values(), b.Types.Values())
}

func TestParseArgs(t *testing.T) {
	args := parseArgs([]string{"a: u32", "garbage", "f: ::std::option::Option<unsafe extern \"C\" fn(x: u32)>"})
	require.Len(t, args, 2)
	assert.Equal(t, "a", args[0].Name)
	assert.Equal(t, "f", args[1].Name)
	assert.Equal(t, "::std::option::Option<unsafe extern \"C\" fn(x: u32)>", args[1].FullType)
}
