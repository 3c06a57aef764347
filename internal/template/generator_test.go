package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	m := NewManager()
	for _, name := range []string{"preamble", "helpers", "enum", "handle", "method"} {
		assert.True(t, m.Has(name), name)
	}
	assert.False(t, m.Has("missing"))

	_, err := m.Render("missing", nil)
	assert.Error(t, err)
}

func TestRender_Method(t *testing.T) {
	m := NewManager()
	out, err := m.Render("method", &Method{
		Recv:      "BtTrace",
		Name:      "SetName",
		Entry:     "bt_trace_set_name",
		Params:    "name string",
		Call:      "C.bt_trace_set_name(h.ptr, cs.get(name))",
		NullCheck: true,
		Strings:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, `
// SetName calls bt_trace_set_name.
func (h BtTrace) SetName(name string) {
	if h.ptr == nil {
		panic("BtTrace.SetName: empty handle")
	}
	var cs cstrings
	defer cs.free()
	C.bt_trace_set_name(h.ptr, cs.get(name))
}
`, string(out))
}

func TestRender_SlotConstructor(t *testing.T) {
	m := NewManager()
	out, err := m.Render("method", &Method{
		Name:      "BtStreamCreate",
		Entry:     "bt_stream_create",
		Params:    "id C.uint64_t",
		Results:   "(BtStream, BtStreamCreateStatus)",
		Call:      "C.bt_stream_create(id, &out)",
		Pre:       "BtStreamCreateStatusFromInt32(int32(",
		Post:      "))",
		HasReturn: true,
		Unchecked: true,
		Slot:      "*C.bt_stream",
		SlotOwner: "BtStream",
	})
	require.NoError(t, err)
	assert.Equal(t, `
// BtStreamCreate calls bt_stream_create.
//
// Unchecked: raw pointers are passed through as is.
func BtStreamCreate(id C.uint64_t) (BtStream, BtStreamCreateStatus) {
	var out *C.bt_stream
	ret := BtStreamCreateStatusFromInt32(int32(C.bt_stream_create(id, &out)))
	return BtStreamFromPtr(out), ret
}
`, string(out))
}

func TestOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.tpl"),
		[]byte(`{{define "enum"}}type {{.Name}} {{.Type}}{{end}}`), 0o644))

	m := NewManager()
	require.NoError(t, m.Override(dir, filepath.Join(dir, "missing.tpl")))
	out, err := m.Render("enum", &Enum{Name: "BtMode", Type: "uint32"})
	require.NoError(t, err)
	assert.Equal(t, "type BtMode uint32", string(out))

	// The other built-in templates are still available.
	assert.True(t, m.Has("handle"))

	// The embedded set is untouched.
	out, err = NewManager().Render("enum", &Enum{
		Name: "BtMode", Type: "uint32", Method: "Uint32", From: "BtModeFromUint32", Parse: "ParseBtMode",
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "func ParseBtMode(v uint32) (BtMode, bool)")
}

func TestOverride_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.tpl")
	require.NoError(t, os.WriteFile(path, []byte(`{{define "enum"}}{{.Name`), 0o644))

	m := NewManager()
	err := m.Override(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.tpl")
	assert.True(t, m.Has("enum"))
}
