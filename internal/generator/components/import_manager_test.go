package components

import (
	"bytes"
	"testing"
)

func TestImportManager_Add(t *testing.T) {
	im := NewImportManager()
	im.Add("unsafe")
	im.Add("fmt")
	im.Add("fmt")

	got := im.GetAllImports()
	if len(got) != 2 || got[0] != "fmt" || got[1] != "unsafe" {
		t.Errorf("GetAllImports() = %v, want [fmt unsafe]", got)
	}
	if !im.Has("unsafe") {
		t.Errorf("Has(unsafe) = false, want true")
	}
	if im.Has("strings") {
		t.Errorf("Has(strings) = true, want false")
	}
}

func TestImportManager_WriteImportsToBuffer(t *testing.T) {
	var buf bytes.Buffer
	NewImportManager().WriteImportsToBuffer(&buf)
	if buf.Len() != 0 {
		t.Errorf("empty manager wrote %q", buf.String())
	}

	im := NewImportManager()
	im.Add("unsafe")
	im.Add("fmt")
	im.WriteImportsToBuffer(&buf)
	want := "import (\n\t\"fmt\"\n\t\"unsafe\"\n)\n\n"
	if buf.String() != want {
		t.Errorf("WriteImportsToBuffer() = %q, want %q", buf.String(), want)
	}
}
