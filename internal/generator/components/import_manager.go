package components

import (
	"bytes"
	"fmt"
	"sort"
)

// ImportManager collects the Go imports of the generated file.
type ImportManager struct {
	imports map[string]struct{}
}

// NewImportManager creates a new import manager.
func NewImportManager() *ImportManager {
	return &ImportManager{
		imports: make(map[string]struct{}),
	}
}

// Add adds an import path once.
func (im *ImportManager) Add(importPath string) {
	im.imports[importPath] = struct{}{}
}

// Has reports whether importPath was added.
func (im *ImportManager) Has(importPath string) bool {
	_, ok := im.imports[importPath]
	return ok
}

// GetAllImports returns the import paths in sorted order.
func (im *ImportManager) GetAllImports() []string {
	paths := make([]string, 0, len(im.imports))
	for p := range im.imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// WriteImportsToBuffer writes the import block to the given buffer.
func (im *ImportManager) WriteImportsToBuffer(buf *bytes.Buffer) {
	paths := im.GetAllImports()
	if len(paths) == 0 {
		return
	}
	buf.WriteString("import (\n")
	for _, importPath := range paths {
		buf.WriteString(fmt.Sprintf("\t%q\n", importPath))
	}
	buf.WriteString(")\n\n")
}
