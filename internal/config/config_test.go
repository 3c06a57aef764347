package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "bt", cfg.Prefix)
	assert.Equal(t, "bt_bool", cfg.Bool.Type)
	assert.Equal(t, LP64, cfg.Target.DataModel)
	assert.True(t, cfg.NullChecks)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.txt", "// Package bt2 wraps babeltrace2.\n")
	writeFile(t, dir, "bindings.h", "static int helper(void) { return 0; }\n")
	writeFile(t, dir, "additions.go.txt", "//wrapgen:skip bt_trace_get_name\n//wrapgen:unchecked bt_uuid bt_raw\nfunc extra() {}\n")
	path := writeFile(t, dir, DefaultFile, `
package = "bt2"
prefix = "bt"
pkg_config = ["babeltrace2"]
includes = ["babeltrace2/babeltrace.h"]
header_file = "doc.txt"
expected_functions = 12
null_checks = false
unchecked_aliases = ["bt_object"]
bogus = 1

[bool]
type = "bt_bool"
true_const = "BT_TRUE"
false_const = "BT_FALSE"

[additions]
bindings = "bindings.h"
wrappers = "additions.go.txt"

[target]
data_model = "LLP64"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"babeltrace2"}, cfg.PkgConfig)
	assert.Equal(t, 12, cfg.ExpectedFunctions)
	assert.False(t, cfg.NullChecks)
	assert.Equal(t, LLP64, cfg.Target.DataModel)
	assert.Contains(t, cfg.Fragments.Doc, "Package bt2")
	assert.Contains(t, cfg.Fragments.Bindings, "helper")
	assert.Contains(t, cfg.Fragments.Wrappers, "func extra()")

	assert.True(t, cfg.Directives.Skipped("bt_trace_get_name"))
	assert.False(t, cfg.Directives.Skipped("bt_trace_set_name"))
	assert.True(t, cfg.IsUnchecked("bt_uuid"))
	assert.True(t, cfg.IsUnchecked("bt_raw"))
	assert.True(t, cfg.IsUnchecked("bt_object"))
	assert.False(t, cfg.IsUnchecked("bt_trace"))
}

func TestLoad_MissingFragment(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, DefaultFile, "header_file = \"missing.txt\"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.txt")
}

func TestLoad_BadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, DefaultFile, "package = \n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty package", func(c *Config) { c.Package = "" }, "Config.Package: required"},
		{"dashed package", func(c *Config) { c.Package = "my-pkg" }, "Config.Package: must be a Go identifier"},
		{"bad prefix", func(c *Config) { c.Prefix = "9bt" }, "Config.Prefix: must be a C identifier"},
		{"negative count", func(c *Config) { c.ExpectedFunctions = -1 }, "Config.ExpectedFunctions: must be at least 0"},
		{"data model", func(c *Config) { c.Target.DataModel = "LP32" }, "Config.Target.DataModel: must be one of [LP64 LLP64 ILP32]"},
		{"bool false const", func(c *Config) { c.Bool.FalseConst = "" }, "Config.Bool.FalseConst: required"},
		{"unchecked alias", func(c *Config) { c.UncheckedAliases = []string{"bt uuid"} }, "Config.UncheckedAliases[0]: must be a C identifier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDirectiveScanner_IgnoresUnknownVerbs(t *testing.T) {
	d := NewDirectiveScanner().Scan("  //wrapgen:skip a b\n//wrapgen:rename x y\n// wrapgen:skip c\n//wrapgen:\n")
	assert.Equal(t, map[string]bool{"a": true, "b": true}, d.Skip)
	assert.Empty(t, d.Unchecked)
}

func TestDirectiveScanner_Imports(t *testing.T) {
	d := NewDirectiveScanner().Scan("//wrapgen:import \"errors\" strings\n//wrapgen:unchecked bt_uuid\n")
	assert.Equal(t, []string{"errors", "strings"}, d.Imports)
	assert.True(t, d.Unchecked["bt_uuid"])
}
