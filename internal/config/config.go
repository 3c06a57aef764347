package config

import (
	"errors"
	"fmt"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the complete configuration for a generation run.
type Config struct {
	// Package is the name of the emitted Go package.
	Package string `toml:"package" validate:"required,goident"`
	// Prefix is the library prefix shared by every native name, e.g. "bt".
	Prefix string `toml:"prefix" validate:"required,cident"`
	// PkgConfig lists the pkg-config modules for the cgo preamble.
	PkgConfig []string `toml:"pkg_config" validate:"dive,required"`
	// Includes lists the headers included by the cgo preamble.
	Includes []string `toml:"includes" validate:"dive,required"`
	// HeaderFile holds the package documentation, relative to the config file.
	HeaderFile string `toml:"header_file"`
	// ExpectedFunctions pins the classified count. Zero disables the check.
	ExpectedFunctions int  `toml:"expected_functions" validate:"gte=0"`
	NullChecks        bool `toml:"null_checks"`
	// UncheckedAliases are raw types whose pass-through marks a method unchecked.
	UncheckedAliases []string   `toml:"unchecked_aliases" validate:"dive,cident"`
	Bool             BoolConfig `toml:"bool"`
	Additions        Additions  `toml:"additions"`
	Target           Target     `toml:"target"`
	// TemplateDir holds *.tpl files overriding the built-in templates by name.
	TemplateDir string `toml:"template_dir"`

	// Fragments holds the loaded contents of the files named above.
	Fragments Fragments `toml:"-"`
	// Directives are collected from the wrapper fragment.
	Directives Directives `toml:"-"`
}

// BoolConfig names the native boolean alias and its constants.
type BoolConfig struct {
	Type       string `toml:"type" validate:"required,cident"`
	TrueConst  string `toml:"true_const" validate:"required,cident"`
	FalseConst string `toml:"false_const" validate:"required,cident"`
}

// Additions names the hand-maintained fragments merged into the output.
type Additions struct {
	// Bindings is C text placed in the cgo preamble.
	Bindings string `toml:"bindings"`
	// Wrappers is Go text placed after the generated helpers.
	Wrappers string `toml:"wrappers"`
}

// Target describes the platform the generated package is built for.
type Target struct {
	DataModel string `toml:"data_model" validate:"required,oneof=LP64 LLP64 ILP32"`
}

// Fragments holds verbatim text merged into the output.
type Fragments struct {
	Doc      string
	Bindings string
	Wrappers string
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Package:    "bt2",
		Prefix:     "bt",
		Includes:   []string{"stdlib.h"},
		NullChecks: true,
		Bool: BoolConfig{
			Type:       "bt_bool",
			TrueConst:  "BT_TRUE",
			FalseConst: "BT_FALSE",
		},
		Target: Target{DataModel: LP64},
	}
}

// Load reads a TOML configuration on top of the defaults and loads the
// fragment files it names, relative to the configuration directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		slog.Warn("Unknown configuration key", "file", path, "key", key.String())
	}
	if err := cfg.LoadFragments(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFragments reads the header and addition files relative to dir and
// scans the wrapper fragment for directives.
func (c *Config) LoadFragments(dir string) error {
	var err error
	if c.Fragments.Doc, err = readFragment(dir, c.HeaderFile); err != nil {
		return err
	}
	if c.Fragments.Bindings, err = readFragment(dir, c.Additions.Bindings); err != nil {
		return err
	}
	if c.Fragments.Wrappers, err = readFragment(dir, c.Additions.Wrappers); err != nil {
		return err
	}
	c.Directives = NewDirectiveScanner().Scan(c.Fragments.Wrappers)
	if c.TemplateDir != "" && !filepath.IsAbs(c.TemplateDir) {
		c.TemplateDir = filepath.Join(dir, c.TemplateDir)
	}
	return nil
}

func readFragment(dir, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read fragment %s: %w", name, err)
	}
	return string(data), nil
}

// IsUnchecked reports whether raw names a configured unchecked alias or one
// declared by a directive.
func (c *Config) IsUnchecked(raw string) bool {
	for _, a := range c.UncheckedAliases {
		if a == raw {
			return true
		}
	}
	return c.Directives.Unchecked[raw]
}

// Validate checks the configuration against its field constraints.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return token.IsIdentifier(s) && s != "_"
	})
	_ = validate.RegisterValidation("cident", func(fl validator.FieldLevel) bool {
		return isCIdent(fl.Field().String())
	})
	if err := validate.Struct(c); err != nil {
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			messages := make([]string, 0, len(valErrs))
			for _, ve := range valErrs {
				messages = append(messages, ve.Namespace()+": "+formatValidationError(ve))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(messages, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", ve.Param())
	case "goident":
		return "must be a Go identifier"
	case "cident":
		return "must be a C identifier"
	}
	return fmt.Sprintf("failed on %q", ve.Tag())
}

func isCIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
