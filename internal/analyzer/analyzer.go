// Package analyzer builds the enumeration and entity registries from the
// extracted declarations.
package analyzer

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"github.com/origadmin/wrapgen/internal/config"
	"github.com/origadmin/wrapgen/internal/decl"
	"github.com/origadmin/wrapgen/internal/diag"
	"github.com/origadmin/wrapgen/internal/generator/components"
	"github.com/origadmin/wrapgen/internal/model"
)

var (
	// ErrPrimitiveWidth is returned when a backing primitive does not have the
	// width the numeric conversions rely on.
	ErrPrimitiveWidth = errors.New("primitive width mismatch")
	// ErrUnsupportedPrimitive is returned when a surviving enumeration is backed
	// by a primitive other than a 32 or 64 bit integer.
	ErrUnsupportedPrimitive = errors.New("unsupported enumeration primitive")
)

// Width is the byte width the generated conversions assume for a C integer.
type Width struct {
	// Name is the last path segment of the raw primitive, e.g. "c_int".
	Name  string
	Bytes int
}

var requiredWidths = []Width{
	{"c_int", 4},
	{"c_uint", 4},
	{"c_long", 8},
	{"c_ulong", 8},
}

// dataModels maps a data model to the byte widths of its C integer types.
var dataModels = map[string]map[string]int{
	config.LP64:  {"c_int": 4, "c_uint": 4, "c_long": 8, "c_ulong": 8},
	config.LLP64: {"c_int": 4, "c_uint": 4, "c_long": 4, "c_ulong": 4},
	config.ILP32: {"c_int": 4, "c_uint": 4, "c_long": 4, "c_ulong": 4},
}

// Options configures the registry builder.
type Options struct {
	// Prefix is the library naming prefix, without the trailing underscore.
	Prefix    string
	DataModel string
}

// RegistryBuilder derives enumerations and entities from a corpus.
type RegistryBuilder struct {
	opts     Options
	reporter diag.Reporter
}

// NewRegistryBuilder creates a new RegistryBuilder.
func NewRegistryBuilder(opts Options, reporter diag.Reporter) *RegistryBuilder {
	return &RegistryBuilder{opts: opts, reporter: reporter}
}

// Build is a shortcut for NewRegistryBuilder(opts, reporter).Build(corpus).
func Build(corpus *decl.Corpus, opts Options, reporter diag.Reporter) (*model.Registries, error) {
	return NewRegistryBuilder(opts, reporter).Build(corpus)
}

// Build runs the registry builder. The error is one of the fatal conditions;
// everything else is reported as a diagnostic.
func (b *RegistryBuilder) Build(corpus *decl.Corpus) (*model.Registries, error) {
	if err := CheckWidths(b.opts.DataModel); err != nil {
		return nil, err
	}
	regs := model.NewRegistries()

	for _, a := range corpus.Aliases {
		if !b.hasPrefix(a.Name) || regs.Enums.Has(a.Name) {
			continue
		}
		regs.Enums.Put(a.Name, &model.EnumInfo{
			Name:    a.Name,
			Wrapper: components.Normalize(a.Name),
			Backing: a.Type,
			Kind:    model.PrimitiveKindOf(a.Type),
		})
	}

	for _, c := range corpus.Constants {
		if !b.hasPrefix(c.Type) {
			continue
		}
		e, ok := regs.Enums.Get(c.Type)
		if !ok {
			diag.Warn(b.reporter, diag.UnresolvedConstant, c.Name, "failed to find %s for %s", c.Type, c.Name)
			continue
		}
		literal, err := checkLiteral(c.Value, e.Kind)
		if err != nil {
			diag.Warn(b.reporter, diag.LiteralOutOfRange, c.Name, "%s does not fit %s: %v", c.Value, e.Backing, err)
			continue
		}
		e.AddValue(model.EnumValue{
			Label:   ShortLabel(c.Name, c.Type),
			Literal: literal,
			Const:   c.Name,
		})
	}

	for _, name := range regs.Enums.Keys() {
		e, _ := regs.Enums.Get(name)
		if len(e.Values) == 0 {
			diag.Info(b.reporter, diag.EmptyEnum, name, "skipping empty enum %s", name)
			regs.Enums.Delete(name)
			continue
		}
		if !e.Kind.Valid() {
			return nil, fmt.Errorf("%w: %s is backed by %s", ErrUnsupportedPrimitive, name, e.Backing)
		}
	}

	for _, s := range corpus.Structs {
		if !b.hasPrefix(s.Name) || regs.Types.Has(s.Name) {
			continue
		}
		regs.Types.Put(s.Name, &model.TypeInfo{
			Name:    components.Normalize(s.Name),
			RawName: s.Name,
		})
	}

	slog.Debug("Registries built", "enums", regs.Enums.Len(), "entities", regs.Types.Len())
	return regs, nil
}

func (b *RegistryBuilder) hasPrefix(name string) bool {
	return strings.HasPrefix(name, b.opts.Prefix+"_")
}

// RequiredWidths returns the widths CheckWidths enforces.
func RequiredWidths() []Width {
	return slices.Clone(requiredWidths)
}

// CheckWidths verifies that the data model gives c_int, c_uint, c_long and
// c_ulong the widths the generated conversions assume.
func CheckWidths(dataModel string) error {
	widths, ok := dataModels[dataModel]
	if !ok {
		return fmt.Errorf("%w: unknown data model %q", ErrPrimitiveWidth, dataModel)
	}
	for _, w := range requiredWidths {
		if got := widths[w.Name]; got != w.Bytes {
			return fmt.Errorf("%w: %s is %d bytes on %s, want %d", ErrPrimitiveWidth, w.Name, got, dataModel, w.Bytes)
		}
	}
	return nil
}

// ShortLabel strips the enumeration type name from a constant name, and then
// its upper-cased repetition if present. A label that would be empty keeps the
// previous form.
func ShortLabel(constName, typeName string) string {
	label := strings.TrimPrefix(constName, typeName+"_")
	if rest, ok := strings.CutPrefix(label, strings.ToUpper(typeName)+"_"); ok && rest != "" {
		label = rest
	}
	return label
}

var literalSuffixes = []string{"usize", "isize", "u64", "i64", "u32", "i32", "u16", "i16", "u8", "i8"}

// checkLiteral returns the literal without any type suffix after checking it
// is representable in kind. Literals of unsupported kinds are not checked.
func checkLiteral(lit string, kind model.PrimitiveKind) (string, error) {
	for _, s := range literalSuffixes {
		if rest, ok := strings.CutSuffix(lit, s); ok && rest != "" && rest != "-" {
			lit = strings.TrimSuffix(rest, "_")
			break
		}
	}
	var err error
	switch kind {
	case model.Int32, model.Int64:
		var v int64
		if v, err = strconv.ParseInt(lit, 0, 64); err == nil && kind == model.Int32 {
			_, err = safecast.Conv[int32](v)
		}
	case model.Uint32, model.Uint64:
		var v uint64
		if v, err = strconv.ParseUint(lit, 0, 64); err == nil && kind == model.Uint32 {
			_, err = safecast.Conv[uint32](v)
		}
	}
	if err != nil {
		return "", err
	}
	return lit, nil
}
