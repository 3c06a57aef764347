package components

import (
	"fmt"
	"go/token"
	"go/types"
	"strings"

	"github.com/origadmin/wrapgen/internal/diag"
	"github.com/origadmin/wrapgen/internal/model"
)

// Normalize maps a native snake_case name to a Go CamelCase identifier.
// Segments are split on '_' and empty ones dropped; a segment longer than one
// character is capitalized and lower-cased, a single character is upper-cased.
func Normalize(s string) string {
	var sb strings.Builder
	for _, seg := range strings.Split(s, "_") {
		switch len(seg) {
		case 0:
			continue
		case 1:
			sb.WriteString(strings.ToUpper(seg))
		default:
			sb.WriteString(strings.ToUpper(seg[:1]))
			sb.WriteString(strings.ToLower(seg[1:]))
		}
	}
	return sb.String()
}

// reservedParams are names used inside the generated method bodies.
var reservedParams = map[string]bool{
	"h":      true,
	"cs":     true,
	"out":    true,
	"ret":    true,
	"C":      true,
	"unsafe": true,
	"fmt":    true,
}

// GoParam maps a native parameter name to a Go identifier that shadows
// nothing the generated body refers to.
func GoParam(name string) string {
	if name == "" || name == "_" {
		return "arg"
	}
	if token.IsKeyword(name) || reservedParams[name] || types.Universe.Lookup(name) != nil {
		return name + "_"
	}
	return name
}

// GoParams maps every argument name with GoParam, making duplicates unique.
func GoParams(args []model.ArgInfo) []string {
	names := make([]string, len(args))
	seen := make(map[string]bool, len(args))
	for i, a := range args {
		name := GoParam(a.Name)
		for n := 1; seen[name]; n++ {
			name = fmt.Sprintf("%s%d", GoParam(a.Name), n)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

// reservedMethods are method names the handle types already declare.
var reservedMethods = map[string]bool{
	"AsConst": true,
	"IsEmpty": true,
}

// MethodName returns the Go method name for a short function name.
func MethodName(short string) string {
	name := Normalize(short)
	if name == "" || !token.IsIdentifier(name) {
		name = "Fn" + name
	}
	if reservedMethods[name] {
		name = "Native" + name
	}
	return name
}

// NameResolver assigns the final Go identifiers of every emitted declaration
// so that no two collide.
type NameResolver struct {
	reporter diag.Reporter
	used     map[string]string
}

// NewNameResolver creates a resolver reporting collisions to reporter.
func NewNameResolver(reporter diag.Reporter) *NameResolver {
	return &NameResolver{
		reporter: reporter,
		used: map[string]string{
			"cstrings": "helper",
			"cBool":    "helper",
		},
	}
}

// Resolve fills EnumInfo.Wrapper, EnumValue.GoName, TypeInfo.Name and
// FuncInfo.GoName in registry order, renaming later declarations on collision.
func (r *NameResolver) Resolve(regs *model.Registries) {
	for raw, e := range regs.Enums.All() {
		e.Wrapper = r.claimUnique(raw, Normalize(raw))
		r.claimEnumHelpers(raw, e)
		seen := make(map[string]bool)
		for i := range e.Values {
			v := &e.Values[i]
			name := e.Wrapper + Normalize(v.Label)
			if seen[name] {
				// same label twice in one enumeration
				v.GoName = ""
				continue
			}
			seen[name] = true
			v.GoName = r.claimUnique(v.Const, name)
		}
	}

	for raw, ti := range regs.Types.All() {
		name := Normalize(raw)
		if r.handleNamesTaken(name) {
			base := name
			name = base + "Handle"
			for n := 2; r.handleNamesTaken(name); n++ {
				name = fmt.Sprintf("%sHandle%d", base, n)
			}
			diag.Warn(r.reporter, diag.NameCollision, raw, "renamed wrapper %s to %s", base, name)
		}
		ti.Name = name
		for _, n := range handleNames(name) {
			r.used[n] = raw
		}
	}

	for raw, ti := range regs.Types.All() {
		methods := make(map[string]bool)
		for i := range ti.Functions {
			fi := &ti.Functions[i]
			if fi.Constructor {
				fi.GoName = r.claimUnique(fi.EntryPoint, ti.Name+MethodName(fi.Name))
				continue
			}
			name := MethodName(fi.Name)
			if methods[name] {
				base := name
				for n := 2; methods[name]; n++ {
					name = fmt.Sprintf("%s%d", base, n)
				}
				diag.Warn(r.reporter, diag.NameCollision, fi.EntryPoint, "method %s.%s renamed to %s", raw, base, name)
			}
			methods[name] = true
			fi.GoName = name
		}
	}
}

// claimEnumHelpers reserves the conversion helper names of e, renaming them
// like any other identifier when an earlier declaration holds them.
func (r *NameResolver) claimEnumHelpers(raw string, e *model.EnumInfo) {
	e.FromFunc = ""
	e.ParseFunc = ""
	e.FromFunc = r.claimUnique(raw, e.FromName())
	e.ParseFunc = r.claimUnique(raw, e.ParseName())
}

// claimUnique reserves name for subject, appending a numeric suffix when taken.
func (r *NameResolver) claimUnique(subject, name string) string {
	if _, ok := r.used[name]; !ok {
		r.used[name] = subject
		return name
	}
	base := name
	for n := 2; ; n++ {
		name = fmt.Sprintf("%s%d", base, n)
		if _, ok := r.used[name]; !ok {
			break
		}
	}
	diag.Warn(r.reporter, diag.NameCollision, subject, "%s already declared by %s, using %s", base, r.used[base], name)
	r.used[name] = subject
	return name
}

func (r *NameResolver) handleNamesTaken(name string) bool {
	for _, n := range handleNames(name) {
		if _, ok := r.used[n]; ok {
			return true
		}
	}
	return false
}

// handleNames lists the package-level identifiers declared for a handle pair.
func handleNames(w string) []string {
	return []string{
		w,
		w + "Const",
		"Empty" + w,
		"Empty" + w + "Const",
		w + "FromPtr",
		w + "ConstFromPtr",
	}
}
