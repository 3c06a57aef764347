package components

import (
	"fmt"
	"strings"

	"github.com/origadmin/wrapgen/internal/model"
)

// TypeConverterOptions configures the rewrite rules.
type TypeConverterOptions struct {
	// BoolType is the native boolean alias, e.g. "bt_bool".
	BoolType string
	// FalseConst is the native false constant, e.g. "BT_FALSE".
	FalseConst string
	// IsUnchecked reports raw types whose pass-through marks a method unchecked.
	IsUnchecked func(raw string) bool
}

// TypeConverter rewrites raw argument and return types into wrapper types.
type TypeConverter struct {
	opts TypeConverterOptions
}

// NewTypeConverter creates a new type converter.
func NewTypeConverter(opts TypeConverterOptions) model.TypeRewriter {
	if opts.IsUnchecked == nil {
		opts.IsUnchecked = func(string) bool { return false }
	}
	return &TypeConverter{opts: opts}
}

// Rewrite returns a rewritten copy of regs. Every rule consults a frozen
// snapshot of both registries; regs itself is never modified.
func (c *TypeConverter) Rewrite(regs *model.Registries) *model.Registries {
	snapshot := regs.Clone()
	out := regs.Clone()
	for _, ti := range out.Types.All() {
		for i := range ti.Functions {
			c.rewriteFunction(snapshot, ti, &ti.Functions[i])
		}
	}
	return out
}

func (c *TypeConverter) rewriteFunction(snap *model.Registries, owner *model.TypeInfo, fi *model.FuncInfo) {
	if fi.HasReturn() {
		c.rewriteReturn(snap, fi)
	}
	for i := range fi.Args {
		arg := &fi.Args[i]
		if fi.Constructor && i == len(fi.Args)-1 && arg.FullType == "*mut *mut "+owner.RawName {
			arg.NewType = arg.FullType
			arg.Kind = model.RewriteRaw
			arg.Slot = true
			continue
		}
		c.rewriteArg(snap, fi, arg)
	}
}

func (c *TypeConverter) rewriteReturn(snap *model.Registries, fi *model.FuncInfo) {
	ret := fi.Return
	fi.NewReturn = ret
	fi.ReturnKind = model.RewriteRaw
	base := BaseType(ret)
	depth := PointerDepth(ret)

	if depth == 1 && IsCChar(base) {
		fi.NewReturn = "string"
		fi.ReturnKind = model.RewriteString
		fi.PreCall = "C.GoString("
		fi.PostCall = ")"
		return
	}
	if ret == c.opts.BoolType {
		fi.NewReturn = "bool"
		fi.ReturnKind = model.RewriteBool
		fi.PreCall = "("
		fi.PostCall = " != C." + c.opts.FalseConst + ")"
		return
	}
	if e, ok := snap.Enums.Get(base); ok && depth == 0 {
		fi.NewReturn = e.Wrapper
		fi.ReturnKind = model.RewriteEnum
		fi.PreCall = fmt.Sprintf("%s(%s(", e.FromName(), e.Kind.GoType())
		fi.PostCall = "))"
		return
	}
	if ti, ok := snap.Types.Get(base); ok && depth == 1 {
		fi.ConstReturn = strings.HasPrefix(ret, "*const ")
		fi.NewReturn = ti.Name
		if fi.ConstReturn {
			fi.NewReturn = ti.ConstName()
		}
		fi.ReturnKind = model.RewriteHandle
		fi.PreCall = fi.NewReturn + "{ptr: "
		fi.PostCall = "}"
		return
	}
	if c.unchecked(ret) {
		fi.Unchecked = true
	}
}

func (c *TypeConverter) rewriteArg(snap *model.Registries, fi *model.FuncInfo, arg *model.ArgInfo) {
	full := arg.FullType
	arg.NewType = full
	arg.Kind = model.RewriteRaw
	base := BaseType(full)
	depth := PointerDepth(full)

	if depth == 1 && strings.HasPrefix(full, "*const ") && IsCChar(base) {
		arg.NewType = "string"
		arg.Kind = model.RewriteString
		arg.Pre = "cs.get("
		arg.Post = ")"
		return
	}
	if full == c.opts.BoolType {
		arg.NewType = "bool"
		arg.Kind = model.RewriteBool
		arg.Pre = "cBool("
		arg.Post = ")"
		return
	}
	if e, ok := snap.Enums.Get(base); ok && depth == 0 {
		arg.NewType = e.Wrapper
		arg.Kind = model.RewriteEnum
		arg.Pre = "C." + e.Name + "("
		arg.Post = "." + e.Kind.Method() + "())"
		return
	}
	if ti, ok := snap.Types.Get(base); ok && depth == 1 {
		arg.NewType = ti.Name
		if strings.HasPrefix(full, "*const ") {
			arg.NewType = ti.ConstName()
		}
		arg.Kind = model.RewriteHandle
		arg.Post = ".ptr"
		return
	}
	if c.unchecked(full) {
		fi.Unchecked = true
	}
}

// unchecked reports whether a pass-through of raw bypasses the wrapper's
// ownership and validity guarantees.
func (c *TypeConverter) unchecked(raw string) bool {
	if strings.Contains(raw, "*") {
		return true
	}
	for _, tok := range strings.Fields(raw) {
		if c.opts.IsUnchecked(tok) {
			return true
		}
	}
	return false
}
