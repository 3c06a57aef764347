package model

import (
	"slices"
	"strings"
)

// PrimitiveKind is the integer kind backing an enumeration.
type PrimitiveKind int

// Constants for the supported backing primitives.
const (
	InvalidKind PrimitiveKind = iota
	Int32
	Uint32
	Int64
	Uint64
)

var primitiveKinds = map[string]PrimitiveKind{
	"::std::os::raw::c_int":   Int32,
	"::std::os::raw::c_uint":  Uint32,
	"::std::os::raw::c_long":  Int64,
	"::std::os::raw::c_ulong": Uint64,
	"i32":                     Int32,
	"u32":                     Uint32,
	"i64":                     Int64,
	"u64":                     Uint64,
}

// PrimitiveKindOf resolves the kind of a raw backing primitive, or InvalidKind.
func PrimitiveKindOf(raw string) PrimitiveKind {
	return primitiveKinds[raw]
}

// GoType returns the Go spelling of the kind, e.g. "uint32".
func (k PrimitiveKind) GoType() string {
	switch k {
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	}
	return ""
}

// Method returns the exported spelling used in conversion helper names, e.g. "Uint32".
func (k PrimitiveKind) Method() string {
	t := k.GoType()
	if t == "" {
		return ""
	}
	return strings.ToUpper(t[:1]) + t[1:]
}

func (k PrimitiveKind) Signed() bool {
	return k == Int32 || k == Int64
}

func (k PrimitiveKind) Valid() bool {
	return k != InvalidKind
}

func (k PrimitiveKind) String() string {
	if !k.Valid() {
		return "invalid"
	}
	return k.GoType()
}

// EnumValue is one named value of an enumeration.
type EnumValue struct {
	// Label is the constant name with the enumeration prefixes stripped.
	Label string
	// Literal is the numeric literal text as declared.
	Literal string
	// Const is the original constant name.
	Const string
	// GoName is the emitted constant name, empty when the value is not emitted.
	GoName string
}

// EnumInfo is an enumeration discovered from a type alias and its constants.
type EnumInfo struct {
	// Name is the declared alias name.
	Name string
	// Wrapper is the Go type name emitted for the enumeration.
	Wrapper string
	// Backing is the raw backing primitive text.
	Backing string
	Kind    PrimitiveKind
	Values  []EnumValue
	// FromFunc and ParseFunc are the resolved names of the conversion
	// helpers. Empty means the default derived from Wrapper.
	FromFunc  string
	ParseFunc string
}

// FromName returns the name of the checked numeric to enum conversion.
func (e *EnumInfo) FromName() string {
	if e.FromFunc != "" {
		return e.FromFunc
	}
	return e.Wrapper + "From" + e.Kind.Method()
}

// ParseName returns the name of the non-panicking conversion.
func (e *EnumInfo) ParseName() string {
	if e.ParseFunc != "" {
		return e.ParseFunc
	}
	return "Parse" + e.Wrapper
}

func (e *EnumInfo) AddValue(v EnumValue) {
	e.Values = append(e.Values, v)
}

func (e *EnumInfo) Clone() *EnumInfo {
	c := *e
	c.Values = slices.Clone(e.Values)
	return &c
}

// RewriteKind records which rewrite rule matched a type.
type RewriteKind int

const (
	RewriteRaw RewriteKind = iota
	RewriteString
	RewriteBool
	RewriteEnum
	RewriteHandle
)

func (k RewriteKind) String() string {
	switch k {
	case RewriteString:
		return "string"
	case RewriteBool:
		return "bool"
	case RewriteEnum:
		return "enum"
	case RewriteHandle:
		return "handle"
	}
	return "raw"
}

// ArgInfo is a single function argument.
type ArgInfo struct {
	Name string
	// FullType is the raw argument type text.
	FullType string
	// NewType is the rewritten type, FullType until a rule matches.
	NewType string
	// Pre and Post wrap the argument name at the call site.
	Pre  string
	Post string
	Kind RewriteKind
	// Slot marks a write-once out parameter filled by the callee.
	Slot bool
}

// FuncInfo is an extern function attached to an entity.
type FuncInfo struct {
	// Name is the method name, the entry point minus the entity prefix.
	Name       string
	EntryPoint string
	// GoName is the emitted method or function identifier.
	GoName string
	// SelfType is the raw type of the receiver parameter, empty for constructors.
	SelfType string
	// Return is the raw return text, empty when the function returns nothing.
	Return string
	Args   []ArgInfo

	NewReturn  string
	ReturnKind RewriteKind
	// PreCall and PostCall wrap the native call expression.
	PreCall  string
	PostCall string

	ConstSelf   bool
	Constructor bool
	ConstReturn bool
	// Unchecked marks a pass-through of pointer-bearing or unchecked types.
	Unchecked bool
}

// HasReturn reports whether the function returns a value.
func (f FuncInfo) HasReturn() bool {
	return f.Return != ""
}

// SlotArg returns the write-once out argument, if any.
func (f FuncInfo) SlotArg() (ArgInfo, bool) {
	for _, a := range f.Args {
		if a.Slot {
			return a, true
		}
	}
	return ArgInfo{}, false
}

func (f FuncInfo) Clone() FuncInfo {
	f.Args = slices.Clone(f.Args)
	return f
}

// TypeInfo is an entity: a native object type and its operations.
type TypeInfo struct {
	// Name is the Go wrapper name.
	Name string
	// RawName is the native type name.
	RawName   string
	Functions []FuncInfo
}

func (ti *TypeInfo) AddFunction(fi FuncInfo) {
	ti.Functions = append(ti.Functions, fi)
}

// ConstName is the name of the borrowed wrapper.
func (ti *TypeInfo) ConstName() string {
	return ti.Name + "Const"
}

func (ti *TypeInfo) Clone() *TypeInfo {
	c := *ti
	c.Functions = make([]FuncInfo, len(ti.Functions))
	for i, fi := range ti.Functions {
		c.Functions[i] = fi.Clone()
	}
	return &c
}
