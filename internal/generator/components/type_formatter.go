package components

import (
	"strings"
)

// TypeFormatter spells raw declaration types as cgo types.
type TypeFormatter struct{}

// NewTypeFormatter creates a new TypeFormatter.
func NewTypeFormatter() *TypeFormatter {
	return &TypeFormatter{}
}

// primitives maps the last path segment of a raw primitive to its cgo spelling.
var primitives = map[string]string{
	"c_char":      "C.char",
	"c_schar":     "C.schar",
	"c_uchar":     "C.uchar",
	"c_short":     "C.short",
	"c_ushort":    "C.ushort",
	"c_int":       "C.int",
	"c_uint":      "C.uint",
	"c_long":      "C.long",
	"c_ulong":     "C.ulong",
	"c_longlong":  "C.longlong",
	"c_ulonglong": "C.ulonglong",
	"c_float":     "C.float",
	"c_double":    "C.double",
	"u8":          "C.uint8_t",
	"u16":         "C.uint16_t",
	"u32":         "C.uint32_t",
	"u64":         "C.uint64_t",
	"i8":          "C.int8_t",
	"i16":         "C.int16_t",
	"i32":         "C.int32_t",
	"i64":         "C.int64_t",
	"usize":       "C.size_t",
	"isize":       "C.intptr_t",
	"f32":         "C.float",
	"f64":         "C.double",
	"bool":        "C.bool",
}

// Format returns the cgo spelling of raw. It reports false for types that
// have no spelling, such as arrays or never-returning types.
func (f *TypeFormatter) Format(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if inner, ok := stripPointer(raw); ok {
		if isVoid(inner) {
			return "unsafe.Pointer", true
		}
		elem, ok := f.Format(inner)
		if !ok {
			return "", false
		}
		return "*" + elem, true
	}
	if isFuncPointer(raw) {
		return "*[0]byte", true
	}
	if strings.Contains(raw, "::") {
		i := strings.LastIndex(raw, "::")
		prefix, last := raw[:i], raw[i+2:]
		if !isStdPath(prefix) {
			return "", false
		}
		spelled, ok := primitives[last]
		return spelled, ok
	}
	if spelled, ok := primitives[raw]; ok {
		return spelled, true
	}
	if isCIdent(raw) {
		return "C." + raw, true
	}
	return "", false
}

// stripPointer removes one level of raw pointer indirection.
func stripPointer(raw string) (string, bool) {
	if rest, ok := strings.CutPrefix(raw, "*const "); ok {
		return rest, true
	}
	if rest, ok := strings.CutPrefix(raw, "*mut "); ok {
		return rest, true
	}
	return raw, false
}

// PointerDepth counts the levels of raw pointer indirection in raw.
func PointerDepth(raw string) int {
	n := 0
	for {
		rest, ok := stripPointer(raw)
		if !ok {
			return n
		}
		raw = rest
		n++
	}
}

// BaseType returns the last whitespace-separated token of raw.
func BaseType(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func isStdPath(prefix string) bool {
	switch prefix {
	case "::std::os::raw", "std::os::raw", "::core::ffi", "core::ffi", "::std::ffi", "std::ffi", "::libc", "libc":
		return true
	}
	return false
}

// isVoid reports whether raw is c_void itself, not a pointer to it.
func isVoid(raw string) bool {
	if PointerDepth(raw) != 0 {
		return false
	}
	return raw == "c_void" || strings.HasSuffix(raw, "::c_void")
}

// IsCChar reports whether raw names the C character type.
func IsCChar(raw string) bool {
	if PointerDepth(raw) != 0 {
		return false
	}
	return raw == "c_char" || strings.HasSuffix(raw, "::c_char")
}

func isFuncPointer(raw string) bool {
	return (strings.HasPrefix(raw, "::std::option::Option<") || strings.HasPrefix(raw, "Option<")) &&
		strings.Contains(raw, "fn(")
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
