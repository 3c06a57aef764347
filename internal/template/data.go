package template

// Preamble is the data of the "preamble" template: everything up to and
// including the cgo import.
type Preamble struct {
	Package   string
	Doc       string
	PkgConfig []string
	Includes  []string
	// Bindings are the lines of C text appended to the cgo preamble.
	Bindings []string
}

// Helpers is the data of the "helpers" template.
type Helpers struct {
	DataModel string
	Widths    []Width
	Bool      Bool
	// Wrappers is Go text appended after the helpers.
	Wrappers string
}

// Width is a compile-time size assertion on a cgo type.
type Width struct {
	CType string
	Bytes int
}

// Bool names the native boolean alias and its constants.
type Bool struct {
	Type       string
	TrueConst  string
	FalseConst string
}

// Enum is the data of the "enum" template.
type Enum struct {
	// Name is the Go type name.
	Name string
	// Raw is the native alias name.
	Raw string
	// Type is the Go spelling of the backing kind, e.g. "int32".
	Type string
	// Method is the exported kind, e.g. "Int32".
	Method string
	// From and Parse name the conversion functions.
	From   string
	Parse  string
	Values []Value
	// Cases holds one value per distinct discriminant.
	Cases []Value
}

// Value is a single enumeration constant.
type Value struct {
	Name    string
	Literal string
	Const   string
	Label   string
}

// Handle is the data of the "handle" template.
type Handle struct {
	Name      string
	ConstName string
	Raw       string
	// ConstMethods are declared on the borrowed shape.
	ConstMethods []*Method
	// Methods are declared on the owning shape.
	Methods      []*Method
	Constructors []*Method
}

// Method is the data of the "method" template. Constructors have no Recv.
type Method struct {
	Recv    string
	Name    string
	Entry   string
	Params  string
	Results string
	// Call is the native call expression with argument glue applied.
	Call string
	// Pre and Post wrap Call when the result is returned.
	Pre       string
	Post      string
	HasReturn bool
	NullCheck bool
	// Strings is set when an argument is converted with the cstrings helper.
	Strings   bool
	Unchecked bool
	// Slot is the cgo type of the write-once out variable passed by address.
	Slot string
	// SlotOwner is the owning handle the out variable is wrapped in.
	SlotOwner string
}
