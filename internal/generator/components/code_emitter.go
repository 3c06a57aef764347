package components

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/origadmin/wrapgen/internal/diag"
	"github.com/origadmin/wrapgen/internal/model"
	"github.com/origadmin/wrapgen/internal/template"
)

var errReceiver = errors.New("receiver is not a pointer")

// CodeEmitterOptions holds the collaborators of a CodeEmitter.
type CodeEmitterOptions struct {
	// Context carries the configuration and the rewritten registries.
	Context   *model.GenerationContext
	Templates *template.Manager
	Imports   model.ImportManager
	Formatter model.TypeFormatter
	// Widths are asserted at compile time by the generated helpers.
	Widths   []template.Width
	Reporter diag.Reporter
}

// CodeEmitter renders the rewritten registries through the wrapper templates.
type CodeEmitter struct {
	opts    CodeEmitterOptions
	enums   []*template.Enum
	handles []*template.Handle
	emitted int
}

// NewCodeEmitter creates an emitter and prepares the template data of every
// enumeration and entity. Imports are registered on opts.Imports here, so the
// header is complete before any block is emitted.
func NewCodeEmitter(opts CodeEmitterOptions) *CodeEmitter {
	if opts.Formatter == nil {
		opts.Formatter = NewTypeFormatter()
	}
	e := &CodeEmitter{opts: opts}
	e.prepare()
	return e
}

// Emitted returns the number of functions that produced a declaration.
func (e *CodeEmitter) Emitted() int {
	return e.emitted
}

// Enums returns the prepared enumeration blocks.
func (e *CodeEmitter) Enums() []*template.Enum {
	return e.enums
}

// Handles returns the prepared handle blocks.
func (e *CodeEmitter) Handles() []*template.Handle {
	return e.handles
}

// EmitHeader writes the preamble, the imports and the helpers.
func (e *CodeEmitter) EmitHeader(buf *bytes.Buffer) error {
	cfg := e.opts.Context.Config
	preamble := template.Preamble{
		Package:   cfg.Package,
		Doc:       commentLines(cfg.Fragments.Doc),
		PkgConfig: cfg.PkgConfig,
		Includes:  includeLines(cfg.Includes),
		Bindings:  fragmentLines(cfg.Fragments.Bindings),
	}
	if err := e.opts.Templates.Execute(buf, "preamble", preamble); err != nil {
		return err
	}
	e.opts.Imports.WriteImportsToBuffer(buf)
	helpers := template.Helpers{
		DataModel: cfg.Target.DataModel,
		Widths:    e.opts.Widths,
		Bool: template.Bool{
			Type:       cfg.Bool.Type,
			TrueConst:  cfg.Bool.TrueConst,
			FalseConst: cfg.Bool.FalseConst,
		},
		Wrappers: strings.TrimRight(cfg.Fragments.Wrappers, "\n"),
	}
	return e.opts.Templates.Execute(buf, "helpers", helpers)
}

// EmitEnums writes one block per enumeration.
func (e *CodeEmitter) EmitEnums(buf *bytes.Buffer) error {
	for _, en := range e.enums {
		if err := e.opts.Templates.Execute(buf, "enum", en); err != nil {
			return err
		}
	}
	return nil
}

// EmitHandles writes the handle pair of every entity.
func (e *CodeEmitter) EmitHandles(buf *bytes.Buffer) error {
	for _, h := range e.handles {
		if err := e.opts.Templates.Execute(buf, "handle", h); err != nil {
			return err
		}
	}
	return nil
}

func (e *CodeEmitter) prepare() {
	cfg := e.opts.Context.Config
	regs := e.opts.Context.Registries

	e.opts.Imports.Add("unsafe")
	for _, path := range cfg.Directives.Imports {
		e.opts.Imports.Add(path)
	}
	for _, info := range regs.Enums.Values() {
		e.enums = append(e.enums, enumBlock(info))
	}
	if len(e.enums) > 0 {
		e.opts.Imports.Add("fmt")
	}
	for _, ti := range regs.Types.Values() {
		e.handles = append(e.handles, e.handleBlock(ti))
	}
}

func enumBlock(info *model.EnumInfo) *template.Enum {
	en := &template.Enum{
		Name:   info.Wrapper,
		Raw:    info.Name,
		Type:   info.Kind.GoType(),
		Method: info.Kind.Method(),
		From:   info.FromName(),
		Parse:  info.ParseName(),
	}
	seen := make(map[string]bool)
	for _, v := range info.Values {
		if v.GoName == "" {
			continue
		}
		val := template.Value{Name: v.GoName, Literal: v.Literal, Const: v.Const, Label: v.Label}
		en.Values = append(en.Values, val)
		key := discriminant(v.Literal, info.Kind)
		if seen[key] {
			continue
		}
		seen[key] = true
		en.Cases = append(en.Cases, val)
	}
	return en
}

// discriminant returns a canonical form of lit so that "0x10" and "16" compare
// equal.
func discriminant(lit string, kind model.PrimitiveKind) string {
	if kind.Signed() {
		if v, err := strconv.ParseInt(lit, 0, 64); err == nil {
			return strconv.FormatInt(v, 10)
		}
		return lit
	}
	if v, err := strconv.ParseUint(lit, 0, 64); err == nil {
		return strconv.FormatUint(v, 10)
	}
	return lit
}

func (e *CodeEmitter) handleBlock(ti *model.TypeInfo) *template.Handle {
	cfg := e.opts.Context.Config
	h := &template.Handle{
		Name:      ti.Name,
		ConstName: ti.ConstName(),
		Raw:       ti.RawName,
	}
	for _, fi := range ti.Functions {
		if cfg.Directives.Skipped(fi.EntryPoint) {
			slog.Debug("Skipping function replaced by the wrapper fragment", "function", fi.EntryPoint)
			continue
		}
		m, err := e.method(ti, fi)
		if err != nil {
			diag.Warn(e.opts.Reporter, diag.UnspellableType, fi.EntryPoint, "skipping %s: %v", fi.EntryPoint, err)
			continue
		}
		e.emitted++
		if fi.Constructor {
			h.Constructors = append(h.Constructors, m)
			continue
		}
		m.NullCheck = cfg.NullChecks
		owning := *m
		owning.Recv = h.Name
		h.Methods = append(h.Methods, &owning)
		if fi.ConstSelf {
			borrowed := *m
			borrowed.Recv = h.ConstName
			h.ConstMethods = append(h.ConstMethods, &borrowed)
		}
	}
	return h
}

// method builds the declaration of fi without a receiver.
func (e *CodeEmitter) method(ti *model.TypeInfo, fi model.FuncInfo) (*template.Method, error) {
	m := &template.Method{
		Name:      fi.GoName,
		Entry:     fi.EntryPoint,
		HasReturn: fi.HasReturn(),
		Unchecked: fi.Unchecked,
	}
	var params, call []string
	if !fi.Constructor {
		if PointerDepth(fi.SelfType) != 1 {
			return nil, errReceiver
		}
		call = append(call, "h.ptr")
	}

	names := GoParams(fi.Args)
	for i, a := range fi.Args {
		if a.Slot {
			elem, _ := stripPointer(a.FullType)
			spelled, ok := e.opts.Formatter.Format(elem)
			if !ok {
				return nil, fmt.Errorf("out parameter %s has no cgo spelling: %s", a.Name, a.FullType)
			}
			m.Slot = spelled
			m.SlotOwner = ti.Name
			call = append(call, "&out")
			continue
		}
		typ := a.NewType
		if a.Kind == model.RewriteRaw {
			spelled, ok := e.opts.Formatter.Format(a.FullType)
			if !ok {
				return nil, fmt.Errorf("argument %s has no cgo spelling: %s", a.Name, a.FullType)
			}
			typ = spelled
		}
		if a.Kind == model.RewriteString {
			m.Strings = true
		}
		params = append(params, names[i]+" "+typ)
		call = append(call, a.Pre+names[i]+a.Post)
	}
	m.Params = strings.Join(params, ", ")
	m.Call = "C." + fi.EntryPoint + "(" + strings.Join(call, ", ") + ")"

	var result string
	if fi.HasReturn() {
		result = fi.NewReturn
		if fi.ReturnKind == model.RewriteRaw {
			spelled, ok := e.opts.Formatter.Format(fi.Return)
			if !ok {
				return nil, fmt.Errorf("return type has no cgo spelling: %s", fi.Return)
			}
			result = spelled
		}
		m.Pre, m.Post = fi.PreCall, fi.PostCall
	}
	switch {
	case m.Slot != "" && result != "":
		m.Results = "(" + ti.Name + ", " + result + ")"
	case m.Slot != "":
		m.Results = ti.Name
	default:
		m.Results = result
	}
	return m, nil
}

// commentLines turns plain text into line comments, keeping lines that
// already are comments.
func commentLines(text string) string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "//"):
		case strings.TrimSpace(line) == "":
			lines[i] = "//"
		default:
			lines[i] = "// " + line
		}
	}
	return strings.Join(lines, "\n")
}

// fragmentLines splits text into lines without trailing blank lines.
func fragmentLines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// includeLines spells every header as an #include operand. stdlib.h is always
// included since the string helpers free with C.free.
func includeLines(headers []string) []string {
	lines := make([]string, 0, len(headers)+1)
	stdlib := false
	for _, h := range headers {
		if strings.Trim(h, `<>"`) == "stdlib.h" {
			stdlib = true
		}
		if strings.HasPrefix(h, "<") || strings.HasPrefix(h, `"`) {
			lines = append(lines, h)
			continue
		}
		lines = append(lines, "<"+h+">")
	}
	if !stdlib {
		lines = append(lines, "<stdlib.h>")
	}
	return lines
}
