// Package generator runs the wrapper generation pipeline over a declaration
// corpus and produces a formatted cgo package.
package generator

import (
	"bytes"
	"fmt"
	"log/slog"

	"golang.org/x/tools/imports"

	"github.com/origadmin/wrapgen/internal/analyzer"
	"github.com/origadmin/wrapgen/internal/classifier"
	"github.com/origadmin/wrapgen/internal/config"
	"github.com/origadmin/wrapgen/internal/decl"
	"github.com/origadmin/wrapgen/internal/diag"
	"github.com/origadmin/wrapgen/internal/generator/components"
	"github.com/origadmin/wrapgen/internal/model"
	"github.com/origadmin/wrapgen/internal/template"
)

// CodeGenerator orchestrates the entire code generation process. It holds no
// state between runs.
type CodeGenerator struct {
	cfg       *config.Config
	tmplMgr   *template.Manager
	formatter *components.TypeFormatter
}

// NewGenerator creates a generator for cfg.
func NewGenerator(cfg *config.Config) *CodeGenerator {
	return &CodeGenerator{
		cfg:       cfg,
		tmplMgr:   template.NewManager(),
		formatter: components.NewTypeFormatter(),
	}
}

// SetTemplateDir overrides the built-in templates with the *.tpl files in dir.
func (g *CodeGenerator) SetTemplateDir(dir string) error {
	if dir == "" {
		return nil
	}
	return g.tmplMgr.Override(dir)
}

// Generate runs every stage over corpus. The returned error is fatal; all
// other conditions are collected in Result.Diagnostics.
func (g *CodeGenerator) Generate(corpus []byte) (*Result, error) {
	bag := diag.NewBag()

	c := decl.Parse(corpus)
	slog.Debug("Declarations extracted",
		"aliases", len(c.Aliases),
		"constants", len(c.Constants),
		"structs", len(c.Structs),
		"functions", len(c.Functions))

	regs, err := analyzer.Build(c, analyzer.Options{
		Prefix:    g.cfg.Prefix,
		DataModel: g.cfg.Target.DataModel,
	}, bag)
	if err != nil {
		return nil, err
	}

	classified := classifier.Classify(c, regs, g.cfg.Prefix, bag)
	components.NewNameResolver(bag).Resolve(regs)

	rewritten := components.NewTypeConverter(components.TypeConverterOptions{
		BoolType:    g.cfg.Bool.Type,
		FalseConst:  g.cfg.Bool.FalseConst,
		IsUnchecked: g.cfg.IsUnchecked,
	}).Rewrite(regs)

	emitter := components.NewCodeEmitter(components.CodeEmitterOptions{
		Context: &model.GenerationContext{
			Config:     g.cfg,
			Registries: rewritten,
		},
		Templates: g.tmplMgr,
		Imports:   components.NewImportManager(),
		Formatter: g.formatter,
		Widths:    g.widths(),
		Reporter:  bag,
	})
	code, err := g.emit(emitter)
	if err != nil {
		return nil, err
	}

	slog.Debug("Generation finished",
		"classified", classified,
		"emitted", emitter.Emitted(),
		"diagnostics", bag.Len())
	return &Result{
		Code:        code,
		Classified:  classified,
		Emitted:     emitter.Emitted(),
		Enums:       rewritten.Enums.Len(),
		Entities:    rewritten.Types.Len(),
		Diagnostics: bag,
	}, nil
}

func (g *CodeGenerator) emit(emitter model.CodeEmitter) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := emitter.EmitHeader(buf); err != nil {
		return nil, fmt.Errorf("failed to emit header: %w", err)
	}
	if err := emitter.EmitEnums(buf); err != nil {
		return nil, fmt.Errorf("failed to emit enums: %w", err)
	}
	if err := emitter.EmitHandles(buf); err != nil {
		return nil, fmt.Errorf("failed to emit handles: %w", err)
	}
	code, err := imports.Process(g.cfg.Package+".go", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return code, nil
}

// widths spells the asserted C integers as cgo types.
func (g *CodeGenerator) widths() []template.Width {
	var out []template.Width
	for _, w := range analyzer.RequiredWidths() {
		ctype, ok := g.formatter.Format("::std::os::raw::" + w.Name)
		if !ok {
			continue
		}
		out = append(out, template.Width{CType: ctype, Bytes: w.Bytes})
	}
	return out
}
