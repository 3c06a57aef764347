// Package classifier attaches every extern function to exactly one entity,
// either as a method of the entity named by its first parameter or as a
// constructor of the entity it creates.
package classifier

import (
	"log/slog"
	"strings"

	"github.com/origadmin/wrapgen/internal/decl"
	"github.com/origadmin/wrapgen/internal/diag"
	"github.com/origadmin/wrapgen/internal/generator/components"
	"github.com/origadmin/wrapgen/internal/model"
)

// Classifier applies the method and constructor rules.
type Classifier struct {
	prefix   string
	reporter diag.Reporter
}

// New creates a classifier for names carrying prefix.
func New(prefix string, reporter diag.Reporter) *Classifier {
	return &Classifier{prefix: prefix + "_", reporter: reporter}
}

// Classify is a shortcut for New(prefix, reporter).Classify(corpus, regs).
func Classify(corpus *decl.Corpus, regs *model.Registries, prefix string, reporter diag.Reporter) int {
	return New(prefix, reporter).Classify(corpus, regs)
}

// Classify attaches the functions of corpus to the entities in regs, creating
// entities the method rule discovers, and returns how many were attached.
func (c *Classifier) Classify(corpus *decl.Corpus, regs *model.Registries) int {
	count := 0
	for _, fn := range corpus.Functions {
		if c.classify(fn, regs) {
			count++
			continue
		}
		diag.Warn(c.reporter, diag.UnhandledFunction, fn.Name, "unhandled function %s(%s)", fn.Name, strings.Join(fn.Params, ", "))
	}
	slog.Debug("Functions classified", "classified", count, "total", len(corpus.Functions))
	return count
}

func (c *Classifier) classify(fn decl.Function, regs *model.Registries) bool {
	first := fn.FirstParam()
	if self := lastToken(paramType(first)); self != "" && c.isMethodOf(fn.Name, self) {
		ti := getOrCreate(regs, self)
		fi := newFuncInfo(fn, self)
		fi.SelfType = strings.TrimSpace(paramType(first))
		fi.ConstSelf = strings.Contains(first, "const ")
		fi.Args = parseArgs(fn.Params[1:])
		ti.AddFunction(fi)
		return true
	}

	if fn.Return == "" || !strings.Contains(fn.Name, "create") {
		return false
	}
	owner := lastToken(fn.Return)
	if !strings.HasPrefix(owner, c.prefix) {
		return false
	}
	if regs.Enums.Has(owner) {
		// status-returning constructor: the created entity is the out parameter
		owner = strings.ReplaceAll(lastToken(fn.RestParams()), ",", "")
		slog.Debug("Using out parameter as constructor owner", "function", fn.Name, "owner", owner)
	}
	// An owner the entry point is not named after gets no entity, not even an
	// empty handle pair.
	if owner == "" || !strings.HasPrefix(fn.Name, owner+"_") {
		return false
	}
	fi := newFuncInfo(fn, owner)
	fi.Constructor = true
	fi.Args = parseArgs(fn.Params)
	getOrCreate(regs, owner).AddFunction(fi)
	return true
}

// isMethodOf reports whether entry belongs to the candidate entity named by
// its first parameter type.
func (c *Classifier) isMethodOf(entry, candidate string) bool {
	return strings.HasPrefix(candidate, c.prefix) && strings.HasPrefix(entry, candidate+"_")
}

func newFuncInfo(fn decl.Function, owner string) model.FuncInfo {
	return model.FuncInfo{
		Name:       strings.TrimPrefix(fn.Name, owner+"_"),
		EntryPoint: fn.Name,
		Return:     fn.Return,
	}
}

func getOrCreate(regs *model.Registries, raw string) *model.TypeInfo {
	if ti, ok := regs.Types.Get(raw); ok {
		return ti
	}
	ti := &model.TypeInfo{Name: components.Normalize(raw), RawName: raw}
	regs.Types.Put(raw, ti)
	return ti
}

// parseArgs splits each `name: type` parameter at its first colon. Segments
// without a colon are skipped.
func parseArgs(params []string) []model.ArgInfo {
	var args []model.ArgInfo
	for _, p := range params {
		name, typ, ok := strings.Cut(p, ":")
		if !ok {
			continue
		}
		name, typ = strings.TrimSpace(name), strings.TrimSpace(typ)
		args = append(args, model.ArgInfo{Name: name, FullType: typ, NewType: typ})
	}
	return args
}

func paramType(param string) string {
	if _, typ, ok := strings.Cut(param, ":"); ok {
		return typ
	}
	return param
}

func lastToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
