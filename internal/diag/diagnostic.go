// Package diag collects the non-fatal conditions reported while generating
// wrappers. Fatal conditions are returned as errors instead.
package diag

import (
	"fmt"
	"log/slog"
	"sort"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Code identifies the kind of condition a diagnostic describes.
type Code uint8

const (
	UnknownCode Code = iota
	// UnresolvedConstant: a constant's backing type was never registered as an enumeration.
	UnresolvedConstant
	// UnhandledFunction: a signature matched neither classification rule.
	UnhandledFunction
	// EmptyEnum: a type alias collected zero values.
	EmptyEnum
	// LiteralOutOfRange: a constant literal is not representable in its backing primitive.
	LiteralOutOfRange
	// UnspellableType: a raw type has no cgo spelling, the method is not emitted.
	UnspellableType
	// NameCollision: two declarations map to the same Go identifier.
	NameCollision
)

var codeNames = [...]string{
	UnknownCode:        "unknown",
	UnresolvedConstant: "unresolved-constant",
	UnhandledFunction:  "unhandled-function",
	EmptyEnum:          "empty-enum",
	LiteralOutOfRange:  "literal-out-of-range",
	UnspellableType:    "unspellable-type",
	NameCollision:      "name-collision",
}

func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("code(%d)", c)
}

// Diagnostic is a single reported condition.
type Diagnostic struct {
	Severity Severity
	Code     Code
	// Subject is the declaration the diagnostic is about.
	Subject string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", d.Severity, d.Code, d.Subject, d.Message)
}

// Reporter is the minimal contract the pipeline stages report through.
type Reporter interface {
	Report(code Code, sev Severity, subject, msg string)
}

// Warn is a shortcut for SevWarning diagnostics.
func Warn(r Reporter, code Code, subject, format string, args ...any) {
	if r == nil {
		return
	}
	r.Report(code, SevWarning, subject, fmt.Sprintf(format, args...))
}

// Info is a shortcut for SevInfo diagnostics.
func Info(r Reporter, code Code, subject, format string, args ...any) {
	if r == nil {
		return
	}
	r.Report(code, SevInfo, subject, fmt.Sprintf(format, args...))
}

// Bag is a Reporter that keeps every diagnostic in report order.
type Bag struct {
	items []Diagnostic
}

func NewBag() *Bag {
	return &Bag{}
}

// Report adds a diagnostic and logs it at debug level.
func (b *Bag) Report(code Code, sev Severity, subject, msg string) {
	b.items = append(b.items, Diagnostic{
		Severity: sev,
		Code:     code,
		Subject:  subject,
		Message:  msg,
	})
	slog.Debug("diagnostic", "code", code.String(), "severity", sev.String(), "subject", subject, "message", msg)
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the diagnostics in report order. Do not modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Count returns how many diagnostics carry the given code.
func (b *Bag) Count(code Code) int {
	n := 0
	for i := range b.items {
		if b.items[i].Code == code {
			n++
		}
	}
	return n
}

// HasWarnings returns true if at least one diagnostic is a warning or worse.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// ByCode groups diagnostic subjects by code name, in report order.
func (b *Bag) ByCode() map[string][]string {
	out := make(map[string][]string)
	for _, d := range b.items {
		key := d.Code.String()
		out[key] = append(out[key], d.Subject)
	}
	return out
}

// Codes returns the distinct codes present, in ascending order.
func (b *Bag) Codes() []Code {
	seen := make(map[Code]bool)
	var codes []Code
	for _, d := range b.items {
		if !seen[d.Code] {
			seen[d.Code] = true
			codes = append(codes, d.Code)
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
