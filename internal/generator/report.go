package generator

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/origadmin/wrapgen/internal/diag"
)

// ErrCountMismatch is returned when the classified function count differs
// from the pinned expectation.
var ErrCountMismatch = errors.New("classified function count mismatch")

// Result is the outcome of a generation run.
type Result struct {
	// Code is the formatted Go source.
	Code []byte
	// Classified is the number of functions attached to an entity.
	Classified int
	// Emitted is the number of functions that produced a declaration.
	Emitted     int
	Enums       int
	Entities    int
	Diagnostics *diag.Bag
}

// Verify compares the classified count with expected. Zero disables the check.
func (r *Result) Verify(expected int) error {
	if expected == 0 || r.Classified == expected {
		return nil
	}
	return fmt.Errorf("%w: classified %d, expected %d", ErrCountMismatch, r.Classified, expected)
}

// Report is the serialized summary of a run.
type Report struct {
	Classified  int                 `yaml:"classified"`
	Expected    int                 `yaml:"expected,omitempty"`
	Emitted     int                 `yaml:"emitted"`
	Enums       int                 `yaml:"enums"`
	Entities    int                 `yaml:"entities"`
	Diagnostics map[string][]string `yaml:"diagnostics,omitempty"`
}

// Report summarizes the run against the expected count.
func (r *Result) Report(expected int) *Report {
	rep := &Report{
		Classified: r.Classified,
		Expected:   expected,
		Emitted:    r.Emitted,
		Enums:      r.Enums,
		Entities:   r.Entities,
	}
	if r.Diagnostics != nil && r.Diagnostics.Len() > 0 {
		rep.Diagnostics = r.Diagnostics.ByCode()
	}
	return rep
}

// WriteReport writes the run summary to w as YAML.
func (r *Result) WriteReport(w io.Writer, expected int) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.Report(expected)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}
