package config

import (
	"bufio"
	"log/slog"
	"strings"
)

const directivePrefix = "//wrapgen:"

// Directives are the instructions found in the wrapper fragment.
type Directives struct {
	// Skip holds entry points whose generated method is replaced by a
	// hand-written one in the fragment.
	Skip map[string]bool
	// Unchecked holds raw types treated like unchecked_aliases.
	Unchecked map[string]bool
	// Imports are the import paths the fragment itself refers to.
	Imports []string
}

// Skipped reports whether the generated method for entry is suppressed.
func (d Directives) Skipped(entry string) bool {
	return d.Skip[entry]
}

// DirectiveScanner scans fragment text for wrapgen directives.
type DirectiveScanner struct{}

// NewDirectiveScanner creates a new DirectiveScanner.
func NewDirectiveScanner() *DirectiveScanner {
	return &DirectiveScanner{}
}

// Scan collects every `//wrapgen:<verb> <args...>` line in text.
// Recognized verbs are skip, unchecked and import; others are logged and
// ignored.
func (s *DirectiveScanner) Scan(text string) Directives {
	d := Directives{
		Skip:      make(map[string]bool),
		Unchecked: make(map[string]bool),
	}
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		rest, ok := strings.CutPrefix(line, directivePrefix)
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		verb, args := fields[0], fields[1:]
		switch verb {
		case "skip":
			for _, a := range args {
				d.Skip[a] = true
			}
		case "unchecked":
			for _, a := range args {
				d.Unchecked[a] = true
			}
		case "import":
			for _, a := range args {
				d.Imports = append(d.Imports, strings.Trim(a, `"`))
			}
		default:
			slog.Warn("Unknown directive", "directive", line)
		}
	}
	return d
}
