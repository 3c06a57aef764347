package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/origadmin/wrapgen/internal/diag"
	"github.com/origadmin/wrapgen/internal/generator"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
)

// printSummary writes the counts and the diagnostics of res to w.
func printSummary(w io.Writer, res *generator.Result, expected int, colored bool) {
	saved := color.NoColor
	color.NoColor = !colored
	defer func() { color.NoColor = saved }()

	count := okColor.Sprint(res.Classified)
	if res.Verify(expected) != nil {
		count = failColor.Sprint(res.Classified) + fmt.Sprintf(" (expected %d)", expected)
	}
	fmt.Fprintf(w, "classified %s functions, emitted %d, %d enums, %d entities\n",
		count, res.Emitted, res.Enums, res.Entities)

	if res.Diagnostics == nil {
		return
	}
	for _, code := range res.Diagnostics.Codes() {
		fmt.Fprintf(w, "  %s %d\n", warnColor.Sprint(code.String()), res.Diagnostics.Count(code))
	}
	for _, d := range res.Diagnostics.Items() {
		if d.Severity < diag.SevWarning {
			continue
		}
		fmt.Fprintf(w, "  %s %s: %s\n", warnColor.Sprint(d.Code.String()), d.Subject, d.Message)
	}
}
