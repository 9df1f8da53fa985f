package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/reflector/internal/errors"
)

// DiagnosticReporter prints failures as `path:line: message` followed by
// the error code, hints and, in verbose mode, the context and cause chain.
type DiagnosticReporter struct {
	verbose   bool
	useColors bool
	out       io.Writer
}

// NewDiagnosticReporter creates a reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose:   verbose,
		useColors: !color.NoColor && os.Getenv("NO_COLOR") == "",
		out:       os.Stderr,
	}
}

// SetOutput redirects the reporter and turns colors off
func (r *DiagnosticReporter) SetOutput(out io.Writer) {
	r.out = out
	r.useColors = false
}

// ReportWarning prints a single warning line
func (r *DiagnosticReporter) ReportWarning(message string) {
	fmt.Fprintf(r.out, "%s%s\n", r.paint(color.New(color.FgYellow, color.Bold), "! "), message)
}

// ReportError prints every error in err. A MultipleErrors value is reported
// entry by entry.
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		for _, e := range multi.Errors {
			r.reportOne(e)
		}
		return
	}
	r.reportOne(err)
}

func (r *DiagnosticReporter) reportOne(err error) {
	base, ok := errors.AsBase(err)
	if !ok {
		fmt.Fprintf(r.out, "%s %s\n", r.paint(color.New(color.FgRed, color.Bold), "error:"), err.Error())
		return
	}

	location := ""
	if !base.Loc.IsEmpty() {
		location = r.paint(color.New(color.Bold), base.Loc.String()+":") + " "
	}
	fmt.Fprintf(r.out, "%s%s %s\n", location, base.Message,
		r.paint(color.New(color.FgRed), "["+base.Code.String()+"]"))

	for _, hint := range base.Hints {
		fmt.Fprintf(r.out, "   %s %s\n", r.paint(color.New(color.FgCyan), "hint:"), hint)
	}

	if r.verbose {
		r.printContext(base.ContextData)
		r.printCauses(base.Cause)
	}
}

// printContext prints context entries sorted by key
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	if len(context) == 0 {
		return
	}
	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}
}

func (r *DiagnosticReporter) printCauses(cause error) {
	for level := 1; cause != nil; level++ {
		fmt.Fprintf(r.out, "   caused by (%d): %s\n", level, cause.Error())
		cause = stderrors.Unwrap(cause)
	}
}

func (r *DiagnosticReporter) paint(c *color.Color, s string) string {
	if !r.useColors {
		return s
	}
	return c.Sprint(s)
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}
