package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/parser"
)

// DiagnosticReporter provides user-friendly reporting of host errors: parse
// failures, configuration problems and unreadable paths. Generator
// diagnostics go through utils.DiagnosticSystem instead.
type DiagnosticReporter struct {
	verbose bool
	colors  bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		colors:  os.Getenv("NO_COLOR") == "",
		out:     os.Stderr,
	}
}

// SetOutput redirects the reporter
func (r *DiagnosticReporter) SetOutput(out io.Writer) {
	r.out = out
}

// SetColors forces colored output on or off
func (r *DiagnosticReporter) SetColors(enabled bool) {
	r.colors = enabled
}

// ReportError prints an error with every suggestion and hint found in its
// chain. Per-file parse failures are listed one by one.
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	var fileErrs *parser.FileErrors
	if errors.As(err, &fileErrs) {
		for _, fileErr := range fileErrs.Errors {
			r.reportOne(fileErr)
		}
		return
	}
	r.reportOne(err)
}

// reportOne prints a single failure
func (r *DiagnosticReporter) reportOne(err error) {
	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		fmt.Fprintf(r.out, "%s %s %s\n",
			r.paint(syntaxErr.Location.String()+":", color.Bold),
			r.paint("error:", color.FgRed),
			syntaxErr.Message)
		r.printSuggestions(syntaxErr.Suggestions)
	} else {
		fmt.Fprintf(r.out, "%s %s\n", r.paint("error:", color.FgRed), firstLine(err.Error()))
	}

	r.printSuggestions(errors.GetAllHints(err))

	if r.verbose {
		r.printErrorChain(err)
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	for _, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "  %s %s\n", r.paint("hint:", color.FgCyan), lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "        %s\n", line)
			}
		}
	}
}

// printErrorChain prints the wrapped causes, outermost first. Wrappers that
// only add a stack trace repeat their cause's message and are skipped.
func (r *DiagnosticReporter) printErrorChain(err error) {
	level := 1
	previous := firstLine(err.Error())
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		message := firstLine(cause.Error())
		if message == previous {
			continue
		}
		previous = message
		fmt.Fprintf(r.out, "  %s %d. %s\n", r.paint("cause", color.FgHiBlack), level, message)
		level++
	}
}

func (r *DiagnosticReporter) paint(s string, attrs ...color.Attribute) string {
	if !r.colors {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// firstLine drops the suggestion lines some errors append to their message
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
