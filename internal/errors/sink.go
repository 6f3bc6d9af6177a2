package errors

import (
	"fmt"
	"strings"
)

// Sink receives diagnostics as they are produced
type Sink interface {
	Report(d *Diagnostic)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(d *Diagnostic)

// Report calls f(d)
func (f SinkFunc) Report(d *Diagnostic) {
	f(d)
}

// Tee forwards every diagnostic to all sinks in order
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(d *Diagnostic) {
		for _, sink := range sinks {
			if sink != nil {
				sink.Report(d)
			}
		}
	})
}

// Collector accumulates diagnostics in report order
type Collector struct {
	Diagnostics []*Diagnostic
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{Diagnostics: make([]*Diagnostic, 0)}
}

// Report implements Sink
func (c *Collector) Report(d *Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Count returns the number of diagnostics
func (c *Collector) Count() int {
	return len(c.Diagnostics)
}

// IsEmpty returns true if nothing was reported
func (c *Collector) IsEmpty() bool {
	return len(c.Diagnostics) == 0
}

// ByKind returns all diagnostics of a kind
func (c *Collector) ByKind(kind Kind) []*Diagnostic {
	var result []*Diagnostic
	for _, d := range c.Diagnostics {
		if d.Kind == kind {
			result = append(result, d)
		}
	}
	return result
}

// HasKind returns true if any diagnostic of the kind was reported
func (c *Collector) HasKind(kind Kind) bool {
	return len(c.ByKind(kind)) > 0
}

// Kinds returns the kinds in report order
func (c *Collector) Kinds() []Kind {
	kinds := make([]Kind, len(c.Diagnostics))
	for i, d := range c.Diagnostics {
		kinds[i] = d.Kind
	}
	return kinds
}

// Reset drops every collected diagnostic
func (c *Collector) Reset() {
	c.Diagnostics = c.Diagnostics[:0]
}

// Err returns nil when empty, otherwise an error listing every diagnostic
func (c *Collector) Err() error {
	if c.IsEmpty() {
		return nil
	}
	return &MultipleDiagnostics{Diagnostics: append([]*Diagnostic(nil), c.Diagnostics...)}
}

// MultipleDiagnostics represents several diagnostics collected together
type MultipleDiagnostics struct {
	Diagnostics []*Diagnostic
}

// Error implements the error interface
func (e *MultipleDiagnostics) Error() string {
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].Error()
	}

	messages := make([]string, 0, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		messages = append(messages, fmt.Sprintf("  %d. %s", i+1, d.Error()))
	}
	return fmt.Sprintf("%d diagnostics:\n%s", len(e.Diagnostics), strings.Join(messages, "\n"))
}

// Unwrap returns the individual diagnostics
func (e *MultipleDiagnostics) Unwrap() []error {
	errs := make([]error, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		errs[i] = d
	}
	return errs
}
