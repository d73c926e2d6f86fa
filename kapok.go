// Package kapok provides the public surface shared by the fake-generation
// engine and its host collaborators: structured diagnostics, the generated
// source writer contract, and the build-scoped generation cache contract.
//
// The engine itself lives in compiler/gen, and the front-end boundary
// (raw declarations handed in by a host plugin or manifest) in compiler/load.
package kapok

import (
	"fmt"
	"sync"
)

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityInfo is an informational note.
	SeverityInfo Severity = iota
	// SeverityWarning reports a problem that does not stop generation.
	SeverityWarning
	// SeverityError reports a problem that skipped generation for a contract.
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// SuggestedFix is an optional remediation attached to a diagnostic.
type SuggestedFix struct {
	// Message describes the fix in human-readable form.
	Message string
}

// Diagnostic is a structured message handed to the host diagnostics sink.
// Diagnostics never abort the build; they describe why generation was
// skipped (or degraded) for a single contract.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Contract holds the qualified contract name, if the diagnostic is
	// scoped to one contract.
	Contract string
	// Member holds the offending member name, if any.
	Member string
	// Message is the human-readable description.
	Message string
	// Fixes holds optional suggested remediations.
	Fixes []SuggestedFix
}

// String formats the diagnostic for logs and CLI output.
func (d Diagnostic) String() string {
	s := d.Severity.String() + ": "
	if d.Contract != "" {
		s += d.Contract
		if d.Member != "" {
			s += "." + d.Member
		}
		s += ": "
	}
	return s + d.Message
}

// Sink receives diagnostics produced during a generation run.
// Implementations are supplied by the host (compiler plugin, CLI, tests).
type Sink interface {
	Report(Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Diagnostic)

// Report implements Sink.
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// DiscardSink drops all diagnostics.
var DiscardSink Sink = SinkFunc(func(Diagnostic) {})

// CollectSink accumulates diagnostics in memory. It is safe for
// concurrent use and is the default sink in tests.
type CollectSink struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// Report implements Sink.
func (s *CollectSink) Report(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = append(s.diags, d)
}

// Diagnostics returns a copy of the collected diagnostics.
func (s *CollectSink) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	return out
}

// FileWriter receives rendered source text, one logical unit per contract.
// The host decides where the unit lands (source set, output directory);
// the engine never touches the file system directly.
type FileWriter interface {
	WriteSource(name string, content []byte) error
}

// FileWriterFunc adapts a function to the FileWriter interface.
type FileWriterFunc func(name string, content []byte) error

// WriteSource implements FileWriter.
func (f FileWriterFunc) WriteSource(name string, content []byte) error {
	return f(name, content)
}
