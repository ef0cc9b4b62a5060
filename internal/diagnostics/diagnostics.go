// Package diagnostics accumulates warnings raised during analysis instead of
// failing the run, so a bad file or unresolved specifier degrades a result
// rather than aborting it. Diagnostics are kept as structured records, not
// just printed, so callers can serialize or count them after the fact.
package diagnostics

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Severity classifies a Diagnostic.
type Severity string

const (
	Warning Severity = "warning"
	Error   Severity = "error"
	Fatal   Severity = "fatal"
)

// Diagnostic is one accumulated record.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Stage    string   `json:"stage"`
	File     string   `json:"file,omitempty"`
	Message  string   `json:"message"`
}

// Sink collects diagnostics and optionally echoes them to a logger.
type Sink struct {
	logger  *log.Logger
	verbose bool
	records []Diagnostic
}

// NewSink creates a Sink that logs to stderr with [DEBUG]/[INFO]/[WARN]/
// [ERROR] prefixes and a time-of-day timestamp.
func NewSink() *Sink {
	return &Sink{logger: log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)}
}

// SetVerbose toggles whether Debugf/Infof reach the logger. Warnings and
// errors are always logged and always recorded regardless of verbosity.
func (s *Sink) SetVerbose(v bool) { s.verbose = v }

// SetOutput redirects the logger, mainly for tests.
func (s *Sink) SetOutput(w io.Writer) { s.logger.SetOutput(w) }

func (s *Sink) Debugf(format string, args ...interface{}) {
	if s.verbose {
		s.logger.Printf("[DEBUG] "+format, args...)
	}
}

func (s *Sink) Infof(format string, args ...interface{}) {
	if s.verbose {
		s.logger.Printf("[INFO] "+format, args...)
	}
}

// Warn records and logs a warning diagnostic for a given pipeline stage and
// file (file may be "").
func (s *Sink) Warn(stage, file, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	s.records = append(s.records, Diagnostic{Severity: Warning, Stage: stage, File: file, Message: msg})
	s.logger.Printf("[WARN] %s: %s", stage, msg)
}

// Error records and logs an error diagnostic that does not abort the run.
func (s *Sink) Error(stage, file, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	s.records = append(s.records, Diagnostic{Severity: Error, Stage: stage, File: file, Message: msg})
	s.logger.Printf("[ERROR] %s: %s", stage, msg)
}

// Fatal records a fatal diagnostic (unknown strategy name, I/O failure) that
// the caller should turn into a non-zero exit code.
func (s *Sink) Fatal(stage, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	s.records = append(s.records, Diagnostic{Severity: Fatal, Stage: stage, Message: msg})
	s.logger.Printf("[FATAL] %s: %s", stage, msg)
	return fmt.Errorf("%s: %s", stage, msg)
}

// Records returns every accumulated diagnostic, in emission order.
func (s *Sink) Records() []Diagnostic { return s.records }

// HasErrors reports whether any Error or Fatal diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.records {
		if d.Severity == Error || d.Severity == Fatal {
			return true
		}
	}
	return false
}
