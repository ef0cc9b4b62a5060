package diagnostics

import (
	"bytes"
	"strings"
	"testing"
)

func TestWarnRecordsAndLogs(t *testing.T) {
	s := NewSink()
	var buf bytes.Buffer
	s.SetOutput(&buf)

	s.Warn("parse", "a.js", "unexpected token %q", ";")

	records := s.Records()
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.Severity != Warning || r.Stage != "parse" || r.File != "a.js" || r.Message != `unexpected token ";"` {
		t.Errorf("record = %+v, unexpected fields", r)
	}
	if !strings.Contains(buf.String(), "[WARN] parse") {
		t.Errorf("log output %q missing [WARN] parse prefix", buf.String())
	}
}

func TestErrorAndFatalAreBothErrors(t *testing.T) {
	s := NewSink()
	s.SetOutput(bytes.NewBuffer(nil))

	s.Error("bind", "", "duplicate binding")
	if !s.HasErrors() {
		t.Errorf("HasErrors should be true after Error")
	}

	s2 := NewSink()
	s2.SetOutput(bytes.NewBuffer(nil))
	err := s2.Fatal("config", "unknown strategy %q", "bogus")
	if err == nil {
		t.Fatalf("Fatal should return a non-nil error")
	}
	if !s2.HasErrors() {
		t.Errorf("HasErrors should be true after Fatal")
	}
	if err.Error() != `config: unknown strategy "bogus"` {
		t.Errorf("err = %q, unexpected message", err.Error())
	}
}

func TestWarningAloneDoesNotCountAsHasErrors(t *testing.T) {
	s := NewSink()
	s.SetOutput(bytes.NewBuffer(nil))
	s.Warn("parse", "a.js", "minor issue")
	if s.HasErrors() {
		t.Errorf("a Warning-only sink should not report HasErrors")
	}
}

func TestDebugfAndInfofAreSuppressedUntilVerbose(t *testing.T) {
	s := NewSink()
	var buf bytes.Buffer
	s.SetOutput(&buf)

	s.Debugf("quiet")
	s.Infof("also quiet")
	if buf.Len() != 0 {
		t.Errorf("expected no output before SetVerbose, got %q", buf.String())
	}

	s.SetVerbose(true)
	s.Debugf("now visible")
	if !strings.Contains(buf.String(), "[DEBUG] now visible") {
		t.Errorf("expected debug output after SetVerbose(true), got %q", buf.String())
	}
}

func TestDebugfAndInfofAreNeverRecorded(t *testing.T) {
	s := NewSink()
	s.SetOutput(bytes.NewBuffer(nil))
	s.SetVerbose(true)

	s.Debugf("debug message")
	s.Infof("info message")

	if len(s.Records()) != 0 {
		t.Errorf("Debugf/Infof should never append to Records, got %v", s.Records())
	}
}

func TestRecordsPreservesEmissionOrder(t *testing.T) {
	s := NewSink()
	s.SetOutput(bytes.NewBuffer(nil))

	s.Warn("a", "", "first")
	s.Error("b", "", "second")
	_ = s.Fatal("c", "third")

	records := s.Records()
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].Message != "first" || records[1].Message != "second" || records[2].Message != "third" {
		t.Errorf("records out of order: %+v", records)
	}
}
