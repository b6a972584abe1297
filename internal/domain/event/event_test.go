package event

import (
	"strings"
	"testing"
)

func TestNewIngested(t *testing.T) {
	e := NewIngested(3)
	if e.Kind() != KindIngested {
		t.Errorf("Kind() = %q", e.Kind())
	}
	if e.Severity() != SeverityInfo {
		t.Errorf("Severity() = %q, want info", e.Severity())
	}
	if !strings.Contains(e.Description(), "3 documents") {
		t.Errorf("Description() = %q", e.Description())
	}
}

func TestNewIngested_SingularNoun(t *testing.T) {
	e := NewIngested(1)
	if !strings.Contains(e.Description(), "1 document ") {
		t.Errorf("Description() = %q, want singular noun", e.Description())
	}
}

func TestNewQueryRejected(t *testing.T) {
	e := NewQueryRejected("empty query")
	if e.Kind() != KindQueryRejected {
		t.Errorf("Kind() = %q", e.Kind())
	}
	if e.Severity() != SeverityDestructive {
		t.Errorf("Severity() = %q, want destructive", e.Severity())
	}
	if e.Description() != "empty query" {
		t.Errorf("Description() = %q, want reason verbatim", e.Description())
	}
}

func TestNewDocumentDeleted(t *testing.T) {
	e := NewDocumentDeleted()
	if e.Kind() != KindDocumentDeleted {
		t.Errorf("Kind() = %q", e.Kind())
	}
	if e.Severity() != SeverityDestructive {
		t.Errorf("Severity() = %q, want destructive", e.Severity())
	}
	if e.Title() == "" {
		t.Error("Title() should not be empty")
	}
}

func TestSeverityIsValid(t *testing.T) {
	if !SeverityInfo.IsValid() || !SeverityDestructive.IsValid() {
		t.Error("known severities should be valid")
	}
	if Severity("warning").IsValid() {
		t.Error("unknown severity should be invalid")
	}
}
