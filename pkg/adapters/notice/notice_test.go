package notice

import (
	"bytes"
	"strings"
	"testing"
)

func TestNotifier_Notify(t *testing.T) {
	var buf bytes.Buffer
	n := NewWithWriter(&buf)

	n.Notify("Please select a background image first.")

	got := buf.String()
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("expected a trailing newline, got %q", got)
	}
	if strings.Count(got, "\n") != 1 {
		t.Errorf("expected exactly one line, got %q", got)
	}
	if !strings.HasPrefix(got, "! ") {
		t.Errorf("expected notice prefix, got %q", got)
	}
}

func TestNotifier_WritesVerbatim(t *testing.T) {
	var buf bytes.Buffer
	n := NewWithWriter(&buf)

	n.Notify("something unexpected")

	if got := buf.String(); got != "! something unexpected\n" {
		t.Errorf("got %q", got)
	}
}
