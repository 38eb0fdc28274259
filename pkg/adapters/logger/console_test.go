package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ideamans/go-l10n"
	"github.com/user/glassbanner/pkg/ports"
)

func newTestConsole(level ports.LogLevel) (*ConsoleLogger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewConsoleWithWriters(level, &out, &errOut), &out, &errOut
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	log, out, errOut := newTestConsole(ports.LevelWarn)

	log.Debug("Browser closed")
	log.Info("Exporting %s...", "banner.png")
	log.Warn("Blur unavailable, rendering the card without blur")
	log.Error("Export aborted: %v", "disk full")

	if out.Len() != 0 {
		t.Errorf("expected debug and info to be dropped, got %q", out.String())
	}
	want := "Blur unavailable, rendering the card without blur\nExport aborted: disk full\n"
	if got := errOut.String(); got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestConsoleLogger_StreamsByLevel(t *testing.T) {
	log, out, errOut := newTestConsole(ports.LevelDebug)

	log.Debug("Browser closed")
	log.Info("Export completed in %d ms", 42)
	log.Error("Failed to write output: %s", "permission denied")

	if got := out.String(); got != "Browser closed\nExport completed in 42 ms\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := errOut.String(); got != "Failed to write output: permission denied\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestConsoleLogger_QuietLevelDropsErrors(t *testing.T) {
	log, out, errOut := newTestConsole(ports.LevelQuiet)

	log.Error("Export aborted: %v", "boom")

	if out.Len()+errOut.Len() != 0 {
		t.Errorf("expected no output, got %q / %q", out.String(), errOut.String())
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	log, out, _ := newTestConsole(ports.LevelDebug)

	glass := log.WithComponent(ports.ComponentGlass)
	glass.Debug("Glass panel %dx%d, blur %.1f px, padding %d px", 600, 200, 24.0, 32)
	log.WithComponent(ports.ComponentPreview).WithComponent("chrome").Debug("Browser closed")
	log.Info("Browser closed")

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	want := []string{
		"[glass] Glass panel 600x200, blur 24.0 px, padding 32 px",
		"[preview/chrome] Browser closed",
		"Browser closed",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), out.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestConsoleLogger_Translates(t *testing.T) {
	l10n.ForceLanguage("ja")
	t.Cleanup(l10n.ResetLanguage)

	log, out, _ := newTestConsole(ports.LevelInfo)
	log.WithComponent(ports.ComponentComposite).Info("Compositing %d layers with %d workers", 4, 2)

	if got := out.String(); got != "[composite] 4 レイヤーを 2 ワーカーで合成中\n" {
		t.Errorf("got %q", got)
	}
}

func TestNoopLogger(t *testing.T) {
	var log ports.Logger = NewNoop()

	if c := log.WithComponent(ports.ComponentCrop); c != log {
		t.Error("expected WithComponent to return the same logger")
	}
	log.Error("Export aborted: %v", "ignored")
}
