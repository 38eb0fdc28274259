package chromebrowser

import (
	"runtime"
	"strings"
	"testing"
)

func TestResolveChromePath(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		env      string
		want     string
	}{
		{name: "explicit path", explicit: "/custom/chrome", want: "/custom/chrome"},
		{name: "env fallback", env: "/env/chrome", want: "/env/chrome"},
		{name: "explicit wins over env", explicit: "/explicit/chrome", env: "/env/chrome", want: "/explicit/chrome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvChromePath, tt.env)
			if got := ResolveChromePath(tt.explicit); got != tt.want {
				t.Errorf("ResolveChromePath(%q) = %q, want %q", tt.explicit, got, tt.want)
			}
		})
	}
}

func TestResolveChromePath_SystemDefault(t *testing.T) {
	t.Setenv(EnvChromePath, "")

	// Empty is valid when Chrome is not installed.
	t.Logf("system default Chrome path: %q", ResolveChromePath(""))
}

func TestCandidates(t *testing.T) {
	linux := candidates("linux")
	if len(linux) == 0 || linux[0] != "chromium" {
		t.Errorf("expected chromium first on linux, got %v", linux)
	}

	for _, c := range candidates("darwin") {
		if !strings.HasPrefix(c, "/Applications/") {
			t.Errorf("unexpected darwin candidate %q", c)
		}
	}

	t.Setenv("PROGRAMFILES", `C:\Program Files`)
	t.Setenv("PROGRAMFILES(X86)", "")
	t.Setenv("LOCALAPPDATA", "")
	if got := len(candidates("windows")); got != 2 {
		t.Errorf("expected 2 windows candidates, got %d", got)
	}
}

func TestResolveExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses Unix paths")
	}

	tests := []struct {
		name     string
		input    string
		wantPath bool
	}{
		{name: "existing absolute path", input: "/bin/sh", wantPath: true},
		{name: "missing absolute path", input: "/definitely/not/a/real/path/chrome", wantPath: false},
		{name: "existing command", input: "sh", wantPath: true},
		{name: "missing command", input: "definitely-not-a-real-command-xyz123", wantPath: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resolveExecutable(tt.input)
			if tt.wantPath && result == "" {
				t.Errorf("expected path for %s, got empty", tt.input)
			}
			if !tt.wantPath && result != "" {
				t.Errorf("expected empty for %s, got %s", tt.input, result)
			}
		})
	}
}
