package app

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
)

// TestHasVersionFlag tests version flag detection in various positions.
func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"LongFlag", []string{"--version"}, true},
		{"ShortFlag", []string{"-V"}, true},
		{"SingleDash", []string{"-version"}, true},
		{"AnyPosition", []string{"--quiet", "--version"}, true},
		{"NoFlag", []string{"--quiet", "--workers", "4"}, false},
		{"Empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HasVersionFlag(tt.args); got != tt.want {
				t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

// TestPrintVersion tests that version output contains the expected fields.
func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf, "worker")

	output := buf.String()
	for _, want := range []string{"bealsearch worker", "Commit:", "Built:", "Go version:", runtime.Version()} {
		if !strings.Contains(output, want) {
			t.Errorf("PrintVersion() output missing %q:\n%s", want, output)
		}
	}
}

// TestGetVersionInfo tests the structured version information.
func TestGetVersionInfo(t *testing.T) {
	t.Parallel()
	info := GetVersionInfo()

	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.OS != runtime.GOOS || info.Arch != runtime.GOARCH {
		t.Errorf("OS/Arch = %s/%s, want %s/%s", info.OS, info.Arch, runtime.GOOS, runtime.GOARCH)
	}
}
