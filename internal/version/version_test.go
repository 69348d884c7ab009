package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withPlainColor(t *testing.T) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
}

func TestColored(t *testing.T) {
	withPlainColor(t)
	orig := Version
	t.Cleanup(func() { Version = orig })

	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.0.0-beta.1", "1.0.0-beta.1"},
		{"custom", "custom"},
	}
	for _, tt := range tests {
		Version = tt.version
		if got := Colored(); got != tt.want {
			t.Errorf("Colored() with %q = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestInfo(t *testing.T) {
	withPlainColor(t)
	origCommit, origDate := GitCommit, BuildDate
	t.Cleanup(func() { GitCommit, BuildDate = origCommit, origDate })

	GitCommit, BuildDate = "", ""
	if got := Info(); got != "rsc "+Version+"\n" {
		t.Fatalf("Info() = %q", got)
	}

	GitCommit, BuildDate = "abc123", "2024-01-15T10:30:00Z"
	got := Info()
	if !strings.Contains(got, "commit: abc123\n") || !strings.Contains(got, "built:  2024-01-15T10:30:00Z\n") {
		t.Fatalf("Info() = %q", got)
	}
}
