package version

import (
	"testing"

	"github.com/fatih/color"
)

func withPlain(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	ov, oc, od := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() { Version, GitCommit, BuildDate = ov, oc, od })
}

func TestColoredPlain(t *testing.T) {
	withPlain(t)
	tests := []struct {
		in, want string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.0.0-beta.1", "1.0.0-beta.1"},
		{"snapshot", "snapshot"},
	}
	for _, tt := range tests {
		withVersion(t, tt.in, "", "")
		if got := Colored(); got != tt.want {
			t.Fatalf("Colored() for %q = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLine(t *testing.T) {
	withPlain(t)
	withVersion(t, "1.2.3", "abc123", "2026-01-15")
	want := "bigword 1.2.3 (abc123) built 2026-01-15"
	if got := Line(); got != want {
		t.Fatalf("Line() = %q, want %q", got, want)
	}

	withVersion(t, "1.2.3", "", "")
	if got := Line(); got != "bigword 1.2.3" {
		t.Fatalf("Line() = %q", got)
	}
}
