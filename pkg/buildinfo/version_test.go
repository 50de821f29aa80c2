package buildinfo

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"Dev", Info{Version: "dev", Commit: "none"}, "dev"},
		{"EmptyCommit", Info{Version: "v0.3.0"}, "v0.3.0"},
		{"FullSHA", Info{Version: "v0.3.0", Commit: "1a2b3c4d5e6f"}, "v0.3.0 (1a2b3c4)"},
		{"ShortSHA", Info{Version: "v0.3.0", Commit: "abc"}, "v0.3.0 (abc)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Short(); got != tt.want {
				t.Errorf("Short() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	old := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = old[0], old[1], old[2] })
	Version, Commit, Date = "v0.3.0", "1a2b3c4d5e6f", "2026-10-19T00:00:00Z"

	got := Template()
	for _, want := range []string{"{{.Name}} v0.3.0 (1a2b3c4)", "commit: 1a2b3c4d5e6f", "built: 2026-10-19T00:00:00Z"} {
		if !strings.Contains(got, want) {
			t.Errorf("Template() = %q, missing %q", got, want)
		}
	}
	if s := Get().String(); !strings.HasPrefix(s, "mindtower v0.3.0\n") {
		t.Errorf("String() = %q", s)
	}
}
