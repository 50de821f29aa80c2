package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/mindtower/pkg/errors"
)

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(), DOTOptions{Background: "white"})

	for _, want := range []string{
		"digraph G",
		"layout=neato",
		`bgcolor="white"`,
		`"root" [label="Cell"`,
		`pos="60.00,-25.00!"`,
		`fillcolor="#0B64F4"`,
		`"root" -> "n1";`,
		"arrowhead=none",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q", want)
		}
	}

	n2 := dot[strings.Index(dot, `"n2" [`):]
	n2 = n2[:strings.Index(n2, "\n")]
	if strings.Contains(n2, "pos=") {
		t.Errorf("ToDOT() pinned unpositioned node: %s", n2)
	}
}

func TestToDOT_Directed(t *testing.T) {
	if dot := ToDOT(sample(), DOTOptions{Directed: true}); !strings.Contains(dot, "arrowhead=normal") {
		t.Error("ToDOT() directed output missing arrowheads")
	}
}

func TestRenderDOT_UnsupportedFormat(t *testing.T) {
	_, err := RenderDOT(context.Background(), "digraph G {}", Format("pdf"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("RenderDOT() error = %v, want INVALID_FORMAT", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "rewritten",
			in:   `<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`,
		},
		{
			name: "no viewBox",
			in:   `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "zero size",
			in:   `<svg viewBox="0 0 0 10"></svg>`,
			want: `<svg viewBox="0 0 0 10"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", got, tt.want)
			}
		})
	}
}
