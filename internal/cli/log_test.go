package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindtower/pkg/config"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		want  bool
	}{
		{"VerboseShowsStoreDebug", log.DebugLevel, true},
		{"DefaultHidesStoreDebug", log.InfoLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newLogger(&buf, tt.level).Debug("opened store", "backend", config.BackendMemory)
			if got := strings.Contains(buf.String(), "opened store"); got != tt.want {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestProgress_Done(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Laid out %d nodes", 12)

	out := buf.String()
	for _, want := range []string{"Laid out 12 nodes", "took="} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, missing %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("bare context should fall back to log.Default()")
	}

	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("loggerFromContext did not return the attached logger")
	}
}

func TestOpenBackends_LogsThroughContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.DebugLevel))

	b, err := openBackends(ctx, config.StoreConfig{Backend: config.BackendMemory})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { b.Close(context.Background()) })

	out := buf.String()
	if !strings.Contains(out, "opened store") || !strings.Contains(out, "backend=memory") {
		t.Errorf("output = %q", out)
	}
}
