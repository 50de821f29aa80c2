package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

// captureUI redirects status lines to a buffer for the rest of the test.
func captureUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := uiOut
	uiOut = &buf
	t.Cleanup(func() { uiOut = old })
	return &buf
}

func TestStatus_DrawsAndClears(t *testing.T) {
	buf := captureUI(t)

	st := startStatus(context.Background(), "Computing radial layout...")
	time.Sleep(3 * spinnerInterval)
	st.stop()

	out := buf.String()
	if !strings.Contains(out, "Computing radial layout...") {
		t.Errorf("output = %q, missing message", out)
	}
	if !strings.Contains(out, spinnerFrames[0]) {
		t.Errorf("output = %q, missing first frame", out)
	}
	// The last write blanks the line.
	if !strings.HasSuffix(out, strings.Repeat(" ", st.width)+"\r") || st.width == 0 {
		t.Errorf("output does not end with a cleared line: %q", out)
	}
}

func TestStatus_Outcome(t *testing.T) {
	tests := []struct {
		name   string
		finish func(*status)
		icon   string
		msg    string
	}{
		{"Done", func(s *status) { s.done("Laid out %d nodes", 12) }, iconSuccess, "Laid out 12 nodes"},
		{"Fail", func(s *status) { s.fail("Render failed") }, iconError, "Render failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureUI(t)
			st := startStatus(context.Background(), "Rendering svg...")
			tt.finish(st)

			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			last := lines[len(lines)-1]
			if !strings.Contains(last, tt.icon) || !strings.HasSuffix(last, " "+tt.msg) {
				t.Errorf("last line = %q, want %s and %q", last, tt.icon, tt.msg)
			}
		})
	}
}

func TestStatus_Interrupted(t *testing.T) {
	captureUI(t)
	ctx, cancel := context.WithCancel(context.Background())
	st := startStatus(ctx, "Computing force layout...")
	cancel()

	select {
	case <-st.stopped:
	case <-time.After(time.Second):
		t.Fatal("status kept running after Ctrl+C")
	}
	st.stop()
	st.stop()
}

func TestStatus_StopBeforeFirstFrame(t *testing.T) {
	buf := captureUI(t)
	st := startStatus(context.Background(), "Rendering png...")
	st.stop()
	// Nothing drawn means nothing to clear.
	if st.width == 0 && buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}
