package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// status animates a one-line status on uiOut while a layout or render runs.
// It stops on its own when ctx is cancelled, e.g. by Ctrl+C.
type status struct {
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once

	message string
	width   int // widest line drawn, owned by run
}

// startStatus shows message with an animated frame until one of the stop
// methods is called.
func startStatus(ctx context.Context, message string) *status {
	ctx, cancel := context.WithCancel(ctx)
	s := &status{
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
		message: message,
	}
	go s.run()
	return s
}

func (s *status) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(uiOut, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
			s.width = max(s.width, len([]rune(frame+" "+s.message)))
		}
	}
}

// clear blanks the widest line drawn so far.
func (s *status) clear() {
	if s.width > 0 {
		fmt.Fprintf(uiOut, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *status) stop() {
	s.once.Do(s.cancel)
	<-s.stopped
}

// done stops and reports success.
func (s *status) done(format string, args ...any) {
	s.stop()
	printSuccess(format, args...)
}

// fail stops and reports failure.
func (s *status) fail(format string, args ...any) {
	s.stop()
	printError(format, args...)
}
