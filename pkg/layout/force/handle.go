package force

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/matzehuels/mindtower/pkg/graph"
)

// ErrStopped is returned by Handle methods once the simulation goroutine
// has exited after Stop or context cancellation.
var ErrStopped = errors.New("force: simulation stopped")

// DefaultInterval is one frame at 60 fps.
const DefaultInterval = time.Second / 60

// Run ticks sim until it stops, MaxTicks is reached or ctx is cancelled.
// It returns the number of ticks executed and ctx.Err() on cancellation.
// Positions reached so far are kept either way.
func Run(ctx context.Context, sim *Simulation) (int, error) {
	ticks := 0
	for {
		if err := ctx.Err(); err != nil {
			return ticks, err
		}
		if sim.cfg.MaxTicks > 0 && sim.ticks >= sim.cfg.MaxTicks {
			sim.Stop()
			return ticks, nil
		}
		if !sim.Tick() {
			return ticks, nil
		}
		ticks++
	}
}

// =============================================================================
// Handle
// =============================================================================

// Frame is one published snapshot of a running simulation.
type Frame struct {
	Tick      int                    `json:"tick"`
	Alpha     float64                `json:"alpha"`
	State     State                  `json:"state"`
	Positions map[string]graph.Point `json:"positions"`
}

type cmdKind int

const (
	cmdDragStart cmdKind = iota
	cmdDragMove
	cmdDragEnd
)

type command struct {
	kind  cmdKind
	id    string
	x, y  float64
	reply chan bool
}

// Handle is the owned context of a simulation running in its own goroutine.
// All access to the simulation goes through the handle until Wait returns.
type Handle struct {
	sim    *Simulation
	cmds   chan command
	frames chan Frame
	stop   chan struct{}
	done   chan struct{}

	stopOnce sync.Once
	mu       sync.Mutex
	last     Frame
	err      error
}

// Start hands sim to a new goroutine that ticks it every interval
// (DefaultInterval if interval <= 0). Once the simulation settles or
// MaxTicks is reached the goroutine idles; the next drag command reheats
// it and ticking resumes with a fresh MaxTicks budget. The goroutine exits
// when Stop is called or ctx is cancelled.
func Start(ctx context.Context, sim *Simulation, interval time.Duration) *Handle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	h := &Handle{
		sim:    sim,
		cmds:   make(chan command),
		frames: make(chan Frame, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	h.last = h.frame()
	go h.loop(ctx, interval)
	return h
}

func (h *Handle) loop(ctx context.Context, interval time.Duration) {
	defer close(h.done)
	defer close(h.frames)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// tick is nil while the simulation is idle.
	tick := ticker.C
	budget := h.sim.ticks
	if h.sim.State() == Stopped {
		tick = nil
		h.publish()
	}
	for {
		select {
		case <-ctx.Done():
			h.sim.Stop()
			h.setErr(ctx.Err())
			h.publish()
			return
		case <-h.stop:
			h.sim.Stop()
			h.publish()
			return
		case c := <-h.cmds:
			c.reply <- h.apply(c)
			if tick == nil && h.sim.State() != Stopped {
				tick = ticker.C
				budget = h.sim.ticks
			}
			h.publish()
		case <-tick:
			active := h.sim.Tick()
			if limit := h.sim.cfg.MaxTicks; active && limit > 0 && h.sim.ticks-budget >= limit {
				h.sim.Stop()
				active = false
			}
			h.publish()
			if !active {
				tick = nil
			}
		}
	}
}

func (h *Handle) apply(c command) bool {
	switch c.kind {
	case cmdDragStart:
		return h.sim.DragStart(c.id)
	case cmdDragMove:
		return h.sim.DragMove(c.id, c.x, c.y)
	case cmdDragEnd:
		return h.sim.DragEnd(c.id)
	}
	return false
}

func (h *Handle) frame() Frame {
	return Frame{
		Tick:      h.sim.Ticks(),
		Alpha:     h.sim.Alpha(),
		State:     h.sim.State(),
		Positions: h.sim.Snapshot(),
	}
}

// publish records the current frame and offers it on the frames channel,
// replacing an unread older frame.
func (h *Handle) publish() {
	f := h.frame()
	h.mu.Lock()
	h.last = f
	h.mu.Unlock()

	select {
	case h.frames <- f:
	default:
		select {
		case <-h.frames:
		default:
		}
		h.frames <- f
	}
}

func (h *Handle) setErr(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
}

func (h *Handle) send(c command) (bool, error) {
	c.reply = make(chan bool, 1)
	select {
	case h.cmds <- c:
		return <-c.reply, nil
	case <-h.done:
		return false, ErrStopped
	}
}

// Frames returns the channel of published frames. Slow readers only see
// the latest frame. A frame in state Stopped means the layout has settled.
// The channel is closed when the goroutine exits.
func (h *Handle) Frames() <-chan Frame { return h.frames }

// Last returns the most recently published frame.
func (h *Handle) Last() Frame {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// DragStart pins node id and reheats the simulation, waking a settled
// handle. See Simulation.DragStart.
func (h *Handle) DragStart(id string) (bool, error) {
	return h.send(command{kind: cmdDragStart, id: id})
}

// DragMove moves the pinned node id to centre (x, y).
func (h *Handle) DragMove(id string, x, y float64) (bool, error) {
	return h.send(command{kind: cmdDragMove, id: id, x: x, y: y})
}

// DragEnd releases node id.
func (h *Handle) DragEnd(id string) (bool, error) {
	return h.send(command{kind: cmdDragEnd, id: id})
}

// Stop cancels the simulation and waits for the goroutine to exit.
func (h *Handle) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}

// Done is closed when the goroutine has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until the goroutine exits (after Stop or cancellation) and
// returns the simulation, which the caller owns from then on. The error is non-nil only when the run was
// ended by context cancellation.
func (h *Handle) Wait() (*Simulation, error) {
	<-h.done
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sim, h.err
}
