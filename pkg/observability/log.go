package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level
// structured log lines.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, engine string, nodeCount int) {
	h.logger.Debug("layout start", "engine", engine, "nodes", nodeCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, engine string, placed int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("layout failed", "engine", engine, "elapsed", d, "err", err)
		return
	}
	h.logger.Debug("layout done", "engine", engine, "placed", placed, "elapsed", d)
}

// OnTick logs every 50th tick only.
func (h *LogHooks) OnTick(_ context.Context, tick int, alpha float64) {
	if tick%50 == 0 {
		h.logger.Debug("force tick", "tick", tick, "alpha", alpha)
	}
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "elapsed", d)
}

func (h *LogHooks) OnSessionCreated(_ context.Context, sessionID, mindMapID string) {
	h.logger.Info("game started", "session", sessionID, "mind_map", mindMapID)
}

func (h *LogHooks) OnSessionScored(_ context.Context, sessionID string, score int, elapsed time.Duration) {
	h.logger.Info("game completed", "session", sessionID, "score", score, "elapsed", elapsed)
}

func (h *LogHooks) OnRead(_ context.Context, backend, kind string, found bool) {
	h.logger.Debug("store read", "backend", backend, "kind", kind, "found", found)
}

func (h *LogHooks) OnWrite(_ context.Context, backend, kind string, err error) {
	if err != nil {
		h.logger.Warn("store write failed", "backend", backend, "kind", kind, "err", err)
		return
	}
	h.logger.Debug("store write", "backend", backend, "kind", kind)
}

// Register installs h for every hook category.
func (h *LogHooks) Register() {
	SetLayoutHooks(h)
	SetGameHooks(h)
	SetStoreHooks(h)
}
