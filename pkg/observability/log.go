package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports generation and output events to a logger at debug level.
// It implements both [GenerationHooks] and [OutputHooks].
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
// A nil logger uses the charmbracelet/log default logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnRunStart(_ context.Context, runID, path string) {
	h.Logger.Debug("run started", "run_id", runID, "path", path)
}

func (h *LogHooks) OnStage(_ context.Context, runID, stage string, d time.Duration) {
	h.Logger.Debug("stage done", "run_id", runID, "stage", stage, "duration", d)
}

func (h *LogHooks) OnRunComplete(_ context.Context, runID, path string, s RunSummary, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("run failed", "run_id", runID, "path", path, "duration", d, "error", err)
		return
	}
	h.Logger.Debug("run complete",
		"run_id", runID,
		"path", path,
		"labels", s.Labels,
		"lines", s.Physical,
		"split", s.Split,
		"bytes", s.Bytes,
		"duration", d)
}

func (h *LogHooks) OnWrite(_ context.Context, path string, size int, err error) {
	if err != nil {
		h.Logger.Debug("write failed", "path", path, "error", err)
		return
	}
	h.Logger.Debug("wrote output", "path", path, "bytes", size)
}
