package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ganttline/pkg/observability"
)

// logHooks reports pipeline, cache and server events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks routes observability events to logger.
func registerLogHooks(logger *log.Logger) {
	h := logHooks{logger: logger.WithPrefix("hooks")}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetServerHooks(h)
}

func (h logHooks) OnLayoutStart(_ context.Context, scale string, taskCount int) {
	h.logger.Debug("layout start", "scale", scale, "tasks", taskCount)
}

func (h logHooks) OnLayoutComplete(_ context.Context, scale string, lanes, rows int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "scale", scale, "error", err)
		return
	}
	h.logger.Debug("layout done", "scale", scale, "lanes", lanes, "rows", rows, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// Request lines are already logged by the server middleware.
func (logHooks) OnRequest(context.Context, string, string) {}

func (h logHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("route", "method", method, "route", route, "status", status, "duration", d)
}
