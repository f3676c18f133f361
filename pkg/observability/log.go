package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level entries to
// a logger. Register it with [UseLogger] when verbose output is requested.
type LogHooks struct {
	Logger *log.Logger
}

// UseLogger registers LogHooks backed by logger for all event categories.
func UseLogger(logger *log.Logger) {
	h := &LogHooks{Logger: logger}
	SetSyncHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnSyncStart(_ context.Context, state string) {
	h.Logger.Debug("sync started", "state", state)
}

func (h *LogHooks) OnSyncComplete(_ context.Context, state string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("sync failed", "state", state, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("sync complete", "state", state, "duration", d)
}

func (h *LogHooks) OnFetchStart(_ context.Context, style, chartType string) {
	h.Logger.Debug("fetching chart", "style", style, "type", chartType)
}

func (h *LogHooks) OnFetchComplete(_ context.Context, style, chartType string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("fetch failed", "style", style, "type", chartType, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("fetched chart", "style", style, "type", chartType, "duration", d)
}

func (h *LogHooks) OnImport(_ context.Context, before, after int) {
	h.Logger.Debug("imported artwork", "nodes", before, "flattened", after)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "key", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "key", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "key", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ SyncHooks  = (*LogHooks)(nil)
	_ CacheHooks = (*LogHooks)(nil)
	_ HTTPHooks  = (*LogHooks)(nil)
)
