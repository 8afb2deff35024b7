package geocode

import (
	"io"
	"log/slog"
)

// CallEvent records metadata about a single search.
type CallEvent struct {
	Query     string
	Source    string
	LatencyMs int64
	Results   int
	Success   bool
	ErrorCode string
}

// Observer receives events about geocoding calls for logging and metrics.
type Observer interface {
	OnSearchComplete(event CallEvent)
}

// LogObserver writes search events to a slog logger.
type LogObserver struct {
	log *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{log: slog.New(slog.NewTextHandler(w, nil))}
}

// NewSlogObserver creates an Observer on an existing logger.
func NewSlogObserver(l *slog.Logger) *LogObserver {
	return &LogObserver{log: l}
}

func (o *LogObserver) OnSearchComplete(event CallEvent) {
	attrs := []any{
		"query", event.Query,
		"source", event.Source,
		"latency_ms", event.LatencyMs,
		"results", event.Results,
	}
	if !event.Success {
		o.log.Warn("geocode_search", append(attrs, "error_code", event.ErrorCode)...)
		return
	}
	o.log.Info("geocode_search", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnSearchComplete(CallEvent) {}
