// Package calendar implements the shooting-calendar engine: day
// classification, generation, renumbering, day edits, swaps and aggregate
// counts. It is pure with respect to storage; callers load and persist.
package calendar

import (
	"io"
	"log/slog"
)

// Engine carries the logger used for integrity warnings.
type Engine struct {
	log *slog.Logger
}

// NewEngine returns an Engine. A nil logger discards output.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{log: logger}
}
