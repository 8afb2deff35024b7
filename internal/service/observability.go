package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
)

// Outcome classifies how a use case ended.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeNotFound  Outcome = "not_found"
	OutcomeForbidden Outcome = "forbidden"
	OutcomeFailed    Outcome = "failed"
)

func outcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrValidation):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrForbidden):
		return OutcomeForbidden
	default:
		return OutcomeFailed
	}
}

// UseCaseEvent is emitted once per service call, e.g. "calendar.move".
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Success   bool
	Outcome   Outcome
	Err       error
	Fields    map[string]any
}

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type noopObserver struct{}

func (noopObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type slogObserver struct {
	logger *slog.Logger
}

// NewSlogUseCaseObserver logs each use case as one "use_case" record.
// Rejected requests (invalid, not found, forbidden) log at warn, anything
// else that failed at error.
func NewSlogUseCaseObserver(l *slog.Logger) UseCaseObserver {
	if l == nil {
		return noopObserver{}
	}
	return &slogObserver{logger: l}
}

func (o *slogObserver) ObserveUseCase(ctx context.Context, ev UseCaseEvent) {
	attrs := []slog.Attr{
		slog.String("name", ev.Name),
		slog.String("outcome", string(ev.Outcome)),
		slog.Int64("duration_ms", ev.Duration.Milliseconds()),
	}
	keys := make([]string, 0, len(ev.Fields))
	for k := range ev.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, ev.Fields[k]))
	}

	level := slog.LevelInfo
	switch ev.Outcome {
	case OutcomeOK:
	case OutcomeFailed:
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	if ev.Err != nil {
		attrs = append(attrs, slog.String("error", ev.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "use_case", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return noopObserver{}
}

// observe is deferred by every service method with its named error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, err error) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Outcome:   outcomeOf(err),
		Err:       err,
		Fields:    fields,
	})
}
