package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		err  error
		want Outcome
	}{
		{nil, OutcomeOK},
		{domain.ErrNotShootDay, OutcomeInvalid},
		{fmt.Errorf("loading: %w", domain.ErrProjectNotFound), OutcomeNotFound},
		{domain.ErrVersionUnpublished, OutcomeForbidden},
		{errors.New("disk full"), OutcomeFailed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, outcomeOf(tt.err), "%v", tt.err)
	}
}

func logRecord(t *testing.T, err error) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	obs := NewSlogUseCaseObserver(slog.New(slog.NewJSONHandler(&buf, nil)))
	observe(context.Background(), obs, "calendar.move", time.Now(), map[string]any{"project_id": "p1"}, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestSlogObserver_Levels(t *testing.T) {
	ok := logRecord(t, nil)
	assert.Equal(t, "INFO", ok["level"])
	assert.Equal(t, "use_case", ok["msg"])
	assert.Equal(t, "calendar.move", ok["name"])
	assert.Equal(t, "p1", ok["project_id"])
	assert.NotContains(t, ok, "error")

	rejected := logRecord(t, domain.ErrNonWorkingTarget)
	assert.Equal(t, "WARN", rejected["level"])
	assert.Equal(t, "invalid", rejected["outcome"])
	assert.Equal(t, "cannot move to non-working day", rejected["error"])

	failed := logRecord(t, errors.New("disk full"))
	assert.Equal(t, "ERROR", failed["level"])
}

func TestNewSlogUseCaseObserver_NilLogger(t *testing.T) {
	assert.Equal(t, noopObserver{}, NewSlogUseCaseObserver(nil))
}
