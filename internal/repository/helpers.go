package repository

import (
	"database/sql"
	"errors"
	"time"
)

// Timestamps are stored as RFC3339 text in UTC, calendar dates as
// domain.DateLayout, booleans as 0/1. An absent optional time is NULL.

func storeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// scanTime yields the zero time for a malformed column.
func scanTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func storeOptionalTime(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

func scanOptionalTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func storeBool(b bool) int {
	if b {
		return 1
	}
	return 0
}

// notFound swaps sql.ErrNoRows for the record's domain error.
func notFound(err, target error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return target
	}
	return err
}

// requireAffected returns target when an update or delete matched no row.
func requireAffected(res sql.Result, target error) error {
	n, err := res.RowsAffected()
	switch {
	case err != nil:
		return err
	case n == 0:
		return target
	}
	return nil
}
