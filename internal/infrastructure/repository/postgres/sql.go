package postgres

import (
	"database/sql"
	"errors"
	"time"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

func utc(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
