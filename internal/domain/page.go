package domain

import "time"

// Page size bounds.
const (
	MinPageLimit     = 1
	MaxPageLimit     = 100
	DefaultPageLimit = 20
)

// PageRequest asks for up to Limit items strictly after Cursor.
type PageRequest struct {
	Limit  int
	Cursor string
}

// ClampLimit bounds limit to [MinPageLimit, MaxPageLimit].
func ClampLimit(limit int) int {
	if limit < MinPageLimit {
		return MinPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

// FetchSize is the number of rows to read: one more than the page so the
// extra row signals there is more data.
func (r PageRequest) FetchSize() int {
	return ClampLimit(r.Limit) + 1
}

// Page is one slice of an ordered collection.
type Page[T any] struct {
	Items      []T
	NextCursor *string
	HasMore    bool
}

// NewPage trims over-fetched rows to the requested limit and derives the
// cursor from the last returned item.
func NewPage[T any](rows []T, limit int, cursorOf func(T) string) Page[T] {
	limit = ClampLimit(limit)
	if len(rows) <= limit {
		items := rows
		if items == nil {
			items = []T{}
		}
		return Page[T]{Items: items}
	}
	items := rows[:limit]
	next := cursorOf(items[len(items)-1])
	return Page[T]{Items: items, NextCursor: &next, HasMore: true}
}

// StatementQuery filters a statement by an inclusive date range.
type StatementQuery struct {
	PageRequest
	StartDate *time.Time
	EndDate   *time.Time
}

// StatementRangeMonths is how far back a statement reaches by default.
const StatementRangeMonths = 6

// DefaultStatementRange returns midnight UTC on the first day of the month
// six months before now, and now.
func DefaultStatementRange(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month()-StatementRangeMonths, 1, 0, 0, 0, 0, time.UTC)
	return start, now
}

// Range resolves the query bounds, filling gaps from DefaultStatementRange.
func (q StatementQuery) Range(now time.Time) (time.Time, time.Time) {
	start, end := DefaultStatementRange(now)
	if q.StartDate != nil {
		start = *q.StartDate
	}
	if q.EndDate != nil {
		end = *q.EndDate
	}
	return start, end
}
