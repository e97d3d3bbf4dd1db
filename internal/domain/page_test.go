package domain

import (
	"testing"
	"time"
)

func TestClampLimit(t *testing.T) {
	t.Parallel()

	tests := map[int]int{-5: 1, 0: 1, 1: 1, 50: 50, 100: 100, 101: 100, 10000: 100}
	for in, want := range tests {
		if got := ClampLimit(in); got != want {
			t.Errorf("ClampLimit(%d) = %d, want %d", in, got, want)
		}
	}

	if got := (PageRequest{Limit: 2}).FetchSize(); got != 3 {
		t.Errorf("expected fetch size 3, got %d", got)
	}
	if got := (PageRequest{Limit: 500}).FetchSize(); got != 101 {
		t.Errorf("expected fetch size 101, got %d", got)
	}
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	id := func(s string) string { return s }

	t.Run("over-fetched row signals more", func(t *testing.T) {
		page := NewPage([]string{"e", "d", "c"}, 2, id)
		if !page.HasMore {
			t.Fatal("expected HasMore")
		}
		if len(page.Items) != 2 || page.Items[1] != "d" {
			t.Fatalf("unexpected items %v", page.Items)
		}
		if page.NextCursor == nil || *page.NextCursor != "d" {
			t.Fatalf("expected cursor d, got %v", page.NextCursor)
		}
	})

	t.Run("short page is last", func(t *testing.T) {
		page := NewPage([]string{"b", "a"}, 2, id)
		if page.HasMore || page.NextCursor != nil {
			t.Fatalf("expected final page, got %+v", page)
		}
		if len(page.Items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(page.Items))
		}
	})

	t.Run("empty page has non-nil items", func(t *testing.T) {
		page := NewPage[string](nil, 10, id)
		if page.Items == nil || len(page.Items) != 0 {
			t.Fatalf("expected empty slice, got %#v", page.Items)
		}
	})

	t.Run("limit is clamped", func(t *testing.T) {
		page := NewPage([]string{"b", "a"}, 0, id)
		if len(page.Items) != 1 || !page.HasMore {
			t.Fatalf("expected one item and more, got %+v", page)
		}
	})
}

func TestDefaultStatementRange(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 8, 20, 15, 30, 0, 0, time.UTC)
	start, end := DefaultStatementRange(now)

	if want := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Fatalf("expected start %s, got %s", want, start)
	}
	if !end.Equal(now) {
		t.Fatalf("expected end %s, got %s", now, end)
	}

	start, _ = DefaultStatementRange(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	if want := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Fatalf("expected start to cross the year boundary to %s, got %s", want, start)
	}
}

func TestStatementQuery_Range(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC)
	from := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	start, end := StatementQuery{StartDate: &from}.Range(now)
	if !start.Equal(from) || !end.Equal(now) {
		t.Fatalf("unexpected range %s..%s", start, end)
	}

	to := time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC)
	start, end = StatementQuery{EndDate: &to}.Range(now)
	if !start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) || !end.Equal(to) {
		t.Fatalf("unexpected range %s..%s", start, end)
	}
}
