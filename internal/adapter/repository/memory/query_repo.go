package memory

import (
	"context"
	"sort"

	"github.com/iho/bankledger/internal/domain"
)

// GetAccountOwner returns the owning user of an account.
func (s *Store) GetAccountOwner(_ context.Context, accountID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.accounts[accountID]
	if !ok {
		return "", domain.ErrAccountNotFound
	}
	return row.snap.UserID, nil
}

// GetBalance returns the stored balance of an account.
func (s *Store) GetBalance(_ context.Context, accountID string) (domain.Money, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.accounts[accountID]
	if !ok {
		return domain.Money{}, domain.ErrAccountNotFound
	}
	return row.balance, nil
}

// GetStatement returns postings inside the query range, newest first,
// strictly after the cursor posting.
func (s *Store) GetStatement(_ context.Context, accountID string, query domain.StatementQuery) (domain.Page[domain.Transaction], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.accounts[accountID]; !ok {
		return domain.Page[domain.Transaction]{}, domain.ErrAccountNotFound
	}
	all := s.postings[accountID]

	var cursor *domain.Transaction
	if query.Cursor != "" {
		for i := range all {
			if all[i].ID() == query.Cursor {
				cursor = &all[i]
				break
			}
		}
		if cursor == nil {
			return domain.Page[domain.Transaction]{}, domain.ErrInvalidCursor
		}
	}

	start, end := query.Range(s.env.Clock.Now())

	rows := make([]domain.Transaction, 0, len(all))
	for _, t := range all {
		if t.Date().Before(start) || t.Date().After(end) {
			continue
		}
		if cursor != nil && !domain.Newer(*cursor, t) {
			continue
		}
		rows = append(rows, t)
	}

	sort.Slice(rows, func(i, j int) bool { return domain.Newer(rows[i], rows[j]) })
	if fetch := query.FetchSize(); len(rows) > fetch {
		rows = rows[:fetch]
	}

	return domain.NewPage(rows, query.Limit, domain.Transaction.ID), nil
}

// ListAccountsByUser pages through a user's accounts, newest first.
func (s *Store) ListAccountsByUser(_ context.Context, userID string, req domain.PageRequest) (domain.Page[domain.AccountListView], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var views []domain.AccountListView
	for _, row := range s.accounts {
		if row.snap.UserID != userID {
			continue
		}
		views = append(views, domain.AccountListView{
			ID:            row.snap.ID,
			AccountNumber: row.snap.AccountNumber,
			Balance:       row.balance,
			Status:        row.snap.Status,
			CreatedAt:     row.snap.CreatedAt,
		})
	}

	sort.Slice(views, func(i, j int) bool { return newerAccount(views[i], views[j]) })

	if req.Cursor != "" {
		idx := -1
		for i, v := range views {
			if v.ID == req.Cursor {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.Page[domain.AccountListView]{}, domain.ErrInvalidCursor
		}
		views = views[idx+1:]
	}

	if fetch := req.FetchSize(); len(views) > fetch {
		views = views[:fetch]
	}

	return domain.NewPage(views, req.Limit, func(v domain.AccountListView) string { return v.ID }), nil
}

func newerAccount(a, b domain.AccountListView) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
