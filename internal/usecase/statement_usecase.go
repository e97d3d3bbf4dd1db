package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iho/bankledger/internal/domain"
)

// Export formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// isoMillis matches the millisecond ISO-8601 form used in exports.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// StatementUseCase handles statement reads, printing and exports.
type StatementUseCase struct {
	accounts AccountRepository
	queries  AccountQueries
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(accounts AccountRepository, queries AccountQueries) *StatementUseCase {
	return &StatementUseCase{
		accounts: accounts,
		queries:  queries,
	}
}

// StatementInput represents input for reading a statement.
type StatementInput struct {
	AccountID string
	UserID    string
	Query     domain.StatementQuery
}

// Export is a rendered statement.
type Export struct {
	Format      string
	ContentType string
	Filename    string
	Body        []byte
}

// GetStatement returns one page of postings, newest first.
func (uc *StatementUseCase) GetStatement(ctx context.Context, input StatementInput) (domain.Page[domain.Transaction], error) {
	if err := authorize(ctx, uc.queries, input.AccountID, input.UserID); err != nil {
		return domain.Page[domain.Transaction]{}, err
	}
	return uc.queries.GetStatement(ctx, input.AccountID, input.Query)
}

// PrintStatement sends the account's full ledger to its statement printer.
func (uc *StatementUseCase) PrintStatement(ctx context.Context, accountID, userID string) error {
	account, err := uc.accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.IsOwnedBy(userID) {
		return domain.ErrForbidden
	}
	return account.PrintStatement()
}

// ExportStatement renders up to ExportRowLimit postings in the given format.
func (uc *StatementUseCase) ExportStatement(ctx context.Context, input StatementInput, format string) (*Export, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case FormatJSON, FormatCSV:
	case FormatPDF:
		return nil, fmt.Errorf("%w: %s", domain.ErrExportNotImplemented, format)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedExportFormat, format)
	}

	if err := authorize(ctx, uc.queries, input.AccountID, input.UserID); err != nil {
		return nil, err
	}

	transactions, err := uc.collect(ctx, input.AccountID, input.Query)
	if err != nil {
		return nil, err
	}

	if format == FormatCSV {
		body, err := renderCSV(transactions)
		if err != nil {
			return nil, err
		}
		return &Export{
			Format:      FormatCSV,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("statement-%s.csv", input.AccountID),
			Body:        body,
		}, nil
	}

	body, err := renderJSON(input.AccountID, transactions)
	if err != nil {
		return nil, err
	}
	return &Export{
		Format:      FormatJSON,
		ContentType: "application/json",
		Filename:    fmt.Sprintf("statement-%s.json", input.AccountID),
		Body:        body,
	}, nil
}

// collect follows cursors until the range is exhausted or the export cap is hit.
func (uc *StatementUseCase) collect(ctx context.Context, accountID string, query domain.StatementQuery) ([]domain.Transaction, error) {
	query.Limit = domain.MaxPageLimit
	query.Cursor = ""

	var out []domain.Transaction
	for {
		page, err := uc.queries.GetStatement(ctx, accountID, query)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Items...)

		if len(out) >= ExportRowLimit {
			return out[:ExportRowLimit], nil
		}
		if !page.HasMore || page.NextCursor == nil {
			return out, nil
		}
		query.Cursor = *page.NextCursor
	}
}

type exportRow struct {
	Date    string `json:"date"`
	Amount  string `json:"amount"`
	Balance string `json:"balance"`
}

type exportDocument struct {
	AccountID    string      `json:"accountId"`
	Transactions []exportRow `json:"transactions"`
}

func toExportRow(tx domain.Transaction) exportRow {
	return exportRow{
		Date:    tx.Date().UTC().Format(isoMillis),
		Amount:  tx.Amount().StringFixed(2),
		Balance: tx.Balance().StringFixed(2),
	}
}

func renderJSON(accountID string, transactions []domain.Transaction) ([]byte, error) {
	doc := exportDocument{AccountID: accountID, Transactions: make([]exportRow, 0, len(transactions))}
	for _, tx := range transactions {
		doc.Transactions = append(doc.Transactions, toExportRow(tx))
	}
	return json.MarshalIndent(doc, "", "  ")
}

func renderCSV(transactions []domain.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Date", "Amount", "Balance"}); err != nil {
		return nil, err
	}
	for _, tx := range transactions {
		row := toExportRow(tx)
		if err := w.Write([]string{row.Date, row.Amount, row.Balance}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

