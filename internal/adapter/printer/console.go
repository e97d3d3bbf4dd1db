// Package printer renders account statements for humans.
package printer

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"

	"github.com/iho/bankledger/internal/domain"
)

// Header is the column order of a printed statement.
var Header = [3]string{"Date", "Amount", "Balance"}

// Rows formats transactions as statement rows, newest first. Postings that
// share an instant are ordered by id, highest first. An empty ledger yields
// a single row of empty cells.
func Rows(transactions []domain.Transaction) [][3]string {
	if len(transactions) == 0 {
		return [][3]string{{"", "", ""}}
	}

	sorted := append([]domain.Transaction(nil), transactions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return domain.Newer(sorted[i], sorted[j])
	})

	rows := make([][3]string, 0, len(sorted))
	for _, tx := range sorted {
		rows = append(rows, [3]string{
			tx.Date().UTC().Format("2006-01-02"),
			tx.Amount().StringFixed(2),
			tx.Balance().StringFixed(2),
		})
	}
	return rows
}

// Console writes statements as an aligned table.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Print implements domain.StatementPrinter.
func (c *Console) Print(transactions []domain.Transaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t\n", Header[0], Header[1], Header[2]); err != nil {
		return err
	}
	for _, row := range Rows(transactions) {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t\n", row[0], row[1], row[2]); err != nil {
			return err
		}
	}
	return tw.Flush()
}
