package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bankledger/internal/adapter/http/dto"
	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/usecase"
)

// StatementService defines the behavior needed by StatementHandler.
type StatementService interface {
	GetStatement(ctx context.Context, input usecase.StatementInput) (domain.Page[domain.Transaction], error)
	PrintStatement(ctx context.Context, accountID, userID string) error
	ExportStatement(ctx context.Context, input usecase.StatementInput, format string) (*usecase.Export, error)
}

// StatementHandler serves account statements.
type StatementHandler struct {
	statementUC StatementService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementUC StatementService) *StatementHandler {
	return &StatementHandler{statementUC: statementUC}
}

// Get returns one page of an account statement.
func (h *StatementHandler) Get(w http.ResponseWriter, r *http.Request) {
	input, ok := statementInput(w, r)
	if !ok {
		return
	}

	page, err := h.statementUC.GetStatement(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to get statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsPage(page))
}

// Print sends the statement to the server-side printer.
func (h *StatementHandler) Print(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	if err := h.statementUC.PrintStatement(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeDomainError(w, "failed to print statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "statement printed"})
}

// Export renders the statement as a downloadable document.
func (h *StatementHandler) Export(w http.ResponseWriter, r *http.Request) {
	input, ok := statementInput(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = usecase.FormatJSON
	}

	export, err := h.statementUC.ExportStatement(r.Context(), input, format)
	if err != nil {
		writeDomainError(w, "failed to export statement", err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(export.Body)
}

func statementInput(w http.ResponseWriter, r *http.Request) (usecase.StatementInput, bool) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return usecase.StatementInput{}, false
	}

	start, err := parseTimeQuery(r, "startDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate", err.Error())
		return usecase.StatementInput{}, false
	}
	end, err := parseTimeQuery(r, "endDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid endDate", err.Error())
		return usecase.StatementInput{}, false
	}

	return usecase.StatementInput{
		AccountID: chi.URLParam(r, "id"),
		UserID:    userID,
		Query: domain.StatementQuery{
			PageRequest: pageRequest(r),
			StartDate:   start,
			EndDate:     end,
		},
	}, true
}
