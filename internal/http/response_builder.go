package http

import (
	"encoding/json"
	"net/http"

	"bukukas/internal/core"
	"bukukas/internal/entry"
	applog "bukukas/internal/log"
	"bukukas/internal/middleware/trace"
)

type transactionView struct {
	ID           int64  `json:"id"`
	Description  string `json:"description"`
	Amount       int64  `json:"amount"`
	Direction    string `json:"direction"`
	OccurredAtMs int64  `json:"occurred_at_ms"`
}

type totalsView struct {
	Received int64 `json:"received"`
	Paid     int64 `json:"paid"`
	Balance  int64 `json:"balance"`
}

type entryView struct {
	ID           string `json:"id"`
	Direction    string `json:"direction"`
	OccurredAtMs int64  `json:"occurred_at_ms"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Description  string `json:"description"`
	Amount       string `json:"amount"`
	State        string `json:"state"`
}

type listResponse struct {
	Transactions []transactionView `json:"transactions"`
	Totals       totalsView        `json:"totals"`
}

type submitResponse struct {
	Transaction transactionView `json:"transaction"`
	Totals      totalsView      `json:"totals"`
	NextEntry   *entryView      `json:"next_entry"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func newTransactionView(tx core.Transaction) transactionView {
	return transactionView{
		ID:           tx.ID,
		Description:  tx.Description,
		Amount:       tx.Amount,
		Direction:    tx.Direction.String(),
		OccurredAtMs: tx.OccurredAt.UnixMilli(),
	}
}

func newTransactionViews(txs []core.Transaction) []transactionView {
	views := make([]transactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, newTransactionView(tx))
	}
	return views
}

func newTotalsView(t core.Totals) totalsView {
	return totalsView{Received: t.Received, Paid: t.Paid, Balance: t.Balance}
}

func newEntryView(id string, f entry.Fields) entryView {
	return entryView{
		ID:           id,
		Direction:    f.Direction.String(),
		OccurredAtMs: f.OccurredAt.UnixMilli(),
		Date:         f.OccurredAt.Format(dateLayout),
		Time:         f.OccurredAt.Format(clockLayout),
		Description:  f.Description,
		Amount:       f.Amount,
		State:        f.State.String(),
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to encode response", applog.FieldError, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg, RequestID: trace.GetRequestID(r.Context())})
}

func writeFieldError(w http.ResponseWriter, r *http.Request, status int, field, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg, Field: field, RequestID: trace.GetRequestID(r.Context())})
}
