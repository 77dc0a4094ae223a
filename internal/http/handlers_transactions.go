package http

import (
	"net/http"

	applog "bukukas/internal/log"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Overview(r.Context())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to list transactions",
			applog.FieldOperation, applog.OpList,
			applog.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	writeJSON(w, r, http.StatusOK, listResponse{
		Transactions: newTransactionViews(snap.Transactions),
		Totals:       newTotalsView(snap.Totals),
	})
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := s.service.Totals(r.Context())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to compute totals",
			applog.FieldOperation, applog.OpTotals,
			applog.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, "failed to compute totals")
		return
	}

	writeJSON(w, r, http.StatusOK, newTotalsView(totals))
}

// handleDeleteTransaction removes a transaction. Unknown ids are a no-op
// reported as removed=false; asking the user to confirm is the client's job.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseTransactionID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	removed, err := s.service.Delete(r.Context(), id)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to delete transaction",
			applog.FieldTransactionID, id,
			applog.FieldOperation, applog.OpRemove,
			applog.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]bool{"removed": removed})
}
