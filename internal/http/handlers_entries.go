package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"bukukas/internal/core"
	"bukukas/internal/entry"
	applog "bukukas/internal/log"
)

type openEntryRequest struct {
	Direction string `json:"direction"`
}

type editEntryRequest struct {
	Direction    *string `json:"direction"`
	Date         *string `json:"date"`
	Time         *string `json:"time"`
	OccurredAtMs *int64  `json:"occurred_at_ms"`
	Description  *string `json:"description"`
	Amount       *string `json:"amount"`
}

type submitEntryRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Intent      string `json:"intent"`
}

// handleOpenEntry starts an entry flow for a direction. The timestamp starts at now.
func (s *Server) handleOpenEntry(w http.ResponseWriter, r *http.Request) {
	var req openEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	dir, err := core.ParseDirection(req.Direction)
	if err != nil {
		writeFieldError(w, r, http.StatusBadRequest, "direction", "choose received or paid")
		return
	}

	id, form := s.openSession(dir)

	applog.FromContext(r.Context()).DebugContext(r.Context(), "Entry flow opened",
		applog.FieldEntryID, id,
		applog.FieldDirection, dir.String())

	writeJSON(w, r, http.StatusCreated, newEntryView(id, form.Fields()))
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id, form, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, newEntryView(id, form.Fields()))
}

// handleEditEntry applies picker and field changes. Every value is parsed
// before any is applied, so a bad request leaves the form untouched.
func (s *Server) handleEditEntry(w http.ResponseWriter, r *http.Request) {
	id, form, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var req editEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var edits []func() error

	if req.OccurredAtMs != nil {
		at := time.UnixMilli(*req.OccurredAtMs).In(form.Fields().OccurredAt.Location())
		edits = append(edits, func() error { return form.SetOccurredAt(at) })
	}
	if req.Date != nil {
		year, month, day, err := parseDate(*req.Date)
		if err != nil {
			writeFieldError(w, r, http.StatusBadRequest, "date", err.Error())
			return
		}
		edits = append(edits, func() error { return form.SetDate(year, month, day) })
	}
	if req.Time != nil {
		hour, minute, err := parseClock(*req.Time)
		if err != nil {
			writeFieldError(w, r, http.StatusBadRequest, "time", err.Error())
			return
		}
		edits = append(edits, func() error { return form.SetTime(hour, minute) })
	}
	if req.Direction != nil {
		dir, err := core.ParseDirection(*req.Direction)
		if err != nil {
			writeFieldError(w, r, http.StatusBadRequest, "direction", "choose received or paid")
			return
		}
		edits = append(edits, func() error { return form.SetDirection(dir) })
	}
	if req.Description != nil {
		desc := sanitizeInput(*req.Description)
		edits = append(edits, func() error { return form.SetDescription(desc) })
	}
	if req.Amount != nil {
		amount := *req.Amount
		edits = append(edits, func() error { return form.SetAmount(amount) })
	}

	for _, edit := range edits {
		if err := edit(); err != nil {
			s.writeFlowError(w, r, id, err)
			return
		}
	}

	writeJSON(w, r, http.StatusOK, newEntryView(id, form.Fields()))
}

// handleDiscardEntry is the "back" action: the flow is dropped without saving.
func (s *Server) handleDiscardEntry(w http.ResponseWriter, r *http.Request) {
	id, form, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	if err := form.Discard(); err != nil {
		s.writeFlowError(w, r, id, entry.ErrSubmitInFlight)
		return
	}
	s.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleSubmitEntry validates and records the entry. A submit that arrives
// while another one on the same flow is being decided or saved gets 409 and
// records nothing. If saving fails the entry stays open for a retry.
func (s *Server) handleSubmitEntry(w http.ResponseWriter, r *http.Request) {
	id, form, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	logger := applog.FromContext(r.Context())

	var req submitEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	intent, err := entry.ParseIntent(req.Intent)
	if err != nil {
		writeFieldError(w, r, http.StatusBadRequest, "intent", `intent must be "exit" or "continue"`)
		return
	}

	var tx core.Transaction
	res, err := form.SubmitAndRecord(sanitizeInput(req.Description), req.Amount, intent, func(draft core.TransactionDraft) error {
		var rerr error
		tx, rerr = s.service.Record(r.Context(), draft)
		return rerr
	})
	if err != nil {
		var verr *core.ValidationError
		switch {
		case errors.As(err, &verr):
			s.metrics.entriesRejected.Add(1)
			logger.DebugContext(r.Context(), "Entry rejected",
				applog.FieldEntryID, id,
				"field", verr.Field,
				applog.FieldError, verr.Err)
			writeFieldError(w, r, http.StatusUnprocessableEntity, verr.Field, verr.Message())
		case errors.Is(err, entry.ErrNotRecorded):
			logger.ErrorContext(r.Context(), "Failed to record entry",
				applog.FieldEntryID, id,
				applog.FieldError, err)
			writeError(w, r, http.StatusInternalServerError, "failed to save transaction, the entry is still open")
		default:
			s.writeFlowError(w, r, id, err)
		}
		return
	}
	s.metrics.entriesSubmitted.Add(1)

	totals, err := s.service.Totals(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to compute totals after submit", applog.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, "failed to compute totals")
		return
	}

	resp := submitResponse{
		Transaction: newTransactionView(tx),
		Totals:      newTotalsView(totals),
	}
	if next := res.Reopen(); next != nil {
		nextID := uuid.NewString()
		s.sessions.Set(nextID, next)
		s.metrics.entriesOpened.Add(1)
		view := newEntryView(nextID, next.Fields())
		resp.NextEntry = &view
	}

	logger.InfoContext(r.Context(), "Entry submitted",
		applog.FieldEntryID, id,
		applog.FieldTransactionID, tx.ID,
		applog.FieldIntent, intent.String())

	writeJSON(w, r, http.StatusCreated, resp)
}

func (s *Server) openSession(dir core.Direction) (string, *entry.Form) {
	id := uuid.NewString()
	form := entry.New(dir, entry.WithClock(s.now))
	s.sessions.Set(id, form)
	s.metrics.entriesOpened.Add(1)
	return id, form
}

// lookupSession resolves the {id} path value. Unknown, expired and malformed
// ids all answer 404.
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (string, *entry.Form, bool) {
	raw := r.PathValue("id")
	if _, err := uuid.Parse(raw); err != nil {
		writeError(w, r, http.StatusNotFound, "entry not found")
		return "", nil, false
	}
	form, ok := s.sessions.Get(raw)
	if !ok {
		writeError(w, r, http.StatusNotFound, "entry not found")
		return "", nil, false
	}
	return raw, form, true
}

func (s *Server) writeFlowError(w http.ResponseWriter, r *http.Request, id string, err error) {
	switch {
	case errors.Is(err, entry.ErrSubmitInFlight):
		applog.FromContext(r.Context()).DebugContext(r.Context(), "Duplicate submit ignored", applog.FieldEntryID, id)
		writeError(w, r, http.StatusConflict, "entry is being saved")
	case errors.Is(err, entry.ErrCompleted), errors.Is(err, entry.ErrNotEditable):
		writeError(w, r, http.StatusConflict, "entry is no longer editable")
	case errors.Is(err, core.ErrInvalidDirection):
		writeFieldError(w, r, http.StatusBadRequest, "direction", "choose received or paid")
	default:
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Entry flow failed",
			applog.FieldEntryID, id,
			applog.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
