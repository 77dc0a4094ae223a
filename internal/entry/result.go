package entry

import (
	"time"

	"bukukas/internal/core"
)

// Result is what a completed entry flow hands back to whoever opened it.
type Result struct {
	Draft  core.TransactionDraft
	Intent Intent

	now func() time.Time
}

// Continue reports whether the opener should start a fresh flow.
func (r Result) Continue() bool {
	return r.Intent == SaveAndContinue
}

// Reopen returns the follow-up form for save-and-continue: same direction,
// timestamp reset to now. It returns nil for save-and-exit.
func (r Result) Reopen(opts ...Option) *Form {
	if !r.Continue() {
		return nil
	}
	if r.now != nil {
		opts = append([]Option{WithClock(r.now)}, opts...)
	}
	return New(r.Draft.Direction, opts...)
}
