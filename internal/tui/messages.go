package tui

import (
	"bukukas/internal/core"
	"bukukas/internal/entry"
	"bukukas/internal/ledger"
)

// snapshotMsg carries a fresh list and totals.
type snapshotMsg struct {
	snapshot ledger.Snapshot
}

// savedMsg reports a recorded transaction. next is the follow-up form for
// save-and-continue, nil otherwise.
type savedMsg struct {
	tx   core.Transaction
	next *entry.Form
}

// removedMsg reports the outcome of a confirmed delete.
type removedMsg struct {
	description string
	removed     bool
}

// recordFailedMsg reports that a submitted form could not be stored.
type recordFailedMsg struct {
	form *entry.Form
	err  error
}

type errMsg struct {
	err error
}
