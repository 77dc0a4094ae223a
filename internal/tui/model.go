// Package tui is the terminal host: a list screen with totals, an entry
// screen driving entry.Form, and a delete confirmation.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bukukas/internal/core"
	"bukukas/internal/entry"
	"bukukas/internal/ledger"
	applog "bukukas/internal/log"
)

// Service is what the terminal needs from the ledger.
type Service interface {
	Overview(ctx context.Context) (ledger.Snapshot, error)
	Record(ctx context.Context, draft core.TransactionDraft) (core.Transaction, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Config holds the TUI dependencies.
type Config struct {
	Service Service
	Logger  *applog.Logger
	Theme   *Theme
	Now     func() time.Time
}

type screen int

const (
	screenList screen = iota
	screenEntry
	screenConfirmDelete
)

// Model holds the TUI state.
type Model struct {
	ctx    context.Context
	svc    Service
	logger *applog.Logger
	theme  Theme
	keys   KeyMap
	now    func() time.Time

	screen        screen
	snapshot      ledger.Snapshot
	cursor        int
	pendingDelete *core.Transaction
	entry         entryScreen

	status   string
	err      error
	width    int
	height   int
	quitting bool
}

// New creates the root model.
func New(ctx context.Context, cfg Config) Model {
	m := Model{
		ctx:    ctx,
		svc:    cfg.Service,
		logger: cfg.Logger,
		theme:  DefaultTheme,
		keys:   DefaultKeyMap(),
		now:    cfg.Now,
	}
	if cfg.Theme != nil {
		m.theme = *cfg.Theme
	}
	if m.logger == nil {
		m.logger = applog.Discard()
	}
	m.logger = m.logger.WithComponent(applog.ComponentTUI)
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Init loads the ledger.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.clampCursor()
		return m, nil

	case savedMsg:
		m.err = nil
		m.status = fmt.Sprintf("Saved %s %s", formatSigned(msg.tx), msg.tx.Description)
		if msg.next != nil {
			m.entry = newEntryScreen(msg.next)
			m.screen = screenEntry
		} else {
			m.screen = screenList
			m.cursor = 0
		}
		return m, m.loadCmd()

	case removedMsg:
		if msg.removed {
			m.status = fmt.Sprintf("Deleted %q", msg.description)
		} else {
			m.status = fmt.Sprintf("%q was already gone", msg.description)
		}
		return m, m.loadCmd()

	case recordFailedMsg:
		m.logger.ErrorContext(m.ctx, "Failed to record entry", applog.FieldError, msg.err)
		if m.screen != screenEntry || m.entry.form != msg.form {
			m.err = msg.err
			return m, nil
		}
		m.entry.recordFailed()
		return m, nil

	case errMsg:
		m.err = msg.err
		m.screen = screenList
		m.logger.ErrorContext(m.ctx, "Ledger operation failed", applog.FieldError, msg.err)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.screen {
		case screenEntry:
			return m.updateEntry(msg)
		case screenConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.screen == screenEntry {
		return m, m.entry.update(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snapshot.Transactions)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.NewReceived):
		return m.openEntry(core.Received)

	case key.Matches(msg, m.keys.NewPaid):
		return m.openEntry(core.Paid)

	case key.Matches(msg, m.keys.Delete):
		if len(m.snapshot.Transactions) == 0 {
			return m, nil
		}
		tx := m.snapshot.Transactions[m.cursor]
		m.pendingDelete = &tx
		m.screen = screenConfirmDelete
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		tx := *m.pendingDelete
		m.pendingDelete = nil
		m.screen = screenList
		return m, m.deleteCmd(tx)

	case key.Matches(msg, m.keys.Cancel):
		m.pendingDelete = nil
		m.screen = screenList
	}
	return m, nil
}

func (m Model) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenList
		m.entry = entryScreen{}
		return m, nil

	case key.Matches(msg, m.keys.ToggleDirection):
		m.entry.toggleDirection()
		return m, nil

	case key.Matches(msg, m.keys.SaveAndExit):
		return m.submitEntry(entry.SaveAndExit)

	case key.Matches(msg, m.keys.SaveAndContinue):
		return m.submitEntry(entry.SaveAndContinue)

	case key.Matches(msg, m.keys.NextField):
		m.entry.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.entry.moveFocus(-1)
		return m, nil
	}

	return m, m.entry.update(msg)
}

func (m Model) openEntry(dir core.Direction) (tea.Model, tea.Cmd) {
	m.entry = newEntryScreen(entry.New(dir, entry.WithClock(m.now)))
	m.screen = screenEntry
	m.status = ""
	m.err = nil
	return m, textinput.Blink
}

func (m Model) submitEntry(intent entry.Intent) (tea.Model, tea.Cmd) {
	res, ok := m.entry.submit(intent)
	if !ok {
		return m, nil
	}
	return m, m.recordCmd(m.entry.form, res)
}

func (m *Model) clampCursor() {
	if n := len(m.snapshot.Transactions); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) loadCmd() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		snap, err := svc.Overview(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return snapshotMsg{snapshot: snap}
	}
}

func (m Model) recordCmd(form *entry.Form, res entry.Result) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		tx, err := svc.Record(ctx, res.Draft)
		if err != nil {
			return recordFailedMsg{form: form, err: err}
		}
		return savedMsg{tx: tx, next: res.Reopen()}
	}
}

func (m Model) deleteCmd(tx core.Transaction) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		removed, err := svc.Delete(ctx, tx.ID)
		if err != nil {
			return errMsg{err: err}
		}
		return removedMsg{description: tx.Description, removed: removed}
	}
}

// View renders the active screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.screen {
	case screenEntry:
		body = m.entry.view(m.theme, m.keys)
	default:
		body = m.listView()
	}
	if m.width > 0 {
		body = lipgloss.NewStyle().MaxWidth(m.width).Render(body)
	}
	return body
}

func (m Model) listView() string {
	sections := []string{
		m.theme.Title.Render("Bukukas"),
		m.totalsView(),
		m.transactionsView(),
	}

	switch {
	case m.screen == screenConfirmDelete && m.pendingDelete != nil:
		sections = append(sections, m.theme.Error.Render(
			fmt.Sprintf("Delete transaction %q? (y/n)", m.pendingDelete.Description)))
	case m.err != nil:
		sections = append(sections, m.theme.Error.Render("Error: "+m.err.Error()))
	case m.status != "":
		sections = append(sections, m.theme.Status.Render(m.status))
	}

	sections = append(sections, m.theme.Help.Render(helpLine(
		m.keys.NewReceived, m.keys.NewPaid, m.keys.Delete, m.keys.Up, m.keys.Down, m.keys.Quit,
	)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) totalsView() string {
	t := m.snapshot.Totals
	cell := func(label, value string, style lipgloss.Style) string {
		return m.theme.Box.Render(m.theme.Label.Render(label) + "\n" + style.Render(value))
	}
	balanceStyle := m.theme.Received
	if t.Balance < 0 {
		balanceStyle = m.theme.Paid
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		cell("Received", formatAmount(t.Received), m.theme.Received),
		cell("Paid", formatAmount(t.Paid), m.theme.Paid),
		cell("Balance", formatAmount(t.Balance), balanceStyle),
	)
}

func (m Model) transactionsView() string {
	txs := m.snapshot.Transactions
	if len(txs) == 0 {
		return m.theme.Muted.Render("No transactions yet. Press r or p to add one.")
	}

	lines := make([]string, 0, len(txs))
	for i, tx := range txs {
		amountStyle := m.theme.Received
		if tx.Direction == core.Paid {
			amountStyle = m.theme.Paid
		}
		line := fmt.Sprintf("%s  %-24s %s",
			m.theme.Muted.Render(formatWhen(tx.OccurredAt)),
			truncate(tx.Description, 24),
			amountStyle.Render(fmt.Sprintf("%12s", formatSigned(tx))),
		)
		if i == m.cursor {
			line = m.theme.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, cfg Config) error {
	p := tea.NewProgram(New(ctx, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
