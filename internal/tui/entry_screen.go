package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bukukas/internal/core"
	"bukukas/internal/entry"
)

type field int

const (
	fieldAmount field = iota
	fieldDescription
	fieldDate
	fieldTime
	fieldCount
)

var fieldLabels = [fieldCount]string{"Amount", "Note", "Date", "Time"}

// entryScreen edits one entry.Form. The text inputs hold raw values; they
// reach the form only on submit, so the form's guard decides what is saved.
type entryScreen struct {
	form   *entry.Form
	inputs [fieldCount]textinput.Model
	focus  field
	err    string
	saving bool
}

func newEntryScreen(form *entry.Form) entryScreen {
	fields := form.Fields()

	s := entryScreen{form: form}
	for i := range s.inputs {
		in := textinput.New()
		in.Prompt = ""
		s.inputs[i] = in
	}

	s.inputs[fieldAmount].Placeholder = "25.000"
	s.inputs[fieldAmount].CharLimit = 24
	s.inputs[fieldDescription].Placeholder = "optional"
	s.inputs[fieldDescription].CharLimit = 120
	s.inputs[fieldDate].CharLimit = len(dateLayout)
	s.inputs[fieldDate].SetValue(fields.OccurredAt.Format(dateLayout))
	s.inputs[fieldTime].CharLimit = len(clockLayout)
	s.inputs[fieldTime].SetValue(fields.OccurredAt.Format(clockLayout))

	s.focusField(fieldAmount)
	return s
}

func (s *entryScreen) focusField(f field) {
	for i := range s.inputs {
		if field(i) == f {
			s.inputs[i].Focus()
		} else {
			s.inputs[i].Blur()
		}
	}
	s.focus = f
}

func (s *entryScreen) moveFocus(delta int) {
	next := (int(s.focus) + delta + int(fieldCount)) % int(fieldCount)
	s.focusField(field(next))
}

func (s *entryScreen) toggleDirection() {
	// Ignored once a submit has started.
	_ = s.form.ToggleDirection()
}

// submit pushes the pickers into the form and submits it. It reports false
// when nothing should be recorded: bad input (shown on screen) or a repeat
// activation that the form's guard rejected.
func (s *entryScreen) submit(intent entry.Intent) (entry.Result, bool) {
	if !s.applyPickers() {
		return entry.Result{}, false
	}

	res, err := s.form.SubmitValues(
		s.inputs[fieldDescription].Value(),
		s.inputs[fieldAmount].Value(),
		intent,
	)

	var verr *core.ValidationError
	switch {
	case err == nil:
		s.err = ""
		s.saving = true
		return res, true
	case errors.As(err, &verr):
		s.err = verr.Message()
		if verr.Field == "amount" {
			s.focusField(fieldAmount)
		}
	}
	return entry.Result{}, false
}

// recordFailed reopens the form after the ledger refused the draft, so the
// same input can be saved again.
func (s *entryScreen) recordFailed() {
	s.saving = false
	if err := s.form.Release(); err != nil {
		return
	}
	s.err = "could not save, try again"
}

func (s *entryScreen) applyPickers() bool {
	date, err := time.Parse(dateLayout, strings.TrimSpace(s.inputs[fieldDate].Value()))
	if err != nil {
		s.err = "enter the date as YYYY-MM-DD"
		s.focusField(fieldDate)
		return false
	}
	clock, err := time.Parse(clockLayout, strings.TrimSpace(s.inputs[fieldTime].Value()))
	if err != nil {
		s.err = "enter the time as HH:MM"
		s.focusField(fieldTime)
		return false
	}

	if err := s.form.SetDate(date.Year(), date.Month(), date.Day()); err != nil {
		return false
	}
	if err := s.form.SetTime(clock.Hour(), clock.Minute()); err != nil {
		return false
	}
	return true
}

// update forwards typing to the focused input while the form is editable.
func (s *entryScreen) update(msg tea.Msg) tea.Cmd {
	if _, isKey := msg.(tea.KeyMsg); isKey && s.form.State() != entry.StateIdle {
		return nil
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return cmd
}

func (s entryScreen) view(theme Theme, keys KeyMap) string {
	fields := s.form.Fields()

	dirStyle := theme.Received
	if fields.Direction == core.Paid {
		dirStyle = theme.Paid
	}
	title := theme.Title.Render("New transaction: " + dirStyle.Render(directionLabel(fields.Direction)))

	rows := make([]string, 0, fieldCount)
	for i, in := range s.inputs {
		label := theme.Label.Render(fmt.Sprintf("%-7s", fieldLabels[i]))
		rows = append(rows, label+" "+in.View())
	}

	sections := []string{title, theme.Box.Render(strings.Join(rows, "\n"))}
	if s.err != "" {
		sections = append(sections, theme.Error.Render(s.err))
	}
	if s.saving {
		sections = append(sections, theme.Status.Render("Saving..."))
	}
	sections = append(sections, theme.Help.Render(helpLine(
		keys.ToggleDirection, keys.SaveAndExit, keys.SaveAndContinue, keys.NextField, keys.Back,
	)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
