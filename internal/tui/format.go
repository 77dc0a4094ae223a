package tui

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"bukukas/internal/core"
)

// Amounts are shown with Indonesian digit grouping: 25000 -> "25.000".
var printer = message.NewPrinter(language.Indonesian)

const (
	dateLayout    = "2006-01-02"
	clockLayout   = "15:04"
	displayLayout = "Mon, 02 Jan 2006 15:04"
)

func formatAmount(v int64) string {
	return printer.Sprintf("%d", v)
}

// formatSigned renders a transaction amount as "+ 25.000" or "- 5.000".
func formatSigned(tx core.Transaction) string {
	if tx.Direction == core.Paid {
		return "- " + formatAmount(tx.Amount)
	}
	return "+ " + formatAmount(tx.Amount)
}

func formatWhen(t time.Time) string {
	return t.Format(displayLayout)
}

func directionLabel(d core.Direction) string {
	if d == core.Paid {
		return "Paid"
	}
	return "Received"
}
