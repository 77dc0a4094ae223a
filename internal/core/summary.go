package core

// Totals are the aggregates shown above the transaction list.
type Totals struct {
	Received int64
	Paid     int64
	Balance  int64
}

// Summarize recomputes totals from scratch over txs.
func Summarize(txs []Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Direction {
		case Received:
			t.Received += tx.Amount
		case Paid:
			t.Paid += tx.Amount
		}
	}
	t.Balance = t.Received - t.Paid
	return t
}
