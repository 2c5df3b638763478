package invoice

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Filter is the set of visibility criteria chosen by the user. The zero
// value shows everything.
type Filter struct {
	Name     string `json:"name"`
	Status   Status `json:"status"`
	OnlyLate bool   `json:"only_late"`
}

// Match reports whether inv passes every active criterion.
func (f Filter) Match(inv Invoice, now time.Time) bool {
	if f.Status != "" && inv.Status != f.Status {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(inv.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.OnlyLate && !IsLate(inv, now) {
		return false
	}
	return true
}

// Visible returns the invoices of c that match f, in collection order.
func Visible(c Collection, f Filter, now time.Time) []Invoice {
	visible := []Invoice{}
	for _, inv := range c.Invoices() {
		if f.Match(inv, now) {
			visible = append(visible, inv)
		}
	}
	return visible
}

// IsLate reports whether an outstanding invoice is past its due date. The
// due date is taken as midnight UTC; invoices without a valid due date are
// never late.
func IsLate(inv Invoice, now time.Time) bool {
	if inv.Status != StatusOutstanding {
		return false
	}
	due, err := time.Parse(time.DateOnly, inv.DueDate)
	if err != nil {
		return false
	}
	return due.Before(now)
}

// Row is an invoice together with the values derived from it for display.
type Row struct {
	Invoice
	Total          decimal.Decimal `json:"total"`
	Late           bool            `json:"late"`
	InvalidCharges int             `json:"invalid_charges"`
}

func Rows(invoices []Invoice, now time.Time) []Row {
	rows := make([]Row, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, Row{
			Invoice:        inv,
			Total:          SumCharges(inv.Charges),
			Late:           IsLate(inv, now),
			InvalidCharges: InvalidCharges(inv.Charges),
		})
	}
	return rows
}
