package invoice

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2023, time.June, 1, 12, 0, 0, 0, time.UTC)

func filterCollection() Collection {
	return NewCollection([]Invoice{
		{ID: 1, Name: "Acme Rockets", Status: StatusOutstanding, DueDate: "2023-03-27"},
		{ID: 2, Name: "Globex", Status: StatusPaid, DueDate: "2023-03-27"},
		{ID: 3, Name: "acme anvils", Status: StatusDraft, DueDate: "2023-03-27"},
		{ID: 4, Name: "Initech", Status: StatusOutstanding, DueDate: "2023-12-31"},
		{ID: 5, Name: "ACME Travel", Status: StatusOutstanding, DueDate: ""},
		{ID: 6, Name: "Umbrella", Status: StatusOutstanding, DueDate: "2023-13-40"},
	})
}

func TestIsLate(t *testing.T) {
	tests := []struct {
		name string
		inv  Invoice
		want bool
	}{
		{name: "outstanding past due", inv: Invoice{Status: StatusOutstanding, DueDate: "2023-03-27"}, want: true},
		{name: "outstanding due later", inv: Invoice{Status: StatusOutstanding, DueDate: "2023-12-31"}, want: false},
		{name: "outstanding due today after midnight", inv: Invoice{Status: StatusOutstanding, DueDate: "2023-06-01"}, want: true},
		{name: "paid past due", inv: Invoice{Status: StatusPaid, DueDate: "2023-03-27"}, want: false},
		{name: "draft past due", inv: Invoice{Status: StatusDraft, DueDate: "2023-03-27"}, want: false},
		{name: "no due date", inv: Invoice{Status: StatusOutstanding, DueDate: ""}, want: false},
		{name: "impossible due date", inv: Invoice{Status: StatusOutstanding, DueDate: "2023-13-40"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLate(tt.inv, now))
		})
	}
}

func TestIsLate_StrictlyBefore(t *testing.T) {
	midnight := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	inv := Invoice{Status: StatusOutstanding, DueDate: "2023-06-01"}

	assert.False(t, IsLate(inv, midnight))
	assert.True(t, IsLate(inv, midnight.Add(time.Nanosecond)))
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{name: "empty filter", filter: Filter{}, want: []int{1, 2, 3, 4, 5, 6}},
		{name: "status only", filter: Filter{Status: StatusOutstanding}, want: []int{1, 4, 5, 6}},
		{name: "name only, case insensitive", filter: Filter{Name: "aCmE"}, want: []int{1, 3, 5}},
		{name: "late only", filter: Filter{OnlyLate: true}, want: []int{1}},
		{name: "status and name", filter: Filter{Status: StatusOutstanding, Name: "acme"}, want: []int{1, 5}},
		{name: "outstanding and late", filter: Filter{Status: StatusOutstanding, OnlyLate: true}, want: []int{1}},
		{name: "paid and late", filter: Filter{Status: StatusPaid, OnlyLate: true}, want: []int{}},
		{name: "all three", filter: Filter{Status: StatusOutstanding, Name: "rock", OnlyLate: true}, want: []int{1}},
		{name: "no name match", filter: Filter{Name: "zzz"}, want: []int{}},
	}

	c := filterCollection()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Visible(c, tt.filter, now)))
		})
	}
}

func TestVisible_SubsequenceMatchesPredicates(t *testing.T) {
	c := filterCollection()
	filters := []Filter{}
	for _, status := range append([]Status{""}, Statuses...) {
		for _, name := range []string{"", "acme", "e"} {
			for _, late := range []bool{false, true} {
				filters = append(filters, Filter{Name: name, Status: status, OnlyLate: late})
			}
		}
	}

	all := c.Invoices()
	for _, f := range filters {
		visible := Visible(c, f, now)

		pos := 0
		for _, inv := range all {
			if pos < len(visible) && visible[pos].ID == inv.ID {
				pos++
			}
		}
		require.Equal(t, len(visible), pos, "not an ordered subsequence for %+v", f)

		for _, inv := range all {
			statusOK := f.Status == "" || inv.Status == f.Status
			nameOK := f.Name == "" || containsFold(inv.Name, f.Name)
			lateOK := !f.OnlyLate || IsLate(inv, now)
			assert.Equal(t, statusOK && nameOK && lateOK, contains(visible, inv.ID), "invoice %d with %+v", inv.ID, f)
		}
	}
}

func TestVisible_FollowsMutations(t *testing.T) {
	c := filterCollection()
	f := Filter{Status: StatusOutstanding, OnlyLate: true}

	c, err := c.SetInvoiceField(1, FieldStatus, "paid")
	require.NoError(t, err)
	assert.Equal(t, []int{}, ids(Visible(c, f, now)))

	c, err = c.SetInvoiceField(4, FieldDueDate, "2023-05-31")
	require.NoError(t, err)
	assert.Equal(t, []int{4}, ids(Visible(c, f, now)))
}

func TestRows(t *testing.T) {
	invoices := []Invoice{
		{
			ID: 1, Status: StatusOutstanding, DueDate: "2023-03-27",
			Charges: []Charge{{ID: "x", Value: "5.00"}, {ID: "y", Value: "7.50"}, {ID: "z", Value: "n/a"}},
		},
	}

	rows := Rows(invoices, now)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Total.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, rows[0].Late)
	assert.Equal(t, 1, rows[0].InvalidCharges)
	assert.Equal(t, 1, rows[0].ID)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func contains(invoices []Invoice, id int) bool {
	for _, inv := range invoices {
		if inv.ID == id {
			return true
		}
	}
	return false
}
