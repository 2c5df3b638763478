package invoice

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty string", in: "", want: ""},
		{name: "real date", in: "03/27/2023", want: "2023-03-27"},
		{name: "ranges are not checked", in: "13/40/2023", want: "2023-13-40"},
		{name: "single digit month", in: "3/27/2023", want: ""},
		{name: "two digit year", in: "03/27/23", want: ""},
		{name: "dashes", in: "03-27-2023", want: ""},
		{name: "already normalized", in: "2023-03-27", want: ""},
		{name: "trailing garbage", in: "03/27/2023 10:00", want: ""},
		{name: "letters", in: "ab/cd/efgh", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.in))
		})
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("charge-%d", n)
	}
}

func TestNormalize_RoundTrip(t *testing.T) {
	body := `[{"id": 7, "due_date": "03/27/2023", "name": "Acme", "status": "outstanding",
		"charges": [{"Widget": "5.00"}, {"Gadget": "7.50"}]}]`

	var raw []RawInvoice
	require.NoError(t, json.Unmarshal([]byte(body), &raw))

	invoices := Normalize(raw)
	require.Len(t, invoices, 1)

	inv := invoices[0]
	assert.Equal(t, 7, inv.ID)
	assert.Equal(t, "Acme", inv.Name)
	assert.Equal(t, StatusOutstanding, inv.Status)
	assert.Equal(t, "2023-03-27", inv.DueDate)

	require.Len(t, inv.Charges, 2)
	assert.NotEmpty(t, inv.Charges[0].ID)
	assert.NotEqual(t, inv.Charges[0].ID, inv.Charges[1].ID)
	assert.Equal(t, "Widget", inv.Charges[0].Name)
	assert.Equal(t, "5.00", inv.Charges[0].Value)
	assert.Equal(t, "Gadget", inv.Charges[1].Name)
	assert.Equal(t, "7.50", inv.Charges[1].Value)

	assert.True(t, SumCharges(inv.Charges).Equal(decimal.RequireFromString("12.50")))
}

func TestNormalize_PreservesOrder(t *testing.T) {
	raw := []RawInvoice{
		{ID: 3, Name: "c"},
		{ID: 1, Name: "a"},
		{ID: 2, Name: "b"},
	}

	invoices := NormalizeWith(raw, sequentialIDs())

	require.Len(t, invoices, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{invoices[0].ID, invoices[1].ID, invoices[2].ID})
}

func TestNormalize_MultiKeyCharge(t *testing.T) {
	body := `[{"id": 1, "due_date": "", "name": "x", "status": "paid",
		"charges": [{"Zeta": "1.00", "Alpha": "2.00"}, {}, {"Beta": "3.00"}]}]`

	var raw []RawInvoice
	require.NoError(t, json.Unmarshal([]byte(body), &raw))

	invoices := NormalizeWith(raw, sequentialIDs())
	require.Len(t, invoices, 1)

	assert.Equal(t, []Charge{
		{ID: "charge-1", Name: "Zeta", Value: "1.00"},
		{ID: "charge-2", Name: "Alpha", Value: "2.00"},
		{ID: "charge-3", Name: "Beta", Value: "3.00"},
	}, invoices[0].Charges)
}

func TestNormalize_Status(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{in: "draft", want: StatusDraft},
		{in: "Outstanding", want: StatusOutstanding},
		{in: " PAID ", want: StatusPaid},
		{in: "void", want: StatusDraft},
		{in: "", want: StatusDraft},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			invoices := NormalizeWith([]RawInvoice{{ID: 1, Status: tt.in}}, sequentialIDs())
			assert.Equal(t, tt.want, invoices[0].Status)
		})
	}
}

func TestNormalize_UnparseableDueDate(t *testing.T) {
	invoices := NormalizeWith([]RawInvoice{{ID: 1, DueDate: "tomorrow"}}, sequentialIDs())
	assert.Equal(t, "", invoices[0].DueDate)
	assert.Equal(t, []Charge{}, invoices[0].Charges)
}
