package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/angelofallars/hyperinvoice/internal/invoice"
	"github.com/angelofallars/hyperinvoice/pkg/bidsight"
)

type stubFetcher struct {
	invoices []bidsight.Invoice
	err      error
	calls    int
}

func (s *stubFetcher) GetInvoices(ctx context.Context) ([]bidsight.Invoice, error) {
	s.calls++
	return s.invoices, s.err
}

func TestLoad_Normalizes(t *testing.T) {
	fetcher := &stubFetcher{
		invoices: []bidsight.Invoice{
			{
				ID:      1,
				DueDate: "03/27/2023",
				Name:    "Acme",
				Status:  "outstanding",
				Charges: []bidsight.Charge{{{Name: "Widget", Price: "5.00"}}},
			},
			{ID: 2, DueDate: "someday", Name: "Globex", Status: "paid"},
		},
	}

	invoices, err := NewInvoice(fetcher, zap.NewNop()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 2)

	assert.Equal(t, "2023-03-27", invoices[0].DueDate)
	assert.Equal(t, invoice.StatusOutstanding, invoices[0].Status)
	require.Len(t, invoices[0].Charges, 1)
	assert.Equal(t, "Widget", invoices[0].Charges[0].Name)
	assert.NotEmpty(t, invoices[0].Charges[0].ID)

	assert.Equal(t, "", invoices[1].DueDate)
	assert.Equal(t, 1, fetcher.calls)
}

func TestLoad_FetchFailure(t *testing.T) {
	fetcher := &stubFetcher{err: bidsight.ErrFetchFailed}

	invoices, err := NewInvoice(fetcher, zap.NewNop()).Load(context.Background())
	assert.True(t, errors.Is(err, bidsight.ErrFetchFailed))
	assert.Nil(t, invoices)
}
