package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/angelofallars/hyperinvoice/internal/invoice"
	"github.com/angelofallars/hyperinvoice/internal/metrics"
	"github.com/angelofallars/hyperinvoice/pkg/bidsight"
)

type Invoice interface {
	// Load fetches the invoice list and normalizes it for editing.
	Load(ctx context.Context) ([]invoice.Invoice, error)
}

// Fetcher is the remote source of invoices.
type Fetcher interface {
	GetInvoices(ctx context.Context) ([]bidsight.Invoice, error)
}

type invoiceLoader struct {
	fetcher Fetcher
	logger  *zap.Logger
}

func NewInvoice(fetcher Fetcher, logger *zap.Logger) *invoiceLoader {
	return &invoiceLoader{
		fetcher: fetcher,
		logger:  logger,
	}
}

func (l *invoiceLoader) Load(ctx context.Context) ([]invoice.Invoice, error) {
	start := time.Now()
	raw, err := l.fetcher.GetInvoices(ctx)
	metrics.FetchLatency.Observe(time.Since(start).Seconds())
	metrics.Fetches.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		l.logger.Warn("fetch invoices failed", zap.Error(err))
		return nil, err
	}

	invoices := invoice.Normalize(raw)

	l.logger.Info("invoices loaded",
		zap.Int("count", len(invoices)),
		zap.Duration("took", time.Since(start)),
	)

	return invoices, nil
}
