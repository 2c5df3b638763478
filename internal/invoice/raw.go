package invoice

import "github.com/angelofallars/hyperinvoice/pkg/bidsight"

// RawInvoice and RawCharge are the API shapes consumed by Normalize. They
// are never stored in a Collection.
type (
	RawInvoice     = bidsight.Invoice
	RawCharge      = bidsight.Charge
	RawChargeEntry = bidsight.ChargeEntry
)
