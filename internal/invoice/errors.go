package invoice

import "errors"

var (
	// ErrInvoiceNotFound is returned when a mutation targets an invoice id
	// that is not in the collection.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrChargeNotFound is returned when a mutation targets a charge id
	// that is not in the invoice's charge list.
	ErrChargeNotFound = errors.New("charge not found")

	ErrInvalidField   = errors.New("invalid field")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrInvalidDueDate = errors.New("invalid due date")
)
