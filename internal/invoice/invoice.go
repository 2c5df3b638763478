// Package invoice holds the invoice editing model: the invoice and charge
// types, normalization of the remote API shape, the immutable Collection
// store and the filter engine that decides which rows are visible.
package invoice

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusDraft       Status = "draft"
	StatusOutstanding Status = "outstanding"
	StatusPaid        Status = "paid"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusDraft, StatusOutstanding, StatusPaid}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusOutstanding, StatusPaid:
		return true
	default:
		return false
	}
}

// Display returns the label shown in status selects.
func (s Status) Display() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusOutstanding:
		return "Outstanding"
	case StatusPaid:
		return "Paid"
	default:
		return string(s)
	}
}

// ParseStatus accepts a status name in any letter case.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// Field names an editable scalar field of an invoice or a charge.
type Field string

const (
	FieldName    Field = "name"
	FieldStatus  Field = "status"
	FieldDueDate Field = "due_date"
	FieldValue   Field = "value"
)

const (
	DefaultName        = "Untitled"
	DefaultChargeValue = "0.00"
)

// Charge is a single named line item. ID is the only stable identity of a
// charge inside its invoice.
type Charge struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Invoice struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Status  Status   `json:"status"`
	DueDate string   `json:"due_date"`
	Charges []Charge `json:"charges"`
}
