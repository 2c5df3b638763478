package invoice

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Collection is the ordered list of invoices being edited.
//
// A Collection is a value: every mutation returns a new Collection and
// leaves the receiver untouched. Invoices and charges are always looked up
// by id. A mutation that misses returns the receiver unchanged together with
// ErrInvoiceNotFound or ErrChargeNotFound.
type Collection struct {
	invoices    []Invoice
	nextID      int
	newChargeID func() string
}

type Option func(*Collection)

// WithChargeIDFunc replaces the uuid generator used for new charges.
func WithChargeIDFunc(f func() string) Option {
	return func(c *Collection) {
		c.newChargeID = f
	}
}

// NewCollection seeds a collection with invoices, keeping their order.
//
// Invoice ids must be unique; a repeated id is replaced with a fresh one.
// New invoices get ids from a counter that starts above every seeded id and
// only ever grows, so ids are never reused after a delete.
func NewCollection(invoices []Invoice, opts ...Option) Collection {
	c := Collection{
		invoices: make([]Invoice, 0, len(invoices)),
		nextID:   1,
	}
	for _, opt := range opts {
		opt(&c)
	}

	for _, inv := range invoices {
		c.nextID = max(c.nextID, inv.ID+1)
	}

	seen := make(map[int]bool, len(invoices))
	for _, inv := range invoices {
		inv.Charges = cloneCharges(inv.Charges)
		if seen[inv.ID] {
			inv.ID = c.nextID
			c.nextID++
		}
		seen[inv.ID] = true
		c.invoices = append(c.invoices, inv)
	}

	return c
}

func (c Collection) Len() int { return len(c.invoices) }

// Invoices returns a copy of the invoices in collection order.
func (c Collection) Invoices() []Invoice {
	out := make([]Invoice, len(c.invoices))
	for i, inv := range c.invoices {
		inv.Charges = cloneCharges(inv.Charges)
		out[i] = inv
	}
	return out
}

func (c Collection) Invoice(id int) (Invoice, bool) {
	i := c.index(id)
	if i < 0 {
		return Invoice{}, false
	}
	inv := c.invoices[i]
	inv.Charges = cloneCharges(inv.Charges)
	return inv, true
}

// SetInvoiceField updates name, status or due_date of one invoice. Status
// must be a known status and due_date must be empty or YYYY-MM-DD.
func (c Collection) SetInvoiceField(id int, field Field, value string) (Collection, error) {
	i := c.index(id)
	if i < 0 {
		return c, fmt.Errorf("%w: %d", ErrInvoiceNotFound, id)
	}

	inv := c.invoices[i]
	switch field {
	case FieldName:
		inv.Name = value
	case FieldStatus:
		status, err := ParseStatus(value)
		if err != nil {
			return c, err
		}
		inv.Status = status
	case FieldDueDate:
		if value != "" {
			if _, err := time.Parse(time.DateOnly, value); err != nil {
				return c, fmt.Errorf("%w: %q", ErrInvalidDueDate, value)
			}
		}
		inv.DueDate = value
	default:
		return c, fmt.Errorf("%w: invoice has no field %q", ErrInvalidField, field)
	}

	return c.replace(i, inv), nil
}

// AddInvoice puts a new default invoice at the front of the collection.
func (c Collection) AddInvoice() (Collection, Invoice) {
	id := max(c.nextID, 1)
	inv := Invoice{
		ID:      id,
		Name:    DefaultName,
		Status:  StatusDraft,
		DueDate: "",
		Charges: []Charge{},
	}

	next := c
	next.invoices = make([]Invoice, 0, len(c.invoices)+1)
	next.invoices = append(next.invoices, inv)
	next.invoices = append(next.invoices, c.invoices...)
	next.nextID = id + 1

	return next, inv
}

func (c Collection) DeleteInvoice(id int) (Collection, error) {
	i := c.index(id)
	if i < 0 {
		return c, fmt.Errorf("%w: %d", ErrInvoiceNotFound, id)
	}

	next := c
	next.invoices = slices.Delete(slices.Clone(c.invoices), i, i+1)
	return next, nil
}

// AddCharge appends a default charge to the invoice and returns it.
func (c Collection) AddCharge(invoiceID int) (Collection, Charge, error) {
	i := c.index(invoiceID)
	if i < 0 {
		return c, Charge{}, fmt.Errorf("%w: %d", ErrInvoiceNotFound, invoiceID)
	}

	charge := Charge{
		ID:    c.chargeID(),
		Name:  DefaultName,
		Value: DefaultChargeValue,
	}

	inv := c.invoices[i]
	charges := make([]Charge, 0, len(inv.Charges)+1)
	charges = append(charges, inv.Charges...)
	inv.Charges = append(charges, charge)

	return c.replace(i, inv), charge, nil
}

// EditCharge updates the name or value of one charge.
func (c Collection) EditCharge(invoiceID int, chargeID string, field Field, value string) (Collection, error) {
	i, j, err := c.chargeIndex(invoiceID, chargeID)
	if err != nil {
		return c, err
	}

	inv := c.invoices[i]
	charges := cloneCharges(inv.Charges)
	switch field {
	case FieldName:
		charges[j].Name = value
	case FieldValue:
		charges[j].Value = value
	default:
		return c, fmt.Errorf("%w: charge has no field %q", ErrInvalidField, field)
	}
	inv.Charges = charges

	return c.replace(i, inv), nil
}

func (c Collection) DeleteCharge(invoiceID int, chargeID string) (Collection, error) {
	i, j, err := c.chargeIndex(invoiceID, chargeID)
	if err != nil {
		return c, err
	}

	inv := c.invoices[i]
	inv.Charges = slices.Delete(cloneCharges(inv.Charges), j, j+1)

	return c.replace(i, inv), nil
}

func (c Collection) index(id int) int {
	return slices.IndexFunc(c.invoices, func(inv Invoice) bool {
		return inv.ID == id
	})
}

func (c Collection) chargeIndex(invoiceID int, chargeID string) (int, int, error) {
	i := c.index(invoiceID)
	if i < 0 {
		return -1, -1, fmt.Errorf("%w: %d", ErrInvoiceNotFound, invoiceID)
	}
	j := slices.IndexFunc(c.invoices[i].Charges, func(charge Charge) bool {
		return charge.ID == chargeID
	})
	if j < 0 {
		return -1, -1, fmt.Errorf("%w: %s", ErrChargeNotFound, chargeID)
	}
	return i, j, nil
}

// replace returns a copy of c with the invoice at index i swapped for inv.
func (c Collection) replace(i int, inv Invoice) Collection {
	next := c
	next.invoices = slices.Clone(c.invoices)
	next.invoices[i] = inv
	return next
}

func (c Collection) chargeID() string {
	if c.newChargeID != nil {
		return c.newChargeID()
	}
	return uuid.NewString()
}

func cloneCharges(charges []Charge) []Charge {
	if charges == nil {
		return []Charge{}
	}
	return slices.Clone(charges)
}
