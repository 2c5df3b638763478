package invoice

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var apiDatePattern = regexp.MustCompile(`^(\d\d)/(\d\d)/(\d\d\d\d)$`)

// NormalizeDate converts an API date (MM/DD/YYYY) into the YYYY-MM-DD form
// browsers use for date inputs. Anything that does not match the pattern
// becomes "". Month and day ranges are not checked.
func NormalizeDate(apiDate string) string {
	m := apiDatePattern.FindStringSubmatch(apiDate)
	if m == nil {
		return ""
	}
	return m[3] + "-" + m[1] + "-" + m[2]
}

// Normalize maps API invoices into the editable shape, giving every charge
// a fresh uuid.
func Normalize(raw []RawInvoice) []Invoice {
	return NormalizeWith(raw, uuid.NewString)
}

// NormalizeWith is Normalize with a caller-provided charge id generator.
//
// Each name/price pair of a raw charge becomes one charge, in wire order, so
// a multi-key raw charge yields several charges and an empty one yields
// none. Unknown statuses become draft.
func NormalizeWith(raw []RawInvoice, newID func() string) []Invoice {
	invoices := make([]Invoice, 0, len(raw))
	for _, r := range raw {
		charges := make([]Charge, 0, len(r.Charges))
		for _, rc := range r.Charges {
			for _, entry := range rc {
				charges = append(charges, Charge{
					ID:    newID(),
					Name:  entry.Name,
					Value: entry.Price,
				})
			}
		}

		invoices = append(invoices, Invoice{
			ID:      r.ID,
			Name:    r.Name,
			Status:  normalizeStatus(r.Status),
			DueDate: NormalizeDate(r.DueDate),
			Charges: charges,
		})
	}
	return invoices
}

func normalizeStatus(s string) Status {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return StatusDraft
	}
	return status
}
