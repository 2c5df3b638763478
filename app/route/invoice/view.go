package invoice

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	domain "github.com/angelofallars/hyperinvoice/internal/invoice"
)

const (
	workspaceID   = "workspace"
	rowsID        = "invoice-rows"
	chargesID     = "charges-panel"
	fetchErrorMsg = "An error occurred when trying to fetch the invoices. Please refresh the page and try again."
)

func invoiceURL(id int) string { return "/invoices/" + strconv.Itoa(id) }

func chargesURL(id int) string { return invoiceURL(id) + "/charges" }

func chargeURL(invoiceID int, chargeID string) string {
	return chargesURL(invoiceID) + "/" + chargeID
}

func target(id string) string { return "#" + id }

// editAttrs makes an input send its value as the given field when it
// changes, replacing the element with the given id by the response.
func editAttrs(url string, field domain.Field, swapID string) templ.Attributes {
	return templ.Attributes{
		"name":       "value",
		"hx-patch":   url,
		"hx-vals":    fmt.Sprintf(`{"field":%q}`, field),
		"hx-trigger": "change",
		"hx-target":  target(swapID),
		"hx-swap":    "outerHTML",
	}
}

func editInvoice(id int, field domain.Field) templ.Attributes {
	return editAttrs(invoiceURL(id), field, rowsID)
}

func editCharge(invoiceID int, chargeID string, field domain.Field) templ.Attributes {
	return editAttrs(chargeURL(invoiceID, chargeID), field, chargesID)
}

func validValue(value string) bool {
	_, ok := domain.ParseChargeValue(value)
	return ok
}

func totalOf(inv domain.Invoice) string {
	return domain.FormatAmount(domain.SumCharges(inv.Charges))
}
