package invoice

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	domain "github.com/angelofallars/hyperinvoice/internal/invoice"
)

// EditFieldRequest carries a single field edit of an invoice or a charge.
type EditFieldRequest struct {
	Field string `form:"field"`
	Value string `form:"value"`
}

// EditFieldRequest satisfies [render.Binder]
func (efr *EditFieldRequest) Bind(r *http.Request) error {
	if efr.Field == "" {
		return errors.New("Missing field name.")
	}
	return nil
}

type FilterRequest struct {
	Name   string `form:"name"`
	Status string `form:"status"`
	Late   string `form:"late"`
}

// FilterRequest satisfies [render.Binder]
func (fr *FilterRequest) Bind(r *http.Request) error {
	if fr.Status == "" {
		return nil
	}
	_, err := domain.ParseStatus(fr.Status)
	return err
}

func (fr *FilterRequest) Filter() domain.Filter {
	f := domain.Filter{
		Name:     fr.Name,
		OnlyLate: isChecked(fr.Late),
	}
	if status, err := domain.ParseStatus(fr.Status); err == nil {
		f.Status = status
	}
	return f
}

func newFilterRequest(query url.Values) (*FilterRequest, error) {
	fr := &FilterRequest{
		Name:   query.Get("name"),
		Status: query.Get("status"),
		Late:   query.Get("late"),
	}
	if err := fr.Bind(nil); err != nil {
		return nil, err
	}
	return fr, nil
}

// isChecked accepts both checkbox ("on") and boolean spellings.
func isChecked(s string) bool {
	if s == "on" {
		return true
	}
	checked, _ := strconv.ParseBool(s)
	return checked
}
