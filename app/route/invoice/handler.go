package invoice

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/angelofallars/hyperinvoice/app/component"
	"github.com/angelofallars/hyperinvoice/app/event"
	"github.com/angelofallars/hyperinvoice/app/session"
	"github.com/angelofallars/hyperinvoice/internal/editor"
	domain "github.com/angelofallars/hyperinvoice/internal/invoice"
	"github.com/angelofallars/hyperinvoice/pkg/bidsight"
)

type HandlerGroup struct {
	loader editor.Loader
	logger *zap.Logger
	now    func() time.Time
}

func NewHandlerGroup(loader editor.Loader, logger *zap.Logger) *HandlerGroup {
	return &HandlerGroup{
		loader: loader,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock used for lateness.
func (hg *HandlerGroup) WithClock(now func() time.Time) *HandlerGroup {
	hg.now = now
	return hg
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	r.Get("/", hg.handleIndex)

	r.Get("/invoices", hg.handleGetInvoices)
	r.Post("/invoices", hg.handleCreateInvoice)
	r.Patch("/invoices/{invoiceID}", hg.handleEditInvoice)
	r.Delete("/invoices/{invoiceID}", hg.handleDeleteInvoice)

	r.Get("/invoices/{invoiceID}/charges", hg.handleGetCharges)
	r.Post("/invoices/{invoiceID}/charges", hg.handleAddCharge)
	r.Patch("/invoices/{invoiceID}/charges/{chargeID}", hg.handleEditCharge)
	r.Delete("/invoices/{invoiceID}/charges/{chargeID}", hg.handleDeleteCharge)

	r.Post("/filter", hg.handleFilter)
	r.Post("/save", hg.handleSave)

	r.Get("/api/invoices", hg.handleAPIInvoices)
}

// handleIndex serves the page shell. A full page load is the user's retry
// after a failed fetch, so a failed session starts loading again.
func (hg *HandlerGroup) handleIndex(w http.ResponseWriter, r *http.Request) {
	s, ok := hg.session(w, r)
	if !ok {
		return
	}

	if s.Editor.ResetFailed() {
		hg.logger.Info("retrying invoice fetch after page reload", zap.String("session", s.ID))
	}

	hg.respond(w, r, htmx.NewResponse(), component.FullPage("Invoices", page()))
}

// handleGetInvoices loads the session's invoices on first use and renders
// the workspace, or the fetch error once loading has failed.
func (hg *HandlerGroup) handleGetInvoices(w http.ResponseWriter, r *http.Request) {
	s, ok := hg.session(w, r)
	if !ok {
		return
	}

	if err := s.Editor.Load(context.WithoutCancel(r.Context()), hg.loader); err != nil {
		hg.logger.Warn("invoice workspace unavailable", zap.String("session", s.ID), zap.Error(err))
		hg.respond(w, r, htmx.NewResponse(), FetchError())
		return
	}

	rows, f := s.Editor.View(hg.now())
	hg.respond(w, r, htmx.NewResponse().AddTrigger(event.TriggerClearErrMessage), Workspace(rows, f))
}

func (hg *HandlerGroup) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	s, ok := hg.session(w, r)
	if !ok {
		return
	}

	var created domain.Invoice
	err := s.Editor.Update("add_invoice", func(c domain.Collection) (domain.Collection, error) {
		c, created = c.AddInvoice()
		return c, nil
	})
	if err != nil {
		hg.showError(w, r, s, err)
		return
	}

	hg.logger.Debug("invoice created", zap.String("session", s.ID), zap.Int("invoice_id", created.ID))
	hg.renderRows(w, r, s)
}

func (hg *HandlerGroup) handleEditInvoice(w http.ResponseWriter, r *http.Request) {
	s, ok := hg.session(w, r)
	if !ok {
		return
	}

	invoiceID, err := parseInvoiceID(r)
	if err != nil {
		hg.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	req := &EditFieldRequest{}
	if err := render.Bind(r, req); err != nil {
		hg.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	err = s.Editor.Update("set_invoice_field", func(c domain.Collection) (domain.Collection, error) {
		return c.SetInvoiceField(invoiceID, domain.Field(req.Field), req.Value)
	})
	if err != nil {
		hg.showError(w, r, s, err, zap.Int("invoice_id", invoiceID))
		return
	}

	hg.renderRows(w, r, s)
}

func (hg *HandlerGroup) handleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	s, ok := hg.session(w, r)
	if !ok {
		return
	}

	invoiceID, err := parseInvoiceID(r)
	if err != nil {
		hg.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	err = s.Editor.Update("delete_invoice", func(c domain.Collection) (domain.Collection, error) {
		return c.DeleteInvoice(invoiceID)
	})
	if err != nil {
		hg.showError(w, r, s, err, zap.Int("invoice_id", invoiceID))
		return
	}

	rows, _ := s.Editor.View(hg.now())
	resp := htmx.NewResponse().AddTrigger(event.TriggerClearErrMessage)
	hg.respond(w, r, resp, component.Join(RowsBody(rows, false), ClosedChargesPanel()))
}

func (hg *HandlerGroup) handleGetCharges(w http.ResponseWriter, r *http.Request) {
	s, ok := hg.session(w, r)
	if !ok {
		return
	}

	invoiceID, err := parseInvoiceID(r)
	if err != nil {
		hg.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	if s.Editor.State() != editor.StateReady {
		hg.showError(w, r, s, editor.ErrNotReady)
		return
	}

	inv, found := s.Editor.Collection().Invoice(invoiceID)
	if !found {
		hg.showError(w, r, s, domain.ErrInvoiceNotFound, zap.Int("invoice_id", invoiceID))
		return
	}

	hg.respond(w, r, htmx.NewResponse().AddTrigger(event.TriggerClearErrMessage), ChargesPanel(inv))
}

func (hg *HandlerGroup) handleAddCharge(w http.ResponseWriter, r *http.Request) {
	s, ok := hg.session(w, r)
	if !ok {
		return
	}

	invoiceID, err := parseInvoiceID(r)
	if err != nil {
		hg.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	err = s.Editor.Update("add_charge", func(c domain.Collection) (domain.Collection, error) {
		next, _, err := c.AddCharge(invoiceID)
		return next, err
	})
	if err != nil {
		hg.showError(w, r, s, err, zap.Int("invoice_id", invoiceID))
		return
	}

	hg.renderCharges(w, r, s, invoiceID)
}

func (hg *HandlerGroup) handleEditCharge(w http.ResponseWriter, r *http.Request) {
	s, ok := hg.session(w, r)
	if !ok {
		return
	}

	invoiceID, err := parseInvoiceID(r)
	if err != nil {
		hg.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	chargeID := chi.URLParam(r, "chargeID")

	req := &EditFieldRequest{}
	if err := render.Bind(r, req); err != nil {
		hg.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	err = s.Editor.Update("edit_charge", func(c domain.Collection) (domain.Collection, error) {
		return c.EditCharge(invoiceID, chargeID, domain.Field(req.Field), req.Value)
	})
	if err != nil {
		hg.showError(w, r, s, err, zap.Int("invoice_id", invoiceID), zap.String("charge_id", chargeID))
		return
	}

	hg.renderCharges(w, r, s, invoiceID)
}

func (hg *HandlerGroup) handleDeleteCharge(w http.ResponseWriter, r *http.Request) {
	s, ok := hg.session(w, r)
	if !ok {
		return
	}

	invoiceID, err := parseInvoiceID(r)
	if err != nil {
		hg.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	chargeID := chi.URLParam(r, "chargeID")

	err = s.Editor.Update("delete_charge", func(c domain.Collection) (domain.Collection, error) {
		return c.DeleteCharge(invoiceID, chargeID)
	})
	if err != nil {
		hg.showError(w, r, s, err, zap.Int("invoice_id", invoiceID), zap.String("charge_id", chargeID))
		return
	}

	hg.renderCharges(w, r, s, invoiceID)
}

func (hg *HandlerGroup) handleFilter(w http.ResponseWriter, r *http.Request) {
	s, ok := hg.session(w, r)
	if !ok {
		return
	}

	req := &FilterRequest{}
	if err := render.Bind(r, req); err != nil {
		hg.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	s.Editor.SetFilter(req.Filter())
	hg.renderRows(w, r, s)
}

// handleSave is the Save affordance. Edits live only in the session, so
// there is nothing to persist.
func (hg *HandlerGroup) handleSave(w http.ResponseWriter, r *http.Request) {
	resp := htmx.NewResponse().
		Reswap(htmx.SwapNone).
		AddTrigger(
			event.TriggerClearErrMessage,
			event.TriggerSetInfoMessage("Changes are kept for this session only; nothing was sent to the server."),
		)
	hg.respond(w, r, resp, nil)
}

type InvoicesResponse struct {
	Filter   domain.Filter `json:"filter"`
	Invoices []domain.Row  `json:"invoices"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// handleAPIInvoices returns the session's invoices filtered by the query
// parameters name, status and late.
func (hg *HandlerGroup) handleAPIInvoices(w http.ResponseWriter, r *http.Request) {
	s, err := session.Get(r.Context())
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
		return
	}

	req, err := newFilterRequest(r.URL.Query())
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
		return
	}

	if err := s.Editor.Load(context.WithoutCancel(r.Context()), hg.loader); err != nil {
		hg.logger.Warn("invoice api unavailable", zap.String("session", s.ID), zap.Error(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, ErrorResponse{Error: bidsight.ErrFetchFailed.Error()})
		return
	}

	now := hg.now()
	f := req.Filter()
	render.JSON(w, r, InvoicesResponse{
		Filter:   f,
		Invoices: domain.Rows(domain.Visible(s.Editor.Collection(), f, now), now),
	})
}

func (hg *HandlerGroup) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := session.Get(r.Context())
	if err != nil {
		hg.logger.Error("request without session", zap.Error(err))
		hg.writeError(w, r, http.StatusInternalServerError, err)
		return nil, false
	}
	return s, true
}

func (hg *HandlerGroup) renderRows(w http.ResponseWriter, r *http.Request, s *session.Session) {
	rows, _ := s.Editor.View(hg.now())
	hg.respond(w, r, htmx.NewResponse().AddTrigger(event.TriggerClearErrMessage), RowsBody(rows, false))
}

// renderCharges answers charge edits with the charges panel and refreshes
// the table out of band so the invoice total follows.
func (hg *HandlerGroup) renderCharges(w http.ResponseWriter, r *http.Request, s *session.Session, invoiceID int) {
	inv, found := s.Editor.Collection().Invoice(invoiceID)
	if !found {
		hg.showError(w, r, s, domain.ErrInvoiceNotFound, zap.Int("invoice_id", invoiceID))
		return
	}

	rows, _ := s.Editor.View(hg.now())
	resp := htmx.NewResponse().AddTrigger(event.TriggerClearErrMessage)
	hg.respond(w, r, resp, component.Join(ChargesPanel(inv), RowsBody(rows, true)))
}

// showError reports a failed editor operation. Lookup misses and invalid
// values leave the collection untouched, so they are only logged at debug.
func (hg *HandlerGroup) showError(w http.ResponseWriter, r *http.Request, s *session.Session, err error, fields ...zap.Field) {
	code := statusCode(err)
	fields = append(fields, zap.String("session", s.ID), zap.Error(err))
	if code >= http.StatusInternalServerError {
		hg.logger.Error("invoice operation failed", fields...)
	} else {
		hg.logger.Debug("invoice operation rejected", fields...)
	}
	hg.writeError(w, r, code, err)
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvoiceNotFound), errors.Is(err, domain.ErrChargeNotFound):
		return http.StatusNotFound
	case errors.Is(err, editor.ErrNotReady):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidField),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidDueDate):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func parseInvoiceID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "invoiceID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("Invalid invoice ID: " + raw)
	}
	return id, nil
}

func (hg *HandlerGroup) writeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	resp := htmx.NewResponse().
		StatusCode(code).
		Reswap(htmx.SwapNone).
		AddTrigger(event.TriggerSetErrMessage(err.Error()))
	hg.respond(w, r, resp, nil)
}

// respond writes resp with c as its body, or with no body when c is nil.
func (hg *HandlerGroup) respond(w http.ResponseWriter, r *http.Request, resp htmx.Response, c templ.Component) {
	var err error
	if c == nil {
		err = resp.Write(w)
	} else {
		err = resp.RenderTempl(r.Context(), w, c)
	}
	if err != nil {
		hg.logger.Debug("write response failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
}
