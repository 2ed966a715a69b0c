package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fiduciary-books/internal/app"
	"fiduciary-books/internal/core"
)

type invoicesPageData struct {
	Result  *app.InvoicesResult
	Clients []core.Client
}

// invoicesPage handles GET /invoices.
func (h *Handler) invoicesPage(w http.ResponseWriter, r *http.Request) {
	d := h.buildAppLayoutData(r, "Factures clients", "invoices")

	result, err := h.svc.ListInvoices(r.Context(), h.listQuery(r))
	if err != nil {
		d.FlashMsg = "Impossible de charger les factures: " + err.Error()
		d.FlashKind = "error"
		result = &app.InvoicesResult{Listing: &core.InvoiceListing{}}
	}
	d.Year = result.Year

	clients, err := h.svc.ListClients(r.Context())
	if err != nil && d.FlashKind != "error" {
		d.FlashMsg = "Impossible de charger les clients: " + err.Error()
		d.FlashKind = "error"
	}
	h.render(w, r, "invoices", d, invoicesPageData{Result: result, Clients: clients})
}

// invoiceCreateAction handles POST /invoices.
func (h *Handler) invoiceCreateAction(w http.ResponseWriter, r *http.Request) {
	var req app.CreateInvoiceRequest
	if err := h.decodeForm(r, &req); err != nil {
		redirectFlash(w, r, "/invoices", "error", "Formulaire invalide")
		return
	}
	inv, err := h.svc.CreateInvoice(r.Context(), req)
	if err != nil {
		redirectFlash(w, r, "/invoices", "error", errorMessage(err))
		return
	}
	redirectFlash(w, r, "/invoices?year="+strconv.Itoa(inv.IssueDate.Year()), "success", "Facture "+inv.Number+" enregistrée")
}

// invoiceStatusAction handles POST /invoices/{id}/status.
func (h *Handler) invoiceStatusAction(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := h.decodeForm(r, &req); err != nil {
		redirectFlash(w, r, backTo(r, "/invoices"), "error", "Formulaire invalide")
		return
	}
	res, err := h.svc.UpdateInvoiceStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		redirectFlash(w, r, backTo(r, "/invoices"), "error", errorMessage(err))
		return
	}
	if !res.Applied() {
		http.Redirect(w, r, backTo(r, "/invoices"), http.StatusSeeOther)
		return
	}
	redirectFlash(w, r, backTo(r, "/invoices"), "success", "Statut mis à jour")
}

func (h *Handler) apiListInvoices(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListInvoices(r.Context(), h.listQuery(r))
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSON(w, result)
}

func (h *Handler) apiCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req app.CreateInvoiceRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	inv, err := h.svc.CreateInvoice(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSONStatus(w, http.StatusCreated, inv)
}

func (h *Handler) apiUpdateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.UpdateInvoiceStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSON(w, res)
}
