package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"fiduciary-books/internal/app"
	"fiduciary-books/internal/core"
)

type billsPageData struct {
	Result    *app.BillsResult
	Suppliers []core.Supplier
}

type statusRequest struct {
	Status string `schema:"status" json:"status"`
}

// ── Browser page handlers ─────────────────────────────────────────────────────

// billsPage handles GET /bills.
func (h *Handler) billsPage(w http.ResponseWriter, r *http.Request) {
	d := h.buildAppLayoutData(r, "Factures fournisseurs", "bills")

	result, err := h.svc.ListBills(r.Context(), h.listQuery(r))
	if err != nil {
		d.FlashMsg = "Impossible de charger les factures: " + err.Error()
		d.FlashKind = "error"
		result = &app.BillsResult{Listing: &core.BillListing{}}
	}
	d.Year = result.Year

	suppliers, err := h.svc.ListSuppliers(r.Context(), "")
	if err != nil && d.FlashKind != "error" {
		d.FlashMsg = "Impossible de charger les fournisseurs: " + err.Error()
		d.FlashKind = "error"
	}
	h.render(w, r, "bills", d, billsPageData{Result: result, Suppliers: suppliers})
}

// billCreateAction handles POST /bills.
func (h *Handler) billCreateAction(w http.ResponseWriter, r *http.Request) {
	var req app.CreateBillRequest
	if err := h.decodeForm(r, &req); err != nil {
		redirectFlash(w, r, "/bills", "error", "Formulaire invalide")
		return
	}
	bill, err := h.svc.CreateBill(r.Context(), req)
	if err != nil {
		redirectFlash(w, r, "/bills", "error", errorMessage(err))
		return
	}
	redirectFlash(w, r, "/bills?year="+strconv.Itoa(bill.IssueDate.Year()), "success", "Facture enregistrée")
}

// billStatusAction handles POST /bills/{id}/status.
func (h *Handler) billStatusAction(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := h.decodeForm(r, &req); err != nil {
		redirectFlash(w, r, backTo(r, "/bills"), "error", "Formulaire invalide")
		return
	}
	res, err := h.svc.UpdateBillStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		redirectFlash(w, r, backTo(r, "/bills"), "error", errorMessage(err))
		return
	}
	if !res.Applied() {
		http.Redirect(w, r, backTo(r, "/bills"), http.StatusSeeOther)
		return
	}
	redirectFlash(w, r, backTo(r, "/bills"), "success", "Statut mis à jour")
}

// billDeleteAction handles POST /bills/{id}/delete.
func (h *Handler) billDeleteAction(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DeleteBill(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		redirectFlash(w, r, backTo(r, "/bills"), "error", errorMessage(err))
		return
	}
	if !res.Applied() {
		http.Redirect(w, r, backTo(r, "/bills"), http.StatusSeeOther)
		return
	}
	redirectFlash(w, r, backTo(r, "/bills"), "success", "Facture supprimée")
}

// ── JSON API handlers ─────────────────────────────────────────────────────────

// apiListBills handles GET /api/bills?year=&q=&status=&sort=.
func (h *Handler) apiListBills(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListBills(r.Context(), h.listQuery(r))
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSON(w, result)
}

// apiCreateBill handles POST /api/bills.
func (h *Handler) apiCreateBill(w http.ResponseWriter, r *http.Request) {
	var req app.CreateBillRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	bill, err := h.svc.CreateBill(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSONStatus(w, http.StatusCreated, bill)
}

// apiUpdateBillStatus handles POST /api/bills/{id}/status.
func (h *Handler) apiUpdateBillStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.UpdateBillStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSON(w, res)
}

// apiDeleteBill handles DELETE /api/bills/{id}.
func (h *Handler) apiDeleteBill(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DeleteBill(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSON(w, res)
}

// backTo returns the same-origin path in the "back" form field, or fallback.
// Only relative paths are honoured.
func backTo(r *http.Request, fallback string) string {
	back := r.PostFormValue("back")
	if back == "" || !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") {
		return fallback
	}
	if _, err := url.Parse(back); err != nil {
		return fallback
	}
	return back
}
