package web

import (
	"net/http"
	"strconv"

	"fiduciary-books/internal/app"
	"fiduciary-books/internal/core"
)

// expensesPage handles GET /expenses?year=.
func (h *Handler) expensesPage(w http.ResponseWriter, r *http.Request) {
	d := h.buildAppLayoutData(r, "Dépenses", "expenses")

	listing, err := h.svc.ListExpenses(r.Context(), r.URL.Query().Get("year"))
	if err != nil {
		d.FlashMsg = "Impossible de charger les dépenses: " + err.Error()
		d.FlashKind = "error"
		listing = &core.ExpenseListing{}
	}
	d.Year = listing.Year
	h.render(w, r, "expenses", d, listing)
}

// expenseCreateAction handles POST /expenses.
func (h *Handler) expenseCreateAction(w http.ResponseWriter, r *http.Request) {
	var req app.CreateExpenseRequest
	if err := h.decodeForm(r, &req); err != nil {
		redirectFlash(w, r, "/expenses", "error", "Formulaire invalide")
		return
	}
	e, err := h.svc.CreateExpense(r.Context(), req)
	if err != nil {
		redirectFlash(w, r, "/expenses", "error", errorMessage(err))
		return
	}
	redirectFlash(w, r, "/expenses?year="+strconv.Itoa(e.Date.Year()), "success", "Dépense enregistrée")
}

func (h *Handler) apiListExpenses(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.ListExpenses(r.Context(), r.URL.Query().Get("year"))
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSON(w, listing)
}

func (h *Handler) apiCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req app.CreateExpenseRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	e, err := h.svc.CreateExpense(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSONStatus(w, http.StatusCreated, e)
}
