package web

import (
	"net/http"

	"fiduciary-books/internal/app"
	"fiduciary-books/internal/core"
)

type nameRequest struct {
	Name string `schema:"name" json:"name"`
}

type suppliersPageData struct {
	Query     string
	Suppliers []core.Supplier
}

// ── Clients ───────────────────────────────────────────────────────────────────

// clientsPage handles GET /clients.
func (h *Handler) clientsPage(w http.ResponseWriter, r *http.Request) {
	d := h.buildAppLayoutData(r, "Clients", "clients")
	clients, err := h.svc.ListClients(r.Context())
	if err != nil {
		d.FlashMsg = "Impossible de charger les clients: " + err.Error()
		d.FlashKind = "error"
	}
	h.render(w, r, "clients", d, clients)
}

// clientCreateAction handles POST /clients. A blank name redirects without a message.
func (h *Handler) clientCreateAction(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := h.decodeForm(r, &req); err != nil {
		redirectFlash(w, r, "/clients", "error", "Formulaire invalide")
		return
	}
	res, err := h.svc.CreateClient(r.Context(), req.Name)
	if err != nil {
		redirectFlash(w, r, "/clients", "error", errorMessage(err))
		return
	}
	if !res.Applied() {
		http.Redirect(w, r, "/clients", http.StatusSeeOther)
		return
	}
	redirectFlash(w, r, "/clients", "success", "Client ajouté")
}

func (h *Handler) apiListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.ListClients(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSON(w, clients)
}

func (h *Handler) apiCreateClient(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.CreateClient(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSON(w, res)
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

// suppliersPage handles GET /suppliers?q=.
func (h *Handler) suppliersPage(w http.ResponseWriter, r *http.Request) {
	d := h.buildAppLayoutData(r, "Fournisseurs", "suppliers")
	q := r.URL.Query().Get("q")
	suppliers, err := h.svc.ListSuppliers(r.Context(), q)
	if err != nil {
		d.FlashMsg = "Impossible de charger les fournisseurs: " + err.Error()
		d.FlashKind = "error"
	}
	h.render(w, r, "suppliers", d, suppliersPageData{Query: q, Suppliers: suppliers})
}

// supplierCreateAction handles POST /suppliers.
func (h *Handler) supplierCreateAction(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := h.decodeForm(r, &req); err != nil {
		redirectFlash(w, r, "/suppliers", "error", "Formulaire invalide")
		return
	}
	res, err := h.svc.CreateSupplier(r.Context(), req.Name)
	if err != nil {
		redirectFlash(w, r, "/suppliers", "error", errorMessage(err))
		return
	}
	if !res.Applied() {
		http.Redirect(w, r, "/suppliers", http.StatusSeeOther)
		return
	}
	redirectFlash(w, r, "/suppliers", "success", "Fournisseur ajouté")
}

func (h *Handler) apiListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.svc.ListSuppliers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSON(w, suppliers)
}

func (h *Handler) apiCreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.CreateSupplier(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSON(w, res)
}

// ── Employees ─────────────────────────────────────────────────────────────────

func (h *Handler) apiListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.ListEmployees(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSON(w, employees)
}

// apiCreateEmployee handles POST /api/salaries/employee-create.
func (h *Handler) apiCreateEmployee(w http.ResponseWriter, r *http.Request) {
	type response struct {
		OK       bool           `json:"ok"`
		Employee *core.Employee `json:"employee"`
	}
	var req app.CreateEmployeeRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	emp, err := h.svc.CreateEmployee(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSON(w, response{OK: true, Employee: emp})
}
