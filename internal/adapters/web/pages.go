package web

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"fiduciary-books/internal/core"
	webui "fiduciary-books/web"
	"fiduciary-books/web/templates/layouts"
)

const officeName = "Fiduciaire"

// pageNames lists every template under web/templates besides the layout.
var pageNames = []string{"dashboard", "bills", "invoices", "expenses", "clients", "suppliers", "salaries"}

type pageSet struct {
	byName map[string]*template.Template
}

// pageData is what every page template receives.
type pageData struct {
	Layout layouts.AppLayoutData
	Data   any
}

var templateFuncs = template.FuncMap{
	"chf":  core.FormatCHF,
	"rate": core.FormatRate,
	"date": core.ISODate,
	"datep": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return core.ISODate(*t)
	},
	"str": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"month": func(t time.Time) string {
		return t.UTC().Format("2006-01")
	},
	"billStatuses":    func() []core.BillStatus { return core.BillStatuses },
	"invoiceStatuses": func() []core.InvoiceStatus { return core.InvoiceStatuses },
}

func mustParsePages() *pageSet {
	ps := &pageSet{byName: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t := template.Must(template.New(name).Funcs(templateFuncs).
			ParseFS(webui.Templates, "templates/layout.html", "templates/"+name+".html"))
		ps.byName[name] = t
	}
	return ps
}

// render executes the named page into a buffer so a template failure can
// still produce a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, d layouts.AppLayoutData, data any) {
	t, ok := h.pages.byName[name]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", pageData{Layout: d, Data: data}); err != nil {
		h.logger.Error("render page", "page", name, "err", err, "request_id", requestIDFromContext(r.Context()))
		http.Error(w, "Erreur serveur", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

// dashboardPage handles GET /.
func (h *Handler) dashboardPage(w http.ResponseWriter, r *http.Request) {
	d := h.buildAppLayoutData(r, "Tableau de bord", "dashboard")

	result, err := h.svc.GetDashboard(r.Context(), r.URL.Query().Get("year"))
	if err != nil {
		d.FlashMsg = "Impossible de charger le tableau de bord: " + err.Error()
		d.FlashKind = "error"
		h.render(w, r, "dashboard", d, &core.Dashboard{OverdueInvoices: []core.OverdueInvoice{}})
		return
	}
	d.Year = result.Dashboard.Year
	h.render(w, r, "dashboard", d, result.Dashboard)
}

// apiDashboard handles GET /api/dashboard?year=.
func (h *Handler) apiDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetDashboard(r.Context(), r.URL.Query().Get("year"))
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSON(w, result)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// buildAppLayoutData constructs AppLayoutData and picks up any flash message
// left by a redirecting form post.
func (h *Handler) buildAppLayoutData(r *http.Request, title, activeNav string) layouts.AppLayoutData {
	d := layouts.AppLayoutData{
		Title:      title,
		OfficeName: officeName,
		ActiveNav:  activeNav,
		DefaultVAT: h.defaultVAT,
	}
	q := r.URL.Query()
	if fe := q.Get("flash_error"); fe != "" {
		d.FlashMsg = fe
		d.FlashKind = "error"
	}
	if fs := q.Get("flash_success"); fs != "" {
		d.FlashMsg = fs
		d.FlashKind = "success"
	}
	return d
}
