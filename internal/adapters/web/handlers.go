package web

import (
	"encoding/json"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"

	"fiduciary-books/internal/app"
	"fiduciary-books/internal/core"
	"fiduciary-books/internal/logging"
	"fiduciary-books/internal/metrics"
	webui "fiduciary-books/web"
)

// Options configures the HTTP surface. Zero values are usable.
type Options struct {
	AllowedOrigins []string
	BodyLimit      int64
	Logger         *log.Logger
	Metrics        *metrics.Metrics
	// DefaultVATRate is shown next to VAT inputs; it must match the rate the
	// service applies to blank fields.
	DefaultVATRate string
}

// Handler holds the ApplicationService, the chi router and the parsed page templates.
type Handler struct {
	svc        app.ApplicationService
	router     chi.Router
	pages      *pageSet
	forms      *schema.Decoder
	logger     *log.Logger
	fileServer http.Handler
	defaultVAT string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, opts Options) http.Handler {
	staticFS, err := fs.Sub(webui.Static, "static")
	if err != nil {
		panic("web/static embed sub-FS failed: " + err.Error())
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.BodyLimit <= 0 {
		opts.BodyLimit = 1 << 20
	}
	if strings.TrimSpace(opts.DefaultVATRate) == "" {
		opts.DefaultVATRate = core.DefaultVATRate
	}

	forms := schema.NewDecoder()
	forms.IgnoreUnknownKeys(true)

	h := &Handler{
		svc:        svc,
		pages:      mustParsePages(),
		forms:      forms,
		logger:     opts.Logger.WithPrefix("http"),
		fileServer: http.FileServer(http.FS(staticFS)),
		defaultVAT: opts.DefaultVATRate,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(h.logger))
	r.Use(Recoverer(h.logger))
	r.Use(CORS(opts.AllowedOrigins))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Static files served at /static/* ─────────────────────────────────────
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/static", h.fileServer).ServeHTTP(w, req)
	})

	// ── Browser pages ─────────────────────────────────────────────────────────
	r.Get("/", h.dashboardPage)
	r.Get("/bills", h.billsPage)
	r.Get("/invoices", h.invoicesPage)
	r.Get("/expenses", h.expensesPage)
	r.Get("/clients", h.clientsPage)
	r.Get("/suppliers", h.suppliersPage)
	r.Get("/salaries", h.salariesPage)

	// ── Mutations: 1 MB body limit by default ────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(opts.BodyLimit))

		// Form posts (redirect back with a flash message)
		r.Post("/bills", h.billCreateAction)
		r.Post("/bills/{id}/status", h.billStatusAction)
		r.Post("/bills/{id}/delete", h.billDeleteAction)
		r.Post("/invoices", h.invoiceCreateAction)
		r.Post("/invoices/{id}/status", h.invoiceStatusAction)
		r.Post("/expenses", h.expenseCreateAction)
		r.Post("/clients", h.clientCreateAction)
		r.Post("/suppliers", h.supplierCreateAction)

		// JSON API
		r.Post("/api/bills", h.apiCreateBill)
		r.Post("/api/bills/{id}/status", h.apiUpdateBillStatus)
		r.Delete("/api/bills/{id}", h.apiDeleteBill)
		r.Post("/api/invoices", h.apiCreateInvoice)
		r.Post("/api/invoices/{id}/status", h.apiUpdateInvoiceStatus)
		r.Post("/api/expenses", h.apiCreateExpense)
		r.Post("/api/clients", h.apiCreateClient)
		r.Post("/api/suppliers", h.apiCreateSupplier)
		r.Post("/api/salaries/create", h.apiUpsertSalary)
		r.Post("/api/salaries/employee-create", h.apiCreateEmployee)
	})

	// ── JSON API reads ────────────────────────────────────────────────────────
	r.Get("/api/dashboard", h.apiDashboard)
	r.Get("/api/bills", h.apiListBills)
	r.Get("/api/invoices", h.apiListInvoices)
	r.Get("/api/expenses", h.apiListExpenses)
	r.Get("/api/clients", h.apiListClients)
	r.Get("/api/suppliers", h.apiListSuppliers)
	r.Get("/api/employees", h.apiListEmployees)
	r.Get("/api/salaries", h.apiListSalaries)

	h.router = r
	return r
}

// health pings the datastore.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	if err := h.svc.Health(r.Context()); err != nil {
		writeError(w, r, err.Error(), "UNAVAILABLE", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, response{Status: "ok"})
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}

// decodeForm parses an urlencoded or multipart body into v using its schema tags.
func (h *Handler) decodeForm(r *http.Request, v any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return h.forms.Decode(v, r.PostForm)
}

// decodeBody accepts either a JSON or a form-encoded body, chosen by Content-Type.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if isJSON(r) {
		return decodeJSON(w, r, v)
	}
	if err := h.decodeForm(r, v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid form body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// listQuery reads the shared listing parameters from the query string.
func (h *Handler) listQuery(r *http.Request) app.ListQuery {
	var q app.ListQuery
	_ = h.forms.Decode(&q, r.URL.Query())
	return q
}
