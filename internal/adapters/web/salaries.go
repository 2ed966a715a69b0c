package web

import (
	"bytes"
	"math"
	"net/http"
	"strconv"
	"strings"

	"fiduciary-books/internal/app"
	"fiduciary-books/internal/core"
)

// looseNumber accepts a JSON number, a numeric string, an empty string or null.
// The raw text is kept so that each field can apply its own fallback.
type looseNumber string

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if s, err := strconv.Unquote(string(b)); err == nil {
		*n = looseNumber(strings.TrimSpace(s))
		return nil
	}
	*n = looseNumber(b)
	return nil
}

// int returns the value as a whole number. ok is false when the text is empty,
// not numeric or has a fractional part.
func (n looseNumber) int() (v int64, ok bool) {
	s := string(n)
	if s == "" {
		return 0, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) ||
		f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// cents treats an empty value as zero and an unreadable one as -1, which the
// salary validation rejects as "Montant invalide".
func (n looseNumber) cents() int64 {
	if n == "" {
		return 0
	}
	v, ok := n.int()
	if !ok {
		return -1
	}
	return v
}

// period returns 0 for unreadable years and months so validation reports them.
func (n looseNumber) period() int {
	v, ok := n.int()
	if !ok || v > math.MaxInt32 || v < math.MinInt32 {
		return 0
	}
	return int(v)
}

type salaryBody struct {
	EmployeeID   string      `json:"employeeId"`
	Year         looseNumber `json:"year"`
	Month        looseNumber `json:"month"`
	GrossCents   looseNumber `json:"grossCents"`
	ChargesCents looseNumber `json:"chargesCents"`
	NetCents     looseNumber `json:"netCents"`
}

func (b salaryBody) request() app.UpsertSalaryRequest {
	return app.UpsertSalaryRequest{
		EmployeeID:   b.EmployeeID,
		Year:         b.Year.period(),
		Month:        b.Month.period(),
		GrossCents:   b.GrossCents.cents(),
		ChargesCents: b.ChargesCents.cents(),
		NetCents:     b.NetCents.cents(),
	}
}

type salariesPageData struct {
	Employees []core.Employee
	Salaries  []core.Salary
}

// salariesPage handles GET /salaries.
func (h *Handler) salariesPage(w http.ResponseWriter, r *http.Request) {
	d := h.buildAppLayoutData(r, "Salaires", "salaries")
	data := salariesPageData{}

	var err error
	if data.Employees, err = h.svc.ListEmployees(r.Context()); err == nil {
		data.Salaries, err = h.svc.ListSalaries(r.Context())
	}
	if err != nil {
		d.FlashMsg = "Impossible de charger les salaires: " + err.Error()
		d.FlashKind = "error"
	}
	h.render(w, r, "salaries", d, data)
}

func (h *Handler) apiListSalaries(w http.ResponseWriter, r *http.Request) {
	salaries, err := h.svc.ListSalaries(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSON(w, salaries)
}

// apiUpsertSalary handles POST /api/salaries/create. Only JSON bodies are accepted.
func (h *Handler) apiUpsertSalary(w http.ResponseWriter, r *http.Request) {
	type response struct {
		OK     bool         `json:"ok"`
		Salary *core.Salary `json:"salary"`
	}
	var body salaryBody
	if !decodeJSON(w, r, &body) {
		return
	}
	sal, err := h.svc.UpsertSalary(r.Context(), body.request())
	if err != nil {
		writeServiceError(w, r, err, "Erreur serveur")
		return
	}
	writeJSON(w, response{OK: true, Salary: sal})
}
