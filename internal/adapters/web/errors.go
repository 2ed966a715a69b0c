package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"fiduciary-books/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps a service error onto a status code: validation
// failures are 400 with their message, missing records 404, anything else 500
// with the underlying message or fallback when there is none.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, r, ve.Message, "VALIDATION_ERROR", http.StatusBadRequest)
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, "introuvable", "NOT_FOUND", http.StatusNotFound)
	default:
		msg := err.Error()
		if msg == "" {
			msg = fallback
		}
		writeError(w, r, msg, "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}

// errorMessage is the flash text for a failed form post.
func errorMessage(err error) string {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, core.ErrNotFound):
		return "Enregistrement introuvable"
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Erreur"
}

// redirectFlash answers a form post with 303 to path, carrying a flash message.
// path may already contain a query string.
func redirectFlash(w http.ResponseWriter, r *http.Request, path, kind, msg string) {
	u, err := url.Parse(path)
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	q := u.Query()
	q.Set("flash_"+kind, msg)
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}
