// Package response writes the two envelope shapes every endpoint returns.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

type Envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
}

func NewPagination(total int64, limit, offset int) Pagination {
	return Pagination{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset)+int64(limit) < total,
	}
}

func JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	write(w, r, status, Envelope{Success: true, Data: nonNil(data)})
}

// Paginated writes a list envelope; has_more is derived here on every call.
func Paginated[T any](w http.ResponseWriter, r *http.Request, items []T, total int64, limit, offset int) {
	if items == nil {
		items = []T{}
	}
	p := NewPagination(total, limit, offset)
	write(w, r, http.StatusOK, Envelope{Success: true, Data: items, Pagination: &p})
}

// JSONWithPagination writes a single object whose nested collection is
// windowed by p.
func JSONWithPagination(w http.ResponseWriter, r *http.Request, data any, p Pagination) {
	write(w, r, http.StatusOK, Envelope{Success: true, Data: nonNil(data), Pagination: &p})
}

func Error(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	write(w, r, status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message, Details: details},
	})
}

func write(w http.ResponseWriter, r *http.Request, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.WarnContext(r.Context(), "write response failed", "path", r.URL.Path, "error", err)
	}
}

// nonNil keeps "data" present for successful responses that carry nothing.
func nonNil(data any) any {
	if data == nil {
		return struct{}{}
	}
	return data
}
