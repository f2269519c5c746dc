package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sandeepkv93/storefront-admin-api/internal/apperr"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
)

const dateLayout = "2006-01-02"

// parseListQuery reads q, limit and offset. Malformed or out-of-range values
// are rejected rather than silently clamped.
func parseListQuery(r *http.Request) (repository.ListQuery, error) {
	values := r.URL.Query()
	q := repository.ListQuery{
		Q:     strings.TrimSpace(values.Get("q")),
		Limit: repository.DefaultLimit,
	}
	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return q, apperr.BadRequest("limit must be a non-negative integer")
		}
		if n > repository.MaxLimit {
			return q, apperr.BadRequest("limit must not exceed " + strconv.Itoa(repository.MaxLimit))
		}
		q.Limit = n
	}
	if raw := strings.TrimSpace(values.Get("offset")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return q, apperr.BadRequest("offset must be a non-negative integer")
		}
		q.Offset = n
	}
	return q, nil
}

func parsePathID(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.BadRequest("Invalid " + name)
	}
	return uint(id), nil
}

func queryString(r *http.Request, key string) string {
	return strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key)))
}

func queryBool(r *http.Request, key string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperr.BadRequest(key + " must be true or false")
	}
	return &v, nil
}

func queryUint(r *http.Request, key string) (uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, apperr.BadRequest(key + " must be a positive integer")
	}
	return uint(v), nil
}

func queryRating(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > 5 {
		return 0, apperr.BadRequest(key + " must be between 1 and 5")
	}
	return v, nil
}

func queryFloat(r *http.Request, key string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, apperr.BadRequest(key + " must be a non-negative number")
	}
	return &v, nil
}

// queryTime accepts RFC 3339 or a bare date. Both bounds are inclusive, so a
// bare date used as an upper bound resolves to the last instant of that day.
func queryTime(r *http.Request, key string, upper bool) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, apperr.BadRequest(key + " must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	}
	if upper {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}

// firstErr returns the first non-nil error so filter parsing reads top-down.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
