package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/middleware"
)

var adminForTest = domain.Identity{ID: 7, Email: "ops@example.com", Role: "admin"}

type envelopeForTest struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Total   int64 `json:"total"`
		Limit   int   `json:"limit"`
		Offset  int   `json:"offset"`
		HasMore bool  `json:"has_more"`
	} `json:"pagination"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newRouterForTest mounts routes behind a stub gate that authenticates every
// request as adminForTest.
func newRouterForTest(mount func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithIdentity(req.Context(), adminForTest)))
		})
	})
	mount(r)
	return r
}

func doRequestForTest(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelopeForTest) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.RemoteAddr = "198.51.100.4:4000"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env envelopeForTest
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, rr.Body.String())
	}
	return rr, env
}

func expectErrorForTest(t *testing.T, rr *httptest.ResponseRecorder, env envelopeForTest, status int, code, message string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected status %d, got %d body=%s", status, rr.Code, rr.Body.String())
	}
	if env.Success || env.Error == nil {
		t.Fatalf("expected error envelope, got %s", rr.Body.String())
	}
	if env.Error.Code != code || env.Error.Message != message {
		t.Fatalf("expected %s %q, got %s %q", code, message, env.Error.Code, env.Error.Message)
	}
}
