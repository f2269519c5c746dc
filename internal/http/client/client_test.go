package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeAPI struct {
	valid  string
	logins atomic.Int32
	calls  atomic.Int32
	bodies []string
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.logins.Add(1)
		if r.Header.Get("Authorization") != "" {
			t.Errorf("login must not carry a token")
		}
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "right" {
			writeEnvelopeForTest(w, http.StatusUnauthorized, map[string]any{"success": false, "error": map[string]string{"code": "UNAUTHORIZED", "message": "Invalid email or password"}})
			return
		}
		writeEnvelopeForTest(w, http.StatusOK, map[string]any{"success": true, "data": map[string]string{"token": f.valid}})
	})
	mux.HandleFunc("/api/v1/admin/blogs", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer "+f.valid {
			writeEnvelopeForTest(w, http.StatusUnauthorized, map[string]any{"success": false, "error": map[string]string{"code": "UNAUTHORIZED", "message": "Invalid or expired token"}})
			return
		}
		if r.Method == http.MethodPost {
			b, _ := io.ReadAll(r.Body)
			f.bodies = append(f.bodies, string(b))
			writeEnvelopeForTest(w, http.StatusCreated, map[string]any{"success": true, "data": map[string]any{"id": 9}})
			return
		}
		writeEnvelopeForTest(w, http.StatusOK, map[string]any{
			"success":    true,
			"data":       []map[string]any{{"id": 1}},
			"pagination": map[string]any{"total": 3, "limit": 1, "offset": 0, "has_more": true},
		})
	})
	return mux
}

func writeEnvelopeForTest(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClientReauthenticatesOnceAndRetries(t *testing.T) {
	api := &fakeAPI{valid: "fresh"}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	c := New(srv.URL, WithToken("stale"), WithCredentials("admin@example.com", "right"))
	var items []struct{ ID uint }
	page, err := c.Get(context.Background(), "/api/v1/admin/blogs?limit=1", &items)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(items) != 1 || page == nil || page.Total != 3 || !page.HasMore {
		t.Fatalf("unexpected result items=%v page=%+v", items, page)
	}
	if api.logins.Load() != 1 || api.calls.Load() != 2 {
		t.Fatalf("expected one login and one retry, logins=%d calls=%d", api.logins.Load(), api.calls.Load())
	}
	if c.Token() != "fresh" {
		t.Fatalf("expected refreshed token, got %q", c.Token())
	}

	if _, err := c.Get(context.Background(), "/api/v1/admin/blogs", nil); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if api.logins.Load() != 1 {
		t.Fatalf("expected no further login, got %d", api.logins.Load())
	}
}

func TestClientReplaysBodyOnRetry(t *testing.T) {
	api := &fakeAPI{valid: "fresh"}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	c := New(srv.URL, WithReauthenticate(func(context.Context, *Client) (string, error) { return "fresh", nil }))
	var created struct{ ID uint }
	if _, err := c.Do(context.Background(), http.MethodPost, "/api/v1/admin/blogs", map[string]string{"title": "Hello"}, &created); err != nil {
		t.Fatalf("post: %v", err)
	}
	if created.ID != 9 {
		t.Fatalf("expected id 9, got %d", created.ID)
	}
	if len(api.bodies) != 1 || api.bodies[0] != `{"title":"Hello"}` {
		t.Fatalf("expected replayed body, got %v", api.bodies)
	}
}

func TestClientSurfacesUnauthorizedWithoutReauth(t *testing.T) {
	api := &fakeAPI{valid: "fresh"}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	c := New(srv.URL, WithToken("stale"))
	_, err := c.Get(context.Background(), "/api/v1/admin/blogs", nil)
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	var apiErr *Error
	if e, ok := err.(*Error); ok {
		apiErr = e
	}
	if apiErr == nil || apiErr.Code != "UNAUTHORIZED" || apiErr.Message != "Invalid or expired token" {
		t.Fatalf("unexpected error: %#v", err)
	}
	if api.calls.Load() != 1 {
		t.Fatalf("expected a single call, got %d", api.calls.Load())
	}
}

func TestClientFailedReauthStopsAfterOneAttempt(t *testing.T) {
	api := &fakeAPI{valid: "fresh"}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	c := New(srv.URL, WithToken("stale"), WithCredentials("admin@example.com", "wrong"))
	if _, err := c.Get(context.Background(), "/api/v1/admin/blogs", nil); err == nil {
		t.Fatal("expected error when re-authentication fails")
	}
	if api.logins.Load() != 1 {
		t.Fatalf("expected exactly one login attempt, got %d", api.logins.Load())
	}
	if c.Token() != "stale" {
		t.Fatalf("token should be unchanged, got %q", c.Token())
	}
}

func TestClientConcurrentUnauthorizedSharesOneLogin(t *testing.T) {
	const workers = 8
	var logins, rejected atomic.Int32
	allRejected := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		logins.Add(1)
		// Hold the login open until every worker has seen its 401.
		select {
		case <-allRejected:
		case <-time.After(2 * time.Second):
		}
		writeEnvelopeForTest(w, http.StatusOK, map[string]any{"success": true, "data": map[string]string{"token": "fresh"}})
	})
	mux.HandleFunc("/api/v1/admin/blogs", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			if rejected.Add(1) == workers {
				close(allRejected)
			}
			writeEnvelopeForTest(w, http.StatusUnauthorized, map[string]any{"success": false, "error": map[string]string{"code": "UNAUTHORIZED", "message": "Invalid or expired token"}})
			return
		}
		writeEnvelopeForTest(w, http.StatusOK, map[string]any{"success": true, "data": []map[string]any{}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, WithToken("stale"), WithCredentials("admin@example.com", "right"))
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var out []map[string]any
			if _, err := c.Get(context.Background(), "/api/v1/admin/blogs", &out); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("request failed: %v", err)
	}
	if logins.Load() != 1 {
		t.Fatalf("expected one shared login, got %d", logins.Load())
	}
	if c.Token() != "fresh" {
		t.Fatalf("expected refreshed token, got %q", c.Token())
	}
}
