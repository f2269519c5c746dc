package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/sandeepkv93/storefront-admin-api/internal/config"
)

func TestServeDrainsOnCancel(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })
	a := New(
		&config.Config{ShutdownTimeout: time.Second, ShutdownHTTPDrainTimeout: time.Second},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		&http.Server{Handler: mux, ReadHeaderTimeout: time.Second},
		nil, nil, client,
	)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "pong" {
		t.Fatalf("unexpected body %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
	if err := client.Ping(context.Background()).Err(); err == nil {
		t.Fatal("expected redis client to be closed")
	}
}

func TestOrDefault(t *testing.T) {
	if got := orDefault(0, time.Second); got != time.Second {
		t.Fatalf("expected default, got %v", got)
	}
	if got := orDefault(3*time.Second, time.Second); got != 3*time.Second {
		t.Fatalf("expected configured value, got %v", got)
	}
}
