package amfi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// testClient removes the pacing delay so retry tests run instantly.
func testClient(url string, retries int) *Client {
	c := NewClient(WithURL(url), WithRetries(retries), WithTimeout(time.Second))
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	return c
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("feed body"))
	}))
	defer srv.Close()

	text, err := testClient(srv.URL, 3).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if text != "feed body" {
		t.Errorf("body = %q", text)
	}
}

func TestFetch_RetriesThenSucceeds(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	text, err := testClient(srv.URL, 3).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if text != "ok" || attempts != 3 {
		t.Errorf("text = %q after %d attempts", text, attempts)
	}
}

func TestFetch_ExhaustsRetries(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL, 3).Fetch(context.Background()); err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}
