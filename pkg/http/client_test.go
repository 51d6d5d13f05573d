package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetJSONSendsHeadersAndReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.Header.Get("Accept") != "application/json" || r.Header.Get("User-Agent") != "radar-test" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	b, err := NewClient(WithUserAgent("radar-test")).GetJSON(context.Background(), srv.URL+"/api/v3/indices")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `{"status":"ok"}` {
		t.Fatalf("unexpected body %q", b)
	}
}

func TestGetJSONReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	_, err := NewClient().GetJSON(context.Background(), srv.URL)
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadGateway || se.Body != "upstream down" {
		t.Fatalf("expected StatusError 502, got %v", err)
	}
}

func TestGetJSONRejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	if _, err := NewClient(WithMaxBodySize(16)).GetJSON(context.Background(), srv.URL); err == nil {
		t.Fatal("expected size limit error")
	}
}
