package netx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGet(t *testing.T) {
	t.Run("success 200 OK", func(t *testing.T) {
		var gotMethod, gotAuth, gotQuery string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotAuth = r.Header.Get("Authorization")
			gotQuery = r.URL.Query().Get("q")
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer ts.Close()

		h := http.Header{}
		h.Set("Authorization", "Bearer abc")
		resp, err := Get(context.Background(), ts.Client(), ts.URL+"/x?q=1", h)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodGet {
			t.Fatalf("method = %q, want GET", gotMethod)
		}
		if gotAuth != "Bearer abc" {
			t.Fatalf("Authorization = %q", gotAuth)
		}
		if gotQuery != "1" {
			t.Fatalf("query q = %q, want 1", gotQuery)
		}
		if resp.StatusCode != http.StatusOK || string(resp.Body) != `{"ok":true}` {
			t.Fatalf("resp = %d %q", resp.StatusCode, resp.Body)
		}
	})

	t.Run("non-2xx -> StatusError with body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"down"}`))
		}))
		defer ts.Close()

		resp, err := Get(context.Background(), nil, ts.URL, nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		var se *StatusError
		if !errors.As(err, &se) {
			t.Fatalf("error %T is not *StatusError", err)
		}
		if se.StatusCode != http.StatusBadGateway {
			t.Fatalf("status = %d, want 502", se.StatusCode)
		}
		if !strings.Contains(err.Error(), "502") {
			t.Fatalf("error = %q, want to contain 502", err.Error())
		}
		if resp == nil || string(resp.Body) != `{"error":"down"}` {
			t.Fatalf("response body not preserved: %+v", resp)
		}
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		_, err := Get(context.Background(), nil, ts.URL, nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		var se *StatusError
		if errors.As(err, &se) {
			t.Fatalf("got wrong kind of error: %v", err)
		}
	})

	t.Run("context deadline", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer ts.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := Get(ctx, nil, ts.URL, nil)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("error = %v, want deadline exceeded", err)
		}
	})
}
