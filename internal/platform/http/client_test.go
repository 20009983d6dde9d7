package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestDoRequestSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{Timeout: time.Second, RequestsPerSec: 100})
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)

	_, err := client.DoRequest(context.Background(), req)

	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected a 500 status error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("DoRequest made %d attempts, want exactly 1", calls.Load())
	}
}

func TestDoRequestWithRetryRecovers(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{Timeout: time.Second, RequestsPerSec: 100})
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)

	resp, err := client.DoRequestWithRetry(context.Background(), req)
	if err != nil {
		t.Fatalf("expected recovery after retries, got %v", err)
	}
	resp.Body.Close()

	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}
