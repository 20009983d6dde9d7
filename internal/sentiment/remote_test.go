package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestRemote(url string) *RemoteClassifier {
	return NewRemoteClassifier(RemoteOptions{
		Endpoint:       url,
		RequestTimeout: 2 * time.Second,
		RequestsPerSec: 100,
	})
}

func TestRemoteClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req classifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request payload: %v", err)
		}
		if req.Text == "" {
			t.Error("empty passage sent to classifier")
		}
		json.NewEncoder(w).Encode(classifyResponse{Positive: 0.7, Negative: 0.1, Neutral: 0.2})
	}))
	defer srv.Close()

	got, err := newTestRemote(srv.URL).Classify(context.Background(), "strong growth expected")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Score != 0.7-0.1 {
		t.Errorf("score = %v, want %v", got.Score, 0.7-0.1)
	}
	if got.Source != "remote" {
		t.Errorf("source = %q, want remote", got.Source)
	}
	if got.Confidence < 0.1 || got.Confidence > 1.0 {
		t.Errorf("confidence %v outside [0.1, 1.0]", got.Confidence)
	}
}

func TestRemoteClassifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestRemote(srv.URL).Classify(context.Background(), "text")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestRemoteClassifyMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	if _, err := newTestRemote(srv.URL).Classify(context.Background(), "text"); err == nil {
		t.Error("expected a parse error")
	}
}

func TestRemoteClassifyEmptyDistribution(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(classifyResponse{})
	}))
	defer srv.Close()

	if _, err := newTestRemote(srv.URL).Classify(context.Background(), "text"); err == nil {
		t.Error("expected rejection of a zero probability mass")
	}
}

func TestRemoteClassifyUnreachable(t *testing.T) {
	_, err := newTestRemote("http://127.0.0.1:1/classify").Classify(context.Background(), "text")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
