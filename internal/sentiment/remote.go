package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	platformhttp "github.com/finsight/decider/internal/platform/http"
)

// RemoteClassifier calls an external sentiment-classification service over
// HTTP. The call is a single attempt within the caller's deadline; transport
// failures surface as errors so the fallback decorator can substitute.
type RemoteClassifier struct {
	endpoint string
	client   *platformhttp.Client
	logger   zerolog.Logger
}

// RemoteOptions holds options for creating a RemoteClassifier.
type RemoteOptions struct {
	Endpoint       string
	RequestTimeout time.Duration
	RequestsPerSec int
}

// NewRemoteClassifier creates a classifier backed by a sentiment server
// endpoint.
func NewRemoteClassifier(opts RemoteOptions) *RemoteClassifier {
	return &RemoteClassifier{
		endpoint: opts.Endpoint,
		client: platformhttp.NewClient(platformhttp.ClientOptions{
			Timeout:        opts.RequestTimeout,
			RequestsPerSec: opts.RequestsPerSec,
		}),
		logger: log.With().Str("component", "sentiment_remote").Logger(),
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// Classify sends the passage to the remote model and calibrates its 3-class
// distribution into a confidence.
func (c *RemoteClassifier) Classify(ctx context.Context, text string) (Result, error) {
	payload, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return Result{}, fmt.Errorf("encoding classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("creating classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.DoRequest(ctx, req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Sentiment server unreachable")
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("reading classify response: %w", err)
	}

	var cr classifyResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		c.logger.Error().Err(err).Str("response", string(body)).Msg("Malformed classify response")
		return Result{}, fmt.Errorf("parsing classify response: %w", err)
	}

	probs := Probabilities{Positive: cr.Positive, Negative: cr.Negative, Neutral: cr.Neutral}
	if probs.Positive+probs.Negative+probs.Neutral <= 0 {
		return Result{}, fmt.Errorf("classify response carries no probability mass")
	}

	result := Result{
		Score:         probs.Positive - probs.Negative,
		Confidence:    Calibrate(probs),
		Probabilities: probs,
		Source:        "remote",
	}

	c.logger.Debug().
		Float64("score", result.Score).
		Float64("confidence", result.Confidence).
		Msg("Classified passage")

	return result, nil
}

// Ping probes the sentiment server health endpoint with retries. Used at
// service startup, never on the decision path.
func (c *RemoteClassifier) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.DoRequestWithRetry(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	resp.Body.Close()
	return nil
}
