package sentiment

import (
	"context"
	"errors"
)

// ErrUnavailable signals that a classifier backend could not be reached or
// constructed. Callers substitute the fallback instead of retrying.
var ErrUnavailable = errors.New("sentiment classifier unavailable")

// Probabilities is the 3-class distribution returned by a classifier.
type Probabilities struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// Result is a classified passage: score = p_positive - p_negative in [-1, 1]
// and a calibrated confidence in [0, 1].
type Result struct {
	Score         float64       `json:"score"`
	Confidence    float64       `json:"confidence"`
	Probabilities Probabilities `json:"probabilities"`
	Source        string        `json:"source"`
}

// Classifier maps text to a sentiment score and confidence. Implementations
// may block on model inference or a network round trip; they must honor the
// context deadline.
type Classifier interface {
	Classify(ctx context.Context, text string) (Result, error)
}
