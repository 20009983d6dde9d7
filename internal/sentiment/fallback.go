package sentiment

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Lazy defers construction of a classifier handle (model weights, HTTP
// client) until first use and guards it against concurrent
// double-construction. A failed construction is cached: the engine keeps
// falling back instead of re-paying the construction cost every run.
type Lazy struct {
	construct func() (Classifier, error)
	once      sync.Once
	cls       Classifier
	err       error
}

// NewLazy wraps a classifier constructor in a single-flight cell.
func NewLazy(construct func() (Classifier, error)) *Lazy {
	return &Lazy{construct: construct}
}

// Classify constructs the underlying classifier on first call.
func (l *Lazy) Classify(ctx context.Context, text string) (Result, error) {
	l.once.Do(func() {
		l.cls, l.err = l.construct()
	})
	if l.err != nil {
		return Result{}, l.err
	}
	return l.cls.Classify(ctx, text)
}

// Peek forces construction and returns the underlying classifier, nil when
// construction failed. For startup probes that need the concrete backend.
func (l *Lazy) Peek() Classifier {
	l.once.Do(func() {
		l.cls, l.err = l.construct()
	})
	return l.cls
}

// WithFallback runs the primary classifier under a bounded timeout and
// substitutes the deterministic keyword heuristic on timeout, error or
// unavailability. Classify on the composed classifier never fails.
type WithFallback struct {
	primary Classifier
	timeout time.Duration
	logger  zerolog.Logger
}

// NewWithFallback composes a primary classifier with the keyword fallback.
func NewWithFallback(primary Classifier, timeout time.Duration) *WithFallback {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WithFallback{
		primary: primary,
		timeout: timeout,
		logger:  log.With().Str("component", "sentiment_fallback").Logger(),
	}
}

// Classify implements Classifier. The error is always nil.
func (f *WithFallback) Classify(ctx context.Context, text string) (Result, error) {
	if f.primary != nil {
		cctx, cancel := context.WithTimeout(ctx, f.timeout)
		result, err := f.primary.Classify(cctx, text)
		cancel()
		if err == nil {
			return result, nil
		}
		f.logger.Warn().Err(err).Msg("Primary classifier failed, using keyword fallback")
	}
	return ClassifyText(text), nil
}
