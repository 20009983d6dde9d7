package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/finsight/decider/internal/analysis/calendar"
	"github.com/finsight/decider/internal/analysis/levels"
	"github.com/finsight/decider/internal/analysis/regime"
	"github.com/finsight/decider/internal/analysis/technical"
	"github.com/finsight/decider/internal/model"
	"github.com/finsight/decider/internal/risk"
	"github.com/finsight/decider/internal/sentiment"
)

// Weights are the fixed component weights of the decision synthesis. They
// sum to 1.0.
type Weights struct {
	Technical float64
	Regime    float64
	Levels    float64
	Economic  float64
}

// DefaultWeights returns the production weighting.
func DefaultWeights() Weights {
	return Weights{Technical: 0.30, Regime: 0.25, Levels: 0.20, Economic: 0.25}
}

// Options configures an Engine.
type Options struct {
	// Classifier is the sentiment capability. Optional: when nil the
	// deterministic keyword heuristic classifies every passage.
	Classifier sentiment.Classifier
	// ClassifierTimeout bounds the classifier call. Default 5s.
	ClassifierTimeout time.Duration
	// CalendarBlendWeight is the share of the calendar rule score inside the
	// economic+sentiment component. Default 0.3.
	CalendarBlendWeight float64
	Weights             Weights
}

// Engine evaluates MarketContext snapshots into trading decisions. It holds
// no mutable state besides the shared classifier handle, so evaluations for
// different contexts may run concurrently.
type Engine struct {
	classifier *sentiment.WithFallback
	weights    Weights
	blend      float64
	logger     zerolog.Logger
}

// New creates a decision engine.
func New(opts Options) *Engine {
	w := opts.Weights
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	blend := opts.CalendarBlendWeight
	if blend <= 0 || blend >= 1 {
		blend = 0.3
	}
	return &Engine{
		classifier: sentiment.NewWithFallback(opts.Classifier, opts.ClassifierTimeout),
		weights:    w,
		blend:      blend,
		logger:     log.With().Str("component", "decision_engine").Logger(),
	}
}

// Evaluate produces a Decision for one market context. It is total: every
// failure mode resolves to a well-formed Decision. The returned error is
// non-nil only for a malformed context, in which case the Decision is the
// degenerate NEUTRAL record describing the problem.
func (e *Engine) Evaluate(ctx context.Context, mc model.MarketContext) (model.Decision, error) {
	start := time.Now()

	if err := mc.Validate(); err != nil {
		e.logger.Error().Err(err).Str("symbol", mc.Symbol).Msg("Malformed market context")
		return e.degenerate(mc, start, err), fmt.Errorf("invalid market context: %w", err)
	}

	tech := technical.Summarize(mc.TechnicalIndicators)
	reg := regime.Interpret(mc.MarketRegime)
	lev := levels.Analyze(mc.KeyLevels, mc.CurrentPrice())
	cal := calendar.Analyze(mc.EconomicCalendar, mc.TechnicalIndicators, mc.Symbol, mc.Timestamp)

	// Never fails: the fallback decorator substitutes the keyword heuristic
	// on timeout, error or unavailability.
	cls, _ := e.classifier.Classify(ctx, cal.Passage)

	assessment := risk.Assess(mc.TechnicalIndicators, mc.MarketRegime, mc.EconomicCalendar, cls.Confidence)

	decision := e.synthesize(mc, tech, reg, lev, cal, cls, assessment)
	decision.ProcessingTimeMs = float64(time.Since(start).Microseconds()) / 1000.0

	e.logger.Info().
		Str("symbol", mc.Symbol).
		Str("signal", string(decision.Signal)).
		Float64("confidence", decision.Confidence).
		Float64("weighted_score", decision.WeightedScore).
		Str("risk", string(decision.RiskLevel)).
		Msg("Decision synthesized")

	return decision, nil
}

// degenerate is the well-formed record returned for inputs the engine
// cannot price against: flat, zero-confidence, maximum caution.
func (e *Engine) degenerate(mc model.MarketContext, start time.Time, cause error) model.Decision {
	return model.Decision{
		Timestamp:              mc.Timestamp,
		Symbol:                 mc.Symbol,
		Timeframe:              mc.Timeframe,
		Signal:                 model.SignalNeutral,
		Confidence:             0.0,
		WeightedScore:          0.0,
		Reasoning:              fmt.Sprintf("Analysis rejected: %v", cause),
		RiskLevel:              model.RiskHigh,
		PriceTargets:           model.PriceTargets{},
		StopLoss:               0.0,
		PositionSizeMultiplier: 0.1,
		ProcessingTimeMs:       float64(time.Since(start).Microseconds()) / 1000.0,
	}
}
