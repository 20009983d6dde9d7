package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/finsight/decider/internal/analysis/calendar"
	"github.com/finsight/decider/internal/analysis/levels"
	"github.com/finsight/decider/internal/analysis/regime"
	"github.com/finsight/decider/internal/analysis/technical"
	"github.com/finsight/decider/internal/model"
	"github.com/finsight/decider/internal/risk"
	"github.com/finsight/decider/internal/sentiment"
)

// MapSignal converts a risk-adjusted weighted score into the discrete
// trading signal. Thresholds are inclusive.
func MapSignal(weightedScore float64) model.Signal {
	switch {
	case weightedScore >= 0.6:
		return model.SignalStrongBuy
	case weightedScore >= 0.2:
		return model.SignalBuy
	case weightedScore <= -0.6:
		return model.SignalStrongSell
	case weightedScore <= -0.2:
		return model.SignalSell
	default:
		return model.SignalNeutral
	}
}

// synthesize combines the component analyses into the final decision. Pure
// given its inputs.
func (e *Engine) synthesize(
	mc model.MarketContext,
	tech technical.Summary,
	reg regime.Analysis,
	lev levels.Analysis,
	cal calendar.Analysis,
	cls sentiment.Result,
	assessment risk.Assessment,
) model.Decision {
	// The economic component blends the calendar rule score with the
	// confidence-weighted classifier score.
	economic := cls.Score*cls.Confidence*(1.0-e.blend) + cal.Score*e.blend

	raw := tech.Score*e.weights.Technical +
		reg.Score*e.weights.Regime +
		lev.Score*e.weights.Levels +
		economic*e.weights.Economic

	// Risk dampens multiplicatively, never additively: a risky setup shrinks
	// conviction in both directions instead of pushing it bearish.
	riskMult := risk.DampingMultiplier(assessment.Score)
	weighted := raw * riskMult

	signal := MapSignal(weighted)

	conviction := math.Abs(weighted)
	var confidence float64
	if conviction < 0.4 {
		// Weak or conflicting signals must not be masked by component
		// confidence.
		confidence = conviction
	} else {
		confidence = tech.TrendStrength*0.3 + reg.Confidence*0.3 + cls.Confidence*0.4
	}
	confidence = clamp(confidence, 0.0, 1.0)

	price := mc.CurrentPrice()
	atr := mc.TechnicalIndicators.ATRCurrent
	targets := priceTargets(price, atr, signal)
	stopLoss := stopLossLevel(price, atr, signal)

	confluence := (tech.Score + reg.Score + lev.Score + economic) / 4

	positionSize := positionSizeMultiplier(confidence, assessment.Level, confluence)

	warnings := append(append([]string{}, lev.Warnings...), cal.Warnings...)
	if cls.Source == "keyword" {
		warnings = append(warnings, "sentiment scored by keyword fallback")
	}

	return model.Decision{
		Timestamp:              mc.Timestamp,
		Symbol:                 mc.Symbol,
		Timeframe:              mc.Timeframe,
		Signal:                 signal,
		Confidence:             confidence,
		WeightedScore:          weighted,
		Reasoning:              reasoning(signal, weighted, tech, reg, lev, cls, assessment),
		RiskLevel:              assessment.Level,
		PriceTargets:           targets,
		StopLoss:               stopLoss,
		PositionSizeMultiplier: positionSize,
		Scores: model.ComponentScores{
			Technical:  tech.Score,
			Regime:     reg.Score,
			Levels:     lev.Score,
			Economic:   economic,
			Confluence: confluence,
		},
		Diagnostics: &model.Diagnostics{
			Weights: map[string]float64{
				"technical": e.weights.Technical,
				"regime":    e.weights.Regime,
				"levels":    e.weights.Levels,
				"economic":  e.weights.Economic,
			},
			Contributions: map[string]float64{
				"technical": tech.Score * e.weights.Technical,
				"regime":    reg.Score * e.weights.Regime,
				"levels":    lev.Score * e.weights.Levels,
				"economic":  economic * e.weights.Economic,
			},
			CalendarRuleScore:   cal.Score,
			ClassifierScore:     cls.Score,
			ClassifierConf:      cls.Confidence,
			SignalConviction:    conviction,
			RiskScore:           assessment.Score,
			RiskMultiplier:      riskMult,
			SupportProximity:    lev.SupportProximity,
			ResistanceProximity: lev.ResistanceProximity,
			Warnings:            warnings,
		},
	}
}

// priceTargets places three ATR-scaled levels in signal direction. A
// neutral signal pins all targets at current price.
func priceTargets(price, atr float64, signal model.Signal) model.PriceTargets {
	switch {
	case signal.IsBuy():
		return model.PriceTargets{
			Target1: price + atr*1.5,
			Target2: price + atr*2.5,
			Target3: price + atr*4.0,
		}
	case signal.IsSell():
		return model.PriceTargets{
			Target1: price - atr*1.5,
			Target2: price - atr*2.5,
			Target3: price - atr*4.0,
		}
	default:
		return model.PriceTargets{Target1: price, Target2: price, Target3: price}
	}
}

// stopLossLevel sits 1.2 ATR on the opposite side of the signal direction.
func stopLossLevel(price, atr float64, signal model.Signal) float64 {
	switch {
	case signal.IsBuy():
		return price - atr*1.2
	case signal.IsSell():
		return price + atr*1.2
	default:
		return price
	}
}

// positionSizeMultiplier scales the base confidence by a weak-signal
// penalty, the risk-level multiplier and the confluence multiplier, clamped
// to [0.1, 2.0].
func positionSizeMultiplier(confidence float64, level model.RiskLevel, confluence float64) float64 {
	multiplier := confidence

	// Weak-signal penalty
	if confidence < 0.4 {
		multiplier *= 0.3
	} else if confidence < 0.6 {
		multiplier *= confidence
	}

	multiplier *= risk.PositionMultiplier(level)
	multiplier *= 0.8 + 0.4*confluence

	return clamp(multiplier, 0.1, 2.0)
}

// reasoning renders the human-readable trace of the decision.
func reasoning(
	signal model.Signal,
	weighted float64,
	tech technical.Summary,
	reg regime.Analysis,
	lev levels.Analysis,
	cls sentiment.Result,
	assessment risk.Assessment,
) string {
	var parts []string

	if math.Abs(tech.Score) > 0.3 {
		parts = append(parts, fmt.Sprintf("Technical analysis shows %s trend with %.2f strength",
			tech.TrendDirection, tech.TrendStrength))
	}
	if reg.Confidence > 0.6 {
		parts = append(parts, fmt.Sprintf("Market regime: %s with %.2f confidence",
			reg.Regime, reg.Confidence))
	}
	if lev.Score > 0 {
		parts = append(parts, "Price near strong support levels")
	} else if lev.Score < 0 {
		parts = append(parts, "Price near strong resistance levels")
	}
	if cls.Confidence > 0.5 {
		parts = append(parts, fmt.Sprintf("Sentiment: %.3f score with %.2f confidence",
			cls.Score, cls.Confidence))
	}
	parts = append(parts, fmt.Sprintf("Risk level: %s", assessment.Level))
	parts = append(parts, fmt.Sprintf("Combined weighted score: %.3f", weighted))
	parts = append(parts, fmt.Sprintf("Signal: %s", signal))

	return strings.Join(parts, " | ")
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
