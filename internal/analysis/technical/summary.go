package technical

import (
	"github.com/finsight/decider/internal/model"
)

// Summary is the reduced view of the technical indicators: one confluence
// score plus the inputs that produced it, for reasoning and diagnostics.
type Summary struct {
	Score           float64
	TrendFactor     float64
	RSIFactor       float64
	StochFactor     float64
	TrendDirection  model.TrendDirection
	TrendStrength   float64
	RSIStatus       model.RSIStatus
	StochSignal     model.StochSignal
	VolatilityLevel model.VolatilityLevel
}

// Summarize reduces the technical indicators to a single confluence score in
// [-1, 1]: the mean of a trend factor, an RSI factor and a stochastic
// factor. Unknown enum values take the neutral branch.
func Summarize(tech model.TechnicalIndicators) Summary {
	s := Summary{
		TrendDirection:  tech.TrendDirection,
		TrendStrength:   tech.TrendStrength,
		RSIStatus:       tech.RSIStatus,
		StochSignal:     tech.StochSignal,
		VolatilityLevel: tech.VolatilityLevel,
	}

	switch tech.TrendDirection {
	case model.TrendBullish:
		s.TrendFactor = 0.8
	case model.TrendBearish:
		s.TrendFactor = -0.8
	}

	switch tech.RSIStatus {
	case model.RSIOversold, model.RSINeutralToBullish:
		s.RSIFactor = 0.6
	case model.RSIOverbought, model.RSINeutralToBearish:
		s.RSIFactor = -0.6
	}

	switch tech.StochSignal {
	case model.StochOversoldWarning:
		s.StochFactor = 0.4
	case model.StochOverboughtWarning:
		s.StochFactor = -0.4
	}

	s.Score = (s.TrendFactor + s.RSIFactor + s.StochFactor) / 3
	return s
}
