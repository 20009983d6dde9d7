package risk

import (
	"github.com/finsight/decider/internal/model"
)

// Assessment aggregates the additive risk contributions for one run.
type Assessment struct {
	Level   model.RiskLevel
	Score   float64
	Factors map[string]float64
}

// Assess accumulates risk from volatility, calendar event load, regime and
// classifier confidence. The sum maps to a discrete level: HIGH above 0.5,
// MEDIUM above 0.2, LOW otherwise.
func Assess(tech model.TechnicalIndicators, mr model.MarketRegime, cal model.EconomicCalendar, classifierConfidence float64) Assessment {
	factors := make(map[string]float64)

	switch tech.VolatilityLevel {
	case model.VolatilityAboveAverage:
		factors["volatility"] = 0.3
	case model.VolatilityBelowAverage:
		factors["volatility"] = -0.1
	default:
		factors["volatility"] = 0.0
	}

	if cal.HighImpactEvents > 0 {
		factors["high_impact_events"] = 0.2
	}

	switch mr.CurrentRegime {
	case model.RegimeHighVol:
		factors["regime"] = 0.4
	case model.RegimeRanging:
		factors["regime"] = 0.1
	}

	if classifierConfidence < 0.5 {
		factors["low_classifier_confidence"] = 0.2
	}

	total := 0.0
	for _, v := range factors {
		total += v
	}

	level := model.RiskLow
	if total > 0.5 {
		level = model.RiskHigh
	} else if total > 0.2 {
		level = model.RiskMedium
	}

	return Assessment{Level: level, Score: total, Factors: factors}
}

// DampingMultiplier converts the risk sum into the multiplicative dampener
// applied to the weighted score.
func DampingMultiplier(riskScore float64) float64 {
	switch {
	case riskScore > 0.5:
		return 0.7
	case riskScore > 0.3:
		return 0.85
	default:
		return 1.0
	}
}

// PositionMultiplier scales position size by risk level.
func PositionMultiplier(level model.RiskLevel) float64 {
	switch level {
	case model.RiskLow:
		return 1.2
	case model.RiskHigh:
		return 0.7
	default:
		return 1.0
	}
}
