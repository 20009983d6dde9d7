package regime

import (
	"github.com/finsight/decider/internal/model"
)

// Analysis maps the discrete regime label to its trading implication.
// ADXStrength is diagnostic only; it does not enter the weighted score.
type Analysis struct {
	Regime      model.Regime
	Confidence  float64
	Score       float64
	Description string
	ADXStrength float64
}

// Interpret scores the regime label with a fixed lookup and averages the
// three ADX readings for diagnostics. Unknown labels score 0.
func Interpret(mr model.MarketRegime) Analysis {
	a := Analysis{
		Regime:      mr.CurrentRegime,
		Confidence:  mr.Confidence,
		ADXStrength: (mr.ADXH1 + mr.ADXH4 + mr.ADXD1) / 3,
	}

	switch mr.CurrentRegime {
	case model.RegimeBullTrend:
		a.Score = 0.8
		a.Description = "Strong bullish momentum"
	case model.RegimeBearTrend:
		a.Score = -0.8
		a.Description = "Strong bearish momentum"
	case model.RegimeBreakoutSetup:
		a.Score = 0.3
		a.Description = "Potential breakout formation"
	case model.RegimeRanging:
		a.Score = 0.0
		a.Description = "Sideways market conditions"
	case model.RegimeHighVol:
		a.Score = 0.1
		a.Description = "High volatility environment"
	default:
		a.Score = 0.0
		a.Description = "Unknown regime"
	}

	return a
}
