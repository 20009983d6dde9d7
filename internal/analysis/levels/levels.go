package levels

import (
	"math"

	"github.com/finsight/decider/internal/model"
)

// Analysis scores proximity to the nearest support/resistance levels.
type Analysis struct {
	SupportProximity    float64
	ResistanceProximity float64
	Score               float64
	NearestSupport      model.NearestLevel
	NearestResistance   model.NearestLevel
	Warnings            []string
}

// Analyze measures how close price sits to its nearest key levels. A level
// within 1% of price scores near 1.0, decaying linearly to 0 at the 1%
// boundary. Absence of a level (price == 0) degrades to proximity 0.
func Analyze(kl model.KeyLevels, currentPrice float64) Analysis {
	a := Analysis{
		NearestSupport:    kl.NearestSupport,
		NearestResistance: kl.NearestResistance,
	}

	if kl.NearestSupport.Price > 0 {
		a.SupportProximity = proximity(currentPrice, kl.NearestSupport.Price)
	} else {
		a.Warnings = append(a.Warnings, "no support level identified")
	}

	if kl.NearestResistance.Price > 0 {
		a.ResistanceProximity = proximity(currentPrice, kl.NearestResistance.Price)
	} else {
		a.Warnings = append(a.Warnings, "no resistance level identified")
	}

	if a.SupportProximity > 0.8 {
		a.Score = 0.6
	} else if a.ResistanceProximity > 0.8 {
		a.Score = -0.6
	}

	return a
}

// proximity is 1 at the level and 0 once the level is 1% of price away.
func proximity(currentPrice, levelPrice float64) float64 {
	if currentPrice <= 0 {
		return 0
	}
	distance := math.Abs(currentPrice - levelPrice)
	return math.Max(0, 1.0-distance/(currentPrice*0.01))
}
