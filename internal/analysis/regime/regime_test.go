package regime

import (
	"math"
	"testing"

	"github.com/finsight/decider/internal/model"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		name          string
		regime        model.Regime
		expectedScore float64
	}{
		{"Bull trend", model.RegimeBullTrend, 0.8},
		{"Bear trend", model.RegimeBearTrend, -0.8},
		{"Breakout setup", model.RegimeBreakoutSetup, 0.3},
		{"Ranging", model.RegimeRanging, 0.0},
		{"High volatility", model.RegimeHighVol, 0.1},
		{"Unknown label", "CHOPPY MESS", 0.0},
		{"Empty label", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(model.MarketRegime{
				CurrentRegime: tt.regime,
				Confidence:    0.75,
			})
			if got.Score != tt.expectedScore {
				t.Errorf("Interpret(%q).Score = %v, want %v", tt.regime, got.Score, tt.expectedScore)
			}
			if got.Confidence != 0.75 {
				t.Errorf("confidence not carried through: got %v", got.Confidence)
			}
			if got.Description == "" {
				t.Error("expected a non-empty description")
			}
		})
	}
}

func TestInterpretADXStrength(t *testing.T) {
	got := Interpret(model.MarketRegime{
		CurrentRegime: model.RegimeBullTrend,
		ADXH1:         30,
		ADXH4:         24,
		ADXD1:         18,
	})
	if math.Abs(got.ADXStrength-24) > 1e-9 {
		t.Errorf("ADXStrength = %v, want 24", got.ADXStrength)
	}
}
