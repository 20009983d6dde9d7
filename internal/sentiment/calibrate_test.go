package sentiment

import (
	"math"
	"testing"
)

func TestCalibrate(t *testing.T) {
	tests := []struct {
		name     string
		probs    Probabilities
		expected float64
	}{
		{
			name:     "Fully certain distribution",
			probs:    Probabilities{Positive: 1.0},
			expected: 1.0,
		},
		{
			name:  "Uniform distribution",
			probs: Probabilities{Positive: 1.0 / 3, Negative: 1.0 / 3, Neutral: 1.0 / 3},
			// max_prob*0.7 with zero normalized certainty.
			expected: (1.0 / 3) * 0.7,
		},
		{
			name:  "Dominant class with some spread",
			probs: Probabilities{Positive: 0.8, Negative: 0.1, Neutral: 0.1},
			expected: 0.8*0.7 + (1.0-(-(0.8*math.Log(0.8)+
				0.1*math.Log(0.1)+0.1*math.Log(0.1)))/math.Log(3))*0.3,
		},
		{
			name:  "Degenerate zero distribution",
			probs: Probabilities{},
			// Zero entropy term dominates: 0*0.7 + 1.0*0.3.
			expected: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calibrate(tt.probs)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Calibrate(%+v) = %v, want %v", tt.probs, got, tt.expected)
			}
		})
	}
}

func TestCalibrateBounds(t *testing.T) {
	cases := []Probabilities{
		{},
		{Positive: 1},
		{Negative: 1},
		{Positive: 0.5, Negative: 0.5},
		{Positive: 0.33, Negative: 0.33, Neutral: 0.34},
	}
	for _, p := range cases {
		got := Calibrate(p)
		if got < 0.1 || got > 1.0 {
			t.Errorf("Calibrate(%+v) = %v outside [0.1, 1.0]", p, got)
		}
	}
}

func TestCalibrateFavorsCertainty(t *testing.T) {
	sharp := Calibrate(Probabilities{Positive: 0.9, Negative: 0.05, Neutral: 0.05})
	flat := Calibrate(Probabilities{Positive: 0.4, Negative: 0.3, Neutral: 0.3})
	if sharp <= flat {
		t.Errorf("sharper distribution should calibrate higher: %v <= %v", sharp, flat)
	}
}
