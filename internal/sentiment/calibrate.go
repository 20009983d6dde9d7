package sentiment

import "math"

// Calibrate turns a 3-class probability distribution into a bounded
// confidence estimate. Shannon entropy over the classes is normalized by
// ln(3) so that 1 means fully certain and 0 means uniform; the final value
// favors both a dominant class and a low-entropy distribution:
//
//	confidence = max_prob*0.7 + (1 - H/ln3)*0.3, clamped to [0.1, 1.0]
//
// Text length is deliberately not a factor: short headline-style passages
// are the expected norm here.
func Calibrate(p Probabilities) float64 {
	probs := [3]float64{p.Positive, p.Negative, p.Neutral}

	maxProb := 0.0
	entropy := 0.0
	for _, v := range probs {
		if v > maxProb {
			maxProb = v
		}
		if v > 0 {
			entropy -= v * math.Log(v)
		}
	}

	normalizedEntropy := 1.0 - entropy/math.Log(3)
	confidence := maxProb*0.7 + normalizedEntropy*0.3

	return math.Min(1.0, math.Max(0.1, confidence))
}
