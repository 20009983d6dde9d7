package sentiment

import (
	"context"
	"math"
	"strings"
)

var (
	positiveWords = []string{"bullish", "strong", "growth", "positive", "buy", "support", "resistance"}
	negativeWords = []string{"bearish", "weak", "decline", "negative", "sell", "breakdown", "rejection"}
)

// KeywordClassifier is the deterministic local substitute for the external
// classification capability: a fixed-wordlist count heuristic. It is a total
// function; ClassifyText never fails.
type KeywordClassifier struct{}

// Classify implements Classifier. The error is always nil.
func (KeywordClassifier) Classify(_ context.Context, text string) (Result, error) {
	return ClassifyText(text), nil
}

// ClassifyText scores text by counting matches against the fixed word
// lists: score = (pos - neg) / (pos + neg), confidence grows with the match
// count and caps at 0.8. No matches yields a neutral (0.0, 0.3) result.
func ClassifyText(text string) Result {
	lower := strings.ToLower(text)

	posCount := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			posCount++
		}
	}
	negCount := 0
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negCount++
		}
	}

	total := posCount + negCount
	if total == 0 {
		return Result{
			Score:         0.0,
			Confidence:    0.3,
			Probabilities: Probabilities{Positive: 0.33, Negative: 0.33, Neutral: 0.34},
			Source:        "keyword",
		}
	}

	score := float64(posCount-negCount) / float64(total)
	confidence := math.Min(0.8, float64(total)*0.1+0.3)

	return Result{
		Score:      score,
		Confidence: confidence,
		Probabilities: Probabilities{
			Positive: 0.5 + score/2,
			Negative: 0.5 - score/2,
			Neutral:  0.2,
		},
		Source: "keyword",
	}
}
