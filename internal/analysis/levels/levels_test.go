package levels

import (
	"math"
	"testing"

	"github.com/finsight/decider/internal/model"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name          string
		levels        model.KeyLevels
		price         float64
		expectedScore float64
	}{
		{
			name: "Price hugging support",
			levels: model.KeyLevels{
				NearestSupport: model.NearestLevel{Price: 0.9995},
			},
			price:         1.0000,
			expectedScore: 0.6,
		},
		{
			name: "Price hugging resistance",
			levels: model.KeyLevels{
				NearestResistance: model.NearestLevel{Price: 1.0005},
			},
			price:         1.0000,
			expectedScore: -0.6,
		},
		{
			name: "Support outweighs resistance when both near",
			levels: model.KeyLevels{
				NearestSupport:    model.NearestLevel{Price: 0.9999},
				NearestResistance: model.NearestLevel{Price: 1.0001},
			},
			price:         1.0000,
			expectedScore: 0.6,
		},
		{
			name: "Levels too far away",
			levels: model.KeyLevels{
				NearestSupport:    model.NearestLevel{Price: 0.9800},
				NearestResistance: model.NearestLevel{Price: 1.0200},
			},
			price:         1.0000,
			expectedScore: 0.0,
		},
		{
			name:          "No levels at all",
			levels:        model.KeyLevels{},
			price:         1.0000,
			expectedScore: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.levels, tt.price)
			if got.Score != tt.expectedScore {
				t.Errorf("Analyze().Score = %v, want %v", got.Score, tt.expectedScore)
			}
		})
	}
}

func TestAnalyzeMissingLevelsWarn(t *testing.T) {
	got := Analyze(model.KeyLevels{}, 1.2345)
	if len(got.Warnings) != 2 {
		t.Fatalf("expected warnings for missing support and resistance, got %v", got.Warnings)
	}
	if got.SupportProximity != 0 || got.ResistanceProximity != 0 {
		t.Errorf("missing levels must yield zero proximity, got %v / %v",
			got.SupportProximity, got.ResistanceProximity)
	}
}

func TestProximity(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		level    float64
		expected float64
	}{
		{"At the level", 1.0000, 1.0000, 1.0},
		{"Half the 1% band away", 1.0000, 0.9950, 0.5},
		{"Exactly at the 1% band", 1.0000, 0.9900, 0.0},
		{"Beyond the band clamps to zero", 1.0000, 0.9500, 0.0},
		{"Zero price degrades to zero", 0, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := proximity(tt.price, tt.level)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("proximity(%v, %v) = %v, want %v", tt.price, tt.level, got, tt.expected)
			}
		})
	}
}
