package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/finsight/decider/internal/model"
)

func sampleDecision() *model.Decision {
	return &model.Decision{
		Timestamp:              "2025-03-03T10:00:00Z",
		Symbol:                 "EURUSD",
		Timeframe:              "H1",
		Signal:                 model.SignalBuy,
		Confidence:             0.72,
		WeightedScore:          0.31,
		RiskLevel:              model.RiskLow,
		PriceTargets:           model.PriceTargets{Target1: 1.091, Target2: 1.095, Target3: 1.101},
		StopLoss:               1.0802,
		PositionSizeMultiplier: 1.05,
	}
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.csv")
	w := NewCSVWriter(path)

	if err := w.Append(sampleDecision()); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if err := w.Append(sampleDecision()); err != nil {
		t.Fatalf("second append failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d rows", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[0][3] != "signal" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "EURUSD" || rows[1][3] != "BUY" {
		t.Errorf("unexpected row: %v", rows[1])
	}
	if len(rows[1]) != len(csvHeader) {
		t.Errorf("row width %d does not match header width %d", len(rows[1]), len(csvHeader))
	}
}
