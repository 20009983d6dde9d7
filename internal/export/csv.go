package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/finsight/decider/internal/model"
)

var csvHeader = []string{
	"timestamp", "symbol", "timeframe", "signal", "confidence",
	"weighted_score", "risk_level", "target_1", "target_2", "target_3",
	"stop_loss", "position_size_multiplier", "technical_score",
	"regime_score", "levels_score", "economic_score", "confluence_score",
	"processing_time_ms",
}

// CSVWriter appends decisions to an audit CSV file, writing the header when
// it creates the file.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates an appender for the given path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Append writes one decision row.
func (w *CSVWriter) Append(d *model.Decision) error {
	_, statErr := os.Stat(w.path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening export file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if writeHeader {
		if err := cw.Write(csvHeader); err != nil {
			return fmt.Errorf("writing export header: %w", err)
		}
	}

	row := []string{
		d.Timestamp, d.Symbol, d.Timeframe, string(d.Signal), ftoa(d.Confidence),
		ftoa(d.WeightedScore), string(d.RiskLevel), ftoa(d.PriceTargets.Target1),
		ftoa(d.PriceTargets.Target2), ftoa(d.PriceTargets.Target3),
		ftoa(d.StopLoss), ftoa(d.PositionSizeMultiplier), ftoa(d.Scores.Technical),
		ftoa(d.Scores.Regime), ftoa(d.Scores.Levels), ftoa(d.Scores.Economic),
		ftoa(d.Scores.Confluence), ftoa(d.ProcessingTimeMs),
	}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("writing export row: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
