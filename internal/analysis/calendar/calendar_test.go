package calendar

import (
	"strings"
	"testing"

	"github.com/finsight/decider/internal/model"
)

func TestRuleScore(t *testing.T) {
	tests := []struct {
		signal   model.Signal
		expected float64
	}{
		{model.SignalStrongBuy, 0.8},
		{model.SignalBuy, 0.4},
		{model.SignalNeutral, 0.0},
		{model.SignalSell, -0.4},
		{model.SignalStrongSell, -0.8},
		{"GARBAGE", 0.0},
		{"", 0.0},
	}

	for _, tt := range tests {
		if got := ruleScore(tt.signal); got != tt.expected {
			t.Errorf("ruleScore(%q) = %v, want %v", tt.signal, got, tt.expected)
		}
	}
}

func TestAnalyzeEmptyCalendarWeekend(t *testing.T) {
	// 2025-03-01 is a Saturday.
	got := Analyze(model.EconomicCalendar{}, model.TechnicalIndicators{
		TrendDirection:  model.TrendNeutral,
		RSIStatus:       model.RSINeutral,
		VolatilityLevel: model.VolatilityNormal,
	}, "EURUSD", "2025-03-01T10:00:00Z")

	if !strings.Contains(got.Passage, "weekend") {
		t.Errorf("weekend passage should mention the weekend, got %q", got.Passage)
	}
	if len(got.Warnings) != 0 {
		t.Errorf("empty weekend calendar must not warn, got %v", got.Warnings)
	}
}

func TestAnalyzeEmptyCalendarWeekday(t *testing.T) {
	// 2025-03-03 is a Monday.
	got := Analyze(model.EconomicCalendar{}, model.TechnicalIndicators{
		TrendDirection:  model.TrendNeutral,
		RSIStatus:       model.RSINeutral,
		VolatilityLevel: model.VolatilityNormal,
	}, "EURUSD", "2025-03-03T10:00:00Z")

	if !strings.Contains(got.Passage, "data gap") {
		t.Errorf("weekday gap passage should flag a possible data gap, got %q", got.Passage)
	}
	if len(got.Warnings) != 1 {
		t.Errorf("empty weekday calendar must warn once, got %v", got.Warnings)
	}
}

func TestAnalyzeUnparseableTimestamp(t *testing.T) {
	got := Analyze(model.EconomicCalendar{}, model.TechnicalIndicators{}, "EURUSD", "not-a-time")

	// Unparseable timestamps take the weekday branch and surface both
	// warnings.
	if len(got.Warnings) != 2 {
		t.Errorf("expected data-gap and timestamp warnings, got %v", got.Warnings)
	}
}

func TestAnalyzeEventRendering(t *testing.T) {
	got := Analyze(model.EconomicCalendar{
		EventsToday:      3,
		HighImpactEvents: 1,
		FinbertSignal:    model.SignalBuy,
		NextEvent: model.CalendarEvent{
			Name:     "Non-Farm Payrolls",
			Currency: "USD",
			Impact:   "HIGH",
			Time:     "14:30",
		},
	}, model.TechnicalIndicators{
		TrendDirection:  model.TrendBullish,
		TrendStrength:   0.7,
		RSICurrent:      55.2,
		RSIStatus:       model.RSINeutral,
		VolatilityLevel: model.VolatilityNormal,
	}, "EURUSD", "2025-03-03T10:00:00Z")

	for _, want := range []string{"3 economic events", "1 of them high impact", "Non-Farm Payrolls", "USD", "high impact", "14:30", "bullish"} {
		if !strings.Contains(got.Passage, want) {
			t.Errorf("passage missing %q: %q", want, got.Passage)
		}
	}
	if got.Score != 0.4 {
		t.Errorf("rule score = %v, want 0.4", got.Score)
	}
}

func TestAnalyzePassageBounded(t *testing.T) {
	got := Analyze(model.EconomicCalendar{
		EventsToday: 5,
		NextEvent: model.CalendarEvent{
			Name: strings.Repeat("Extraordinarily Long Release Name ", 30),
		},
	}, model.TechnicalIndicators{}, "EURUSD", "2025-03-03T10:00:00Z")

	if len(got.Passage) > maxPassageLen {
		t.Errorf("passage length %d exceeds %d", len(got.Passage), maxPassageLen)
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		weekend   bool
		known     bool
	}{
		{"RFC3339 Saturday", "2025-03-01T12:00:00Z", true, true},
		{"RFC3339 Monday", "2025-03-03T12:00:00Z", false, true},
		{"Space layout Sunday", "2025-03-02 08:00:00", true, true},
		{"Date only Friday", "2025-02-28", false, true},
		{"Unparseable", "yesterday", false, false},
		{"Empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weekend, known := isWeekend(tt.timestamp)
			if weekend != tt.weekend || known != tt.known {
				t.Errorf("isWeekend(%q) = (%v, %v), want (%v, %v)",
					tt.timestamp, weekend, known, tt.weekend, tt.known)
			}
		})
	}
}
