package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/finsight/decider/internal/model"
)

// maxPassageLen bounds the passage handed to the sentiment classifier.
const maxPassageLen = 500

// Analysis is the calendar-derived rule score plus the natural-language
// passage built for the sentiment classifier.
type Analysis struct {
	Signal           model.Signal
	Confidence       float64
	Score            float64
	EventsToday      int
	HighImpactEvents int
	NextEvent        model.CalendarEvent
	Passage          string
	Warnings         []string
}

// ruleScore maps the upstream calendar sentiment signal to a fixed score.
func ruleScore(sig model.Signal) float64 {
	switch sig {
	case model.SignalStrongBuy:
		return 0.8
	case model.SignalBuy:
		return 0.4
	case model.SignalSell:
		return -0.4
	case model.SignalStrongSell:
		return -0.8
	default:
		return 0.0
	}
}

// Analyze scores the economic-calendar context and renders the passage the
// sentiment classifier will read. An empty calendar degrades to a neutral
// passage: on weekends that is expected quiet, on weekdays it is flagged as
// a data-quality warning because a missing weekday feed is an upstream
// problem masquerading as a neutral signal.
func Analyze(cal model.EconomicCalendar, tech model.TechnicalIndicators, symbol, timestamp string) Analysis {
	a := Analysis{
		Signal:           cal.FinbertSignal,
		Confidence:       cal.FinbertConfidence,
		Score:            ruleScore(cal.FinbertSignal),
		EventsToday:      cal.EventsToday,
		HighImpactEvents: cal.HighImpactEvents,
		NextEvent:        cal.NextEvent,
	}

	var sb strings.Builder

	if cal.EventsToday == 0 {
		weekend, known := isWeekend(timestamp)
		switch {
		case weekend:
			sb.WriteString(fmt.Sprintf("%s market is quiet with no economic releases scheduled over the weekend. ", symbol))
		default:
			sb.WriteString(fmt.Sprintf("%s has no economic releases on a weekday calendar, a possible data gap rather than a calm market. ", symbol))
			a.Warnings = append(a.Warnings, "empty weekday calendar: possible upstream data gap")
			if !known {
				a.Warnings = append(a.Warnings, "context timestamp unparseable, assumed weekday")
			}
		}
	} else {
		sb.WriteString(fmt.Sprintf("%s faces %d economic events today", symbol, cal.EventsToday))
		if cal.HighImpactEvents > 0 {
			sb.WriteString(fmt.Sprintf(", %d of them high impact", cal.HighImpactEvents))
		}
		sb.WriteString(". ")
		if cal.NextEvent.Name != "" {
			sb.WriteString(fmt.Sprintf("Next up is %s", cal.NextEvent.Name))
			if cal.NextEvent.Currency != "" {
				sb.WriteString(fmt.Sprintf(" for %s", cal.NextEvent.Currency))
			}
			if cal.NextEvent.Impact != "" {
				sb.WriteString(fmt.Sprintf(" (%s impact)", strings.ToLower(cal.NextEvent.Impact)))
			}
			if cal.NextEvent.Time != "" {
				sb.WriteString(fmt.Sprintf(" at %s", cal.NextEvent.Time))
			}
			sb.WriteString(". ")
		}
	}

	// Directional and volatility technical context for the classifier.
	sb.WriteString(fmt.Sprintf("Technical picture is %s with %.2f trend strength. ",
		strings.ToLower(string(tech.TrendDirection)), tech.TrendStrength))
	sb.WriteString(fmt.Sprintf("RSI reads %.1f (%s) and volatility is %s.",
		tech.RSICurrent,
		strings.ToLower(string(tech.RSIStatus)),
		strings.ToLower(strings.ReplaceAll(string(tech.VolatilityLevel), "_", " "))))

	a.Passage = truncate(sb.String(), maxPassageLen)
	return a
}

// isWeekend reports whether the context timestamp falls on a Saturday or
// Sunday (UTC). The second result is false when the timestamp could not be
// parsed; callers treat that as a weekday, the branch that surfaces a
// warning.
func isWeekend(timestamp string) (weekend, known bool) {
	layouts := []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, timestamp); err == nil {
			wd := t.UTC().Weekday()
			return wd == time.Saturday || wd == time.Sunday, true
		}
	}
	return false, false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
