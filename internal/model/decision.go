package model

// Signal is the discrete trading recommendation.
type Signal string

const (
	SignalStrongBuy  Signal = "STRONG_BUY"
	SignalBuy        Signal = "BUY"
	SignalNeutral    Signal = "NEUTRAL"
	SignalSell       Signal = "SELL"
	SignalStrongSell Signal = "STRONG_SELL"
)

// IsBuy reports whether the signal is on the long side.
func (s Signal) IsBuy() bool { return s == SignalBuy || s == SignalStrongBuy }

// IsSell reports whether the signal is on the short side.
func (s Signal) IsSell() bool { return s == SignalSell || s == SignalStrongSell }

// RiskLevel is the aggregated risk classification for a decision.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// PriceTargets holds three ATR-scaled take-profit levels in signal
// direction.
type PriceTargets struct {
	Target1 float64 `json:"target_1"`
	Target2 float64 `json:"target_2"`
	Target3 float64 `json:"target_3"`
}

// ComponentScores are the per-factor scores that fed the weighted decision,
// each in [-1, 1].
type ComponentScores struct {
	Technical  float64 `json:"technical_score"`
	Regime     float64 `json:"regime_score"`
	Levels     float64 `json:"levels_score"`
	Economic   float64 `json:"economic_score"`
	Confluence float64 `json:"confluence_score"`
}

// Diagnostics echoes the internals of a decision for audit: the fixed
// component weights, each component's contribution to the weighted score,
// and the confidence breakdown. Not required for correctness downstream.
type Diagnostics struct {
	Weights             map[string]float64 `json:"weights"`
	Contributions       map[string]float64 `json:"contributions"`
	CalendarRuleScore   float64            `json:"calendar_rule_score"`
	ClassifierScore     float64            `json:"classifier_score"`
	ClassifierConf      float64            `json:"classifier_confidence"`
	SignalConviction    float64            `json:"signal_conviction"`
	RiskScore           float64            `json:"risk_score"`
	RiskMultiplier      float64            `json:"risk_multiplier"`
	SupportProximity    float64            `json:"support_proximity"`
	ResistanceProximity float64            `json:"resistance_proximity"`
	Warnings            []string           `json:"warnings,omitempty"`
}

// Decision is the engine's output record. It is always well-formed: every
// failure path degrades into a valid Decision rather than an absent one.
type Decision struct {
	Timestamp string `json:"timestamp"`
	Symbol    string `json:"symbol"`
	Timeframe string `json:"timeframe"`

	Signal        Signal  `json:"signal"`
	Confidence    float64 `json:"confidence"`
	WeightedScore float64 `json:"weighted_score"`
	Reasoning     string  `json:"reasoning"`

	RiskLevel              RiskLevel    `json:"risk_level"`
	PriceTargets           PriceTargets `json:"price_targets"`
	StopLoss               float64      `json:"stop_loss"`
	PositionSizeMultiplier float64      `json:"position_size_multiplier"`

	Scores ComponentScores `json:"scores"`

	ProcessingTimeMs float64      `json:"processing_time_ms"`
	Diagnostics      *Diagnostics `json:"diagnostics,omitempty"`
}
