package model

import (
	"fmt"
	"math"
)

// TrendDirection is the detected direction of the technical trend.
type TrendDirection string

const (
	TrendBullish TrendDirection = "BULLISH"
	TrendBearish TrendDirection = "BEARISH"
	TrendNeutral TrendDirection = "NEUTRAL"
)

// RSIStatus describes where RSI sits relative to its bands.
type RSIStatus string

const (
	RSIOversold         RSIStatus = "OVERSOLD"
	RSINeutralToBullish RSIStatus = "NEUTRAL_TO_BULLISH"
	RSINeutral          RSIStatus = "NEUTRAL"
	RSINeutralToBearish RSIStatus = "NEUTRAL_TO_BEARISH"
	RSIOverbought       RSIStatus = "OVERBOUGHT"
)

// StochSignal describes the stochastic oscillator state.
type StochSignal string

const (
	StochOversoldWarning   StochSignal = "OVERSOLD_WARNING"
	StochNeutral           StochSignal = "NEUTRAL"
	StochOverboughtWarning StochSignal = "OVERBOUGHT_WARNING"
)

// VolatilityLevel classifies current ATR against its average.
type VolatilityLevel string

const (
	VolatilityAboveAverage VolatilityLevel = "ABOVE_AVERAGE"
	VolatilityNormal       VolatilityLevel = "NORMAL"
	VolatilityBelowAverage VolatilityLevel = "BELOW_AVERAGE"
)

// Regime is the discrete market regime label produced upstream.
type Regime string

const (
	RegimeBullTrend     Regime = "BULL TREND"
	RegimeBearTrend     Regime = "BEAR TREND"
	RegimeBreakoutSetup Regime = "BREAKOUT SETUP"
	RegimeRanging       Regime = "RANGING"
	RegimeHighVol       Regime = "HIGH VOLATILITY"
	RegimeUnknown       Regime = "UNKNOWN"
)

// TechnicalIndicators holds the already-computed technical features for a run.
type TechnicalIndicators struct {
	TrendDirection  TrendDirection  `json:"trend_direction"`
	TrendStrength   float64         `json:"trend_strength"`
	RSICurrent      float64         `json:"rsi_current"`
	RSIH4           float64         `json:"rsi_h4"`
	RSID1           float64         `json:"rsi_d1"`
	RSIStatus       RSIStatus       `json:"rsi_status"`
	StochK          float64         `json:"stoch_k"`
	StochD          float64         `json:"stoch_d"`
	StochSignal     StochSignal     `json:"stoch_signal"`
	ATRCurrent      float64         `json:"atr_current"`
	ATRAverage      float64         `json:"atr_average"`
	VolatilityLevel VolatilityLevel `json:"volatility_level"`
	EMA20           float64         `json:"ema_20"`
	EMA50           float64         `json:"ema_50"`
	EMA200          float64         `json:"ema_200"`
}

// MarketRegime carries the upstream regime detection and its ADX context.
type MarketRegime struct {
	CurrentRegime Regime  `json:"current_regime"`
	Confidence    float64 `json:"confidence"`
	ADXH1         float64 `json:"adx_h1"`
	ADXH4         float64 `json:"adx_h4"`
	ADXD1         float64 `json:"adx_d1"`
	PlusDI        float64 `json:"plus_di"`
	MinusDI       float64 `json:"minus_di"`
}

// Level is a single support or resistance level with its strength rating.
type Level struct {
	Price    float64 `json:"price"`
	Strength float64 `json:"strength"`
}

// NearestLevel is the closest level of a kind. Price == 0 means none
// identified.
type NearestLevel struct {
	Price        float64 `json:"price"`
	DistancePips float64 `json:"distance_pips"`
}

// KeyLevels groups the support/resistance structure around current price.
type KeyLevels struct {
	SupportLevels     []Level      `json:"support_levels"`
	ResistanceLevels  []Level      `json:"resistance_levels"`
	NearestSupport    NearestLevel `json:"nearest_support"`
	NearestResistance NearestLevel `json:"nearest_resistance"`
}

// CalendarEvent is the next scheduled economic release, if any.
type CalendarEvent struct {
	Name     string `json:"name,omitempty"`
	Currency string `json:"currency,omitempty"`
	Impact   string `json:"impact,omitempty"`
	Time     string `json:"time,omitempty"`
}

// EconomicCalendar carries calendar state plus the upstream sentiment signal
// attached to it.
type EconomicCalendar struct {
	EventsToday       int           `json:"events_today"`
	HighImpactEvents  int           `json:"high_impact_events"`
	FinbertSignal     Signal        `json:"finbert_signal"`
	FinbertConfidence float64       `json:"finbert_confidence"`
	NextEvent         CalendarEvent `json:"next_event"`
}

// MarketData wraps the price snapshot. Kept nested to match the upstream
// context document layout.
type MarketData struct {
	Price struct {
		Current float64 `json:"current"`
	} `json:"price"`
}

// MarketContext is the complete input snapshot for one analysis run. It is
// constructed once per request and never mutated by the engine.
type MarketContext struct {
	Timestamp           string              `json:"timestamp"`
	Symbol              string              `json:"symbol"`
	Timeframe           string              `json:"timeframe"`
	MarketData          MarketData          `json:"market_data"`
	TechnicalIndicators TechnicalIndicators `json:"technical_indicators"`
	MarketRegime        MarketRegime        `json:"market_regime"`
	KeyLevels           KeyLevels           `json:"key_levels"`
	EconomicCalendar    EconomicCalendar    `json:"economic_calendar"`
}

// CurrentPrice returns the current price from the nested market data block.
func (c *MarketContext) CurrentPrice() float64 {
	return c.MarketData.Price.Current
}

// Validate checks the required numeric fields. Optional data (levels,
// calendar events) is never a validation failure; only a context the engine
// cannot price against is.
func (c *MarketContext) Validate() error {
	price := c.CurrentPrice()
	if price <= 0 {
		return fmt.Errorf("market_data.price.current must be positive, got %v", price)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return fmt.Errorf("market_data.price.current is not finite")
	}
	atr := c.TechnicalIndicators.ATRCurrent
	if atr < 0 || math.IsNaN(atr) || math.IsInf(atr, 0) {
		return fmt.Errorf("technical_indicators.atr_current must be finite and non-negative, got %v", atr)
	}
	if s := c.TechnicalIndicators.TrendStrength; math.IsNaN(s) || math.IsInf(s, 0) {
		return fmt.Errorf("technical_indicators.trend_strength is not finite")
	}
	if conf := c.MarketRegime.Confidence; math.IsNaN(conf) || math.IsInf(conf, 0) {
		return fmt.Errorf("market_regime.confidence is not finite")
	}
	return nil
}
