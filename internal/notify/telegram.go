package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/finsight/decider/internal/model"
)

// Telegram delivers decision summaries to a configured chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegram creates a notifier for one chat.
func NewTelegram(botToken string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("initializing telegram bot: %w", err)
	}
	return &Telegram{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "telegram_notifier").Logger(),
	}, nil
}

// SendDecision formats and sends one decision summary.
func (t *Telegram) SendDecision(d *model.Decision) error {
	msg := tgbotapi.NewMessage(t.chatID, FormatDecision(d))
	msg.ParseMode = "Markdown"

	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Error().Err(err).Int64("chat_id", t.chatID).Msg("Failed to send decision")
		return fmt.Errorf("sending decision notification: %w", err)
	}
	t.logger.Debug().Str("symbol", d.Symbol).Str("signal", string(d.Signal)).Msg("Decision sent")
	return nil
}

// FormatDecision renders the Markdown summary for a chat message.
func FormatDecision(d *model.Decision) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*%s* %s (%s)\n\n", signalEmoji(d.Signal), d.Symbol, d.Timeframe))
	sb.WriteString(fmt.Sprintf("Signal: *%s*\n", d.Signal))
	sb.WriteString(fmt.Sprintf("Confidence: %.0f%%\n", d.Confidence*100))
	sb.WriteString(fmt.Sprintf("Risk: %s\n", d.RiskLevel))
	sb.WriteString(fmt.Sprintf("Position size: x%.2f\n", d.PositionSizeMultiplier))

	if d.Signal != model.SignalNeutral {
		sb.WriteString(fmt.Sprintf("\nTargets: %.5f / %.5f / %.5f\n",
			d.PriceTargets.Target1, d.PriceTargets.Target2, d.PriceTargets.Target3))
		sb.WriteString(fmt.Sprintf("Stop loss: %.5f\n", d.StopLoss))
	}

	sb.WriteString(fmt.Sprintf("\n_%s_", d.Reasoning))

	return sb.String()
}

func signalEmoji(s model.Signal) string {
	switch {
	case s.IsBuy():
		return "📈"
	case s.IsSell():
		return "📉"
	default:
		return "➖"
	}
}
