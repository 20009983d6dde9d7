package sentiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClassifier is an alternate classification backend that asks a chat
// model for a 3-class probability split. Useful where no dedicated sentiment
// server is deployed; the keyword fallback still guards every failure mode.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

// NewOpenAIClassifier creates a classifier backed by the OpenAI chat API.
func NewOpenAIClassifier(apiKey, model string) *OpenAIClassifier {
	if model == "" {
		model = openai.GPT4
	}
	return &OpenAIClassifier{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: log.With().Str("component", "sentiment_openai").Logger(),
	}
}

const classifyPrompt = `Classify the sentiment of the following financial market text.
Reply with exactly one line in this format and nothing else:
positive=<0..1> negative=<0..1> neutral=<0..1>

The three values must sum to 1.

Text:
`

// Classify asks the chat model for the class probabilities and calibrates
// them. Any malformed reply is an error; the caller substitutes the
// fallback.
func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (Result, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: classifyPrompt + text},
		},
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("OpenAI API error")
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("%w: empty completion", ErrUnavailable)
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)

	var probs Probabilities
	if _, err := fmt.Sscanf(reply, "positive=%f negative=%f neutral=%f",
		&probs.Positive, &probs.Negative, &probs.Neutral); err != nil {
		c.logger.Error().Str("reply", reply).Msg("Unparseable sentiment reply")
		return Result{}, fmt.Errorf("parsing completion %q: %w", reply, err)
	}
	if probs.Positive+probs.Negative+probs.Neutral <= 0 {
		return Result{}, fmt.Errorf("completion carries no probability mass")
	}

	return Result{
		Score:         probs.Positive - probs.Negative,
		Confidence:    Calibrate(probs),
		Probabilities: probs,
		Source:        "openai",
	}, nil
}
