package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/finsight/decider/internal/config"
	"github.com/finsight/decider/internal/database"
	"github.com/finsight/decider/internal/engine"
	"github.com/finsight/decider/internal/export"
	"github.com/finsight/decider/internal/model"
	"github.com/finsight/decider/internal/notify"
	"github.com/finsight/decider/internal/sentiment"
)

// watcher polls a directory for market context drops and turns each into a
// decision file, with optional persistence and notification.
type watcher struct {
	cfg       *config.Config
	engine    *engine.Engine
	db        *database.DB
	csv       *export.CSVWriter
	telegram  *notify.Telegram
	processed map[string]time.Time
	logger    zerolog.Logger
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandling(cancel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg.LogLevel)
	log.Info().Str("dir", cfg.WatchDir).Int("poll_interval_s", cfg.PollInterval).Msg("Starting context watcher")

	w := &watcher{
		cfg:       cfg,
		processed: make(map[string]time.Time),
		logger:    log.With().Str("component", "watcher").Logger(),
	}

	// Sentiment capability: probe a configured remote server once at
	// startup, with retries. A dead server is not fatal - the keyword
	// fallback covers every run until it comes back.
	classifier := buildClassifier(cfg)
	if remote, ok := probeTarget(classifier); ok {
		probeCtx, probeCancel := context.WithTimeout(ctx, 30*time.Second)
		if err := remote.Ping(probeCtx); err != nil {
			log.Warn().Err(err).Msg("Sentiment server not reachable, keyword fallback will cover")
		}
		probeCancel()
	}

	w.engine = engine.New(engine.Options{
		Classifier:          classifier,
		ClassifierTimeout:   time.Duration(cfg.SentimentTimeout) * time.Second,
		CalendarBlendWeight: cfg.CalendarBlend,
	})

	if cfg.DBHost != "" {
		w.db, err = database.New(database.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer w.db.Close()
	}

	if cfg.CSVExportPath != "" {
		w.csv = export.NewCSVWriter(cfg.CSVExportPath)
	}

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		w.telegram, err = notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Telegram notifier")
		}
	}

	w.run(ctx)
}

// run is the poll loop. It exits when the context is cancelled.
func (w *watcher) run(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(w.cfg.PollInterval) * time.Second)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Watcher stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep processes every context file not seen before (or rewritten since).
func (w *watcher) sweep(ctx context.Context) {
	matches, err := filepath.Glob(filepath.Join(w.cfg.WatchDir, "market_context_*.json"))
	if err != nil {
		w.logger.Error().Err(err).Msg("Watch dir glob failed")
		return
	}

	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if seen, ok := w.processed[path]; ok && !info.ModTime().After(seen) {
			continue
		}
		w.processed[path] = info.ModTime()
		w.handle(ctx, path)
	}
}

// handle evaluates one context file and fans the decision out.
func (w *watcher) handle(ctx context.Context, path string) {
	w.logger.Info().Str("path", path).Msg("Processing market context")

	data, err := os.ReadFile(path)
	if err != nil {
		w.logger.Error().Err(err).Str("path", path).Msg("Failed to read context file")
		return
	}

	var mc model.MarketContext
	if err := json.Unmarshal(data, &mc); err != nil {
		w.logger.Error().Err(err).Str("path", path).Msg("Malformed context JSON, skipping")
		return
	}

	decision, err := w.engine.Evaluate(ctx, mc)
	if err != nil {
		w.logger.Warn().Err(err).Str("path", path).Msg("Context rejected, writing degenerate decision")
	}

	outPath := decisionPath(path)
	payload, err := json.MarshalIndent(decision, "", "  ")
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to encode decision")
		return
	}
	if err := os.WriteFile(outPath, payload, 0o644); err != nil {
		w.logger.Error().Err(err).Str("path", outPath).Msg("Failed to write decision file")
		return
	}

	if w.db != nil {
		if err := w.db.SaveDecision(&decision); err != nil {
			w.logger.Error().Err(err).Msg("Failed to persist decision")
		}
	}
	if w.csv != nil {
		if err := w.csv.Append(&decision); err != nil {
			w.logger.Error().Err(err).Msg("CSV export failed")
		}
	}
	if w.telegram != nil {
		if err := w.telegram.SendDecision(&decision); err != nil {
			w.logger.Error().Err(err).Msg("Telegram notification failed")
		}
	}

	w.logger.Info().
		Str("signal", string(decision.Signal)).
		Str("out", outPath).
		Msg("Decision written")
}

// decisionPath derives the output filename from the context filename.
func decisionPath(contextPath string) string {
	stem := strings.TrimSuffix(contextPath, filepath.Ext(contextPath))
	return stem + "_decision.json"
}

// buildClassifier wires the configured sentiment capability, lazily.
func buildClassifier(cfg *config.Config) sentiment.Classifier {
	switch {
	case cfg.SentimentURL != "":
		return sentiment.NewLazy(func() (sentiment.Classifier, error) {
			return sentiment.NewRemoteClassifier(sentiment.RemoteOptions{
				Endpoint:       cfg.SentimentURL,
				RequestTimeout: time.Duration(cfg.SentimentTimeout) * time.Second,
				RequestsPerSec: cfg.RequestsPerSec,
			}), nil
		})
	case cfg.OpenAIAPIKey != "":
		return sentiment.NewLazy(func() (sentiment.Classifier, error) {
			return sentiment.NewOpenAIClassifier(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
		})
	default:
		return nil
	}
}

// probeTarget returns the remote classifier to health-check at startup, if
// one is configured. The lazy wrapper hides the concrete type, so the probe
// constructs its own handle from config; only the remote backend has a
// health endpoint.
func probeTarget(cls sentiment.Classifier) (*sentiment.RemoteClassifier, bool) {
	if lazy, ok := cls.(*sentiment.Lazy); ok {
		if remote, ok := lazy.Peek().(*sentiment.RemoteClassifier); ok {
			return remote, true
		}
	}
	return nil, false
}

// setupSignalHandling configures signal handling for graceful shutdown
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
	}()
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}
