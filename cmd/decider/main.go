package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/finsight/decider/internal/config"
	"github.com/finsight/decider/internal/engine"
	"github.com/finsight/decider/internal/export"
	"github.com/finsight/decider/internal/model"
	"github.com/finsight/decider/internal/sentiment"
)

func main() {
	inputPath := flag.String("input", "", "path to market context JSON file (default: newest market_context_*.json in WATCH_DIR)")
	outputPath := flag.String("output", "", "path to decision output JSON file (default: stdout)")
	flag.Parse()

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandling(cancel)

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// 2. Configure logging
	setupLogging(cfg.LogLevel)
	log.Info().Msg("Starting decision engine")
	printConfig(cfg)

	// 3. Locate and read the market context
	path := *inputPath
	if path == "" {
		path, err = newestContextFile(cfg.WatchDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.WatchDir).Msg("No market context file found")
		}
	}

	mc, err := readContext(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to read market context")
	}

	// 4. Evaluate
	eng := engine.New(engine.Options{
		Classifier:          buildClassifier(cfg),
		ClassifierTimeout:   time.Duration(cfg.SentimentTimeout) * time.Second,
		CalendarBlendWeight: cfg.CalendarBlend,
	})

	decision, err := eng.Evaluate(ctx, *mc)
	if err != nil {
		// The decision is still well-formed; report and keep going.
		log.Error().Err(err).Msg("Context rejected, emitting degenerate decision")
	}

	// 5. Emit
	payload, err := json.MarshalIndent(decision, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode decision")
	}

	if *outputPath != "" {
		if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
			log.Fatal().Err(err).Str("path", *outputPath).Msg("Failed to write decision")
		}
		log.Info().Str("path", *outputPath).Msg("Decision written")
	} else {
		fmt.Println(string(payload))
	}

	if cfg.CSVExportPath != "" {
		if err := export.NewCSVWriter(cfg.CSVExportPath).Append(&decision); err != nil {
			log.Error().Err(err).Msg("CSV export failed")
		}
	}

	log.Info().
		Str("signal", string(decision.Signal)).
		Float64("confidence", decision.Confidence).
		Msg("Analysis completed")
}

// buildClassifier wires the configured sentiment capability: remote server
// first, OpenAI as an alternative, nothing when neither is configured (the
// engine then classifies with the keyword heuristic). Construction is lazy
// and single-flight.
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

// newestContextFile finds the most recent market context drop in dir.
func newestContextFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "market_context_*.json"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no market_context_*.json files in %s", dir)
	}

	newest := matches[0]
	var newestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if info.ModTime().After(newestMod) {
			newest = m
			newestMod = info.ModTime()
		}
	}
	return newest, nil
}

// readContext loads and decodes one MarketContext document.
func readContext(path string) (*model.MarketContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading context file: %w", err)
	}
	var mc model.MarketContext
	if err := json.Unmarshal(data, &mc); err != nil {
		return nil, fmt.Errorf("parsing context JSON: %w", err)
	}
	return &mc, nil
}

// setupSignalHandling configures signal handling for graceful shutdown
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
		os.Exit(0)
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

// printConfig outputs the current configuration
func printConfig(cfg *config.Config) {
	log.Info().
		Str("SentimentURL", cfg.SentimentURL).
		Int("SentimentTimeout", cfg.SentimentTimeout).
		Float64("CalendarBlend", cfg.CalendarBlend).
		Str("WatchDir", cfg.WatchDir).
		Bool("OpenAIConfigured", cfg.OpenAIAPIKey != "").
		Bool("CSVExport", cfg.CSVExportPath != "").
		Msg("Configuration loaded")
}
