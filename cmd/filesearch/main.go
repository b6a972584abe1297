package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	filesearch "github.com/pr-poehali-dev/file-search-app"
	"github.com/pr-poehali-dev/file-search-app/internal/config"
	"github.com/pr-poehali-dev/file-search-app/internal/guard"
	logpkg "github.com/pr-poehali-dev/file-search-app/internal/logger"
	"github.com/pr-poehali-dev/file-search-app/internal/metrics"
	"github.com/pr-poehali-dev/file-search-app/internal/tui"
	"github.com/pr-poehali-dev/file-search-app/internal/version"
)

func main() {
	_ = godotenv.Load()

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: filesearch [file1.txt file2.txt ...]")
		flag.PrintDefaults()
	}
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()
	paths := flag.Args()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := buildLogger(env, cfg)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting file search",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("files", len(paths)),
		zap.String("scoring", cfg.Search.Scoring),
		zap.Bool("guard", !cfg.Guard.Disabled),
	)

	// Register metrics explicitly (no init()).
	metrics.Register()

	var g *guard.Guard
	if !cfg.Guard.Disabled {
		g = guard.New(cfg.Guard.BlockedKeys...)
	}

	notifier := tui.NewNotifier()

	opts := []filesearch.Option{
		filesearch.WithLogger(logger),
		filesearch.WithNotifier(filesearch.MultiNotifier(notifier, filesearch.LogNotifier(logger))),
		filesearch.WithConcurrency(cfg.Ingest.Concurrency),
		filesearch.WithSnippetRadius(cfg.Search.SnippetRadius),
	}
	if cfg.Search.Scoring == "frequency" {
		opts = append(opts, filesearch.WithScorer(filesearch.FrequencyScorer()))
	}
	eng := filesearch.New(opts...)

	if len(paths) > 0 {
		docs, err := eng.IngestFiles(context.Background(), paths...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ingest failed: %v\n", err)
			logger.Fatal("Initial ingest failed", zap.Error(err))
		}
		logger.Info("Initial batch ingested", zap.Int("documents", len(docs)))
	}

	// The release is deferred so the guard drops on every exit path,
	// panics included.
	if g != nil {
		release := g.Activate()
		defer release()
	}

	if err := tui.Run(tui.New(eng, notifier, g)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		logger.Fatal("UI error", zap.Error(err))
	}

	logger.Info("Session ended", zap.String("metrics", metrics.Snapshot()))
}

// buildLogger picks the sink. The TUI owns the terminal, so without a
// configured file the logs are dropped rather than drawn over the UI.
func buildLogger(env string, cfg config.Config) (*zap.Logger, error) {
	if cfg.Logging.File != "" {
		return logpkg.NewFileLogger(env, cfg.Logging.File, cfg.Logging.Level)
	}
	return zap.NewNop(), nil
}
