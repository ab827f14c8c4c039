package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/qepting91/reddit-annotator/internal/app"
	"github.com/qepting91/reddit-annotator/internal/collector"
	"github.com/qepting91/reddit-annotator/internal/config"
	"github.com/qepting91/reddit-annotator/internal/credentials"
	"github.com/qepting91/reddit-annotator/internal/domain"
	"github.com/qepting91/reddit-annotator/internal/logging"
	"github.com/qepting91/reddit-annotator/internal/sentiment"
	"github.com/qepting91/reddit-annotator/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Setup
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}

	logFile, err := logging.OpenLogFile(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "log file:", err)
		return 1
	}
	defer logFile.Close()
	logger := logging.InitLogger(cfg.LogLevel, cfg.LogFormat, logFile)
	logger.Info("Starting", "mode", cfg.CollectorMode, "config_dir", cfg.ConfigDir)

	// 2. Interrupts end the run
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	term := ui.NewTerminal(os.Stdout)
	var picker app.FilePicker = ui.NativePicker{}
	if cfg.FilePicker == config.PickerPrompt {
		picker = ui.PromptPicker{Term: term}
	}

	// 3. Login
	login := &app.Login{
		Prompt:           term,
		Store:            credentials.NewStore(cfg.CredentialsPath()),
		NeedsCredentials: collector.NeedsLogin(cfg),
		ProbeSubreddit:   cfg.ProbeSubreddit,
		DefaultUserAgent: cfg.UserAgent,
		Logger:           logger,
		Connect: func(creds *domain.Credentials, userAgent string) (domain.Collector, error) {
			return collector.NewCollector(cfg, creds, userAgent)
		},
	}
	session, err := login.Run(ctx)
	if err != nil {
		return exitCode(logger, err)
	}

	// 4. Menus
	controller := app.New(app.Deps{
		Prompt: term,
		Picker: picker,
		Progress: func(total int, title, label string) app.ProgressReporter {
			return ui.NewProgress(os.Stdout, total, title, label)
		},
		Session:        session,
		Scorer:         sentiment.NewAnalyzer(),
		CommentTimeout: cfg.CommentTimeout,
		Logger:         logger,
	})
	if err := controller.Run(ctx); err != nil {
		return exitCode(logger, err)
	}

	logger.Info("Exiting")
	return 0
}

func exitCode(logger *slog.Logger, err error) int {
	switch {
	case errors.Is(err, domain.ErrCancelled):
		logger.Info("Cancelled at login")
		return 0
	case errors.Is(err, context.Canceled):
		logger.Info("Shutdown signal received")
		return 130
	default:
		logger.Error("Fatal error", "err", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
}
