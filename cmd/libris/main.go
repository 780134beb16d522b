package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"libris/internal/config"
	models "libris/internal/domain/models/library"
	libSvc "libris/internal/domain/services/library"
	"libris/internal/repository/rest"
	"libris/internal/repository/stream"
	service "libris/internal/service/library"
	"libris/internal/swatch"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer f.Close()
		logOutput = io.MultiWriter(os.Stdout, f)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("engine starting",
		"environment", cfg.Environment,
		"api_url", cfg.APIBaseURL,
		"events_url", cfg.EventsURL,
	)

	// Swatch catalog for folder color validation
	swatches, err := swatch.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load swatch catalog: %v", err)
	}

	// REST collaborators share one client
	client := rest.NewClient(&rest.Config{
		BaseURL: cfg.APIBaseURL,
		Token:   cfg.APIToken,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})

	// Push-event channel
	events := stream.NewSource(cfg.EventsURL, cfg.APIToken, logger)

	// The engine itself
	engine := service.NewOrchestrator(service.Deps{
		Tree:      client,
		Folders:   client,
		Documents: client,
		Organize:  client,
		Swatches:  swatches,
		Logger:    logger,
	}, service.Options{
		SearchDebounce:        cfg.SearchDebounce,
		CompletionReloadDelay: cfg.CompletionReloadDelay,
		PageSize:              cfg.PageSize,
	})
	defer engine.Close()

	// Log notices so failed mutations stay visible without a UI
	engine.Subscribe(func(change libSvc.Change) {
		if change.Kind == libSvc.ChangeNotice && change.Notice != nil {
			logger.Warn("notice",
				"level", change.Notice.Level,
				"message", change.Notice.Message,
				"document_id", change.Notice.DocumentID,
			)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Pump push events into the engine
	go func() {
		if err := events.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("event stream terminated", "error", err)
		}
	}()
	go engine.Consume(ctx, events.Events())

	// Initial sync
	if err := engine.LoadTree(ctx); err != nil {
		logger.Error("initial tree load failed", "error", err)
	}
	if err := engine.LoadDocuments(ctx, models.ListCriteria{}); err != nil {
		logger.Error("initial document load failed", "error", err)
	}

	// Wait for shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("engine stopping")
}
