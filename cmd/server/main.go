package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/VoidMesh/noise/internal/api"
	"github.com/VoidMesh/noise/internal/config"
	"github.com/VoidMesh/noise/internal/db"
	"github.com/VoidMesh/noise/internal/field"
	"github.com/VoidMesh/noise/internal/logging"
	"github.com/VoidMesh/noise/internal/palette"
)

// archiveTimeout bounds a single snapshot write, including during shutdown.
const archiveTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logging
	logging.InitLogger(cfg.Logging)
	log.Debug("Configuration loaded", "server_port", cfg.Server.Port, "db_path", cfg.Database.Path, "field_step", cfg.Field.Step, "field_extent", cfg.Field.Extent)

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	if _, err := palette.ByName(cfg.Field.Palette); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	// Initialize database
	database, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run database migrations", "error", err)
	}
	archive := db.NewArchive(database, cfg.Database.Retain)

	// Field generation
	gen, err := field.NewGenerator(field.Params{Step: cfg.Field.Step, Extent: cfg.Field.Extent})
	if err != nil {
		log.Fatal("Failed to create field generator", "error", err)
	}
	regen := field.NewRegenerator(gen, cfg.Field.Interval)
	latest := &field.Latest{}

	// Initialize API handlers
	handler := api.NewHandler(latest, regen, archive, cfg.Field.Palette)
	router := api.SetupRoutes(handler)
	log.Debug("API routes configured")

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return regen.Run(gctx)
	})

	// Drains until Run closes the channel, so fields finished during
	// shutdown are still archived.
	g.Go(func() error {
		consume(regen.Fields(), latest, archive)
		return nil
	})

	g.Go(func() error {
		log.Info("Starting VoidMesh noise server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		log.Debug("Server stopped listening")
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown", "error", err)
			return err
		}
		log.Debug("Server shutdown completed gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server exited with error", "error", err)
		return
	}
	log.Info("Server exited")
}

type archiver interface {
	Save(ctx context.Context, f *field.Field) (int64, error)
}

type publisher interface {
	Store(f *field.Field) bool
}

// consume publishes every delivered field and archives it. Archive failures
// are logged; the field stays visible either way.
func consume(fields <-chan *field.Field, latest publisher, archive archiver) {
	for f := range fields {
		logger := logging.WithField(f.ID).With("component", "consumer")

		if !latest.Store(f) {
			logger.Debug("Skipping stale field", "generated_at", f.GeneratedAt)
		}

		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		id, err := archive.Save(ctx, f)
		cancel()
		if err != nil {
			logger.Error("Failed to archive field", "error", err)
			continue
		}

		logger.Info("Field ready",
			"snapshot_id", id,
			"samples", f.Samples,
			"min", f.Min,
			"max", f.Max,
			"gradients", f.Gradients,
			"duration", f.Duration,
		)
	}
}
