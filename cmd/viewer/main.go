package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/VoidMesh/noise/cmd/viewer/models"
	"github.com/VoidMesh/noise/internal/config"
	"github.com/VoidMesh/noise/internal/field"
	"github.com/VoidMesh/noise/internal/logging"
)

func main() {
	cfg := config.Load()

	paletteName := flag.String("palette", cfg.Field.Palette, "Palette (grayscale, banded)")
	step := flag.Float64("step", cfg.Field.Step, "Distance between samples in lattice units")
	extent := flag.Float64("extent", cfg.Field.Extent, "Side of the sampled square in lattice units")
	interval := flag.Duration("interval", cfg.Field.Interval, "Time between regenerations")
	logLevel := flag.String("log", cfg.Logging.Level, "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg.Logging.Level = *logLevel
	cfg.Field.Step = *step
	cfg.Field.Extent = *extent
	cfg.Field.Interval = *interval

	// The alt screen owns stdout, so logs go to a file or nowhere.
	var logOutput io.Writer = io.Discard
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
		logOutput = f
	}
	logging.InitLoggerWithWriter(logOutput, cfg.Logging)

	if err := cfg.Validate(); err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}

	gen, err := field.NewGenerator(field.Params{Step: cfg.Field.Step, Extent: cfg.Field.Extent})
	if err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
	regen := field.NewRegenerator(gen, cfg.Field.Interval)

	app, err := models.NewViewer(regen.Fields(), regen, *paletteName)
	if err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return regen.Run(gctx)
	})

	program := tea.NewProgram(app, tea.WithAltScreen())

	log.Info("Starting VoidMesh noise viewer", "palette", *paletteName, "step", cfg.Field.Step, "extent", cfg.Field.Extent, "interval", cfg.Field.Interval)

	_, runErr := program.Run()
	cancel()
	if err := g.Wait(); err != nil {
		log.Error("Regenerator failed", "error", err)
	}
	if runErr != nil {
		fmt.Println("fatal:", runErr)
		os.Exit(1)
	}
}
