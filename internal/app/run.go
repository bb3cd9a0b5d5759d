package app

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/vk/arbenchgo/internal/ctxlog"
	"github.com/vk/arbenchgo/internal/sim"
)

// Run builds the bench instances and executes the tick engine. The returned
// error carries every expectation mismatch; the trace file, when configured,
// is written whether or not the run passed.
func (a *App) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logger := a.logger.With("run_id", runID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	instances, err := a.buildInstances(ctx)
	if err != nil {
		return fmt.Errorf("failed to build bench instances: %w", err)
	}

	engine, err := sim.New(instances, a.config.Ticks)
	if err != nil {
		return fmt.Errorf("failed to wire bench: %w", err)
	}

	logger.Info("Starting bench run.", "instances", len(instances), "ticks", engine.Ticks())
	tr, runErr := engine.Run(ctx)
	tr.RunID = runID

	if a.config.TraceOut != "" {
		f, err := os.Create(a.config.TraceOut)
		if err != nil {
			return fmt.Errorf("failed to create trace file: %w", err)
		}
		defer f.Close()
		if err := tr.WriteYAML(f); err != nil {
			return fmt.Errorf("failed to write trace: %w", err)
		}
		logger.Info("Trace written.", "path", a.config.TraceOut)
	}

	if runErr != nil {
		return fmt.Errorf("bench failed: %w", runErr)
	}
	logger.Info("Bench run passed.", "ticks", engine.Ticks())
	return nil
}
