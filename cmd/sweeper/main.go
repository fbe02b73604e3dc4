package main

// Periodically re-evaluates every account so churn and dormancy states are
// picked up without waiting for the next API-triggered evaluation:
//   SWEEP_SCHEDULE="@every 1h" go run ./cmd/sweeper

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"lifecycle-backend/internal/bootstrap"
	"lifecycle-backend/internal/lifecycle"
	"lifecycle-backend/internal/shared/config"
	"lifecycle-backend/internal/shared/metrics"
	"lifecycle-backend/internal/shared/storage/db"
	"lifecycle-backend/internal/shared/telemetry"
)

const sweepTimeout = 10 * time.Minute

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg, db.DefaultSweeperOptions())
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.SweepSchedule, func() {
		sweepCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
		defer cancel()
		runSweep(sweepCtx, app)
	})
	if err != nil {
		log.Fatalf("invalid SWEEP_SCHEDULE %q: %v", cfg.SweepSchedule, err)
	}

	log.Printf("sweeper started schedule=%q", cfg.SweepSchedule)
	scheduler.Start()

	<-ctx.Done()
	log.Printf("shutdown requested, waiting for in-flight sweep")
	<-scheduler.Stop().Done()
}

func runSweep(ctx context.Context, app *bootstrap.App) {
	started := time.Now()
	ids, err := app.AccountsRepo.ListIDs(ctx)
	if err != nil {
		telemetry.Error("sweep.list_failed", map[string]any{"error": err.Error()})
		return
	}

	evaluated := 0
	failed := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			telemetry.Warn("sweep.interrupted", map[string]any{"evaluated": evaluated, "remaining": len(ids) - evaluated})
			return
		}
		meta := map[string]any{"source": "sweeper"}
		if _, err := app.LifecycleService.Record(ctx, id, lifecycle.Overrides{}, meta); err != nil {
			failed++
			telemetry.Error("sweep.record_failed", map[string]any{"account_id": id, "error": err.Error()})
			continue
		}
		evaluated++
	}

	metrics.IncSweeps()
	telemetry.Info("sweep.complete", map[string]any{
		"accounts":    len(ids),
		"evaluated":   evaluated,
		"failed":      failed,
		"duration_ms": float64(time.Since(started).Microseconds()) / 1000.0,
	})
}
