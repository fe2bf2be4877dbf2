package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// The worker owns the periodic maintenance the API never runs inline: monthly
// credit refills for metered plans and pruning of aged usage_logs rows.
type maintenanceWorker struct {
	runner        *infra.SQLRunner
	logger        zerolog.Logger
	interval      time.Duration
	retentionDays int
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	w := &maintenanceWorker{
		runner:        infra.NewSQLRunner(pool, logger),
		logger:        logger,
		interval:      cfg.WorkerInterval,
		retentionDays: cfg.UsageRetentionDays,
	}

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}

func (w *maintenanceWorker) Run(ctx context.Context) error {
	w.logger.Info().Dur("interval", w.interval).Msg("worker: started")

	// One pass at startup so a freshly deployed worker catches up immediately.
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *maintenanceWorker) sweep(ctx context.Context) {
	w.refillCredits(ctx)
	w.pruneUsage(ctx)
}

func (w *maintenanceWorker) refillCredits(ctx context.Context) {
	for _, plan := range []domain.Plan{domain.PlanFree, domain.PlanPro} {
		tag, err := w.runner.Exec(ctx, sqlinline.QRefillDueCredits, string(plan), plan.MonthlyCredits())
		if err != nil {
			w.logger.Error().Err(err).Str("plan", plan.String()).Msg("worker: credit refill failed")
			continue
		}
		if n := tag.RowsAffected(); n > 0 {
			w.logger.Info().Str("plan", plan.String()).Int64("profiles", n).Msg("worker: credits refilled")
		}
	}
}

func (w *maintenanceWorker) pruneUsage(ctx context.Context) {
	tag, err := w.runner.Exec(ctx, sqlinline.QDeleteUsageOlderThan, w.retentionDays)
	if err != nil {
		w.logger.Error().Err(err).Msg("worker: usage prune failed")
		return
	}
	if n := tag.RowsAffected(); n > 0 {
		w.logger.Info().Int64("rows", n).Int("retention_days", w.retentionDays).Msg("worker: usage logs pruned")
	}
}
