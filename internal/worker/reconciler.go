// Package worker runs the periodic bounty reconciliation sweep.
package worker

import (
	"context"
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	bountyService "github.com/starbounty/bounty-service/internal/bounty/service"
	appConfig "github.com/starbounty/bounty-service/internal/config"
)

// Reconciler periodically refreshes bounty state from the issue tracker so
// bounties converge even when webhook deliveries are lost.
type Reconciler struct {
	scheduler gocron.Scheduler
	service   bountyService.Service
	cfg       appConfig.WorkerConfig
	logger    *zap.SugaredLogger
}

// New creates a reconciler. Returns nil when the sweep is disabled by
// configuration.
func New(cfg appConfig.WorkerConfig, svc bountyService.Service, logger *zap.SugaredLogger) (*Reconciler, error) {
	if cfg.ReconcileInterval <= 0 {
		logger.Infow("reconciliation sweep disabled")
		return nil, nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	r := &Reconciler{
		scheduler: scheduler,
		service:   svc,
		cfg:       cfg,
		logger:    logger,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.ReconcileInterval),
		gocron.NewTask(r.sweep),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule reconciliation job: %w", err)
	}

	return r, nil
}

// Start begins the periodic sweep.
func (r *Reconciler) Start() {
	r.scheduler.Start()
	r.logger.Infow("reconciliation sweep started",
		"interval", r.cfg.ReconcileInterval,
		"batch_size", r.cfg.ReconcileBatchSize,
	)
}

// Stop shuts the scheduler down, waiting for a running sweep to finish.
func (r *Reconciler) Stop() error {
	return r.scheduler.Shutdown()
}

// sweep reconciles a batch of active bounties. Failures on individual
// bounties are logged and do not stop the batch.
func (r *Reconciler) sweep() {
	ctx := context.Background()

	bounties, err := r.service.ListForReconcile(ctx, r.cfg.ReconcileBatchSize)
	if err != nil {
		r.logger.Errorw("failed to list bounties for reconciliation", "error", err)
		return
	}

	if len(bounties) == 0 {
		return
	}

	r.logger.Debugw("reconciliation sweep", "count", len(bounties))

	for _, bounty := range bounties {
		if _, err := r.service.Progress(ctx, bounty.ID); err != nil {
			r.logger.Warnw("failed to reconcile bounty", "bounty_id", bounty.ID, "error", err)
		}
	}
}
