package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/bhamail/bhamail/config"
	"github.com/bhamail/bhamail/db"
	"github.com/bhamail/bhamail/queue/executor"
	"golang.org/x/sync/errgroup"
)

// Scheduler claims pending jobs on a fixed interval and hands them to the
// executor with bounded concurrency.
type Scheduler struct {
	configProvider *config.Provider
	dbQueue        db.DbQueue
	executor       *executor.DefaultExecutor
	logger         *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(provider *config.Provider, dbQueue db.DbQueue, exec *executor.DefaultExecutor, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		configProvider: provider,
		dbQueue:        dbQueue,
		executor:       exec,
		logger:         logger,
		done:           make(chan struct{}),
	}
}

// Start launches the scheduling loop in a goroutine and returns.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	interval := s.configProvider.Get().Scheduler.Interval.Duration
	s.logger.Info("⏰ scheduler: starting", "interval", interval)

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info("⏰ scheduler: shutting down")
				return
			case <-ticker.C:
				s.processJobs(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for the in-flight batch to finish, or
// for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler shutdown timed out: %w", ctx.Err())
	}
}

func (s *Scheduler) processJobs(ctx context.Context) {
	cfg := s.configProvider.Get()

	jobs, err := s.dbQueue.Claim(cfg.Scheduler.MaxJobsPerTick)
	if err != nil {
		s.logger.Error("⏰ scheduler: failed to claim jobs", "err", err)
		return
	}
	if len(jobs) == 0 {
		return
	}
	s.logger.Info("⏰ scheduler: claimed jobs", "count", len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU() * cfg.Scheduler.ConcurrencyMultiplier)

	for _, job := range jobs {
		job := job
		g.Go(func() error {
			jobCtx, cancel := context.WithTimeout(gctx, cfg.Scheduler.JobTimeout.Duration)
			defer cancel()

			if err := s.executor.Execute(jobCtx, *job); err != nil {
				s.logger.Error("⏰ scheduler: job failed", "job_id", job.ID, "job_type", job.JobType, "err", err)
				if markErr := s.dbQueue.MarkFailed(job.ID, err.Error()); markErr != nil {
					s.logger.Error("⏰ scheduler: failed to mark job failed", "job_id", job.ID, "err", markErr)
				}
				return nil
			}

			if err := s.dbQueue.MarkCompleted(job.ID); err != nil {
				s.logger.Error("⏰ scheduler: failed to mark job completed", "job_id", job.ID, "err", err)
			}
			return nil
		})
	}

	// Handlers report failures through the queue, never through the group.
	_ = g.Wait()
}
