package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"booklog-backend/internal/config"
	"booklog-backend/internal/shared"
	"booklog-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	config    config.WorkerConfig
}

func NewScheduler(redisAddress, redisPassword string, cfg config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress, Password: redisPassword},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		config:    cfg,
	}
}

func (s *Scheduler) RegisterMaintenanceJobs() error {
	if err := s.registerSyncAuthorProgressJob(); err != nil {
		return err
	}

	if err := s.registerRecalculateReadPointsJob(); err != nil {
		return err
	}

	if err := s.registerRefreshCommunityCacheJob(); err != nil {
		return err
	}

	return nil
}

// ================================================
// JOB 1: Sync Author Progress (Daily at 3 AM)
// ================================================
// An empty payload means every user with books gets a full
// completionist recompute.
func (s *Scheduler) registerSyncAuthorProgressJob() error {
	payload, err := json.Marshal(shared.SyncAuthorProgressPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeSyncAuthorProgress, payload)

	_, err = s.scheduler.Register(
		s.config.ProgressSyncSchedule,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(30*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register SyncAuthorProgress job", err)
		return err
	}

	logger.Info("✓ Registered SyncAuthorProgress", map[string]interface{}{
		"schedule": s.config.ProgressSyncSchedule,
	})
	return nil
}

// ================================================
// JOB 2: Recalculate Read Points (Daily at 3:30 AM)
// ================================================
// An empty ReadIDs list puts the handler into backfill mode: it scans
// for finished reads that are missing cached scores.
func (s *Scheduler) registerRecalculateReadPointsJob() error {
	payload, err := json.Marshal(shared.RecalculateReadPointsPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeRecalculateReadPoints, payload)

	_, err = s.scheduler.Register(
		s.config.PointsBackfillSchedule,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(15*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register RecalculateReadPoints job", err)
		return err
	}

	logger.Info("✓ Registered RecalculateReadPoints", map[string]interface{}{
		"schedule": s.config.PointsBackfillSchedule,
	})
	return nil
}

// ================================================
// JOB 3: Refresh Community Cache (Every 6 hours)
// ================================================
// Community analytics are expensive cross-user scans, so they are
// recomputed on a schedule rather than per request.
func (s *Scheduler) registerRefreshCommunityCacheJob() error {
	payload, err := json.Marshal(shared.RefreshCommunityCachePayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeRefreshCommunityCache, payload)

	_, err = s.scheduler.Register(
		s.config.CommunityRefreshSchedule,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register RefreshCommunityCache job", err)
		return err
	}

	logger.Info("✓ Registered RefreshCommunityCache", map[string]interface{}{
		"schedule": s.config.CommunityRefreshSchedule,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
