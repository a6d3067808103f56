package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"commission-backend/internal/config"
	"commission-backend/internal/shared"
	"commission-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterCleanupJobs() error {
	return s.registerCleanupOldNotificationsJob()
}

// ================================================
// JOB: Cleanup Old Read Notifications (Daily at 3 AM)
// ================================================
func (s *Scheduler) registerCleanupOldNotificationsJob() error {
	payload, err := json.Marshal(shared.CleanupOldNotificationsPayload{
		OlderThanDays: s.jobConfig.CleanupRetentionDays,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupOldNotifications, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *", // Daily at 3 AM, low traffic window
		task,
		asynq.Queue(shared.QueueNotification),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register CleanupOldNotifications job", err)
		return err
	}

	logger.Info("✓ Registered CleanupOldNotifications: daily at 3 AM", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
