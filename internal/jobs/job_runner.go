package jobs

import (
	"resourcehub-backend/internal/clock"
	"resourcehub-backend/internal/config"
	"resourcehub-backend/internal/logger"
	"resourcehub-backend/internal/repository/postgres"
	"resourcehub-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store    *postgres.Store
	services *Services
	clock    clock.Clock
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, services *Services, clk clock.Clock, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		services: services,
		clock:    clk,
		config:   cfg,
	}
}

// Config exposes the configuration for the scheduler's cron expressions.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllJobs runs every job once (for manual execution)
func (jr *JobRunner) RunAllJobs() {
	jr.CompletePastBookings()
	jr.ExpireStaleWaitlist()
	jr.SendUpcomingReminders()
}
