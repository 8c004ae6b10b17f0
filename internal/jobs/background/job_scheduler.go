package background

import (
	"context"
	"log"
	"sync"
	"time"

	"cobrafacil/internal/jobs"
	"cobrafacil/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages background jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	scanner   *jobs.ReminderScanner
	authSvc   services.AuthService
	jobJobs   map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(scanner *jobs.ReminderScanner, authSvc services.AuthService) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		scanner:   scanner,
		authSvc:   authSvc,
		jobJobs:   make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	// Reminder scan - daily at 09:00 server time. Singleton mode keeps
	// overlapping runs from double-sending through the best-effort
	// same-day check.
	reminderJob, err := js.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(9, 0, 0))),
		gocron.NewTask(js.runReminderScan),
		gocron.WithName("reminder-scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create reminder scan job: %v", err)
	} else {
		js.jobJobs["reminder-scan"] = reminderJob
	}

	// Expired refresh token cleanup - every hour
	cleanupJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.cleanupExpiredTokens),
		gocron.WithName("token-cleanup"),
	)
	if err != nil {
		log.Printf("Failed to create token cleanup job: %v", err)
	} else {
		js.jobJobs["token-cleanup"] = cleanupJob
	}

	log.Printf("Registered %d background jobs", len(js.jobJobs))
}

func (js *JobScheduler) runReminderScan() error {
	report, err := js.scanner.ScanUpcomingCharges(context.Background())
	if err != nil {
		log.Printf("Scheduled reminder scan failed: %v", err)
		return err
	}
	log.Printf("Scheduled reminder scan: processed=%d successful=%d", report.Processed, report.Successful)
	return nil
}

func (js *JobScheduler) cleanupExpiredTokens() error {
	deleted, err := js.authSvc.CleanupExpiredTokens(context.Background())
	if err != nil {
		log.Printf("Token cleanup failed: %v", err)
		return err
	}
	if deleted > 0 {
		log.Printf("Token cleanup removed %d expired refresh tokens", deleted)
	}
	return nil
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	status := make(map[string]interface{})
	status["total_jobs"] = len(js.jobJobs)
	names := make([]string, 0, len(js.jobJobs))
	for name := range js.jobJobs {
		names = append(names, name)
	}
	status["jobs"] = names

	return status
}
