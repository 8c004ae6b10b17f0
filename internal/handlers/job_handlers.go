package handlers

import (
	"net/http"

	"cobrafacil/internal/jobs"

	"github.com/labstack/echo/v4"
)

// JobStatusProvider reports on the registered background jobs.
type JobStatusProvider interface {
	GetJobStatus() map[string]interface{}
}

// JobHandlers exposes manual triggers and status for background jobs
type JobHandlers struct {
	reminderScanner *jobs.ReminderScanner
	scheduler       JobStatusProvider
}

// NewJobHandlers creates a new job handlers instance
func NewJobHandlers(reminderScanner *jobs.ReminderScanner, scheduler JobStatusProvider) *JobHandlers {
	return &JobHandlers{reminderScanner: reminderScanner, scheduler: scheduler}
}

// JobStatus handles GET /admin/jobs (admin only)
func (h *JobHandlers) JobStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduler.GetJobStatus())
}

// RunReminderScan handles POST /jobs/reminders/run (admin only)
func (h *JobHandlers) RunReminderScan(c echo.Context) error {
	report, err := h.reminderScanner.ScanUpcomingCharges(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Reminder scan failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    "Reminder scan completed",
		"processed":  report.Processed,
		"successful": report.Successful,
		"results":    report.Results,
	})
}
