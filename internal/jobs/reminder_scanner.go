package jobs

import (
	"context"
	"log"
	"time"

	"cobrafacil/internal/common"
	"cobrafacil/internal/repositories"
	"cobrafacil/internal/services"

	"github.com/google/uuid"
)

// DefaultReminderWindowDays is how far ahead of the due date reminders go out.
const DefaultReminderWindowDays = 3

// ReminderResult records the outcome for a single charge in a scan.
type ReminderResult struct {
	ChargeID uuid.UUID `json:"charge_id"`
	Success  bool      `json:"success"`
	Error    string    `json:"error,omitempty"`
}

// ScanReport aggregates one scanner run.
type ScanReport struct {
	Processed  int              `json:"processed"`
	Successful int              `json:"successful"`
	Results    []ReminderResult `json:"results"`
}

// ReminderScanner finds pending charges due within the reminder window and
// dispatches a reminder for each one not already reminded today.
type ReminderScanner struct {
	chargeRepo  repositories.ChargeRepository
	messageRepo repositories.MessageRepository
	reminderSvc services.ReminderService
	windowDays  int
	now         func() time.Time
}

func NewReminderScanner(
	chargeRepo repositories.ChargeRepository,
	messageRepo repositories.MessageRepository,
	reminderSvc services.ReminderService,
	windowDays int,
) *ReminderScanner {
	if windowDays <= 0 {
		windowDays = DefaultReminderWindowDays
	}
	return &ReminderScanner{
		chargeRepo:  chargeRepo,
		messageRepo: messageRepo,
		reminderSvc: reminderSvc,
		windowDays:  windowDays,
		now:         time.Now,
	}
}

// ScanUpcomingCharges runs one scan. Charges are processed sequentially; a
// failure for one charge is recorded in the report and never aborts the batch.
// A charge that already has a message sent today is skipped entirely (it does
// not appear in the report). Failed charges get no message row, so the next
// run picks them up again; that is the only retry mechanism.
func (s *ReminderScanner) ScanUpcomingCharges(ctx context.Context) (*ScanReport, error) {
	today := common.StartOfDay(s.now())
	windowEnd := common.EndOfDay(today.AddDate(0, 0, s.windowDays))

	upcoming, err := s.chargeRepo.ListUpcoming(ctx, today, windowEnd)
	if err != nil {
		log.Printf("Reminder scan failed to list upcoming charges: %v", err)
		return nil, err
	}

	report := &ScanReport{}
	for _, charge := range upcoming {
		alreadySent, err := s.messageRepo.ExistsForChargeSince(ctx, charge.ChargeID, today)
		if err != nil {
			report.Processed++
			report.Results = append(report.Results, ReminderResult{
				ChargeID: charge.ChargeID,
				Success:  false,
				Error:    err.Error(),
			})
			continue
		}
		if alreadySent {
			continue
		}

		report.Processed++
		_, err = s.reminderSvc.Dispatch(ctx, services.DispatchInput{
			ChargeID:    charge.ChargeID,
			ClientPhone: charge.ClientPhone,
			ClientName:  charge.ClientName,
			ProductName: charge.ProductName,
			Amount:      charge.Amount,
			DueDate:     charge.DueDate,
			UserID:      charge.UserID,
		})
		if err != nil {
			log.Printf("Reminder dispatch failed for charge %s: %v", charge.ChargeID.String(), err)
			report.Results = append(report.Results, ReminderResult{
				ChargeID: charge.ChargeID,
				Success:  false,
				Error:    err.Error(),
			})
			continue
		}

		report.Successful++
		report.Results = append(report.Results, ReminderResult{
			ChargeID: charge.ChargeID,
			Success:  true,
		})
	}

	log.Printf("Reminder scan completed: processed=%d successful=%d", report.Processed, report.Successful)
	return report, nil
}
