package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cobrafacil/internal/common"
	"cobrafacil/internal/models"
	"cobrafacil/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrWhatsAppNotConnected is returned when a reminder is dispatched for a user
// whose WhatsApp account is not paired. No message row is written in that case.
var ErrWhatsAppNotConnected = errors.New("whatsapp not connected")

// DefaultReminderTemplate is used when the user has no default template.
const DefaultReminderTemplate = "Olá {{client}}! Lembrete de cobrança: {{product}} no valor de {{amount}}, com vencimento em {{due_date}}."

// DispatchInput carries everything the dispatcher needs for one charge.
type DispatchInput struct {
	ChargeID    uuid.UUID
	ClientPhone string
	ClientName  string
	ProductName string
	Amount      float64
	DueDate     time.Time
	UserID      uuid.UUID
}

// ReminderService formats and records reminder messages. Recording is the
// whole delivery: no outbound call to a messaging provider occurs, so
// delivered_at is set alongside sent_at.
type ReminderService interface {
	Dispatch(ctx context.Context, input DispatchInput) (uuid.UUID, error)
}

type reminderService struct {
	whatsappRepo repositories.WhatsAppRepository
	templateRepo repositories.TemplateRepository
	messageRepo  repositories.MessageRepository
}

func NewReminderService(
	whatsappRepo repositories.WhatsAppRepository,
	templateRepo repositories.TemplateRepository,
	messageRepo repositories.MessageRepository,
) ReminderService {
	return &reminderService{
		whatsappRepo: whatsappRepo,
		templateRepo: templateRepo,
		messageRepo:  messageRepo,
	}
}

// Dispatch checks the user's connection, renders the reminder text and writes
// the message row. Returns the new message id.
func (s *reminderService) Dispatch(ctx context.Context, input DispatchInput) (uuid.UUID, error) {
	conn, err := s.whatsappRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Never paired.
			return uuid.Nil, ErrWhatsAppNotConnected
		}
		return uuid.Nil, fmt.Errorf("failed to load whatsapp connection: %w", err)
	}
	if conn == nil || !conn.IsConnected {
		return uuid.Nil, ErrWhatsAppNotConnected
	}

	content := s.renderContent(ctx, input)

	now := time.Now()
	message := &models.Message{
		ID:          uuid.New(),
		UserID:      input.UserID,
		ChargeID:    input.ChargeID,
		PhoneNumber: input.ClientPhone,
		Content:     content,
		Status:      models.MessageStatusSent,
		SentAt:      now,
		DeliveredAt: &now,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return uuid.Nil, fmt.Errorf("failed to record reminder message: %w", err)
	}

	log.Printf("Reminder recorded for charge %s (user %s)", input.ChargeID.String(), input.UserID.String())
	return message.ID, nil
}

func (s *reminderService) renderContent(ctx context.Context, input DispatchInput) string {
	content := DefaultReminderTemplate
	if template, err := s.templateRepo.GetDefault(ctx, input.UserID); err == nil && template != nil {
		content = template.Content
	}
	return RenderTemplate(content, input.ClientName, input.ProductName, input.Amount, input.DueDate)
}

// RenderTemplate substitutes the reminder placeholders into a template body.
func RenderTemplate(content, clientName, productName string, amount float64, dueDate time.Time) string {
	replacer := strings.NewReplacer(
		"{{client}}", clientName,
		"{{product}}", productName,
		"{{amount}}", common.FormatBRL(amount),
		"{{due_date}}", common.FormatDueDate(dueDate),
	)
	return replacer.Replace(content)
}
