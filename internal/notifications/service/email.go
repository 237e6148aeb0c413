package service

import (
	"context"

	"hms/internal/notifications"
	"hms/internal/notifications/repository"
	"hms/pkg/config"
	apperrors "hms/pkg/errors"
	"hms/pkg/model"
)

const recentLogLimit = 100

// ContactLookup supplies the WhatsApp number printed in confirmations.
type ContactLookup interface {
	WhatsAppNumber(ctx context.Context) string
}

type EmailService interface {
	SendReservationConfirmation(ctx context.Context, reservation *model.Reservation) error
	SendPasswordReset(ctx context.Context, to, token string) error
	RecentLogs(ctx context.Context) ([]*model.EmailLog, error)
}

type emailService struct {
	mailer   notifications.Mailer
	logs     repository.EmailLogRepository
	contacts ContactLookup
	cfg      *config.Config
}

func NewEmailService(mailer notifications.Mailer, logs repository.EmailLogRepository, contacts ContactLookup, cfg *config.Config) EmailService {
	return &emailService{
		mailer:   mailer,
		logs:     logs,
		contacts: contacts,
		cfg:      cfg,
	}
}

func (s *emailService) SendReservationConfirmation(ctx context.Context, reservation *model.Reservation) error {
	email, err := notifications.ReservationConfirmation(reservation, s.contacts.WhatsAppNumber(ctx))
	if err != nil {
		return err
	}
	return s.send(ctx, email, model.EmailKindReservation, reservation.ID)
}

func (s *emailService) SendPasswordReset(ctx context.Context, to, token string) error {
	email, err := notifications.PasswordReset(to, s.cfg.FrontendURL, token)
	if err != nil {
		return err
	}
	return s.send(ctx, email, model.EmailKindPasswordReset, "")
}

func (s *emailService) RecentLogs(ctx context.Context) ([]*model.EmailLog, error) {
	logs, err := s.logs.FindRecent(ctx, recentLogLimit)
	if err != nil {
		s.cfg.Log.Error("Failed to list email logs", "error", err)
		return nil, apperrors.Internal("Failed to retrieve email logs", err)
	}
	return logs, nil
}

// send delivers email and records the attempt either way.
func (s *emailService) send(ctx context.Context, email notifications.Email, kind, referenceID string) error {
	sendErr := s.mailer.Send(ctx, email)

	entry := &model.EmailLog{
		To:          email.To,
		Subject:     email.Subject,
		Kind:        kind,
		ReferenceID: referenceID,
		Status:      model.EmailStatusSent,
	}
	if sendErr != nil {
		entry.Status = model.EmailStatusFailed
		entry.Error = sendErr.Error()
		s.cfg.Log.Error("Failed to send email", "to", email.To, "kind", kind, "reference_id", referenceID, "error", sendErr)
	} else {
		s.cfg.Log.Info("Email sent", "to", email.To, "kind", kind, "reference_id", referenceID)
	}

	if err := s.logs.Insert(context.WithoutCancel(ctx), entry); err != nil {
		s.cfg.Log.Error("Failed to record email log", "to", email.To, "kind", kind, "error", err)
	}
	return sendErr
}
