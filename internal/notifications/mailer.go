// Package notifications delivers guest and staff email.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	notificationerrors "hms/internal/notifications/errors"
	"hms/pkg/config"
	"hms/pkg/logger"

	"github.com/sony/gobreaker"
	"gopkg.in/gomail.v2"
)

type Email struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer dials with implicit TLS on port 465 and STARTTLS otherwise.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	dialer.SSL = cfg.SMTPPort == 465
	return &SMTPMailer{dialer: dialer, from: cfg.SenderEmail}
}

func (m *SMTPMailer) Send(ctx context.Context, email Email) error {
	if email.To == "" {
		return notificationerrors.ErrNoRecipient
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/html", email.HTML)

	// gomail has no context support; the dial is abandoned, not interrupted.
	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", email.To, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to send email to %s: %w", email.To, ctx.Err())
	}
}

// LogMailer stands in for SMTP when it is not configured.
type LogMailer struct {
	log *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, email Email) error {
	if email.To == "" {
		return notificationerrors.ErrNoRecipient
	}
	m.log.Info("SMTP not configured, email not delivered",
		"to", email.To,
		"subject", email.Subject,
		"bytes", len(email.HTML),
	)
	return nil
}

// BreakerMailer stops calling a failing mail server for a while after five
// consecutive failures.
type BreakerMailer struct {
	next    Mailer
	breaker *gobreaker.CircuitBreaker
}

func NewBreakerMailer(next Mailer, log *logger.Logger) *BreakerMailer {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return &BreakerMailer{next: next, breaker: breaker}
}

func (m *BreakerMailer) Send(ctx context.Context, email Email) error {
	_, err := m.breaker.Execute(func() (interface{}, error) {
		return nil, m.next.Send(ctx, email)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", notificationerrors.ErrMailerUnavailable, err)
	}
	return err
}

// NewMailer picks SMTP when it is configured and always wraps the result in
// a breaker.
func NewMailer(cfg *config.Config) Mailer {
	if !cfg.SMTPEnabled() {
		return NewLogMailer(cfg.Log)
	}
	return NewBreakerMailer(NewSMTPMailer(cfg), cfg.Log)
}
