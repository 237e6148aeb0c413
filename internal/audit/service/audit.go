package service

import (
	"context"

	"hms/internal/audit"
	"hms/internal/audit/repository"
	"hms/pkg/config"
	apperrors "hms/pkg/errors"
	"hms/pkg/model"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

type AuditService interface {
	audit.Recorder
	List(ctx context.Context, resource string, limit int) ([]*model.AuditLog, error)
}

type auditService struct {
	repo repository.AuditLogRepository
	cfg  *config.Config
}

func NewAuditService(repo repository.AuditLogRepository, cfg *config.Config) AuditService {
	return &auditService{
		repo: repo,
		cfg:  cfg,
	}
}

// Record writes entry. Failures are logged and swallowed so an audit outage
// never blocks an admin action.
func (s *auditService) Record(ctx context.Context, entry audit.Entry) {
	log := &model.AuditLog{
		Action:     entry.Action,
		Resource:   entry.Resource,
		ResourceID: entry.ResourceID,
		Details:    entry.Details,
		IPAddress:  entry.IPAddress,
	}
	if entry.Actor != nil {
		log.UserID = entry.Actor.UserID
		log.UserEmail = entry.Actor.Email
	}

	if err := s.repo.Insert(ctx, log); err != nil {
		s.cfg.Log.Error("Failed to record audit log",
			"action", entry.Action,
			"resource", entry.Resource,
			"resource_id", entry.ResourceID,
			"user_id", log.UserID,
			"error", err,
		)
	}
}

func (s *auditService) List(ctx context.Context, resource string, limit int) ([]*model.AuditLog, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	logs, err := s.repo.Find(ctx, resource, limit)
	if err != nil {
		s.cfg.Log.Error("Failed to list audit logs", "resource", resource, "error", err)
		return nil, apperrors.Internal("Failed to retrieve audit logs", err)
	}
	return logs, nil
}
