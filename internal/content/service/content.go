package service

import (
	"context"
	"errors"
	"fmt"

	contenterrors "hms/internal/content/errors"
	"hms/internal/content/repository"
	"hms/internal/content/validator"
	"hms/pkg/config"
	apperrors "hms/pkg/errors"
	"hms/pkg/model"
	"hms/pkg/sanitizer"
	"hms/pkg/validation"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	contactSection      = "contact"
	whatsAppContentType = "whatsapp"
)

type ContentService interface {
	List(ctx context.Context) ([]*model.SiteContent, error)
	ListPage(ctx context.Context, page string) ([]*model.SiteContent, error)
	Upsert(ctx context.Context, content *model.SiteContent) error
	Update(ctx context.Context, id string, update *model.SiteContentUpdate) error
	DeleteSection(ctx context.Context, page, section string) error
	WhatsAppNumber(ctx context.Context) string
}

type contentService struct {
	repo      repository.ContentRepository
	validator *validator.ContentValidator
	cfg       *config.Config
}

func NewContentService(repo repository.ContentRepository, validator *validator.ContentValidator, cfg *config.Config) ContentService {
	return &contentService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *contentService) List(ctx context.Context) ([]*model.SiteContent, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list site content", "error", err)
		return nil, apperrors.Internal("Failed to retrieve content", err)
	}
	return items, nil
}

func (s *contentService) ListPage(ctx context.Context, page string) ([]*model.SiteContent, error) {
	items, err := s.repo.FindByPage(ctx, sanitizer.TrimAndNormalize(page))
	if err != nil {
		s.cfg.Log.Error("Failed to list page content", "page", page, "error", err)
		return nil, apperrors.Internal("Failed to retrieve content", err)
	}
	return items, nil
}

func (s *contentService) Upsert(ctx context.Context, content *model.SiteContent) error {
	content.Page = sanitizer.TrimAndNormalize(content.Page)
	content.Section = sanitizer.TrimAndNormalize(content.Section)
	content.ContentType = sanitizer.TrimAndNormalize(content.ContentType)

	if err := s.validator.Validate(content); err != nil {
		s.cfg.Log.Warn("Content validation failed", "page", content.Page, "section", content.Section, "error", err)
		return validationError(err)
	}

	if err := s.repo.Upsert(ctx, content); err != nil {
		s.cfg.Log.Error("Failed to upsert site content", "page", content.Page, "section", content.Section, "error", err)
		return apperrors.Internal("Failed to save content", err)
	}

	s.cfg.Log.Info("Site content saved", "id", content.ID, "page", content.Page, "section", content.Section)
	return nil
}

func (s *contentService) Update(ctx context.Context, id string, update *model.SiteContentUpdate) error {
	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Content update validation failed", "id", id, "error", err)
		return validationError(err)
	}

	fields := bson.M{}
	if update.ContentType != nil {
		fields["content_type"] = sanitizer.TrimAndNormalize(*update.ContentType)
	}
	if update.Content != nil {
		fields["content"] = update.Content
	}
	if len(fields) == 0 {
		return apperrors.InvalidInput("No fields to update")
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, contenterrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Content", id)
		}
		s.cfg.Log.Error("Failed to update site content", "id", id, "error", err)
		return apperrors.Internal("Failed to update content", err)
	}

	s.cfg.Log.Info("Site content updated", "id", id)
	return nil
}

func (s *contentService) DeleteSection(ctx context.Context, page, section string) error {
	if err := s.repo.DeleteSection(ctx, page, section); err != nil {
		if errors.Is(err, contenterrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Content", page+"/"+section)
		}
		s.cfg.Log.Error("Failed to delete site content", "page", page, "section", section, "error", err)
		return apperrors.Internal("Failed to delete content", err)
	}

	s.cfg.Log.Info("Site content deleted", "page", page, "section", section)
	return nil
}

// WhatsAppNumber returns the number configured in the contact section, or
// the configured default when the section is missing or unreadable.
func (s *contentService) WhatsAppNumber(ctx context.Context) string {
	item, err := s.repo.FindSection(ctx, contactSection, whatsAppContentType)
	if err != nil {
		if !errors.Is(err, contenterrors.ErrNotFound) {
			s.cfg.Log.Warn("Failed to read WhatsApp number, using default", "error", err)
		}
		return s.cfg.DefaultWhatsAppNumber
	}

	raw, ok := item.Content["number"]
	if !ok {
		return s.cfg.DefaultWhatsAppNumber
	}
	number := sanitizer.WhatsAppDigits(fmt.Sprint(raw))
	if number == "" {
		return s.cfg.DefaultWhatsAppNumber
	}
	return number
}

func validationError(err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Content validation failed", verrs.Details())
	}
	return apperrors.Validation("Content validation failed", map[string]any{"error": err.Error()})
}
