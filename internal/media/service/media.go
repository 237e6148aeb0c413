package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hms/internal/media"
	mediaerrors "hms/internal/media/errors"
	"hms/internal/media/repository"
	roomserrors "hms/internal/rooms/errors"
	"hms/pkg/config"
	apperrors "hms/pkg/errors"
	"hms/pkg/model"
	"hms/pkg/sanitizer"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	defaultCategory = "general"
	defaultSection  = "general"
	maxFolderName   = 50
)

var (
	imageTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
	}
	videoTypes = map[string]string{
		"video/mp4":       ".mp4",
		"video/webm":      ".webm",
		"video/quicktime": ".mov",
	}
)

// Upload is a received file. ContentType is what the client claimed; the
// stored type is sniffed from Data.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type RoomMedia interface {
	FindByID(ctx context.Context, id string) (*model.RoomType, error)
	AppendImage(ctx context.Context, id, url, alt string) error
	SetVideo(ctx context.Context, id, url string) error
}

type MediaService interface {
	UploadGallery(ctx context.Context, file Upload, category string, caption bool) (*model.GalleryItem, error)
	UploadRoomImage(ctx context.Context, roomTypeID string, file Upload, caption bool) (*model.MediaUploadResult, error)
	UploadRoomVideo(ctx context.Context, roomTypeID string, file Upload) (*model.MediaUploadResult, error)
	UploadContentImage(ctx context.Context, section string, file Upload, caption bool) (*model.MediaUploadResult, error)
	ListGallery(ctx context.Context, category string) ([]*model.GalleryItem, error)
	Delete(ctx context.Context, id string) error
}

type mediaService struct {
	store     media.ObjectStore
	captioner media.Captioner
	gallery   repository.GalleryRepository
	rooms     RoomMedia
	cfg       *config.Config
	newKey    func() string
}

func NewMediaService(store media.ObjectStore, captioner media.Captioner, gallery repository.GalleryRepository, rooms RoomMedia, cfg *config.Config) MediaService {
	return &mediaService{
		store:     store,
		captioner: captioner,
		gallery:   gallery,
		rooms:     rooms,
		cfg:       cfg,
		newKey:    uuid.NewString,
	}
}

func (s *mediaService) UploadGallery(ctx context.Context, file Upload, category string, caption bool) (*model.GalleryItem, error) {
	category = folderName(category, defaultCategory)

	stored, err := s.put(ctx, "gallery/"+category, file, imageTypes)
	if err != nil {
		return nil, err
	}
	if caption {
		s.describe(ctx, file.Data, stored, "gallery")
	}

	item := &model.GalleryItem{
		URL:       stored.URL,
		Key:       stored.Key,
		Category:  category,
		Caption:   stored.Caption,
		AltText:   stored.AltText,
		MediaType: stored.MediaType,
	}
	if err := s.gallery.Create(ctx, item); err != nil {
		s.cfg.Log.Error("Failed to record gallery item", "key", stored.Key, "error", err)
		s.discard(ctx, stored.Key)
		return nil, apperrors.Internal("Failed to save gallery item", err)
	}

	s.cfg.Log.Info("Gallery image uploaded", "id", item.ID, "category", category)
	return item, nil
}

func (s *mediaService) UploadRoomImage(ctx context.Context, roomTypeID string, file Upload, caption bool) (*model.MediaUploadResult, error) {
	room, err := s.room(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}

	stored, err := s.put(ctx, "rooms/"+room.ID, file, imageTypes)
	if err != nil {
		return nil, err
	}
	if caption {
		s.describe(ctx, file.Data, stored, room.Name)
	}
	if stored.AltText == "" {
		stored.AltText = fmt.Sprintf("%s - Spencer Green Hotel Batu", room.Name)
	}

	if err := s.rooms.AppendImage(ctx, room.ID, stored.URL, stored.AltText); err != nil {
		s.cfg.Log.Error("Failed to attach room image", "room_type_id", room.ID, "error", err)
		s.discard(ctx, stored.Key)
		return nil, apperrors.Internal("Failed to attach image", err)
	}

	s.cfg.Log.Info("Room image uploaded", "room_type_id", room.ID, "key", stored.Key)
	return stored, nil
}

func (s *mediaService) UploadRoomVideo(ctx context.Context, roomTypeID string, file Upload) (*model.MediaUploadResult, error) {
	room, err := s.room(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}

	stored, err := s.put(ctx, "rooms/"+room.ID+"/videos", file, videoTypes)
	if err != nil {
		return nil, err
	}

	if err := s.rooms.SetVideo(ctx, room.ID, stored.URL); err != nil {
		s.cfg.Log.Error("Failed to attach room video", "room_type_id", room.ID, "error", err)
		s.discard(ctx, stored.Key)
		return nil, apperrors.Internal("Failed to attach video", err)
	}

	s.cfg.Log.Info("Room video uploaded", "room_type_id", room.ID, "key", stored.Key)
	return stored, nil
}

func (s *mediaService) UploadContentImage(ctx context.Context, section string, file Upload, caption bool) (*model.MediaUploadResult, error) {
	section = folderName(section, defaultSection)

	stored, err := s.put(ctx, "content/"+section, file, imageTypes)
	if err != nil {
		return nil, err
	}
	if caption {
		s.describe(ctx, file.Data, stored, "hotel "+section)
	}

	s.cfg.Log.Info("Content image uploaded", "section", section, "key", stored.Key)
	return stored, nil
}

func (s *mediaService) ListGallery(ctx context.Context, category string) ([]*model.GalleryItem, error) {
	items, err := s.gallery.Find(ctx, sanitizer.TrimAndNormalize(category))
	if err != nil {
		s.cfg.Log.Error("Failed to list gallery", "category", category, "error", err)
		return nil, apperrors.Internal("Failed to retrieve gallery", err)
	}
	return items, nil
}

// Delete removes the gallery record even when the object is already gone
// from the bucket.
func (s *mediaService) Delete(ctx context.Context, id string) error {
	item, err := s.gallery.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mediaerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Gallery item", id)
		}
		s.cfg.Log.Error("Failed to load gallery item", "id", id, "error", err)
		return apperrors.Internal("Failed to delete media", err)
	}

	if err := s.store.Delete(ctx, item.Key); err != nil {
		s.cfg.Log.Warn("Failed to delete stored object", "id", id, "key", item.Key, "error", err)
	}

	if err := s.gallery.Delete(ctx, id); err != nil {
		if errors.Is(err, mediaerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Gallery item", id)
		}
		s.cfg.Log.Error("Failed to delete gallery item", "id", id, "error", err)
		return apperrors.Internal("Failed to delete media", err)
	}

	s.cfg.Log.Info("Gallery item deleted", "id", id, "key", item.Key)
	return nil
}

func (s *mediaService) room(ctx context.Context, id string) (*model.RoomType, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.InvalidInput("room_type_id is required")
	}

	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room type", id)
		}
		s.cfg.Log.Error("Failed to load room type for upload", "room_type_id", id, "error", err)
		return nil, apperrors.Internal("Failed to upload media", err)
	}
	return room, nil
}

// put checks the file against allowed and stores it as
// <folder>/<uuid><ext>.
func (s *mediaService) put(ctx context.Context, folder string, file Upload, allowed map[string]string) (*model.MediaUploadResult, error) {
	if len(file.Data) == 0 {
		return nil, apperrors.InvalidInput("file is empty")
	}

	detected := mimetype.Detect(file.Data).String()
	if i := strings.IndexByte(detected, ';'); i >= 0 {
		detected = detected[:i]
	}
	ext, ok := allowed[detected]
	if !ok {
		s.cfg.Log.Warn("Rejected upload", "filename", file.Filename, "claimed", file.ContentType, "detected", detected)
		return nil, apperrors.InvalidInput(fmt.Sprintf("File type %s is not allowed", detected))
	}

	key := fmt.Sprintf("%s/%s%s", folder, s.newKey(), ext)
	url, err := s.store.Put(ctx, key, detected, file.Data)
	if err != nil {
		if errors.Is(err, mediaerrors.ErrStorageDisabled) {
			return nil, apperrors.Unavailable("Media storage")
		}
		s.cfg.Log.Error("Failed to store upload", "key", key, "error", err)
		return nil, apperrors.Internal("Failed to upload file", err)
	}

	mediaType := model.MediaTypeImage
	if _, isVideo := videoTypes[detected]; isVideo {
		mediaType = model.MediaTypeVideo
	}
	return &model.MediaUploadResult{URL: url, Key: key, MediaType: mediaType}, nil
}

// describe fills in caption and alt text. A captioning failure never fails
// the upload.
func (s *mediaService) describe(ctx context.Context, data []byte, stored *model.MediaUploadResult, subject string) {
	caption, err := s.captioner.Caption(ctx, data, mimetype.Detect(data).String(), subject)
	if err != nil {
		s.cfg.Log.Warn("Caption generation failed", "key", stored.Key, "error", err)
		return
	}
	stored.Caption = caption.Caption
	stored.AltText = caption.AltText
}

// discard removes an object whose database record could not be written.
func (s *mediaService) discard(ctx context.Context, key string) {
	if err := s.store.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.cfg.Log.Warn("Failed to remove orphaned object", "key", key, "error", err)
	}
}

// folderName reduces a user-supplied folder segment to [a-z0-9_-].
func folderName(name, fallback string) string {
	name = strings.ToLower(sanitizer.TrimAndNormalize(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	out := sanitizer.Truncate(b.String(), maxFolderName)
	if out == "" {
		return fallback
	}
	return out
}
