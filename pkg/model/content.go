package model

type Review struct {
	ID            string `json:"review_id" bson:"_id"`
	GuestName     string `json:"guest_name" bson:"guest_name" validate:"required,min=2,max=100"`
	GuestEmail    string `json:"guest_email,omitempty" bson:"guest_email,omitempty" validate:"omitempty,email"`
	Rating        int    `json:"rating" bson:"rating"`
	Comment       string `json:"comment" bson:"comment" validate:"required,min=3,max=2000"`
	ReservationID string `json:"reservation_id,omitempty" bson:"reservation_id,omitempty"`
	RoomTypeID    string `json:"room_type_id,omitempty" bson:"room_type_id,omitempty"`
	Source        string `json:"source,omitempty" bson:"source,omitempty" validate:"omitempty,max=50"`
	IsVisible     bool   `json:"is_visible" bson:"is_visible"`
	CreatedAt     string `json:"created_at" bson:"created_at"`
}

type ReviewVisibility struct {
	IsVisible *bool `json:"is_visible" validate:"required"`
}

type SiteContent struct {
	ID          string         `json:"content_id" bson:"_id"`
	Page        string         `json:"page" bson:"page" validate:"required,min=1,max=50"`
	Section     string         `json:"section" bson:"section" validate:"required,min=1,max=50"`
	ContentType string         `json:"content_type" bson:"content_type" validate:"required,max=50"`
	Content     map[string]any `json:"content" bson:"content" validate:"required"`
	UpdatedAt   string         `json:"updated_at" bson:"updated_at"`
}

type SiteContentUpdate struct {
	ContentType *string        `json:"content_type,omitempty" validate:"omitempty,max=50"`
	Content     map[string]any `json:"content,omitempty"`
}

type GalleryItem struct {
	ID        string `json:"gallery_id" bson:"_id"`
	URL       string `json:"url" bson:"url"`
	Key       string `json:"key" bson:"key"`
	Category  string `json:"category" bson:"category"`
	Caption   string `json:"caption,omitempty" bson:"caption,omitempty"`
	AltText   string `json:"alt_text,omitempty" bson:"alt_text,omitempty"`
	MediaType string `json:"media_type" bson:"media_type"`
	CreatedAt string `json:"created_at" bson:"created_at"`
}

type AuditLog struct {
	ID         string         `json:"audit_log_id" bson:"_id"`
	UserID     string         `json:"user_id" bson:"user_id"`
	UserEmail  string         `json:"user_email" bson:"user_email"`
	Action     string         `json:"action" bson:"action"`
	Resource   string         `json:"resource" bson:"resource"`
	ResourceID string         `json:"resource_id,omitempty" bson:"resource_id,omitempty"`
	Details    map[string]any `json:"details,omitempty" bson:"details,omitempty"`
	IPAddress  string         `json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	CreatedAt  string         `json:"created_at" bson:"created_at"`
}

const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"

	EmailKindReservation   = "reservation_confirmation"
	EmailKindPasswordReset = "password_reset"
)

type EmailLog struct {
	ID          string `json:"email_log_id" bson:"_id"`
	To          string `json:"to" bson:"to"`
	Subject     string `json:"subject" bson:"subject"`
	Kind        string `json:"kind" bson:"kind"`
	ReferenceID string `json:"reference_id,omitempty" bson:"reference_id,omitempty"`
	Status      string `json:"status" bson:"status"`
	Error       string `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt   string `json:"created_at" bson:"created_at"`
}

type DailyStats struct {
	Date        string         `json:"date" bson:"date"`
	TotalVisits int            `json:"total_visits" bson:"total_visits"`
	PageViews   map[string]int `json:"page_views" bson:"page_views"`
	LastUpdated string         `json:"last_updated,omitempty" bson:"last_updated,omitempty"`
}

type TrackRequest struct {
	Page string `json:"page"`
}

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

type MediaUploadResult struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	MediaType string `json:"media_type"`
	Caption   string `json:"caption,omitempty"`
	AltText   string `json:"alt_text,omitempty"`
}
