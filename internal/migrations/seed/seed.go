// Package seed fills an empty database with a default admin, the hotel's
// room types, an opening inventory window and the site content the public
// pages expect.
package seed

import (
	"context"
	"time"

	"hms/pkg/dates"
	apperrors "hms/pkg/errors"
	"hms/pkg/logger"
	"hms/pkg/model"
)

const (
	DefaultAdminEmail    = "admin@spencergreenhotel.com"
	DefaultAdminName     = "Admin"
	InventoryWindowDays  = 60
	defaultSeedAllotment = 5
)

type Registrar interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
}

type RoomCatalog interface {
	ListAll(ctx context.Context) ([]*model.RoomType, error)
	Create(ctx context.Context, room *model.RoomType) error
}

type Calendar interface {
	BulkUpdate(ctx context.Context, req *model.BulkInventoryUpdate) (int, error)
}

type ContentStore interface {
	Upsert(ctx context.Context, content *model.SiteContent) error
}

type Seeder struct {
	users    Registrar
	rooms    RoomCatalog
	calendar Calendar
	content  ContentStore
	log      *logger.Logger
	now      func() time.Time
}

func NewSeeder(users Registrar, rooms RoomCatalog, calendar Calendar, content ContentStore, log *logger.Logger) *Seeder {
	return &Seeder{
		users:    users,
		rooms:    rooms,
		calendar: calendar,
		content:  content,
		log:      log,
		now:      time.Now,
	}
}

// Admin registers req, treating an already registered email as success.
func (s *Seeder) Admin(ctx context.Context, req *model.RegisterRequest) (created bool, err error) {
	user, err := s.users.Register(ctx, req)
	if apperrors.HasCode(err, apperrors.CodeConflict) {
		s.log.Info("Admin already exists, skipping", "email", req.Email)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.log.Info("Admin created", "user_id", user.ID, "email", user.Email, "role", user.Role)
	return true, nil
}

// Catalog seeds room types, their inventory and the site content. It does
// nothing when any room type already exists.
func (s *Seeder) Catalog(ctx context.Context) (int, error) {
	existing, err := s.rooms.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		s.log.Info("Room types already present, skipping catalog seed", "count", len(existing))
		return 0, nil
	}

	today := s.now().UTC()
	start := dates.Format(today)
	end := dates.Format(today.AddDate(0, 0, InventoryWindowDays-1))

	for _, room := range RoomTypes() {
		if err := s.rooms.Create(ctx, room); err != nil {
			return 0, err
		}

		allotment := defaultSeedAllotment
		rate := room.BasePrice
		closed := false
		days, err := s.calendar.BulkUpdate(ctx, &model.BulkInventoryUpdate{
			RoomTypeID: room.ID,
			StartDate:  start,
			EndDate:    end,
			Allotment:  &allotment,
			Rate:       &rate,
			IsClosed:   &closed,
		})
		if err != nil {
			return 0, err
		}
		s.log.Info("Seeded room type", "room_type_id", room.ID, "name", room.Name, "inventory_days", days)
	}

	for _, content := range SiteContent() {
		if err := s.content.Upsert(ctx, content); err != nil {
			return 0, err
		}
	}

	return len(RoomTypes()), nil
}

func RoomTypes() []*model.RoomType {
	return []*model.RoomType{
		{
			Name:         "Superior Room",
			Description:  "Kamar nyaman dengan pemandangan taman yang menenangkan. Dilengkapi dengan fasilitas modern dan desain interior yang elegan.",
			BasePrice:    850000,
			MaxGuests:    2,
			Amenities:    []string{"AC", "WiFi", "TV", "Mini Bar", "Safe Box"},
			Images:       []string{"https://images.unsplash.com/photo-1631049307264-da0ec9d70304?w=800"},
			DisplayOrder: 0,
		},
		{
			Name:         "Deluxe Room",
			Description:  "Kamar luas dengan balkon pribadi menghadap pegunungan. Nikmati kenyamanan premium dengan fasilitas lengkap.",
			BasePrice:    1200000,
			MaxGuests:    2,
			Amenities:    []string{"AC", "WiFi", "TV", "Mini Bar", "Safe Box", "Balcony", "Bathtub"},
			Images:       []string{"https://images.unsplash.com/photo-1590490360182-c33d57733427?w=800"},
			DisplayOrder: 1,
		},
		{
			Name:         "Executive Room",
			Description:  "Kamar eksklusif dengan ruang tamu terpisah dan pemandangan spektakuler. Sempurna untuk tamu bisnis atau liburan mewah.",
			BasePrice:    1800000,
			MaxGuests:    3,
			Amenities:    []string{"AC", "WiFi", "TV", "Mini Bar", "Safe Box", "Balcony", "Bathtub", "Living Room", "Work Desk"},
			Images:       []string{"https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?w=800"},
			DisplayOrder: 2,
		},
	}
}

func SiteContent() []*model.SiteContent {
	return []*model.SiteContent{
		{
			Page:        "home",
			Section:     "hero",
			ContentType: "hero",
			Content: map[string]any{
				"title":    "Spencer Green Hotel",
				"subtitle": "Experience Luxury in the Heart of Batu",
				"image":    "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=1920",
				"cta_text": "Book Now",
			},
		},
		{
			Page:        "global",
			Section:     "contact",
			ContentType: "whatsapp",
			Content:     map[string]any{"number": "6281130700206"},
		},
		{
			Page:        "global",
			Section:     "footer",
			ContentType: "info",
			Content: map[string]any{
				"address":   "Jl. Raya Punten No.86, Kec. Bumiaji, Kota Batu, Jawa Timur 65338 Indonesia",
				"phone":     "(0341) 597828",
				"email":     "reservasi@spencergreenhotel.com",
				"instagram": "https://instagram.com/spencergreenhotel",
				"facebook":  "https://facebook.com/spencergreenhotel86",
				"tiktok":    "https://tiktok.com/@spencergreenhotel",
				"whatsapp":  "6281130700206",
			},
		},
		{
			Page:        "home",
			Section:     "promo_banner",
			ContentType: "banner",
			Content: map[string]any{
				"title":       "Special Weekend Offer",
				"description": "Get 20% off for weekend stays. Use code: WEEKEND20",
				"image":       "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4?w=1200",
				"is_active":   true,
			},
		},
	}
}
