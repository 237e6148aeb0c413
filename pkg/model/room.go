package model

type RoomType struct {
	ID           string   `json:"room_type_id" bson:"_id"`
	Name         string   `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description  string   `json:"description" bson:"description" validate:"required,max=5000"`
	BasePrice    float64  `json:"base_price" bson:"base_price" validate:"required,gt=0"`
	MaxGuests    int      `json:"max_guests" bson:"max_guests" validate:"required,min=1,max=20"`
	Amenities    []string `json:"amenities" bson:"amenities" validate:"omitempty,max=50,dive,required"`
	Images       []string `json:"images" bson:"images" validate:"omitempty,dive,url"`
	ImageAlts    []string `json:"image_alts" bson:"image_alts"`
	VideoURL     string   `json:"video_url,omitempty" bson:"video_url,omitempty" validate:"omitempty,url"`
	SizeSqm      float64  `json:"size_sqm,omitempty" bson:"size_sqm,omitempty" validate:"omitempty,gt=0"`
	BedType      string   `json:"bed_type,omitempty" bson:"bed_type,omitempty" validate:"omitempty,max=100"`
	IsActive     bool     `json:"is_active" bson:"is_active"`
	DisplayOrder int      `json:"display_order" bson:"display_order"`
	CreatedAt    string   `json:"created_at" bson:"created_at"`
	UpdatedAt    string   `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type RoomTypeUpdate struct {
	Name         *string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description  *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	BasePrice    *float64  `json:"base_price,omitempty" validate:"omitempty,gt=0"`
	MaxGuests    *int      `json:"max_guests,omitempty" validate:"omitempty,min=1,max=20"`
	Amenities    *[]string `json:"amenities,omitempty" validate:"omitempty,max=50,dive,required"`
	Images       *[]string `json:"images,omitempty" validate:"omitempty,dive,url"`
	ImageAlts    *[]string `json:"image_alts,omitempty"`
	VideoURL     *string   `json:"video_url,omitempty" validate:"omitempty,url"`
	SizeSqm      *float64  `json:"size_sqm,omitempty" validate:"omitempty,gt=0"`
	BedType      *string   `json:"bed_type,omitempty" validate:"omitempty,max=100"`
	IsActive     *bool     `json:"is_active,omitempty"`
	DisplayOrder *int      `json:"display_order,omitempty"`
}

// InventoryDay is the calendar entry for one room type on one date. A missing
// day means open, available and priced at the room's base price.
type InventoryDay struct {
	ID         string  `json:"inventory_id" bson:"_id"`
	RoomTypeID string  `json:"room_type_id" bson:"room_type_id" validate:"required"`
	Date       string  `json:"date" bson:"date" validate:"required,ymd"`
	Allotment  int     `json:"allotment" bson:"allotment" validate:"min=0"`
	Rate       float64 `json:"rate" bson:"rate" validate:"gte=0"`
	IsClosed   bool    `json:"is_closed" bson:"is_closed"`
}

func (d *InventoryDay) Sellable() bool {
	return !d.IsClosed && d.Allotment > 0
}

// BulkInventoryUpdate sets the supplied fields on every matching day in
// [StartDate, EndDate]. DaysOfWeek uses 0=Monday..6=Sunday.
type BulkInventoryUpdate struct {
	RoomTypeID string   `json:"room_type_id" validate:"required"`
	StartDate  string   `json:"start_date" validate:"required,ymd"`
	EndDate    string   `json:"end_date" validate:"required,ymd"`
	Allotment  *int     `json:"allotment,omitempty" validate:"omitempty,min=0"`
	Rate       *float64 `json:"rate,omitempty" validate:"omitempty,gte=0"`
	IsClosed   *bool    `json:"is_closed,omitempty"`
	DaysOfWeek []int    `json:"days_of_week,omitempty" validate:"omitempty,max=7,dive,min=0,max=6"`
}

func (b *BulkInventoryUpdate) HasChanges() bool {
	return b.Allotment != nil || b.Rate != nil || b.IsClosed != nil
}
