package model

const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"
)

// PromoCode.ValidDays uses 0=Sunday..6=Saturday.
type PromoCode struct {
	ID            string   `json:"promo_id" bson:"_id"`
	Code          string   `json:"code" bson:"code" validate:"required,min=3,max=32,alphanum"`
	Description   string   `json:"description" bson:"description" validate:"max=500"`
	DiscountType  string   `json:"discount_type" bson:"discount_type" validate:"required,discount_type"`
	DiscountValue float64  `json:"discount_value" bson:"discount_value" validate:"gt=0"`
	MaxUsage      int      `json:"max_usage" bson:"max_usage" validate:"min=1"`
	CurrentUsage  int      `json:"current_usage" bson:"current_usage" validate:"min=0"`
	RoomTypeIDs   []string `json:"room_type_ids" bson:"room_type_ids" validate:"omitempty,dive,required"`
	ValidDays     []int    `json:"valid_days" bson:"valid_days" validate:"omitempty,max=7,dive,min=0,max=6"`
	ValidFrom     string   `json:"valid_from" bson:"valid_from" validate:"required,timestamp"`
	ValidUntil    string   `json:"valid_until" bson:"valid_until" validate:"required,timestamp"`
	IsActive      bool     `json:"is_active" bson:"is_active"`
	CreatedAt     string   `json:"created_at" bson:"created_at"`
	UpdatedAt     string   `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type PromoCodeUpdate struct {
	Code          *string   `json:"code,omitempty" validate:"omitempty,min=3,max=32,alphanum"`
	Description   *string   `json:"description,omitempty" validate:"omitempty,max=500"`
	DiscountType  *string   `json:"discount_type,omitempty" validate:"omitempty,discount_type"`
	DiscountValue *float64  `json:"discount_value,omitempty" validate:"omitempty,gt=0"`
	MaxUsage      *int      `json:"max_usage,omitempty" validate:"omitempty,min=1"`
	RoomTypeIDs   *[]string `json:"room_type_ids,omitempty" validate:"omitempty,dive,required"`
	ValidDays     *[]int    `json:"valid_days,omitempty" validate:"omitempty,max=7,dive,min=0,max=6"`
	ValidFrom     *string   `json:"valid_from,omitempty" validate:"omitempty,timestamp"`
	ValidUntil    *string   `json:"valid_until,omitempty" validate:"omitempty,timestamp"`
	IsActive      *bool     `json:"is_active,omitempty"`
}

type PromoVerifyRequest struct {
	Code       string `json:"code"`
	CheckIn    string `json:"check_in,omitempty"`
	RoomTypeID string `json:"room_type_id,omitempty"`
}

type PromoVerifyResponse struct {
	Valid         bool     `json:"valid"`
	Code          string   `json:"code"`
	DiscountType  string   `json:"discount_type"`
	DiscountValue float64  `json:"discount_value"`
	RoomTypeIDs   []string `json:"room_type_ids"`
	Message       string   `json:"message"`
}
