package model

const (
	ModifierPercent       = "percent"
	ModifierAbsoluteAdd   = "absolute_add"
	ModifierAbsoluteTotal = "absolute_total"

	StandardRatePlanID = "standard"
)

type RatePlan struct {
	ID            string   `json:"rate_plan_id" bson:"_id"`
	RoomTypeID    *string  `json:"room_type_id" bson:"room_type_id"`
	Name          string   `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description   string   `json:"description" bson:"description" validate:"max=2000"`
	ModifierType  string   `json:"price_modifier_type" bson:"price_modifier_type" validate:"required,modifier_type"`
	ModifierValue float64  `json:"price_modifier_val" bson:"price_modifier_val"`
	IsActive      bool     `json:"is_active" bson:"is_active"`
	Conditions    []string `json:"conditions" bson:"conditions" validate:"omitempty,max=20,dive,required,max=100"`
	CreatedAt     string   `json:"created_at" bson:"created_at"`
	UpdatedAt     string   `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// AppliesTo reports whether the plan is global or scoped to roomTypeID.
func (p *RatePlan) AppliesTo(roomTypeID string) bool {
	return p.RoomTypeID == nil || *p.RoomTypeID == "" || *p.RoomTypeID == roomTypeID
}

type RatePlanUpdate struct {
	RoomTypeID    *string   `json:"room_type_id,omitempty"`
	Name          *string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description   *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	ModifierType  *string   `json:"price_modifier_type,omitempty" validate:"omitempty,modifier_type"`
	ModifierValue *float64  `json:"price_modifier_val,omitempty"`
	IsActive      *bool     `json:"is_active,omitempty"`
	Conditions    *[]string `json:"conditions,omitempty" validate:"omitempty,max=20,dive,required,max=100"`
}
