package model

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
	StatusCancelled  = "cancelled"
)

var ReservationStatuses = []string{StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled}

func ValidReservationStatus(s string) bool {
	for _, status := range ReservationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID              string  `json:"reservation_id" bson:"_id"`
	BookingCode     string  `json:"booking_code" bson:"booking_code"`
	GuestName       string  `json:"guest_name" bson:"guest_name"`
	GuestEmail      string  `json:"guest_email" bson:"guest_email"`
	GuestPhone      string  `json:"guest_phone" bson:"guest_phone"`
	RoomTypeID      string  `json:"room_type_id" bson:"room_type_id"`
	RoomTypeName    string  `json:"room_type_name" bson:"room_type_name"`
	RatePlanID      string  `json:"rate_plan_id" bson:"rate_plan_id"`
	RatePlanName    string  `json:"rate_plan_name" bson:"rate_plan_name"`
	CheckIn         string  `json:"check_in" bson:"check_in"`
	CheckOut        string  `json:"check_out" bson:"check_out"`
	Guests          int     `json:"guests" bson:"guests"`
	Nights          int     `json:"nights" bson:"nights"`
	RatePerNight    float64 `json:"rate_per_night" bson:"rate_per_night"`
	TotalAmount     float64 `json:"total_amount" bson:"total_amount"`
	DiscountAmount  float64 `json:"discount_amount" bson:"discount_amount"`
	PromoCode       string  `json:"promo_code,omitempty" bson:"promo_code,omitempty"`
	Status          string  `json:"status" bson:"status"`
	SpecialRequests string  `json:"special_requests,omitempty" bson:"special_requests,omitempty"`
	CreatedAt       string  `json:"created_at" bson:"created_at"`
	UpdatedAt       string  `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type ReservationRequest struct {
	GuestName       string `json:"guest_name" validate:"required,min=2,max=100"`
	GuestEmail      string `json:"guest_email" validate:"required,email"`
	GuestPhone      string `json:"guest_phone" validate:"required,min=6,max=30"`
	RoomTypeID      string `json:"room_type_id" validate:"required"`
	CheckIn         string `json:"check_in" validate:"required"`
	CheckOut        string `json:"check_out" validate:"required"`
	Guests          int    `json:"guests" validate:"required,min=1,max=20"`
	RatePlanID      string `json:"rate_plan_id,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
	PromoCode       string `json:"promo_code,omitempty" validate:"omitempty,max=32"`
}

type ReservationFilter struct {
	Status    string
	StartDate string
	EndDate   string
}

// ReservationEvent is published when a reservation is created.
type ReservationEvent struct {
	EventID     string      `json:"event_id"`
	Type        string      `json:"type"`
	OccurredAt  string      `json:"occurred_at"`
	Reservation Reservation `json:"reservation"`
}

const EventReservationCreated = "reservation.created"
