package model

type RevenuePoint struct {
	Name     string  `json:"name"`
	Revenue  float64 `json:"revenue"`
	FullDate string  `json:"fullDate"`
}

type DashboardStats struct {
	OccupiedToday      int64          `json:"occupied_today"`
	AvailableToday     int            `json:"available_today"`
	MonthlyRevenue     float64        `json:"monthly_revenue"`
	TotalRoomTypes     int64          `json:"total_room_types"`
	PendingReviews     int64          `json:"pending_reviews"`
	RecentReservations []*Reservation `json:"recent_reservations"`
	RevenueChart       []RevenuePoint `json:"revenue_chart"`
}
