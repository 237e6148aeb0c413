package model

import "time"

const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
)

const (
	PermDashboard    = "dashboard"
	PermRooms        = "rooms"
	PermReservations = "reservations"
	PermContent      = "content"
	PermReviews      = "reviews"
	PermPromo        = "promo"
	PermUsers        = "users"
	PermGallery      = "gallery"
	PermEmailConfig  = "email_config"
)

var Permissions = []string{
	PermDashboard, PermRooms, PermReservations, PermContent, PermReviews,
	PermPromo, PermUsers, PermGallery, PermEmailConfig,
}

type User struct {
	ID           string          `json:"user_id" bson:"_id"`
	Email        string          `json:"email" bson:"email"`
	Name         string          `json:"name" bson:"name"`
	Role         string          `json:"role" bson:"role"`
	Permissions  map[string]bool `json:"permissions" bson:"permissions"`
	PasswordHash string          `json:"-" bson:"password_hash"`
	CreatedAt    string          `json:"created_at" bson:"created_at"`
	UpdatedAt    string          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type RegisterRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,min=8,max=72"`
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Role        string          `json:"role" validate:"omitempty,user_role"`
	Permissions map[string]bool `json:"permissions,omitempty" validate:"omitempty,dive,keys,permission_key,endkeys"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type UserUpdate struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Role        *string          `json:"role,omitempty" validate:"omitempty,user_role"`
	Permissions *map[string]bool `json:"permissions,omitempty" validate:"omitempty,dive,keys,permission_key,endkeys"`
	Password    *string          `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

type PasswordReset struct {
	Token     string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Email     string    `bson:"email"`
	ExpiresAt time.Time `bson:"expires_at"`
}
