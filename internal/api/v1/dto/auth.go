package dto

import (
	"time"

	"talktutor/internal/model"
)

// UserResponseDTO is returned by /auth endpoints.
type UserResponseDTO struct {
	ID                    string     `json:"id"`
	Email                 string     `json:"email"`
	Name                  string     `json:"name"`
	Picture               string     `json:"picture,omitempty"`
	SubscriptionTier      string     `json:"subscription_tier,omitempty"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

// NewUserResponse maps a user record to its response shape.
func NewUserResponse(u *model.User) UserResponseDTO {
	resp := UserResponseDTO{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Picture:          u.Picture,
		SubscriptionTier: string(u.SubscriptionTier),
		CreatedAt:        u.CreatedAt,
	}
	if !u.SubscriptionExpiresAt.IsZero() {
		expires := u.SubscriptionExpiresAt
		resp.SubscriptionExpiresAt = &expires
	}
	return resp
}

type SessionExchangeResponseDTO struct {
	User         UserResponseDTO `json:"user"`
	SessionToken string          `json:"session_token"`
}

type LogoutResponseDTO struct {
	Success bool `json:"success"`
}
