package user

import "time"

// UserResponse is returned by the auth endpoints and the current user lookup.
type UserResponse struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
