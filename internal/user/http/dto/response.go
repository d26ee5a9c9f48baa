package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse is the external representation of a user. It never carries
// the password hash.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
