package entity

import (
	"time"

	"github.com/google/uuid"
)

// User lives only in memory; registration and login simulate a real backend.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
