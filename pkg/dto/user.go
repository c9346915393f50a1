package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserCreate represents the data needed to persist a new user.
type UserCreate struct {
	ID       uuid.UUID
	Name     string
	Document string
	Email    string
	Password string
	Role     int
	Status   string
	Balance  decimal.Decimal
}

// UserRead is a read-optimized view of a user record.
type UserRead struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Document       string          `json:"document"`
	Email          string          `json:"email"`
	HashedPassword string          `json:"-"`
	Role           int             `json:"role"`
	Status         string          `json:"status"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
