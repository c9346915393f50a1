package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a user record in the database.
type User struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	Name      string          `gorm:"not null;size:255"`
	Document  string          `gorm:"uniqueIndex;not null;size:18"`
	Email     string          `gorm:"uniqueIndex;not null;size:255"`
	Password  string          `gorm:"not null"`
	Role      int             `gorm:"not null;default:0"`
	Status    string          `gorm:"not null;size:32"`
	Balance   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
