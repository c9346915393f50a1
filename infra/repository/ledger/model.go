package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry represents a ledger entry record in the database.
type Entry struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	Kind         string          `gorm:"not null;size:16"`
	FromName     string          `gorm:"not null;size:255"`
	FromDocument string          `gorm:"index;not null;size:18"`
	ToName       string          `gorm:"not null;size:255"`
	ToDocument   string          `gorm:"index;not null;size:18"`
	Amount       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Status       string          `gorm:"not null;size:16;default:active"`
	CreatedAt    time.Time
}

// TableName specifies the table name for the Entry model.
func (Entry) TableName() string {
	return "ledger_entries"
}
