package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryCreate represents the data needed to persist a new ledger entry.
type EntryCreate struct {
	ID           uuid.UUID
	Kind         string
	FromName     string
	FromDocument string
	ToName       string
	ToDocument   string
	Amount       decimal.Decimal
	Status       string
}

// EntryRead is a read-optimized view of a ledger entry for statements.
type EntryRead struct {
	ID           uuid.UUID       `json:"id"`
	Kind         string          `json:"kind"`
	FromName     string          `json:"from_name"`
	FromDocument string          `json:"from_document"`
	ToName       string          `json:"to_name"`
	ToDocument   string          `json:"to_document"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}
