// Package ledger defines the money-movement entry recorded for every deposit
// and transfer, and the reversal state machine over it.
package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrEntryNotFound is returned when a ledger entry cannot be found.
	ErrEntryNotFound = errors.New("ledger entry not found")
	// ErrEntryReversed is returned when reversing an already-reversed entry.
	ErrEntryReversed = errors.New("ledger entry already reversed")
	// ErrAmountNotPositive is returned for zero or negative movement amounts.
	ErrAmountNotPositive = errors.New("amount must be positive")
)

// Kind is the movement type of a ledger entry.
type Kind string

const (
	KindDeposit  Kind = "Deposit"
	KindTransfer Kind = "Transfer"
)

// Status tracks whether an entry's balance effects still stand. An entry is
// reversed at most once; the transition is guarded at the storage layer.
type Status string

const (
	StatusActive   Status = "active"
	StatusReversed Status = "reversed"
)

// Entry is one recorded money movement. Sender and receiver are denormalized
// by name and document so the statement stays readable even if accounts change.
type Entry struct {
	ID           uuid.UUID       `json:"id"`
	Kind         Kind            `json:"kind"`
	FromName     string          `json:"from_name"`
	FromDocument string          `json:"from_document"`
	ToName       string          `json:"to_name"`
	ToDocument   string          `json:"to_document"`
	Amount       decimal.Decimal `json:"amount"`
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewDeposit builds an active deposit entry where sender and receiver are the
// same party.
func NewDeposit(name, document string, amount decimal.Decimal) (*Entry, error) {
	if !amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	return &Entry{
		ID:           uuid.New(),
		Kind:         KindDeposit,
		FromName:     name,
		FromDocument: document,
		ToName:       name,
		ToDocument:   document,
		Amount:       amount,
		Status:       StatusActive,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// NewTransfer builds an active transfer entry between two parties.
func NewTransfer(fromName, fromDocument, toName, toDocument string, amount decimal.Decimal) (*Entry, error) {
	if !amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	return &Entry{
		ID:           uuid.New(),
		Kind:         KindTransfer,
		FromName:     fromName,
		FromDocument: fromDocument,
		ToName:       toName,
		ToDocument:   toDocument,
		Amount:       amount,
		Status:       StatusActive,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// IsSelfDeposit reports whether the entry records a deposit into the sender's
// own wallet. Reversal undoes a single leg in that case.
func (e *Entry) IsSelfDeposit() bool {
	return e.Kind == KindDeposit && e.FromDocument == e.ToDocument
}
