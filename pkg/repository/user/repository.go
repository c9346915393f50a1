// Package user defines the data-access contract for user records.
package user

import (
	"context"

	"github.com/carteiralabs/carteira/pkg/dto"
	"github.com/shopspring/decimal"
)

// Repository defines user data access. Lookups return nil without error when
// no record matches.
type Repository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, create *dto.UserCreate) error

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*dto.UserRead, error)

	// GetByDocument retrieves a user by CPF/CNPJ document.
	GetByDocument(ctx context.Context, document string) (*dto.UserRead, error)

	// GetByEmailOrDocument retrieves a user matching the key as either email
	// or document.
	GetByEmailOrDocument(ctx context.Context, key string) (*dto.UserRead, error)

	// ListByStatus retrieves all users in the given status.
	ListByStatus(ctx context.Context, status string) ([]*dto.UserRead, error)

	// UpdateStatus sets the status of the user with the given email. It fails
	// with domain.ErrNothingUpdated when no row changed, which covers both an
	// unknown email and a status already set to the target value.
	UpdateStatus(ctx context.Context, email, status string) error

	// IncrementBalance atomically adds amount to the balance of the user with
	// the given document. This is a single update expression at the storage
	// layer.
	IncrementBalance(ctx context.Context, document string, amount decimal.Decimal) error

	// DecrementBalanceGuarded atomically subtracts amount from the balance of
	// the user with the given document, failing with
	// domain.ErrInsufficientFunds when the balance does not cover it.
	DecrementBalanceGuarded(ctx context.Context, document string, amount decimal.Decimal) error
}
