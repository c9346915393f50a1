// Package user defines the account-holder entity and its lifecycle states.
package user

import (
	"errors"
	"time"

	"github.com/carteiralabs/carteira/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrPasswordMismatch is returned when registration password confirmation fails.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrDocumentTaken is returned when the document is already registered.
	ErrDocumentTaken = errors.New("document already registered")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrSelfTransfer is returned when a user resolves their own account as a
	// transfer recipient.
	ErrSelfTransfer = errors.New("transfer to own account is not allowed")
	// ErrInvalidRecipient is returned when the recipient key resolves to an
	// account that cannot receive transfers.
	ErrInvalidRecipient = errors.New("email or document is not a valid recipient")
)

// Role distinguishes ordinary account holders from administrators.
type Role int

const (
	RoleOrdinary Role = 0
	RoleAdmin    Role = 1
)

// Status is the approval state of an account.
type Status string

const (
	StatusWaitingForApproval Status = "waitingForApproval"
	StatusApproved           Status = "approved"
	StatusBlocked            Status = "blocked"
)

// User represents an account holder with a wallet balance.
type User struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Document  string          `json:"document"`
	Email     string          `json:"email"`
	Password  string          `json:"-"`
	Role      Role            `json:"role"`
	Status    Status          `json:"status"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// New creates a pending ordinary user with a hashed password and zero balance.
func New(name, document, email, password string) (*User, error) {
	if name == "" {
		return nil, errors.New("name cannot be empty")
	}
	if document == "" {
		return nil, errors.New("document cannot be empty")
	}
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Name:      name,
		Document:  document,
		Email:     email,
		Password:  hashed,
		Role:      RoleOrdinary,
		Status:    StatusWaitingForApproval,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsAdmin reports whether the user has the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
