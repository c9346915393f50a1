// Package domain holds sentinel errors shared across services and the HTTP
// layer. Repositories map storage errors onto these so callers never branch on
// driver-specific error types.
package domain

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned on unique constraint conflicts.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrNothingUpdated is returned when a conditional update matched no rows.
	ErrNothingUpdated = errors.New("no records updated")
	// ErrInsufficientFunds is returned when a debit would overdraw a balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrUnauthorized is returned for failed credential checks.
	ErrUnauthorized = errors.New("unauthorized")
)
