// Package repository defines the UnitOfWork contract that ties repository
// access to a transaction boundary.
package repository

import (
	"context"

	ledgerrepo "github.com/carteiralabs/carteira/pkg/repository/ledger"
	userrepo "github.com/carteiralabs/carteira/pkg/repository/user"
)

// UnitOfWork provides transactional work and repository access in one
// abstraction. Repositories obtained inside Do are bound to the same DB
// session, so a ledger insert and its balance updates commit or roll back
// together.
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary. The
	// provided function receives a UnitOfWork for repository access. If the
	// function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// UserRepository returns the user repository bound to the current session.
	UserRepository() (userrepo.Repository, error)

	// LedgerRepository returns the ledger repository bound to the current
	// session.
	LedgerRepository() (ledgerrepo.Repository, error)
}
