// Package repository provides gorm-backed implementations of the repository
// contracts and the UnitOfWork.
package repository

import (
	"context"

	"github.com/carteiralabs/carteira/pkg/repository"
	ledgerrepo "github.com/carteiralabs/carteira/pkg/repository/ledger"
	userrepo "github.com/carteiralabs/carteira/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories handed out inside Do share the transaction session, so a ledger
// insert and its balance updates commit or roll back together.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB

	newUserRepo   func(*gorm.DB) userrepo.Repository
	newLedgerRepo func(*gorm.DB) ledgerrepo.Repository
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(
	db *gorm.DB,
	newUserRepo func(*gorm.DB) userrepo.Repository,
	newLedgerRepo func(*gorm.DB) ledgerrepo.Repository,
) *UoW {
	return &UoW{
		db:            db,
		newUserRepo:   newUserRepo,
		newLedgerRepo: newLedgerRepo,
	}
}

// Do runs the given function in a transaction boundary, providing a UoW whose
// repositories are bound to that transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{
			db:            u.db,
			tx:            tx,
			newUserRepo:   u.newUserRepo,
			newLedgerRepo: u.newLedgerRepo,
		}
		return fn(txnUow)
	})
}

// UserRepository returns the user repository bound to the current session.
func (u *UoW) UserRepository() (userrepo.Repository, error) {
	return u.newUserRepo(u.session()), nil
}

// LedgerRepository returns the ledger repository bound to the current session.
func (u *UoW) LedgerRepository() (ledgerrepo.Repository, error) {
	return u.newLedgerRepo(u.session()), nil
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

var _ repository.UnitOfWork = (*UoW)(nil)
