// Package wallet implements the ledger operations: deposit, transfer,
// reversal and the account statement. Every operation runs inside one
// UnitOfWork transaction so the ledger entry and its balance effects commit or
// roll back together.
package wallet

import (
	"context"
	"errors"
	"log/slog"

	"github.com/carteiralabs/carteira/pkg/domain"
	"github.com/carteiralabs/carteira/pkg/domain/ledger"
	"github.com/carteiralabs/carteira/pkg/domain/user"
	"github.com/carteiralabs/carteira/pkg/dto"
	"github.com/carteiralabs/carteira/pkg/repository"
	"github.com/carteiralabs/carteira/pkg/service/auth"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service records money movements and maintains wallet balances.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a wallet service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Deposit credits the caller's own wallet and records a Deposit entry.
func (s *Service) Deposit(
	ctx context.Context,
	claims *auth.Claims,
	amount decimal.Decimal,
) (entry *ledger.Entry, err error) {
	log := s.logger.With("context", "Deposit", "document", claims.Document, "amount", amount)
	entry, err = ledger.NewDeposit(claims.Name, claims.Document, amount)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		entries, err := uow.LedgerRepository()
		if err != nil {
			return err
		}
		depositor, err := users.GetByEmail(ctx, claims.Email)
		if err != nil {
			return err
		}
		if depositor == nil {
			return user.ErrUserNotFound
		}
		if err := entries.Create(ctx, entryToCreate(entry)); err != nil {
			return err
		}
		return users.IncrementBalance(ctx, claims.Document, amount)
	})
	if err != nil {
		log.Warn("deposit failed", "error", err)
		return nil, err
	}
	log.Info("deposit recorded", "entryID", entry.ID)
	return entry, nil
}

// Transfer debits the caller, credits the recipient resolved from toKey
// (email or document) and records a Transfer entry. The debit is guarded: a
// balance that does not cover the amount fails the whole transaction with
// domain.ErrInsufficientFunds.
func (s *Service) Transfer(
	ctx context.Context,
	claims *auth.Claims,
	toKey string,
	amount decimal.Decimal,
) (entry *ledger.Entry, err error) {
	log := s.logger.With("context", "Transfer", "document", claims.Document, "amount", amount)
	if !amount.IsPositive() {
		return nil, ledger.ErrAmountNotPositive
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		entries, err := uow.LedgerRepository()
		if err != nil {
			return err
		}
		recipient, err := users.GetByEmailOrDocument(ctx, toKey)
		if err != nil {
			return err
		}
		if recipient == nil {
			return user.ErrUserNotFound
		}
		entry, err = ledger.NewTransfer(
			claims.Name, claims.Document,
			recipient.Name, recipient.Document,
			amount,
		)
		if err != nil {
			return err
		}
		if err := entries.Create(ctx, entryToCreate(entry)); err != nil {
			return err
		}
		if err := users.DecrementBalanceGuarded(ctx, claims.Document, amount); err != nil {
			return err
		}
		return users.IncrementBalance(ctx, recipient.Document, amount)
	})
	if err != nil {
		entry = nil
		log.Warn("transfer failed", "error", err)
		return nil, err
	}
	log.Info("transfer recorded", "entryID", entry.ID)
	return entry, nil
}

// Reverse undoes the balance effects of an entry and marks it reversed. An
// entry can be reversed at most once; the status flip is a conditional update
// inside the same transaction as the balance changes.
func (s *Service) Reverse(
	ctx context.Context,
	id uuid.UUID,
) error {
	log := s.logger.With("context", "Reverse", "entryID", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		entries, err := uow.LedgerRepository()
		if err != nil {
			return err
		}
		read, err := entries.Get(ctx, id)
		if err != nil {
			return err
		}
		if read == nil {
			return ledger.ErrEntryNotFound
		}
		if err := entries.MarkReversed(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNothingUpdated) {
				return ledger.ErrEntryReversed
			}
			return err
		}
		entry := entryFromRead(read)
		if entry.IsSelfDeposit() {
			// Undo a self-deposit: one debit of the depositor.
			return users.IncrementBalance(ctx, entry.FromDocument, entry.Amount.Neg())
		}
		// Undo a transfer: credit the original sender, debit the receiver.
		// The debit is unguarded; a receiver who already spent the funds goes
		// negative, mirroring the recorded movement exactly.
		if err := users.IncrementBalance(ctx, entry.FromDocument, entry.Amount); err != nil {
			return err
		}
		return users.IncrementBalance(ctx, entry.ToDocument, entry.Amount.Neg())
	})
	if err != nil {
		log.Warn("reversal failed", "error", err)
		return err
	}
	log.Info("entry reversed")
	return nil
}

// Extract lists all entries where the document appears as sender or receiver,
// most recent first.
func (s *Service) Extract(
	ctx context.Context,
	document string,
) (entries []*dto.EntryRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.LedgerRepository()
		if err != nil {
			return err
		}
		entries, err = repo.ListByDocument(ctx, document)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func entryToCreate(e *ledger.Entry) *dto.EntryCreate {
	return &dto.EntryCreate{
		ID:           e.ID,
		Kind:         string(e.Kind),
		FromName:     e.FromName,
		FromDocument: e.FromDocument,
		ToName:       e.ToName,
		ToDocument:   e.ToDocument,
		Amount:       e.Amount,
		Status:       string(e.Status),
	}
}

func entryFromRead(r *dto.EntryRead) *ledger.Entry {
	return &ledger.Entry{
		ID:           r.ID,
		Kind:         ledger.Kind(r.Kind),
		FromName:     r.FromName,
		FromDocument: r.FromDocument,
		ToName:       r.ToName,
		ToDocument:   r.ToDocument,
		Amount:       r.Amount,
		Status:       ledger.Status(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}
