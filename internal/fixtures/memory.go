// Package fixtures provides an in-memory UnitOfWork with real transaction
// semantics (snapshot and rollback) for service and HTTP tests.
package fixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/carteiralabs/carteira/pkg/domain"
	"github.com/carteiralabs/carteira/pkg/dto"
	"github.com/carteiralabs/carteira/pkg/repository"
	ledgerrepo "github.com/carteiralabs/carteira/pkg/repository/ledger"
	userrepo "github.com/carteiralabs/carteira/pkg/repository/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type state struct {
	users   []dto.UserRead
	entries []dto.EntryRead
}

func (s *state) clone() *state {
	cp := &state{
		users:   make([]dto.UserRead, len(s.users)),
		entries: make([]dto.EntryRead, len(s.entries)),
	}
	copy(cp.users, s.users)
	copy(cp.entries, s.entries)
	return cp
}

// MemoryUoW is an in-memory UnitOfWork. A failed Do restores the snapshot
// taken at its start, so rollback behavior can be asserted in tests.
type MemoryUoW struct {
	mu    sync.Mutex
	state *state

	// Failure injection points; when set, the corresponding repository
	// operation fails with the given error.
	FailEntryCreate      error
	FailIncrementBalance error
}

// NewMemoryUoW creates an empty in-memory UnitOfWork.
func NewMemoryUoW() *MemoryUoW {
	return &MemoryUoW{state: &state{}}
}

// Do runs fn against the shared state, rolling back on error.
func (u *MemoryUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	snapshot := u.state.clone()
	if err := fn(u); err != nil {
		u.state = snapshot
		return err
	}
	return nil
}

// UserRepository returns the in-memory user repository.
func (u *MemoryUoW) UserRepository() (userrepo.Repository, error) {
	return &memoryUserRepo{uow: u}, nil
}

// LedgerRepository returns the in-memory ledger repository.
func (u *MemoryUoW) LedgerRepository() (ledgerrepo.Repository, error) {
	return &memoryLedgerRepo{uow: u}, nil
}

// SeedUser inserts a user directly, bypassing the registration flow.
func (u *MemoryUoW) SeedUser(user dto.UserRead) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.users = append(u.state.users, user)
}

// UserByDocument reads a user snapshot for assertions.
func (u *MemoryUoW) UserByDocument(document string) *dto.UserRead {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.state.users {
		if u.state.users[i].Document == document {
			cp := u.state.users[i]
			return &cp
		}
	}
	return nil
}

// Entries returns a copy of all ledger entries for assertions.
func (u *MemoryUoW) Entries() []dto.EntryRead {
	u.mu.Lock()
	defer u.mu.Unlock()
	cp := make([]dto.EntryRead, len(u.state.entries))
	copy(cp, u.state.entries)
	return cp
}

var _ repository.UnitOfWork = (*MemoryUoW)(nil)

type memoryUserRepo struct {
	uow *MemoryUoW
}

func (r *memoryUserRepo) Create(ctx context.Context, create *dto.UserCreate) error {
	st := r.uow.state
	for i := range st.users {
		if st.users[i].Document == create.Document || st.users[i].Email == create.Email {
			return domain.ErrAlreadyExists
		}
	}
	now := time.Now().UTC()
	st.users = append(st.users, dto.UserRead{
		ID:             create.ID,
		Name:           create.Name,
		Document:       create.Document,
		Email:          create.Email,
		HashedPassword: create.Password,
		Role:           create.Role,
		Status:         create.Status,
		Balance:        create.Balance,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	return nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	return r.find(func(u *dto.UserRead) bool { return u.Email == email }), nil
}

func (r *memoryUserRepo) GetByDocument(ctx context.Context, document string) (*dto.UserRead, error) {
	return r.find(func(u *dto.UserRead) bool { return u.Document == document }), nil
}

func (r *memoryUserRepo) GetByEmailOrDocument(ctx context.Context, key string) (*dto.UserRead, error) {
	return r.find(func(u *dto.UserRead) bool { return u.Email == key || u.Document == key }), nil
}

func (r *memoryUserRepo) ListByStatus(ctx context.Context, status string) ([]*dto.UserRead, error) {
	var result []*dto.UserRead
	st := r.uow.state
	for i := range st.users {
		if st.users[i].Status == status {
			cp := st.users[i]
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *memoryUserRepo) UpdateStatus(ctx context.Context, email, status string) error {
	st := r.uow.state
	for i := range st.users {
		if st.users[i].Email == email && st.users[i].Status != status {
			st.users[i].Status = status
			st.users[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return domain.ErrNothingUpdated
}

func (r *memoryUserRepo) IncrementBalance(ctx context.Context, document string, amount decimal.Decimal) error {
	if err := r.uow.FailIncrementBalance; err != nil {
		return err
	}
	st := r.uow.state
	for i := range st.users {
		if st.users[i].Document == document {
			st.users[i].Balance = st.users[i].Balance.Add(amount)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memoryUserRepo) DecrementBalanceGuarded(ctx context.Context, document string, amount decimal.Decimal) error {
	st := r.uow.state
	for i := range st.users {
		if st.users[i].Document == document && st.users[i].Balance.GreaterThanOrEqual(amount) {
			st.users[i].Balance = st.users[i].Balance.Sub(amount)
			return nil
		}
	}
	return domain.ErrInsufficientFunds
}

func (r *memoryUserRepo) find(match func(*dto.UserRead) bool) *dto.UserRead {
	st := r.uow.state
	for i := range st.users {
		if match(&st.users[i]) {
			cp := st.users[i]
			return &cp
		}
	}
	return nil
}

var _ userrepo.Repository = (*memoryUserRepo)(nil)

type memoryLedgerRepo struct {
	uow *MemoryUoW
}

func (r *memoryLedgerRepo) Create(ctx context.Context, create *dto.EntryCreate) error {
	if err := r.uow.FailEntryCreate; err != nil {
		return err
	}
	st := r.uow.state
	st.entries = append(st.entries, dto.EntryRead{
		ID:           create.ID,
		Kind:         create.Kind,
		FromName:     create.FromName,
		FromDocument: create.FromDocument,
		ToName:       create.ToName,
		ToDocument:   create.ToDocument,
		Amount:       create.Amount,
		Status:       create.Status,
		CreatedAt:    time.Now().UTC(),
	})
	return nil
}

func (r *memoryLedgerRepo) Get(ctx context.Context, id uuid.UUID) (*dto.EntryRead, error) {
	st := r.uow.state
	for i := range st.entries {
		if st.entries[i].ID == id {
			cp := st.entries[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryLedgerRepo) ListByDocument(ctx context.Context, document string) ([]*dto.EntryRead, error) {
	var result []*dto.EntryRead
	st := r.uow.state
	for i := range st.entries {
		if st.entries[i].FromDocument == document || st.entries[i].ToDocument == document {
			cp := st.entries[i]
			result = append(result, &cp)
		}
	}
	// Most recent first; insertion order breaks CreatedAt ties.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, nil
}

func (r *memoryLedgerRepo) MarkReversed(ctx context.Context, id uuid.UUID) error {
	st := r.uow.state
	for i := range st.entries {
		if st.entries[i].ID == id && st.entries[i].Status == "active" {
			st.entries[i].Status = "reversed"
			return nil
		}
	}
	return domain.ErrNothingUpdated
}

var _ ledgerrepo.Repository = (*memoryLedgerRepo)(nil)
