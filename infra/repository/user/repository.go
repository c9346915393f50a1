package user

import (
	"context"
	"errors"

	"github.com/carteiralabs/carteira/pkg/domain"
	"github.com/carteiralabs/carteira/pkg/dto"
	userrepo "github.com/carteiralabs/carteira/pkg/repository/user"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	infrarepo "github.com/carteiralabs/carteira/infra/repository"
)

type repository struct {
	db *gorm.DB
}

// New creates a gorm-backed user repository.
func New(db *gorm.DB) userrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.UserCreate,
) error {
	user := &User{
		ID:       create.ID,
		Name:     create.Name,
		Document: create.Document,
		Email:    create.Email,
		Password: create.Password,
		Role:     create.Role,
		Status:   create.Status,
		Balance:  create.Balance,
	}
	return infrarepo.MapGormError(
		r.db.WithContext(ctx).Create(user).Error,
	)
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*dto.UserRead, error) {
	var user User
	if err := r.db.WithContext(
		ctx,
	).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, infrarepo.MapGormError(err)
	}
	return mapModelToDTO(&user), nil
}

func (r *repository) GetByDocument(
	ctx context.Context,
	document string,
) (*dto.UserRead, error) {
	var user User
	if err := r.db.WithContext(
		ctx,
	).Where("document = ?", document).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, infrarepo.MapGormError(err)
	}
	return mapModelToDTO(&user), nil
}

func (r *repository) GetByEmailOrDocument(
	ctx context.Context,
	key string,
) (*dto.UserRead, error) {
	var user User
	if err := r.db.WithContext(
		ctx,
	).Where("email = ? OR document = ?", key, key).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, infrarepo.MapGormError(err)
	}
	return mapModelToDTO(&user), nil
}

func (r *repository) ListByStatus(
	ctx context.Context,
	status string,
) ([]*dto.UserRead, error) {
	var users []User
	if err := r.db.WithContext(
		ctx,
	).Where("status = ?", status).Order("created_at").Find(&users).Error; err != nil {
		return nil, infrarepo.MapGormError(err)
	}

	result := make([]*dto.UserRead, 0, len(users))
	for i := range users {
		result = append(result, mapModelToDTO(&users[i]))
	}
	return result, nil
}

// UpdateStatus is conditional on the status actually changing: an unknown
// email and a no-op re-approval both report domain.ErrNothingUpdated.
func (r *repository) UpdateStatus(
	ctx context.Context,
	email, status string,
) error {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("email = ? AND status <> ?", email, status).
		Update("status", status)
	if res.Error != nil {
		return infrarepo.MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNothingUpdated
	}
	return nil
}

// IncrementBalance is a single update expression, atomic at the storage
// layer. A negative amount debits without an overdraft guard.
func (r *repository) IncrementBalance(
	ctx context.Context,
	document string,
	amount decimal.Decimal,
) error {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("document = ?", document).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return infrarepo.MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementBalanceGuarded checks and applies the debit in one statement so
// two concurrent transfers cannot race past the funds check.
func (r *repository) DecrementBalanceGuarded(
	ctx context.Context,
	document string,
	amount decimal.Decimal,
) error {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("document = ? AND balance >= ?", document, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return infrarepo.MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

func mapModelToDTO(user *User) *dto.UserRead {
	return &dto.UserRead{
		ID:             user.ID,
		Name:           user.Name,
		Document:       user.Document,
		Email:          user.Email,
		HashedPassword: user.Password,
		Role:           user.Role,
		Status:         user.Status,
		Balance:        user.Balance,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

var _ userrepo.Repository = (*repository)(nil)
