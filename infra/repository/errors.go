package repository

import (
	"errors"

	"github.com/carteiralabs/carteira/pkg/domain"
	"gorm.io/gorm"
)

// MapGormError converts gorm errors to domain errors so database concerns stay
// inside the infrastructure layer. The error chain is traversed because gorm
// wraps driver errors.
func MapGormError(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}
		currentErr = errors.Unwrap(currentErr)
	}

	return err
}
