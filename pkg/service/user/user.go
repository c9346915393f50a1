// Package user provides business logic for registration, account moderation
// and recipient resolution.
package user

import (
	"context"
	"log/slog"

	"github.com/carteiralabs/carteira/pkg/domain/user"
	"github.com/carteiralabs/carteira/pkg/dto"
	"github.com/carteiralabs/carteira/pkg/repository"
)

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// RegisterInput carries a registration request into the service.
type RegisterInput struct {
	Name            string
	Document        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register creates a pending ordinary account. A password confirmation
// mismatch or a duplicate document/email fails without persisting anything;
// the duplicate cases report distinct errors.
func (s *Service) Register(
	ctx context.Context,
	input RegisterInput,
) (created *user.User, err error) {
	log := s.logger.With("context", "Register", "document", input.Document)
	if input.Password != input.ConfirmPassword {
		return nil, user.ErrPasswordMismatch
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		existing, err := repo.GetByDocument(ctx, input.Document)
		if err != nil {
			return err
		}
		if existing != nil {
			return user.ErrDocumentTaken
		}
		existing, err = repo.GetByEmail(ctx, input.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return user.ErrEmailTaken
		}
		created, err = user.New(input.Name, input.Document, input.Email, input.Password)
		if err != nil {
			return err
		}
		return repo.Create(ctx, &dto.UserCreate{
			ID:       created.ID,
			Name:     created.Name,
			Document: created.Document,
			Email:    created.Email,
			Password: created.Password,
			Role:     int(created.Role),
			Status:   string(created.Status),
			Balance:  created.Balance,
		})
	})
	if err != nil {
		log.Warn("registration failed", "error", err)
		return nil, err
	}
	log.Info("user registered", "userID", created.ID)
	return created, nil
}

// GetByEmail retrieves a user by email. Absence is a nil result, not an error.
func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByDocument retrieves a user by document. Absence is a nil result.
func (s *Service) GetByDocument(
	ctx context.Context,
	document string,
) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByDocument(ctx, document)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByEmailOrDocument retrieves a user matching the key as either email or
// document. Absence is a nil result.
func (s *Service) GetByEmailOrDocument(
	ctx context.Context,
	key string,
) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByEmailOrDocument(ctx, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListPending returns all accounts waiting for approval, oldest first.
func (s *Service) ListPending(
	ctx context.Context,
) (users []*dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		users, err = repo.ListByStatus(ctx, string(user.StatusWaitingForApproval))
		return err
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Approve moves the account with the given email to the approved status.
// Approving an unknown email or an already-approved account fails.
func (s *Service) Approve(ctx context.Context, email string) error {
	return s.setStatus(ctx, email, user.StatusApproved)
}

// Block moves the account with the given email to the blocked status.
func (s *Service) Block(ctx context.Context, email string) error {
	return s.setStatus(ctx, email, user.StatusBlocked)
}

func (s *Service) setStatus(ctx context.Context, email string, status user.Status) error {
	log := s.logger.With("context", "setStatus", "email", email, "status", status)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return repo.UpdateStatus(ctx, email, string(status))
	})
	if err != nil {
		log.Warn("status update failed", "error", err)
		return err
	}
	log.Info("status updated")
	return nil
}

// RecipientName resolves a transfer recipient's display name from an email or
// document key. The caller's own account and administrator accounts are not
// valid recipients.
func (s *Service) RecipientName(
	ctx context.Context,
	key string,
	callerDocument string,
) (name string, err error) {
	var target *dto.UserRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		target, err = repo.GetByEmailOrDocument(ctx, key)
		return err
	})
	if err != nil {
		return "", err
	}
	if target == nil {
		return "", user.ErrUserNotFound
	}
	if target.Document == callerDocument {
		return "", user.ErrSelfTransfer
	}
	if user.Role(target.Role) == user.RoleAdmin {
		return "", user.ErrInvalidRecipient
	}
	return target.Name, nil
}
