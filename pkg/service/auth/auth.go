// Package auth provides credential checks and JWT issuance for the cookie
// session. Tokens are stateless; nothing is persisted server-side.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carteiralabs/carteira/pkg/config"
	"github.com/carteiralabs/carteira/pkg/domain/user"
	"github.com/carteiralabs/carteira/pkg/dto"
	"github.com/carteiralabs/carteira/pkg/repository"
	"github.com/carteiralabs/carteira/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrDocumentNotRegistered is returned when no account matches the login
	// document.
	ErrDocumentNotRegistered = errors.New("document not registered")
	// ErrWrongPassword is returned on a failed password check.
	ErrWrongPassword = errors.New("incorrect password")
)

// Claims is the decoded identity carried by the session token.
type Claims struct {
	UserID   uuid.UUID
	Role     user.Role
	Email    string
	Name     string
	Document string
}

// Service checks credentials and issues/verifies session tokens.
type Service struct {
	uow    repository.UnitOfWork
	cfg    config.JwtConfig
	logger *slog.Logger
}

// New creates an auth service.
func New(uow repository.UnitOfWork, cfg config.JwtConfig, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login verifies the document/password pair and returns the matching user.
// Account status is not checked here; the handler decides what a pending or
// blocked account sees.
func (s *Service) Login(
	ctx context.Context,
	document, password string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "Login", "document", document)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByDocument(ctx, document)
		return err
	})
	if err != nil {
		log.Error("login lookup failed", "error", err)
		return nil, err
	}
	if u == nil {
		log.Warn("login with unknown document")
		return nil, ErrDocumentNotRegistered
	}
	if !utils.CheckPasswordHash(password, u.HashedPassword) {
		log.Warn("login with wrong password")
		return nil, ErrWrongPassword
	}
	log.Info("login successful", "userID", u.ID)
	return u, nil
}

// GenerateToken issues a signed HS256 token for the user.
func (s *Service) GenerateToken(u *dto.UserRead) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = u.ID.String()
	claims["role"] = u.Role
	claims["email"] = u.Email
	claims["name"] = u.Name
	claims["document"] = u.Document
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()

	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("token signing failed", "userID", u.ID, "error", err)
		return "", err
	}
	return signed, nil
}

// ParseToken verifies a signed token string and decodes its claims.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	return ClaimsFromToken(token)
}

// ClaimsFromToken decodes the session claims out of a verified token.
func ClaimsFromToken(token *jwt.Token) (*Claims, error) {
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}
	role, _ := mapClaims["role"].(float64)
	email, _ := mapClaims["email"].(string)
	name, _ := mapClaims["name"].(string)
	document, _ := mapClaims["document"].(string)
	return &Claims{
		UserID:   userID,
		Role:     user.Role(int(role)),
		Email:    email,
		Name:     name,
		Document: document,
	}, nil
}
