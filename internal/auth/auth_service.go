package auth

import (
	"context"
	"errors"
	"strings"

	autherrors "go-inventory/internal/auth/errors"
	"go-inventory/internal/shared/contextutil"
	"go-inventory/internal/shared/password"
	"go-inventory/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserStore is the slice of the user repository that login needs.
//
//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type Service interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
}

type service struct {
	users  UserStore
	tokens *TokenManager
	logger *zap.Logger
}

func NewService(users UserStore, tokens *TokenManager, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, tokens: tokens, logger: l}
}

func (s *service) Login(ctx context.Context, email, plain string) (LoginResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	email = strings.TrimSpace(email)

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Info("login rejected", zap.String("reason", "unknown_email"))
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		log.Error("login lookup failed", zap.Error(err))
		return LoginResponse{}, err
	}

	if err := password.Verify(u.PasswordHash, plain); err != nil {
		log.Info("login rejected",
			zap.String("reason", "bad_password"),
			zap.String("user_id", u.ID.String()),
		)
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if password.NeedsRehash(u.PasswordHash) {
		s.upgradeHash(ctx, log, u.ID, plain)
	}

	token, expiresAt, err := s.tokens.Issue(u.ID.String(), u.Name, u.Email)
	if err != nil {
		log.Error("sign token failed", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed.WithCause(err)
	}

	log.Info("login succeeded",
		zap.String("user_id", u.ID.String()),
		zap.Time("expires_at", expiresAt),
	)
	return LoginResponse{Token: token}, nil
}

// upgradeHash replaces a legacy digest with bcrypt. Failures only get logged;
// the login itself has already succeeded.
func (s *service) upgradeHash(ctx context.Context, log *zap.Logger, id uuid.UUID, plain string) {
	hash, err := password.Hash(plain)
	if err != nil {
		log.Warn("rehash legacy password failed", zap.String("user_id", id.String()), zap.Error(err))
		return
	}
	if err := s.users.UpdatePasswordHash(ctx, id, hash); err != nil {
		log.Warn("store upgraded password hash failed", zap.String("user_id", id.String()), zap.Error(err))
		return
	}
	log.Info("legacy password hash upgraded", zap.String("user_id", id.String()))
}
