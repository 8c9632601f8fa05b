package user

import (
	"bytes"
	"context"
	"database/sql"
	"strings"

	"go-inventory/internal/shared/apperror"
	"go-inventory/internal/shared/contextutil"
	"go-inventory/internal/shared/export"
	"go-inventory/internal/shared/password"
	usererrors "go-inventory/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Export(ctx context.Context) (*bytes.Buffer, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if err := validateProfile(name, email); err != nil {
		return UserResponse{}, err
	}

	plain := plainPassword(req.Password, req.PasswordHash)
	if plain == "" {
		return UserResponse{}, usererrors.ErrPasswordRequired
	}
	if len(plain) < password.MinLength {
		return UserResponse{}, usererrors.ErrPasswordTooShort
	}

	hash, err := password.Hash(plain)
	if err != nil {
		log.Error("hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	u := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.WithTx(tx).Create(ctx, u); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			log.Error("create user persist failed", zap.Error(err))
		} else {
			log.Warn("create user rejected", zap.String("email", email), zap.Error(err))
		}
		return UserResponse{}, mapped
	}

	if err := tx.Commit(); err != nil {
		log.Error("create user commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	log.Info("user created", zap.String("user_id", u.ID.String()))
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = mapToResponse(u)
	}
	return res, nil
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (UserResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if err := validateProfile(name, email); err != nil {
		return UserResponse{}, err
	}

	plain := plainPassword(req.Password, req.PasswordHash)
	if plain != "" && len(plain) < password.MinLength {
		return UserResponse{}, usererrors.ErrPasswordTooShort
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	u.Name = name
	u.Email = email
	if plain != "" {
		hash, err := password.Hash(plain)
		if err != nil {
			log.Error("hash password failed", zap.Error(err))
			return UserResponse{}, err
		}
		u.PasswordHash = hash
	}

	if err := qtx.Update(ctx, u); err != nil {
		log.Warn("update user failed", zap.String("user_id", id.String()), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	log.Info("user updated",
		zap.String("user_id", id.String()),
		zap.Bool("password_changed", plain != ""),
	)
	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("user deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *service) Export(ctx context.Context) (*bytes.Buffer, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, len(users))
	for i, u := range users {
		rows[i] = []any{u.ID.String(), u.Name, u.Email}
	}
	return export.XLSX(export.Table{
		Sheet:   "Usuarios",
		Headers: []string{"ID", "Nome", "E-mail"},
		Rows:    rows,
	})
}

func validateProfile(name, email string) error {
	if name == "" {
		return usererrors.ErrNameRequired
	}
	if email == "" {
		return usererrors.ErrEmailRequired
	}
	if !apperror.IsEmail(email) {
		return usererrors.ErrInvalidEmail
	}
	return nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	}
}
