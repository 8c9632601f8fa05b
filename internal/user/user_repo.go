package user

import (
	"context"
	"database/sql"
	"strings"

	"go-inventory/internal/lifecycle"
	"go-inventory/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindAll(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIDAnyStatus(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, u *User) error {
	if u.Status == "" {
		u.Status = lifecycle.StatusActive
	}
	return r.conn(ctx).Create(u).Error
}

func (r *repository) FindAll(ctx context.Context) ([]User, error) {
	var users []User
	err := r.conn(ctx).
		Scopes(lifecycle.Active).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.conn(ctx).
		Model(&User{}).
		Scopes(lifecycle.Active).
		Count(&total).Error
	return total, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.conn(ctx).
		Scopes(lifecycle.Active).
		Where("id = ?", id).
		Take(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByIDAnyStatus(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if err := r.conn(ctx).Where("id = ?", id).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail matches case-insensitively and only among active users.
func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.conn(ctx).
		Scopes(lifecycle.Active).
		Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Take(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Update(ctx context.Context, u *User) error {
	res := r.conn(ctx).
		Model(&User{}).
		Scopes(lifecycle.Active).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"name":          u.Name,
			"email":         u.Email,
			"password_hash": u.PasswordHash,
			"updated_at":    gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.conn(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]any{"password_hash": hash, "updated_at": gorm.Expr("NOW()")}).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return lifecycle.MarkDeleted(r.conn(ctx), &User{}, id)
}
