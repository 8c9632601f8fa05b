package department

import (
	"context"
	"database/sql"

	"go-inventory/internal/lifecycle"
	"go-inventory/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context) ([]Department, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id int64) (*Department, error)
	FindByIDAnyStatus(ctx context.Context, id int64) (*Department, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, dept *Department) error {
	if dept.Status == "" {
		dept.Status = lifecycle.StatusActive
	}
	return r.conn(ctx).Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.conn(ctx).
		Scopes(lifecycle.Active).
		Order("id ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.conn(ctx).
		Model(&Department{}).
		Scopes(lifecycle.Active).
		Count(&total).Error
	return total, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Department, error) {
	var dept Department
	err := r.conn(ctx).
		Scopes(lifecycle.Active).
		Where("id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) FindByIDAnyStatus(ctx context.Context, id int64) (*Department, error) {
	var dept Department
	if err := r.conn(ctx).Where("id = ?", id).First(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	res := r.conn(ctx).
		Model(&Department{}).
		Scopes(lifecycle.Active).
		Where("id = ?", dept.ID).
		Updates(map[string]any{"name": dept.Name, "updated_at": gorm.Expr("NOW()")})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return lifecycle.MarkDeleted(r.conn(ctx), &Department{}, id)
}
