package product

import (
	"context"
	"database/sql"

	"go-inventory/internal/lifecycle"
	"go-inventory/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=product_repo.go -destination=mock/product_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Product) error
	FindAll(ctx context.Context) ([]Product, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDAnyStatus(ctx context.Context, id uuid.UUID) (*Product, error)
	Update(ctx context.Context, p *Product) error
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

// withDepartment selects products together with the name of their
// department, deleted departments included.
func (r *repository) withDepartment(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Model(&Product{}).
		Select("products.*, departments.name AS department_title").
		Joins("LEFT JOIN departments ON departments.id = products.department_id")
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	if p.Status == "" {
		p.Status = lifecycle.StatusActive
	}
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Product, error) {
	var products []Product
	err := r.withDepartment(ctx).
		Scopes(lifecycle.Active).
		Order("products.code ASC").
		Find(&products).Error
	return products, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.conn(ctx).
		Model(&Product{}).
		Scopes(lifecycle.Active).
		Count(&total).Error
	return total, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var p Product
	err := r.withDepartment(ctx).
		Scopes(lifecycle.Active).
		Where("products.id = ?", id).
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByIDAnyStatus(ctx context.Context, id uuid.UUID) (*Product, error) {
	var p Product
	if err := r.withDepartment(ctx).Where("products.id = ?", id).Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	res := r.conn(ctx).
		Model(&Product{}).
		Scopes(lifecycle.Active).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"description":   p.Description,
			"department_id": p.DepartmentID,
			"price":         p.Price,
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

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return lifecycle.MarkDeleted(r.conn(ctx), &Product{}, id)
}
