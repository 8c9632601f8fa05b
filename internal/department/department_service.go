package department

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	departmenterrors "go-inventory/internal/department/errors"
	"go-inventory/internal/shared/contextutil"
	"go-inventory/internal/shared/export"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	DepartmentAllKey        = "departments:all"
	DepartmentGenerationKey = "departments:all:gen"
	cacheTTL                = 30 * time.Minute
)

// DepartmentListKey is the cache key of the department list for one cache
// generation. Writes bump the generation, so a load that started before a
// write can only ever fill a key nobody reads anymore.
func DepartmentListKey(gen int64) string {
	return fmt.Sprintf("%s:v%d", DepartmentAllKey, gen)
}

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (DepartmentResponse, error)
	Update(ctx context.Context, id int64, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id int64) error
	Export(ctx context.Context) (*bytes.Buffer, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return DepartmentResponse{}, departmenterrors.ErrNameRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{Name: name}
	if err := qtx.Create(ctx, dept); err != nil {
		log.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidate(ctx)
	log.Info("department created", zap.Int64("department_id", dept.ID))

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	key, cacheable := s.listKey(ctx)
	if cacheable {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var resp []DepartmentResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("department cache read failed", zap.Error(err))
		}
	} else {
		key = DepartmentAllKey
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		depts, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(depts)

		if cacheable {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, key, data, cacheTTL).Err(); err != nil {
					s.logger.Warn("department cache write failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]DepartmentResponse), nil
}

// listKey resolves the list key of the current cache generation. The cache
// is bypassed when Redis is not configured or the generation is unreadable.
func (s *service) listKey(ctx context.Context) (string, bool) {
	if s.rdb == nil {
		return "", false
	}
	gen, err := s.rdb.Get(ctx, DepartmentGenerationKey).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("department cache generation read failed", zap.Error(err))
			return "", false
		}
		gen = 0
	}
	return DepartmentListKey(gen), true
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *service) GetByID(ctx context.Context, id int64) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return DepartmentResponse{}, departmenterrors.ErrNameRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	dept.Name = name
	if err := qtx.Update(ctx, dept); err != nil {
		log.Error("update department persist failed", zap.Int64("department_id", id), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidate(ctx)
	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
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

	s.invalidate(ctx)
	contextutil.GetLogger(ctx, s.logger).Info("department deleted", zap.Int64("department_id", id))
	return nil
}

func (s *service) Export(ctx context.Context) (*bytes.Buffer, error) {
	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, len(depts))
	for i, d := range depts {
		rows[i] = []any{d.ID, d.Name}
	}
	return export.XLSX(export.Table{
		Sheet:   "Departamentos",
		Headers: []string{"ID", "Nome"},
		Rows:    rows,
	})
}

func (s *service) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, DepartmentGenerationKey).Err(); err != nil {
		s.logger.Error("failed to invalidate department cache",
			zap.String("key", DepartmentGenerationKey),
			zap.Error(err),
		)
	}
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}
	return err
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:   dept.ID,
		Name: dept.Name,
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
