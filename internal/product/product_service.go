package product

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"go-inventory/internal/events"
	"go-inventory/internal/messaging/outbox"
	producterrors "go-inventory/internal/product/errors"
	"go-inventory/internal/shared/contextutil"
	"go-inventory/internal/shared/export"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=product_service.go -destination=mock/product_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (ProductResponse, error)
	GetAll(ctx context.Context) ([]ProductResponse, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Export(ctx context.Context) (*bytes.Buffer, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox outbox.Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo outbox.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("product.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("product.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (ProductResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)

	p := &Product{
		ID:           uuid.New(),
		Code:         strings.TrimSpace(req.Code),
		Description:  strings.TrimSpace(req.Description),
		DepartmentID: req.DepartmentID,
		Price:        req.Price,
	}
	if err := validate(p, true); err != nil {
		return ProductResponse{}, err
	}

	log.Debug("create product requested",
		zap.String("code", p.Code),
		zap.Int64("department_id", p.DepartmentID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create product begin tx failed", zap.Error(err))
		return ProductResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			log.Error("create product persist failed", zap.Error(err))
		} else {
			log.Warn("create product rejected", zap.String("code", p.Code), zap.Error(err))
		}
		return ProductResponse{}, mapped
	}

	event := events.ProductCreatedEvent{
		ID:           p.ID.String(),
		Code:         p.Code,
		Description:  p.Description,
		DepartmentID: p.DepartmentID,
		Price:        p.Price,
		CreatedAt:    time.Now().UTC(),
		RequestID:    rid,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error("marshal product event failed", zap.Error(err))
		return ProductResponse{}, err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, outbox.Event{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "product",
		AggregateID:   p.ID.String(),
		EventType:     events.ProductCreatedEventType,
		Topic:         events.ProductCreatedTopic,
		Payload:       payload,
		Status:        outbox.StatusPending,
	}); err != nil {
		log.Error("create product outbox persist failed",
			zap.String("product_id", p.ID.String()),
			zap.Error(err),
		)
		return ProductResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create product commit failed", zap.Error(err))
		return ProductResponse{}, err
	}

	log.Info("product created",
		zap.String("product_id", p.ID.String()),
		zap.String("code", p.Code),
	)

	created, err := s.repo.FindByID(ctx, p.ID)
	if err != nil {
		log.Warn("reload created product failed", zap.String("product_id", p.ID.String()), zap.Error(err))
		return mapToResponse(*p), nil
	}
	return mapToResponse(*created), nil
}

func (s *service) GetAll(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(products), nil
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ProductResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (ProductResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProductResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ProductResponse{}, mapRepositoryError(err)
	}

	p.Description = strings.TrimSpace(req.Description)
	p.DepartmentID = req.DepartmentID
	p.Price = req.Price
	if err := validate(p, false); err != nil {
		return ProductResponse{}, err
	}

	if err := qtx.Update(ctx, p); err != nil {
		log.Warn("update product failed", zap.String("product_id", id.String()), zap.Error(err))
		return ProductResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ProductResponse{}, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapToResponse(*p), nil
	}
	return mapToResponse(*updated), nil
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

	contextutil.GetLogger(ctx, s.logger).Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *service) Export(ctx context.Context) (*bytes.Buffer, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, len(products))
	for i, p := range products {
		title := ""
		if p.DepartmentTitle != nil {
			title = *p.DepartmentTitle
		}
		price, _ := p.Price.Float64()
		rows[i] = []any{p.ID.String(), p.Code, p.Description, title, price}
	}
	return export.XLSX(export.Table{
		Sheet:   "Produtos",
		Headers: []string{"ID", "Código", "Descrição", "Departamento", "Preço"},
		Rows:    rows,
	})
}

func validate(p *Product, checkCode bool) error {
	if checkCode && p.Code == "" {
		return producterrors.ErrCodeRequired
	}
	if p.Description == "" {
		return producterrors.ErrDescriptionRequired
	}
	if p.DepartmentID <= 0 {
		return producterrors.ErrDepartmentRequired
	}
	if !p.Price.IsPositive() {
		return producterrors.ErrInvalidPrice
	}
	return nil
}

func mapToResponse(p Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID.String(),
		Code:            p.Code,
		Description:     p.Description,
		DepartmentID:    p.DepartmentID,
		DepartmentTitle: p.DepartmentTitle,
		Price:           p.Price,
	}
}

func mapToListResponse(products []Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i, p := range products {
		res[i] = mapToResponse(p)
	}
	return res
}
