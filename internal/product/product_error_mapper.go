package product

import (
	"errors"

	producterrors "go-inventory/internal/product/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	constraintCode        = "uq_products_code"
	constraintDescription = "uq_products_description"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return producterrors.ErrProductNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case constraintCode, constraintDescription:
			return producterrors.ErrProductAlreadyExists.WithCause(err)
		}
	}

	return err
}
