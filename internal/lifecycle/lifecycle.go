// Package lifecycle holds the single visibility rule for soft deleted rows.
// Every list, count and lookup of departments, products and users goes
// through Active; only FindByIDAnyStatus style lookups skip it.
package lifecycle

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

func (s Status) IsActive() bool {
	return s == StatusActive
}

func statusColumn() clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: "status"}
}

// Active restricts a query to rows that have not been soft deleted. The
// column is qualified with the model table so joined queries stay
// unambiguous.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where(clause.Eq{Column: statusColumn(), Value: string(StatusActive)})
}

// MarkDeleted flips an active row to deleted. It returns
// gorm.ErrRecordNotFound when no active row matched.
func MarkDeleted(db *gorm.DB, model any, id any) error {
	res := db.Model(model).
		Scopes(Active).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(StatusDeleted),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
