// Package dbtx binds a gorm handle to a database/sql transaction opened by a
// service, so gorm repositories and raw SQL repositories can share one commit.
package dbtx

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Conn returns db scoped to ctx, running on tx when tx is not nil.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	conn := db.WithContext(ctx)
	if tx != nil {
		conn.Statement.ConnPool = tx
	}
	return conn
}
