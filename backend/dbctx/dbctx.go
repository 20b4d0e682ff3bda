package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Conn returns the transaction when set, otherwise db, bound to the context.
func (c Context) Conn(db *gorm.DB) *gorm.DB {
	conn := c.Tx
	if conn == nil {
		conn = db
	}
	ctx := c.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return conn.WithContext(ctx)
}
