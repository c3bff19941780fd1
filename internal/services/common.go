package services

import (
	"context"

	"gorm.io/gorm"
)

// contextOf returns the request context bound to db by DBMiddleware.
func contextOf(db *gorm.DB) context.Context {
	if db != nil && db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}
