package contextkeys

// contextKey avoids collisions with keys from other packages.
type contextKey string

const (
	// DBContextKey is where DBMiddleware stores the request-scoped *gorm.DB.
	DBContextKey = contextKey("db")

	// Keys set by AuthMiddleware on the gin context.
	UserIDKey = "userID"
	RoleKey   = "role"
)
