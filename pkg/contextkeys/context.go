package contextkeys

type ContextKey string

const (
	// DBContextKey carries the request-scoped *gorm.DB handle. Tests swap a
	// transaction in here so requests roll back with the test.
	DBContextKey ContextKey = "db"
)
