package dialect

import "context"

// Supported dialect names. The names double as database/sql driver names
// for SQLite (modernc.org/sqlite registers "sqlite"), MySQL and Postgres.
const (
	SQLite    = "sqlite"
	MySQL     = "mysql"
	Postgres  = "postgres"
	SQLServer = "sqlserver"
)

// ExecQuerier wraps the two standard database operations used by this
// module: executing a statement and running a query.
type ExecQuerier interface {
	// Exec executes a statement that does not return rows. The args
	// parameter must be a []any; v may be nil or a *sql.Result.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a query that returns rows. The args parameter must
	// be a []any and v a *sql.Rows wrapper.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the database abstraction the schema and query layers run
// against. One implementation exists per family of database/sql drivers.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	Tx(ctx context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx is the transaction interface. A schema builder is bound to one Tx
// for its whole lifetime.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}
