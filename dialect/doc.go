// Package dialect provides the database abstraction yessql builds on.
//
// It defines the interfaces and constants used for database-specific
// operations, allowing the schema builder and the SQL builder to target
// multiple database backends through one contract.
//
// # Supported Dialects
//
// Each dialect is identified by a constant string:
//
//	dialect.SQLite    = "sqlite"
//	dialect.MySQL     = "mysql"
//	dialect.Postgres  = "postgres"
//	dialect.SQLServer = "sqlserver"
//
// # Driver Interface
//
// The Driver interface wraps connection-level operations:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// The Tx interface extends ExecQuerier with Commit and Rollback. A schema
// builder is bound to a single Tx for its lifetime.
//
// # Usage
//
// Opening a database connection:
//
//	import (
//	    "github.com/joeeisel/yessql/dialect"
//	    "github.com/joeeisel/yessql/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.SQLite, "file:app.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// # Sub-packages
//
//   - dialect/sql: SQL builder, quoting/paging dialects and driver wrappers
//   - dialect/sql/schema: DDL commands, interpreter and the schema builder
package dialect
