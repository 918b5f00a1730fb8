// Package yessql is the schema-management and query-construction core of a
// document database that persists documents and secondary indexes as
// relational tables.
//
// Documents live in per-collection document tables. Secondary indexes are
// derived relational tables: a map index holds one row per document fact
// with a DocumentId foreign key, and a reduce index holds one row per
// aggregated group key, associated with documents through a bridge table.
//
// The module has two cores. The schema builder
// (dialect/sql/schema.Builder) orchestrates the DDL that shapes those
// tables, their foreign keys and lookup indexes, across SQLite,
// PostgreSQL, MySQL and SQL Server. The SQL builder (dialect/sql.Builder)
// assembles SELECT statements incrementally from clause fragments and
// renders them dialect-correctly on demand.
//
// Opening a connection and ensuring the schema:
//
//	drv, err := sql.Open(dialect.SQLite, "file:app.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
//	tx, err := drv.Tx(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg := yessql.NewConfig(yessql.WithTablePrefix("yx_"), yessql.WithDialect(dialect.SQLite))
//	b, err := schema.NewBuilder(cfg, tx, schema.WithThrowOnError(false))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b.CreateMapIndexTable(ctx, "TitleIndex", func(t *schema.CreateTableCommand) {
//	    t.Column("Title", sql.String, schema.WithLength(255))
//	}, "Blog")
//	if err := b.Err(); err != nil {
//	    log.Fatal(err)
//	}
package yessql

import "log/slog"

// IdentitySize is the storage width of identity columns on document and
// index tables.
type IdentitySize int

const (
	// Int32 stores identities as 32-bit integers.
	Int32 IdentitySize = iota
	// Int64 stores identities as 64-bit integers.
	Int64
)

// String returns the string representation of the identity size.
func (s IdentitySize) String() string {
	if s == Int64 {
		return "int64"
	}
	return "int32"
}

// Config holds the settings shared by the schema builder and the SQL
// builder: the table prefix applied to every generated table name, the
// optional schema the tables live in, the identity column width, and the
// logger used for statement tracing.
type Config struct {
	// TablePrefix is prepended to every table name before quoting.
	TablePrefix string

	// Schema is the database schema tables are created in. Empty means
	// the dialect default.
	Schema string

	// IdentityColumnSize is the width of Id and DocumentId columns.
	IdentityColumnSize IdentitySize

	// Dialect is the dialect name the configuration targets. Used by
	// LoadConfig and the migration command; builders receive a concrete
	// dialect directly.
	Dialect string

	// Logger receives trace output for every executed DDL statement.
	Logger *slog.Logger
}

// Option configures a Config.
type Option func(*Config)

// WithTablePrefix sets the prefix prepended to generated table names.
func WithTablePrefix(prefix string) Option {
	return func(c *Config) { c.TablePrefix = prefix }
}

// WithSchema sets the database schema for generated tables.
func WithSchema(schema string) Option {
	return func(c *Config) { c.Schema = schema }
}

// WithIdentityColumnSize sets the width of identity columns.
func WithIdentityColumnSize(size IdentitySize) Option {
	return func(c *Config) { c.IdentityColumnSize = size }
}

// WithDialect sets the target dialect name.
func WithDialect(name string) Option {
	return func(c *Config) { c.Dialect = name }
}

// WithLogger sets the logger used for statement tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// NewConfig returns a Config with the given options applied. Identity
// columns default to 32-bit and logging defaults to slog.Default.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		IdentityColumnSize: Int32,
		Logger:             slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
