package sql

import (
	"fmt"
	"strings"

	"github.com/joeeisel/yessql"
	"github.com/joeeisel/yessql/dialect"
)

// PostgresDialect implements Dialect for PostgreSQL.
type PostgresDialect struct{}

// Name returns the dialect name.
func (PostgresDialect) Name() string { return dialect.Postgres }

// QuoteForTableName quotes with ANSI double quotes, schema-qualified.
func (PostgresDialect) QuoteForTableName(name, schema string) string {
	return qualify(quote(name, `"`, `"`), schema, `"`, `"`)
}

// QuoteForColumnName quotes with ANSI double quotes.
func (PostgresDialect) QuoteForColumnName(name string) string {
	return quote(name, `"`, `"`)
}

// QuoteForAliasName quotes with ANSI double quotes.
func (PostgresDialect) QuoteForAliasName(name string) string {
	return quote(name, `"`, `"`)
}

// FormatKeyName quotes a constraint or index name.
func (PostgresDialect) FormatKeyName(name string) string {
	return quote(name, `"`, `"`)
}

// CascadeConstraintsString enables DROP TABLE ... CASCADE, so dependent
// foreign keys need not be dropped explicitly.
func (PostgresDialect) CascadeConstraintsString() string { return " CASCADE" }

// RandomOrderByClause returns the random ordering expression.
func (PostgresDialect) RandomOrderByClause() string { return "RANDOM()" }

// DistinctOn returns the PostgreSQL DISTINCT ON form for the first order
// expression, with any direction suffix stripped.
func (PostgresDialect) DistinctOn(firstOrder string) string {
	return "DISTINCT ON (" + trimOrderDirection(firstOrder) + ")"
}

// Page injects LIMIT/OFFSET; PostgreSQL accepts OFFSET without LIMIT.
func (PostgresDialect) Page(b *Builder, skip, count string) {
	b.ClearTrail()
	switch {
	case count != "" && skip != "":
		b.Trail("LIMIT " + count + " OFFSET " + skip)
	case count != "":
		b.Trail("LIMIT " + count)
	case skip != "":
		b.Trail("OFFSET " + skip)
	}
}

// TypeName maps a column spec to a PostgreSQL type name.
func (PostgresDialect) TypeName(c ColumnSpec) (string, error) {
	switch c.Kind {
	case Integer:
		if c.Size == yessql.Int64 {
			return "bigint", nil
		}
		return "integer", nil
	case String:
		if c.Length > 0 {
			return fmt.Sprintf("varchar(%d)", c.Length), nil
		}
		return "text", nil
	case Bool:
		return "boolean", nil
	case DateTime:
		return "timestamp", nil
	case Decimal:
		if c.Precision > 0 {
			return fmt.Sprintf("numeric(%d,%d)", c.Precision, c.Scale), nil
		}
		return "numeric", nil
	case Double:
		return "double precision", nil
	case Blob:
		return "bytea", nil
	}
	return "", fmt.Errorf("dialect/sql: postgres: unsupported column kind %d", c.Kind)
}

// IdentityColumnString returns the identity primary-key column type.
func (PostgresDialect) IdentityColumnString(size yessql.IdentitySize) string {
	if size == yessql.Int64 {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "SERIAL PRIMARY KEY"
}

// trimOrderDirection strips a trailing ASC/DESC from an order expression.
func trimOrderDirection(order string) string {
	trimmed := strings.TrimSpace(order)
	for _, suffix := range []string{" DESC", " ASC", " desc", " asc"} {
		if strings.HasSuffix(trimmed, suffix) {
			return strings.TrimSpace(strings.TrimSuffix(trimmed, suffix))
		}
	}
	return trimmed
}
