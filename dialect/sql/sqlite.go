package sql

import (
	"fmt"

	"github.com/joeeisel/yessql"
	"github.com/joeeisel/yessql/dialect"
)

// SQLiteDialect implements Dialect for SQLite.
type SQLiteDialect struct{}

// Name returns the dialect name.
func (SQLiteDialect) Name() string { return dialect.SQLite }

// QuoteForTableName quotes with ANSI double quotes. SQLite has no real
// schemas; a non-empty schema is emitted as an attached-database prefix.
func (SQLiteDialect) QuoteForTableName(name, schema string) string {
	return qualify(quote(name, `"`, `"`), schema, `"`, `"`)
}

// QuoteForColumnName quotes with ANSI double quotes.
func (SQLiteDialect) QuoteForColumnName(name string) string {
	return quote(name, `"`, `"`)
}

// QuoteForAliasName quotes with ANSI double quotes.
func (SQLiteDialect) QuoteForAliasName(name string) string {
	return quote(name, `"`, `"`)
}

// FormatKeyName quotes a constraint or index name.
func (SQLiteDialect) FormatKeyName(name string) string {
	return quote(name, `"`, `"`)
}

// CascadeConstraintsString is empty: SQLite has no DROP TABLE CASCADE.
func (SQLiteDialect) CascadeConstraintsString() string { return "" }

// RandomOrderByClause returns the random ordering expression.
func (SQLiteDialect) RandomOrderByClause() string { return "RANDOM()" }

// DistinctOn returns plain DISTINCT; SQLite has no DISTINCT ON.
func (SQLiteDialect) DistinctOn(string) string { return "DISTINCT" }

// Page injects LIMIT/OFFSET. SQLite requires a LIMIT before OFFSET, so a
// skip without a count uses LIMIT -1.
func (SQLiteDialect) Page(b *Builder, skip, count string) {
	b.ClearTrail()
	switch {
	case count != "" && skip != "":
		b.Trail("LIMIT " + count + " OFFSET " + skip)
	case count != "":
		b.Trail("LIMIT " + count)
	case skip != "":
		b.Trail("LIMIT -1 OFFSET " + skip)
	}
}

// TypeName maps a column spec to a SQLite type name.
func (SQLiteDialect) TypeName(c ColumnSpec) (string, error) {
	switch c.Kind {
	case Integer:
		return "INTEGER", nil
	case String:
		return "TEXT", nil
	case Bool:
		return "INTEGER", nil
	case DateTime:
		return "TEXT", nil
	case Decimal:
		return "NUMERIC", nil
	case Double:
		return "REAL", nil
	case Blob:
		return "BLOB", nil
	}
	return "", fmt.Errorf("dialect/sql: sqlite: unsupported column kind %d", c.Kind)
}

// IdentityColumnString returns the identity primary-key column type.
// SQLite identities alias the 64-bit rowid regardless of declared width.
func (SQLiteDialect) IdentityColumnString(yessql.IdentitySize) string {
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}
