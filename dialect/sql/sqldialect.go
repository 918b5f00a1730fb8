package sql

import (
	"fmt"
	"strings"

	"github.com/joeeisel/yessql"
	"github.com/joeeisel/yessql/dialect"
)

// ColumnKind is the semantic type class of a column. The dialect maps it
// to a concrete engine type name.
type ColumnKind int

const (
	// Integer is a whole-number column sized by yessql.IdentitySize.
	Integer ColumnKind = iota
	// String is a variable-length text column.
	String
	// Bool is a boolean column.
	Bool
	// DateTime is a date-and-time column.
	DateTime
	// Decimal is an exact numeric column with precision and scale.
	Decimal
	// Double is a floating-point column.
	Double
	// Blob is a binary column.
	Blob
)

// ColumnSpec describes a column for type-name mapping. Length applies to
// String, Precision and Scale to Decimal, Size to Integer.
type ColumnSpec struct {
	Kind      ColumnKind
	Length    int
	Precision int
	Scale     int
	Size      yessql.IdentitySize
}

// Dialect supplies the engine-specific rules the builders depend on:
// identifier quoting, key-name formatting, paging injection, random
// ordering, cascading-drop support and DDL type names. Implementations
// are pure and stateless per call; one concrete dialect is bound per
// builder instance.
type Dialect interface {
	// Name returns the dialect name constant.
	Name() string
	// QuoteForTableName quotes a table reference, schema-qualified when
	// schema is non-empty.
	QuoteForTableName(name, schema string) string
	// QuoteForColumnName quotes a column name.
	QuoteForColumnName(name string) string
	// QuoteForAliasName quotes an alias.
	QuoteForAliasName(name string) string
	// FormatKeyName formats a constraint or index name.
	FormatKeyName(name string) string
	// CascadeConstraintsString is the suffix appended to DROP TABLE when
	// the engine drops dependent constraints itself. Empty means the
	// engine has no cascading drop and foreign keys must be dropped
	// explicitly first.
	CascadeConstraintsString() string
	// RandomOrderByClause is the expression ordering rows randomly.
	RandomOrderByClause() string
	// DistinctOn returns the distinct clause to use when an order-by is
	// present; firstOrder is the first order expression.
	DistinctOn(firstOrder string) string
	// Page injects the paging idiom for the given raw skip/count bounds
	// into the builder. Either bound may be empty.
	Page(b *Builder, skip, count string)
	// TypeName maps a column spec to the engine type name.
	TypeName(c ColumnSpec) (string, error)
	// IdentityColumnString is the full column type text of an identity
	// primary-key column of the given width.
	IdentityColumnString(size yessql.IdentitySize) string
}

var dialects = map[string]Dialect{
	dialect.SQLite:    SQLiteDialect{},
	dialect.Postgres:  PostgresDialect{},
	dialect.MySQL:     MySQLDialect{},
	dialect.SQLServer: SQLServerDialect{},
}

// DialectFor returns the Dialect registered under the given name.
func DialectFor(name string) (Dialect, error) {
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("dialect/sql: unsupported dialect %q", name)
	}
	return d, nil
}

// quote wraps name in the given start/end runes, escaping embedded end
// runes by doubling.
func quote(name, start, end string) string {
	return start + strings.ReplaceAll(name, end, end+end) + end
}

// qualify prefixes the quoted name with the quoted schema when set.
func qualify(quoted, schema, start, end string) string {
	if schema == "" {
		return quoted
	}
	return quote(schema, start, end) + "." + quoted
}
