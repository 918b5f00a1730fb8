package sql

import (
	"fmt"

	"github.com/joeeisel/yessql"
	"github.com/joeeisel/yessql/dialect"
)

// MySQLDialect implements Dialect for MySQL and MariaDB.
type MySQLDialect struct{}

// Name returns the dialect name.
func (MySQLDialect) Name() string { return dialect.MySQL }

// QuoteForTableName quotes with backticks, schema-qualified.
func (MySQLDialect) QuoteForTableName(name, schema string) string {
	return qualify(quote(name, "`", "`"), schema, "`", "`")
}

// QuoteForColumnName quotes with backticks.
func (MySQLDialect) QuoteForColumnName(name string) string {
	return quote(name, "`", "`")
}

// QuoteForAliasName quotes with backticks.
func (MySQLDialect) QuoteForAliasName(name string) string {
	return quote(name, "`", "`")
}

// FormatKeyName quotes a constraint or index name.
func (MySQLDialect) FormatKeyName(name string) string {
	return quote(name, "`", "`")
}

// CascadeConstraintsString is empty: MySQL DROP TABLE does not cascade
// through foreign keys, they must be dropped first.
func (MySQLDialect) CascadeConstraintsString() string { return "" }

// RandomOrderByClause returns the random ordering expression.
func (MySQLDialect) RandomOrderByClause() string { return "RAND()" }

// DistinctOn returns plain DISTINCT; MySQL has no DISTINCT ON.
func (MySQLDialect) DistinctOn(string) string { return "DISTINCT" }

// maxRowCount is the documented MySQL idiom for an unbounded LIMIT when
// only an offset is requested.
const maxRowCount = "18446744073709551615"

// Page injects LIMIT/OFFSET.
func (MySQLDialect) Page(b *Builder, skip, count string) {
	b.ClearTrail()
	switch {
	case count != "" && skip != "":
		b.Trail("LIMIT " + count + " OFFSET " + skip)
	case count != "":
		b.Trail("LIMIT " + count)
	case skip != "":
		b.Trail("LIMIT " + maxRowCount + " OFFSET " + skip)
	}
}

// TypeName maps a column spec to a MySQL type name.
func (MySQLDialect) TypeName(c ColumnSpec) (string, error) {
	switch c.Kind {
	case Integer:
		if c.Size == yessql.Int64 {
			return "BIGINT", nil
		}
		return "INT", nil
	case String:
		if c.Length > 0 {
			return fmt.Sprintf("VARCHAR(%d)", c.Length), nil
		}
		return "LONGTEXT", nil
	case Bool:
		return "TINYINT(1)", nil
	case DateTime:
		return "DATETIME", nil
	case Decimal:
		if c.Precision > 0 {
			return fmt.Sprintf("DECIMAL(%d,%d)", c.Precision, c.Scale), nil
		}
		return "DECIMAL(19,5)", nil
	case Double:
		return "DOUBLE", nil
	case Blob:
		return "LONGBLOB", nil
	}
	return "", fmt.Errorf("dialect/sql: mysql: unsupported column kind %d", c.Kind)
}

// IdentityColumnString returns the identity primary-key column type.
func (MySQLDialect) IdentityColumnString(size yessql.IdentitySize) string {
	if size == yessql.Int64 {
		return "BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY"
	}
	return "INT NOT NULL AUTO_INCREMENT PRIMARY KEY"
}
