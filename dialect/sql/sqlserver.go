package sql

import (
	"fmt"

	"github.com/joeeisel/yessql"
	"github.com/joeeisel/yessql/dialect"
)

// SQLServerDialect implements Dialect for Microsoft SQL Server.
type SQLServerDialect struct{}

// Name returns the dialect name.
func (SQLServerDialect) Name() string { return dialect.SQLServer }

// QuoteForTableName quotes with brackets, schema-qualified.
func (SQLServerDialect) QuoteForTableName(name, schema string) string {
	return qualify(quote(name, "[", "]"), schema, "[", "]")
}

// QuoteForColumnName quotes with brackets.
func (SQLServerDialect) QuoteForColumnName(name string) string {
	return quote(name, "[", "]")
}

// QuoteForAliasName quotes with brackets.
func (SQLServerDialect) QuoteForAliasName(name string) string {
	return quote(name, "[", "]")
}

// FormatKeyName quotes a constraint or index name.
func (SQLServerDialect) FormatKeyName(name string) string {
	return quote(name, "[", "]")
}

// CascadeConstraintsString is empty: SQL Server DROP TABLE does not
// cascade through foreign keys, they must be dropped first.
func (SQLServerDialect) CascadeConstraintsString() string { return "" }

// RandomOrderByClause returns the random ordering expression.
func (SQLServerDialect) RandomOrderByClause() string { return "NEWID()" }

// DistinctOn returns plain DISTINCT; SQL Server has no DISTINCT ON.
func (SQLServerDialect) DistinctOn(string) string { return "DISTINCT" }

// Page injects the paging idiom. A count without a skip becomes a TOP(n)
// in the select list; OFFSET/FETCH otherwise, injecting a constant order
// when the statement has none since OFFSET requires ORDER BY.
func (SQLServerDialect) Page(b *Builder, skip, count string) {
	if skip == "" {
		if count != "" {
			b.InsertSelector("TOP(" + count + ") ")
		}
		return
	}
	b.ClearTrail()
	if !b.HasOrder() {
		b.Trail("ORDER BY (SELECT NULL)")
	}
	b.Trail("OFFSET " + skip + " ROWS")
	if count != "" {
		b.Trail("FETCH NEXT " + count + " ROWS ONLY")
	}
}

// TypeName maps a column spec to a SQL Server type name.
func (SQLServerDialect) TypeName(c ColumnSpec) (string, error) {
	switch c.Kind {
	case Integer:
		if c.Size == yessql.Int64 {
			return "BIGINT", nil
		}
		return "INT", nil
	case String:
		if c.Length > 0 {
			return fmt.Sprintf("NVARCHAR(%d)", c.Length), nil
		}
		return "NVARCHAR(MAX)", nil
	case Bool:
		return "BIT", nil
	case DateTime:
		return "DATETIME2", nil
	case Decimal:
		if c.Precision > 0 {
			return fmt.Sprintf("DECIMAL(%d,%d)", c.Precision, c.Scale), nil
		}
		return "DECIMAL(19,5)", nil
	case Double:
		return "FLOAT", nil
	case Blob:
		return "VARBINARY(MAX)", nil
	}
	return "", fmt.Errorf("dialect/sql: sqlserver: unsupported column kind %d", c.Kind)
}

// IdentityColumnString returns the identity primary-key column type.
func (SQLServerDialect) IdentityColumnString(size yessql.IdentitySize) string {
	if size == yessql.Int64 {
		return "BIGINT IDENTITY(1,1) PRIMARY KEY"
	}
	return "INT IDENTITY(1,1) PRIMARY KEY"
}
