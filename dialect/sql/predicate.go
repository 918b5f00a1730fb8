package sql

import "strings"

// Fragment helpers producing where-clause text for Builder.WhereAnd,
// WhereOr and Having. Values are raw SQL expressions, typically named
// parameter placeholders bound through Builder.Parameter; the helpers
// never quote or escape values.

// EQ returns a "column = value" fragment.
func EQ(column, value string) string { return column + " = " + value }

// NEQ returns a "column <> value" fragment.
func NEQ(column, value string) string { return column + " <> " + value }

// GT returns a "column > value" fragment.
func GT(column, value string) string { return column + " > " + value }

// GTE returns a "column >= value" fragment.
func GTE(column, value string) string { return column + " >= " + value }

// LT returns a "column < value" fragment.
func LT(column, value string) string { return column + " < " + value }

// LTE returns a "column <= value" fragment.
func LTE(column, value string) string { return column + " <= " + value }

// In returns a "column IN (v1, v2, ...)" fragment. An empty value list
// yields a fragment that matches no rows.
func In(column string, values ...string) string {
	if len(values) == 0 {
		return "1 = 0"
	}
	return column + " IN (" + strings.Join(values, ", ") + ")"
}

// NotIn returns a "column NOT IN (v1, v2, ...)" fragment. An empty value
// list yields a fragment that matches all rows.
func NotIn(column string, values ...string) string {
	if len(values) == 0 {
		return "1 = 1"
	}
	return column + " NOT IN (" + strings.Join(values, ", ") + ")"
}

// IsNull returns a "column IS NULL" fragment.
func IsNull(column string) string { return column + " IS NULL" }

// NotNull returns a "column IS NOT NULL" fragment.
func NotNull(column string) string { return column + " IS NOT NULL" }

// Like returns a "column LIKE pattern" fragment.
func Like(column, pattern string) string { return column + " LIKE " + pattern }

// Between returns a "column BETWEEN low AND high" fragment.
func Between(column, low, high string) string {
	return column + " BETWEEN " + low + " AND " + high
}
