// Package sql provides SQL statement building and database dialect rules.
//
// This package is the foundation for generating SELECT statements across
// different database systems (SQLite, PostgreSQL, MySQL, SQL Server). It
// provides a mutable fluent builder that accumulates clause fragments and
// renders them dialect-correctly on demand.
//
// # Builder
//
// Builder collects raw SQL fragments per clause and renders them in fixed
// order, omitting unset clauses:
//
//	b := sql.NewBuilder("yx_", sql.SQLServerDialect{})
//	b.Table("Document", "", "").
//	    Select().
//	    Selector("*").
//	    AndAlso("Type = 'Blog'")
//	b.ToSqlString() // SELECT * FROM [yx_Document] WHERE Type = 'Blog'
//
// Rendering yields an empty string until Select has been called, so
// callers check for emptiness instead of handling errors.
//
// # Dialects
//
// The Dialect interface supplies identifier quoting, key-name formatting,
// paging injection, random ordering, cascading-drop support and DDL type
// names. One concrete dialect is bound per builder:
//
//	import "github.com/joeeisel/yessql/dialect"
//
//	d, err := sql.DialectFor(dialect.Postgres)
//
// Paging has no fixed syntax in the builder itself. Skip and Take store
// raw bounds; at render time the dialect mutates the builder into its own
// idiom: LIMIT/OFFSET, OFFSET/FETCH or a TOP(n) injected into the select
// list.
//
// # Cloning
//
// A Builder is not safe for concurrent mutation. To branch a base query,
// Clone it; the clone deep-copies every fragment list and the parameter
// map:
//
//	base := sql.NewBuilder("yx_", d)
//	base.Table("Blog_TitleIndex", "", "").Select().Selector("DocumentId")
//	byTitle := base.Clone().WhereAnd("Title = @title")
//
// # Drivers
//
// The package also wraps database/sql connections into the
// dialect.Driver contract (Open, OpenDB) and offers StatsDriver, a
// decorator counting executed statements and logging them through slog.
package sql
