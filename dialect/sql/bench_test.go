package sql

import (
	"testing"
)

func benchBuilder(d Dialect) *Builder {
	b := NewBuilder("yx_", d)
	b.Table("Blog_TitleIndex", "", "").
		Select().
		Selector("*").
		InnerJoin("Blog_Document", "Blog_Document", "Id", "Blog_TitleIndex", "DocumentId", "", "", "").
		WhereAnd(EQ("Title", "@title")).
		WhereAnd(GT("DocumentId", "@min")).
		OrderBy("Title").
		Parameter("title", "hello").
		Parameter("min", 10)
	return b
}

func BenchmarkBuilder_ToSqlString(b *testing.B) {
	for _, d := range []Dialect{SQLiteDialect{}, PostgresDialect{}, MySQLDialect{}, SQLServerDialect{}} {
		b.Run(d.Name(), func(b *testing.B) {
			builder := benchBuilder(d)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if builder.ToSqlString() == "" {
					b.Fatal("empty render")
				}
			}
		})
	}
}

func BenchmarkBuilder_ToSqlStringPaged(b *testing.B) {
	for _, d := range []Dialect{SQLiteDialect{}, SQLServerDialect{}} {
		b.Run(d.Name(), func(b *testing.B) {
			base := benchBuilder(d)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				builder := base.Clone().Skip("100").Take("25")
				if builder.ToSqlString() == "" {
					b.Fatal("empty render")
				}
			}
		})
	}
}

func BenchmarkBuilder_Clone(b *testing.B) {
	builder := benchBuilder(SQLiteDialect{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if builder.Clone() == nil {
			b.Fatal("nil clone")
		}
	}
}
