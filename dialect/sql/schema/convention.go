package schema

import "github.com/go-openapi/inflect"

// Convention maps a document collection and an index type name to the
// concrete (unprefixed) table names. Implementations must be pure: for
// fixed inputs the produced names are identical across invocations and
// process restarts, since schema evolution re-derives them on every run.
type Convention interface {
	// DocumentTable returns the document table name of the collection.
	// An empty collection addresses the default collection.
	DocumentTable(collection string) string
	// IndexTable returns the index table name of the index type within
	// the collection.
	IndexTable(indexType, collection string) string
}

// DefaultConvention is the stock naming scheme: Document, Blog_Document,
// Blog_TitleIndex.
type DefaultConvention struct{}

// DocumentTable returns "Document", collection-qualified when set.
func (DefaultConvention) DocumentTable(collection string) string {
	if collection == "" {
		return "Document"
	}
	return collection + "_Document"
}

// IndexTable returns the index type name, collection-qualified when set.
func (DefaultConvention) IndexTable(indexType, collection string) string {
	if collection == "" {
		return indexType
	}
	return collection + "_" + indexType
}

// SnakeCaseConvention derives lower snake_case names: document,
// blog_document, blog_title_index. Useful on engines where mixed-case
// identifiers force quoting everywhere.
type SnakeCaseConvention struct{}

// DocumentTable returns the snake_case document table name.
func (SnakeCaseConvention) DocumentTable(collection string) string {
	if collection == "" {
		return "document"
	}
	return inflect.Underscore(collection) + "_document"
}

// IndexTable returns the snake_case index table name.
func (SnakeCaseConvention) IndexTable(indexType, collection string) string {
	if collection == "" {
		return inflect.Underscore(indexType)
	}
	return inflect.Underscore(collection) + "_" + inflect.Underscore(indexType)
}
