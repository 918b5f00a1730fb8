package sql

import (
	"bytes"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Builder is a mutable accumulator of SELECT-statement fragments plus a
// bound parameter map. Fragments are raw SQL text; the builder inserts
// connectives and renders the clauses in fixed order on demand.
//
// A Builder is not safe for concurrent mutation. Concurrent query
// variants must Clone before diverging; the clone owns independent copies
// of every fragment list and of the parameter map.
type Builder struct {
	d      Dialect
	prefix string

	clause   string
	distinct bool
	selects  []string
	froms    []string
	joins    []string
	wheres   []string
	groups   []string
	havings  []string
	orders   []string
	trails   []string
	skip     string
	count    string

	params map[string]any
}

// NewBuilder returns a Builder bound to the given table prefix and
// dialect. Both are shared by clones and never mutated.
func NewBuilder(prefix string, d Dialect) *Builder {
	return &Builder{
		d:      d,
		prefix: prefix,
		params: make(map[string]any),
	}
}

// Dialect returns the dialect the builder renders for.
func (b *Builder) Dialect() Dialect { return b.d }

// TablePrefix returns the configured table prefix.
func (b *Builder) TablePrefix() string { return b.prefix }

// Select marks the statement as a SELECT. ToSqlString yields an empty
// string until this has been called.
func (b *Builder) Select() *Builder {
	b.clause = "SELECT"
	return b
}

// Selector replaces the entire select list with the given fragment.
func (b *Builder) Selector(selector string) *Builder {
	b.selects = append(b.selects[:0], selector)
	return b
}

// AddSelector appends a fragment to the select list. Fragments are
// concatenated verbatim, so callers include their own separators.
func (b *Builder) AddSelector(selector string) *Builder {
	b.selects = append(b.selects, selector)
	return b
}

// InsertSelector prepends a fragment to the select list. Used by paging
// strategies that must alter the projection, e.g. TOP(n).
func (b *Builder) InsertSelector(selector string) *Builder {
	b.selects = append([]string{selector}, b.selects...)
	return b
}

// GetSelector returns the single select fragment directly if only one
// exists, else the concatenation of all fragments.
func (b *Builder) GetSelector() string {
	if len(b.selects) == 1 {
		return b.selects[0]
	}
	return strings.Join(b.selects, "")
}

// Distinct marks the statement as DISTINCT. When an order-by is present
// at render time the dialect may emit DISTINCT ON (first-order-expr)
// instead.
func (b *Builder) Distinct() *Builder {
	b.distinct = true
	return b
}

// Table resets the from-clause to a single prefixed, dialect-quoted table
// reference, optionally aliased.
func (b *Builder) Table(table, alias, schema string) *Builder {
	from := b.FormatTable(table, schema)
	if alias != "" {
		from += " AS " + b.d.QuoteForAliasName(alias)
	}
	b.froms = append(b.froms[:0], from)
	return b
}

// From appends a raw from fragment, used for subqueries and derived
// tables. Fragments are joined with ", ".
func (b *Builder) From(from string) *Builder {
	b.froms = append(b.froms, from)
	return b
}

// InnerJoin appends an inner-join fragment. Each side of the ON condition
// is referenced by its bare quoted alias when the supplied table name
// equals its alias, and by its prefixed, schema-qualified quoted name
// otherwise. This keeps repeated self-joins and already-aliased joins
// unambiguous.
func (b *Builder) InnerJoin(table, onTable, onColumn, toTable, toColumn, schema, alias, toAlias string) *Builder {
	side := func(name, as string) string {
		if as != "" && name == as {
			return b.d.QuoteForAliasName(as)
		}
		return b.d.QuoteForTableName(b.prefix+name, schema)
	}
	join := "INNER JOIN " + side(table, alias)
	if alias != "" && alias != table {
		join += " AS " + b.d.QuoteForAliasName(alias)
	}
	join += " ON " + side(onTable, alias) + "." + b.d.QuoteForColumnName(onColumn) +
		" = " + side(toTable, toAlias) + "." + b.d.QuoteForColumnName(toColumn)
	b.joins = append(b.joins, join)
	return b
}

// AndAlso appends a where fragment with an AND connective. No-op on blank
// input; the connective is inserted only when prior fragments exist.
func (b *Builder) AndAlso(where string) *Builder {
	return b.whereFragment("AND", where)
}

// WhereAnd appends a where fragment with an AND connective.
func (b *Builder) WhereAnd(where string) *Builder {
	return b.whereFragment("AND", where)
}

// WhereOr appends a where fragment with an OR connective.
func (b *Builder) WhereOr(where string) *Builder {
	return b.whereFragment("OR", where)
}

func (b *Builder) whereFragment(op, where string) *Builder {
	if strings.TrimSpace(where) == "" {
		return b
	}
	if len(b.wheres) > 0 {
		where = " " + op + " " + where
	}
	b.wheres = append(b.wheres, where)
	return b
}

// GroupBy appends a group-by fragment. Fragments are concatenated
// verbatim, so callers include their own separators.
func (b *Builder) GroupBy(group string) *Builder {
	b.groups = append(b.groups, group)
	return b
}

// ClearGroupBy removes all group-by fragments.
func (b *Builder) ClearGroupBy() *Builder {
	b.groups = b.groups[:0]
	return b
}

// Having appends a having fragment. Fragments are concatenated verbatim.
func (b *Builder) Having(having string) *Builder {
	b.havings = append(b.havings, having)
	return b
}

// OrderBy replaces the order list with the given expression.
func (b *Builder) OrderBy(order string) *Builder {
	b.orders = append(b.orders[:0], order)
	return b
}

// OrderByDescending replaces the order list with a descending order.
func (b *Builder) OrderByDescending(order string) *Builder {
	b.orders = append(b.orders[:0], order+" DESC")
	return b
}

// OrderByRandom replaces the order list with the dialect's random
// ordering expression.
func (b *Builder) OrderByRandom() *Builder {
	b.orders = append(b.orders[:0], b.d.RandomOrderByClause())
	return b
}

// ThenOrderBy appends an order expression, separated with ", " only when
// an order already exists.
func (b *Builder) ThenOrderBy(order string) *Builder {
	return b.thenOrder(order)
}

// ThenOrderByDescending appends a descending order expression.
func (b *Builder) ThenOrderByDescending(order string) *Builder {
	return b.thenOrder(order + " DESC")
}

// ThenOrderByRandom appends the dialect's random ordering expression.
func (b *Builder) ThenOrderByRandom() *Builder {
	return b.thenOrder(b.d.RandomOrderByClause())
}

func (b *Builder) thenOrder(order string) *Builder {
	if len(b.orders) > 0 {
		order = ", " + order
	}
	b.orders = append(b.orders, order)
	return b
}

// ClearOrder removes all order fragments.
func (b *Builder) ClearOrder() *Builder {
	b.orders = b.orders[:0]
	return b
}

// HasOrder reports whether any order fragment is set. Paging strategies
// that require an ORDER BY consult this.
func (b *Builder) HasOrder() bool { return len(b.orders) > 0 }

// Trail appends a raw fragment emitted after the ORDER BY clause.
// Fragments are joined with a single space.
func (b *Builder) Trail(trail string) *Builder {
	b.trails = append(b.trails, trail)
	return b
}

// ClearTrail removes all trailing fragments.
func (b *Builder) ClearTrail() *Builder {
	b.trails = b.trails[:0]
	return b
}

// Skip stores the raw lower paging bound. String-encoded so the value may
// be a parameter placeholder.
func (b *Builder) Skip(skip string) *Builder {
	b.skip = skip
	return b
}

// Take stores the raw row-count paging bound.
func (b *Builder) Take(count string) *Builder {
	b.count = count
	return b
}

// HasPaging reports whether either paging bound is set.
func (b *Builder) HasPaging() bool { return b.skip != "" || b.count != "" }

// Parameter binds a value under the given name. The parameter map is
// handed verbatim to the query executor alongside the rendered SQL.
func (b *Builder) Parameter(name string, value any) *Builder {
	b.params[name] = value
	return b
}

// Parameters returns the bound parameter map.
func (b *Builder) Parameters() map[string]any { return b.params }

// FormatColumn returns a quoted table-qualified column reference. The
// table is prefixed and dialect-quoted, or treated as a bare alias when
// isAlias is set. A * column is never quoted.
func (b *Builder) FormatColumn(table, column, schema string, isAlias bool) string {
	ref := ""
	if isAlias {
		ref = b.d.QuoteForAliasName(table)
	} else {
		ref = b.d.QuoteForTableName(b.prefix+table, schema)
	}
	if column != "*" {
		column = b.d.QuoteForColumnName(column)
	}
	return ref + "." + column
}

// FormatTable returns the prefixed, dialect-quoted table reference.
func (b *Builder) FormatTable(table, schema string) string {
	return b.d.QuoteForTableName(b.prefix+table, schema)
}

// Clone produces an independent copy of the builder: every fragment list
// and the parameter map are deep-copied, the dialect and table prefix are
// shared. Mutating the clone never affects the original.
func (b *Builder) Clone() *Builder {
	return &Builder{
		d:        b.d,
		prefix:   b.prefix,
		clause:   b.clause,
		distinct: b.distinct,
		selects:  slices.Clone(b.selects),
		froms:    slices.Clone(b.froms),
		joins:    slices.Clone(b.joins),
		wheres:   slices.Clone(b.wheres),
		groups:   slices.Clone(b.groups),
		havings:  slices.Clone(b.havings),
		orders:   slices.Clone(b.orders),
		trails:   slices.Clone(b.trails),
		skip:     b.skip,
		count:    b.count,
		params:   maps.Clone(b.params),
	}
}

// bufPool reuses statement buffers across renders. Rendered statements
// for wide documents easily exceed a kilobyte.
var bufPool = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, 1024)) },
}

// ToSqlString renders the accumulated state. Clauses are emitted in fixed
// order regardless of the order calls populated them; unset clauses are
// omitted. Returns an empty string until Select has been called.
//
// Paging is injected through the dialect before the select list is
// emitted, because some paging idioms must alter the projection itself.
func (b *Builder) ToSqlString() string {
	if b.clause != "SELECT" {
		return ""
	}
	if b.HasPaging() {
		skip, count := b.skip, b.count
		b.skip, b.count = "", ""
		b.d.Page(b, skip, count)
	}

	buf := bufPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufPool.Put(buf)
	}()

	buf.WriteString("SELECT ")
	if b.distinct {
		if len(b.orders) > 0 {
			buf.WriteString(b.d.DistinctOn(b.orders[0]))
		} else {
			buf.WriteString("DISTINCT")
		}
		buf.WriteByte(' ')
	}
	for _, s := range b.selects {
		buf.WriteString(s)
	}
	if len(b.froms) > 0 {
		buf.WriteString(" FROM ")
		for i, f := range b.froms {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(f)
		}
	}
	for _, j := range b.joins {
		buf.WriteByte(' ')
		buf.WriteString(j)
	}
	if len(b.wheres) > 0 {
		buf.WriteString(" WHERE ")
		for _, w := range b.wheres {
			buf.WriteString(w)
		}
	}
	if len(b.groups) > 0 {
		buf.WriteString(" GROUP BY ")
		for _, g := range b.groups {
			buf.WriteString(g)
		}
	}
	if len(b.havings) > 0 {
		buf.WriteString(" HAVING ")
		for _, h := range b.havings {
			buf.WriteString(h)
		}
	}
	if len(b.orders) > 0 {
		buf.WriteString(" ORDER BY ")
		for _, o := range b.orders {
			buf.WriteString(o)
		}
	}
	for _, t := range b.trails {
		buf.WriteByte(' ')
		buf.WriteString(t)
	}
	return buf.String()
}
