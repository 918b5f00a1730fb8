package schema

import (
	"github.com/joeeisel/yessql"
	"github.com/joeeisel/yessql/dialect/sql"
)

// Command is an abstract DDL command. The interpreter translates a
// command into one or more literal SQL statements for the active dialect.
// Commands carry final (already prefixed) table names.
type Command interface {
	// Name returns the primary object name the command operates on.
	Name() string
}

// ColumnCommand describes one column of a create- or alter-table command.
// Identity implies primary key.
type ColumnCommand struct {
	Name     string
	Spec     sql.ColumnSpec
	Identity bool
	NotNull  bool
	Default  string // Raw default expression; empty means none.
}

// ColumnOption configures a ColumnCommand.
type ColumnOption func(*ColumnCommand)

// WithLength sets the length of a string column.
func WithLength(n int) ColumnOption {
	return func(c *ColumnCommand) { c.Spec.Length = n }
}

// WithPrecision sets precision and scale of a decimal column.
func WithPrecision(precision, scale int) ColumnOption {
	return func(c *ColumnCommand) {
		c.Spec.Precision = precision
		c.Spec.Scale = scale
	}
}

// WithSize sets the width of an integer column.
func WithSize(size yessql.IdentitySize) ColumnOption {
	return func(c *ColumnCommand) { c.Spec.Size = size }
}

// WithIdentity marks the column as the identity primary key.
func WithIdentity() ColumnOption {
	return func(c *ColumnCommand) { c.Identity = true }
}

// WithNotNull marks the column NOT NULL.
func WithNotNull() ColumnOption {
	return func(c *ColumnCommand) { c.NotNull = true }
}

// WithDefault sets the raw default expression of the column.
func WithDefault(expr string) ColumnOption {
	return func(c *ColumnCommand) { c.Default = expr }
}

// CreateTableCommand builds a new table.
type CreateTableCommand struct {
	name    string
	Columns []*ColumnCommand
}

// NewCreateTableCommand returns a create-table command for the given
// final table name.
func NewCreateTableCommand(name string) *CreateTableCommand {
	return &CreateTableCommand{name: name}
}

// Name returns the table name.
func (c *CreateTableCommand) Name() string { return c.name }

// Column appends a column definition. Returns the command for chaining.
func (c *CreateTableCommand) Column(name string, kind sql.ColumnKind, opts ...ColumnOption) *CreateTableCommand {
	col := &ColumnCommand{Name: name, Spec: sql.ColumnSpec{Kind: kind}}
	for _, opt := range opts {
		opt(col)
	}
	c.Columns = append(c.Columns, col)
	return c
}

// alterKind discriminates the operations of an AlterTableCommand.
type alterKind int

const (
	addColumn alterKind = iota
	dropColumn
	createIndex
	dropIndex
	addDefault
)

// alterOp is one operation of an alter-table command. Each op renders to
// its own statement.
type alterOp struct {
	kind    alterKind
	column  *ColumnCommand
	index   string
	columns []string
	expr    string
}

// AlterTableCommand mutates an existing table: add or drop columns,
// create or drop indexes, add defaults. Operations render to separate
// sequential statements in the order they were added.
type AlterTableCommand struct {
	name string
	ops  []alterOp
}

// NewAlterTableCommand returns an alter-table command for the given final
// table name.
func NewAlterTableCommand(name string) *AlterTableCommand {
	return &AlterTableCommand{name: name}
}

// Name returns the table name.
func (c *AlterTableCommand) Name() string { return c.name }

// AddColumn appends an add-column operation.
func (c *AlterTableCommand) AddColumn(name string, kind sql.ColumnKind, opts ...ColumnOption) *AlterTableCommand {
	col := &ColumnCommand{Name: name, Spec: sql.ColumnSpec{Kind: kind}}
	for _, opt := range opts {
		opt(col)
	}
	c.ops = append(c.ops, alterOp{kind: addColumn, column: col})
	return c
}

// DropColumn appends a drop-column operation.
func (c *AlterTableCommand) DropColumn(name string) *AlterTableCommand {
	c.ops = append(c.ops, alterOp{kind: dropColumn, column: &ColumnCommand{Name: name}})
	return c
}

// CreateIndex appends a create-index operation over the given columns.
func (c *AlterTableCommand) CreateIndex(name string, columns ...string) *AlterTableCommand {
	c.ops = append(c.ops, alterOp{kind: createIndex, index: name, columns: columns})
	return c
}

// DropIndex appends a drop-index operation.
func (c *AlterTableCommand) DropIndex(name string) *AlterTableCommand {
	c.ops = append(c.ops, alterOp{kind: dropIndex, index: name})
	return c
}

// AddDefault appends an operation setting the default expression of an
// existing column.
func (c *AlterTableCommand) AddDefault(column, expr string) *AlterTableCommand {
	c.ops = append(c.ops, alterOp{kind: addDefault, column: &ColumnCommand{Name: column}, expr: expr})
	return c
}

// DropTableCommand drops a table.
type DropTableCommand struct {
	name string
}

// NewDropTableCommand returns a drop-table command.
func NewDropTableCommand(name string) *DropTableCommand {
	return &DropTableCommand{name: name}
}

// Name returns the table name.
func (c *DropTableCommand) Name() string { return c.name }

// CreateForeignKeyCommand creates a named foreign-key constraint binding
// an ordered list of source columns to an ordered list of destination
// columns.
type CreateForeignKeyCommand struct {
	name        string
	SrcTable    string
	SrcColumns  []string
	DestTable   string
	DestColumns []string
}

// NewCreateForeignKeyCommand returns a create-foreign-key command.
func NewCreateForeignKeyCommand(name, srcTable string, srcColumns []string, destTable string, destColumns []string) *CreateForeignKeyCommand {
	return &CreateForeignKeyCommand{
		name:        name,
		SrcTable:    srcTable,
		SrcColumns:  srcColumns,
		DestTable:   destTable,
		DestColumns: destColumns,
	}
}

// Name returns the constraint name.
func (c *CreateForeignKeyCommand) Name() string { return c.name }

// DropForeignKeyCommand drops a named foreign-key constraint from a
// table.
type DropForeignKeyCommand struct {
	name     string
	SrcTable string
}

// NewDropForeignKeyCommand returns a drop-foreign-key command.
func NewDropForeignKeyCommand(srcTable, name string) *DropForeignKeyCommand {
	return &DropForeignKeyCommand{name: name, SrcTable: srcTable}
}

// Name returns the constraint name.
func (c *DropForeignKeyCommand) Name() string { return c.name }

// CreateSchemaCommand creates a database schema.
type CreateSchemaCommand struct {
	name string
}

// NewCreateSchemaCommand returns a create-schema command.
func NewCreateSchemaCommand(name string) *CreateSchemaCommand {
	return &CreateSchemaCommand{name: name}
}

// Name returns the schema name.
func (c *CreateSchemaCommand) Name() string { return c.name }
