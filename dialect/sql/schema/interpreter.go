package schema

import (
	"fmt"
	"strings"

	"github.com/joeeisel/yessql"
	"github.com/joeeisel/yessql/dialect"
	"github.com/joeeisel/yessql/dialect/sql"
)

// Interpreter translates an abstract DDL command into the ordered
// sequence of literal SQL statements realizing it on the active dialect.
// Implementations are pure functions of (command, dialect); an empty
// sequence means the command is a no-op on that engine.
type Interpreter interface {
	CreateSql(cmd Command) ([]string, error)
}

// interpreter is the stock Interpreter, parameterized by dialect, target
// schema and identity column width.
type interpreter struct {
	d      sql.Dialect
	schema string
	size   yessql.IdentitySize
}

// NewInterpreter returns an Interpreter for the given dialect. Tables are
// qualified with schema when non-empty; identity columns use size.
func NewInterpreter(d sql.Dialect, schema string, size yessql.IdentitySize) Interpreter {
	return &interpreter{d: d, schema: schema, size: size}
}

// CreateSql translates the command.
func (in *interpreter) CreateSql(cmd Command) ([]string, error) {
	switch c := cmd.(type) {
	case *CreateTableCommand:
		return in.createTable(c)
	case *AlterTableCommand:
		return in.alterTable(c)
	case *DropTableCommand:
		return []string{"DROP TABLE " + in.table(c.Name()) + in.d.CascadeConstraintsString()}, nil
	case *CreateForeignKeyCommand:
		return in.createForeignKey(c)
	case *DropForeignKeyCommand:
		return in.dropForeignKey(c)
	case *CreateSchemaCommand:
		if in.d.Name() == dialect.SQLite {
			// SQLite has no schemas; creating one is a no-op.
			return nil, nil
		}
		return []string{"CREATE SCHEMA " + in.d.QuoteForTableName(c.Name(), "")}, nil
	}
	return nil, fmt.Errorf("schema: unknown command type %T", cmd)
}

func (in *interpreter) table(name string) string {
	return in.d.QuoteForTableName(name, in.schema)
}

// columnText renders one column definition.
func (in *interpreter) columnText(col *ColumnCommand) (string, error) {
	var sb strings.Builder
	sb.WriteString(in.d.QuoteForColumnName(col.Name))
	sb.WriteByte(' ')
	if col.Identity {
		sb.WriteString(in.d.IdentityColumnString(in.size))
		return sb.String(), nil
	}
	spec := col.Spec
	if spec.Kind == sql.Integer && spec.Size == 0 {
		spec.Size = in.size
	}
	typ, err := in.d.TypeName(spec)
	if err != nil {
		return "", err
	}
	sb.WriteString(typ)
	if col.NotNull {
		sb.WriteString(" NOT NULL")
	}
	if col.Default != "" {
		sb.WriteString(" DEFAULT " + col.Default)
	}
	return sb.String(), nil
}

func (in *interpreter) createTable(c *CreateTableCommand) ([]string, error) {
	cols := make([]string, 0, len(c.Columns))
	for _, col := range c.Columns {
		text, err := in.columnText(col)
		if err != nil {
			return nil, err
		}
		cols = append(cols, text)
	}
	return []string{"CREATE TABLE " + in.table(c.Name()) + " (" + strings.Join(cols, ", ") + ")"}, nil
}

func (in *interpreter) alterTable(c *AlterTableCommand) ([]string, error) {
	table := in.table(c.Name())
	stmts := make([]string, 0, len(c.ops))
	for _, op := range c.ops {
		switch op.kind {
		case addColumn:
			text, err := in.columnText(op.column)
			if err != nil {
				return nil, err
			}
			kw := " ADD COLUMN "
			if in.d.Name() == dialect.SQLServer {
				kw = " ADD "
			}
			stmts = append(stmts, "ALTER TABLE "+table+kw+text)
		case dropColumn:
			stmts = append(stmts, "ALTER TABLE "+table+" DROP COLUMN "+in.d.QuoteForColumnName(op.column.Name))
		case createIndex:
			cols := make([]string, len(op.columns))
			for i, col := range op.columns {
				cols[i] = in.d.QuoteForColumnName(col)
			}
			stmts = append(stmts, "CREATE INDEX "+in.d.FormatKeyName(op.index)+" ON "+table+" ("+strings.Join(cols, ", ")+")")
		case dropIndex:
			switch in.d.Name() {
			case dialect.MySQL, dialect.SQLServer:
				stmts = append(stmts, "DROP INDEX "+in.d.FormatKeyName(op.index)+" ON "+table)
			default:
				stmts = append(stmts, "DROP INDEX "+in.d.FormatKeyName(op.index))
			}
		case addDefault:
			col := in.d.QuoteForColumnName(op.column.Name)
			switch in.d.Name() {
			case dialect.SQLite:
				return nil, fmt.Errorf("schema: sqlite cannot alter column defaults")
			case dialect.SQLServer:
				df := in.d.FormatKeyName("DF_" + c.Name() + "_" + op.column.Name)
				stmts = append(stmts, "ALTER TABLE "+table+" ADD CONSTRAINT "+df+" DEFAULT "+op.expr+" FOR "+col)
			default:
				stmts = append(stmts, "ALTER TABLE "+table+" ALTER COLUMN "+col+" SET DEFAULT "+op.expr)
			}
		}
	}
	return stmts, nil
}

func (in *interpreter) createForeignKey(c *CreateForeignKeyCommand) ([]string, error) {
	if in.d.Name() == dialect.SQLite {
		// SQLite cannot add constraints to existing tables; foreign keys
		// are skipped rather than failing the whole operation.
		return nil, nil
	}
	src := make([]string, len(c.SrcColumns))
	for i, col := range c.SrcColumns {
		src[i] = in.d.QuoteForColumnName(col)
	}
	dest := make([]string, len(c.DestColumns))
	for i, col := range c.DestColumns {
		dest[i] = in.d.QuoteForColumnName(col)
	}
	return []string{
		"ALTER TABLE " + in.table(c.SrcTable) +
			" ADD CONSTRAINT " + in.d.FormatKeyName(c.Name()) +
			" FOREIGN KEY (" + strings.Join(src, ", ") + ")" +
			" REFERENCES " + in.table(c.DestTable) + " (" + strings.Join(dest, ", ") + ")",
	}, nil
}

func (in *interpreter) dropForeignKey(c *DropForeignKeyCommand) ([]string, error) {
	switch in.d.Name() {
	case dialect.SQLite:
		return nil, nil
	case dialect.MySQL:
		return []string{"ALTER TABLE " + in.table(c.SrcTable) + " DROP FOREIGN KEY " + in.d.FormatKeyName(c.Name())}, nil
	default:
		return []string{"ALTER TABLE " + in.table(c.SrcTable) + " DROP CONSTRAINT " + in.d.FormatKeyName(c.Name())}, nil
	}
}
