package schema

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/joeeisel/yessql"
	"github.com/joeeisel/yessql/dialect"
	"github.com/joeeisel/yessql/dialect/sql"
)

// Builder orchestrates the DDL shaping a document database schema:
// document tables, map-index tables, reduce-index tables with their
// bridge tables, foreign keys and lookup indexes.
//
// A Builder is bound to one connection+transaction pair for its lifetime
// and must not be shared across concurrent transactions. Statements of a
// composite operation execute strictly in sequence, one execution per
// statement; rollback on failure is the transaction owner's concern.
//
// Every operation returns the builder for chaining and applies the error
// policy fixed at construction. With throwOnError (the default) the first
// failure marks the builder failed, subsequent operations are skipped and
// Err returns the failure. Without it, failures are logged and discarded
// and the run continues, which makes repeated "ensure schema" runs
// idempotent: an already existing table is an acceptable outcome.
type Builder struct {
	conn         dialect.ExecQuerier
	d            sql.Dialect
	interp       Interpreter
	conv         Convention
	prefix       string
	size         yessql.IdentitySize
	throwOnError bool
	logger       *slog.Logger
	err          error
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithThrowOnError sets the error policy. True (the default) propagates
// the first failure through Err and aborts the run; false swallows
// failures and continues.
func WithThrowOnError(throw bool) BuilderOption {
	return func(b *Builder) { b.throwOnError = throw }
}

// WithConvention sets the table naming convention.
func WithConvention(conv Convention) BuilderOption {
	return func(b *Builder) { b.conv = conv }
}

// WithSQLDialect sets the quoting/paging dialect explicitly, overriding
// the one resolved from the configuration.
func WithSQLDialect(d sql.Dialect) BuilderOption {
	return func(b *Builder) { b.d = d }
}

// WithInterpreter sets the command interpreter, overriding the stock one.
func WithInterpreter(in Interpreter) BuilderOption {
	return func(b *Builder) { b.interp = in }
}

// NewBuilder returns a schema builder executing against conn, typically a
// transaction. The dialect is resolved from cfg.Dialect unless overridden
// by WithSQLDialect.
func NewBuilder(cfg *yessql.Config, conn dialect.ExecQuerier, opts ...BuilderOption) (*Builder, error) {
	b := &Builder{
		conn:         conn,
		conv:         DefaultConvention{},
		prefix:       cfg.TablePrefix,
		size:         cfg.IdentityColumnSize,
		throwOnError: true,
		logger:       cfg.Logger,
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.d == nil {
		d, err := sql.DialectFor(cfg.Dialect)
		if err != nil {
			return nil, err
		}
		b.d = d
	}
	if b.interp == nil {
		b.interp = NewInterpreter(b.d, cfg.Schema, cfg.IdentityColumnSize)
	}
	return b, nil
}

// Err returns the first failure recorded under the throw-on-error policy,
// or nil.
func (b *Builder) Err() error { return b.err }

// Dialect returns the quoting/paging dialect the builder targets.
func (b *Builder) Dialect() sql.Dialect { return b.d }

// prefixed applies the configured table prefix.
func (b *Builder) prefixed(name string) string { return b.prefix + name }

// run applies the error policy around one logical operation.
func (b *Builder) run(op string, fn func() error) *Builder {
	if b.err != nil {
		return b
	}
	if err := fn(); err != nil {
		if b.throwOnError {
			b.err = err
		} else {
			b.logger.Debug("schema operation failed, continuing", "op", op, "error", err)
		}
	}
	return b
}

// execute interprets and runs the commands of one logical operation, one
// execution per statement. Blank statements are skipped without touching
// the connection; every executed statement is logged first.
func (b *Builder) execute(ctx context.Context, op, object string, cmds ...Command) error {
	for _, cmd := range cmds {
		stmts, err := b.interp.CreateSql(cmd)
		if err != nil {
			return yessql.NewSchemaError(yessql.ErrInterpreter, op, cmd.Name(), err)
		}
		for _, stmt := range stmts {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			b.logger.Debug("executing", "op", op, "sql", stmt)
			if err := b.conn.Exec(ctx, stmt, []any{}, nil); err != nil {
				kind := yessql.ErrExecution
				if yessql.IsDuplicateObject(err) {
					kind = yessql.ErrDuplicateObject
				}
				return yessql.NewSchemaError(kind, op, object, err)
			}
		}
	}
	return nil
}

// CreateTable creates a table. The configure callback populates columns
// on the command before execution; the supplied name is prefixed.
func (b *Builder) CreateTable(ctx context.Context, name string, configure func(*CreateTableCommand)) *Builder {
	return b.run("CreateTable", func() error {
		cmd := NewCreateTableCommand(b.prefixed(name))
		if configure != nil {
			configure(cmd)
		}
		return b.execute(ctx, "CreateTable", cmd.Name(), cmd)
	})
}

// AlterTable alters a table through the command's capability surface.
func (b *Builder) AlterTable(ctx context.Context, name string, configure func(*AlterTableCommand)) *Builder {
	return b.run("AlterTable", func() error {
		cmd := NewAlterTableCommand(b.prefixed(name))
		if configure != nil {
			configure(cmd)
		}
		return b.execute(ctx, "AlterTable", cmd.Name(), cmd)
	})
}

// DropTable drops a table.
func (b *Builder) DropTable(ctx context.Context, name string) *Builder {
	return b.run("DropTable", func() error {
		cmd := NewDropTableCommand(b.prefixed(name))
		return b.execute(ctx, "DropTable", cmd.Name(), cmd)
	})
}

// CreateForeignKey creates a named foreign key. Table names are prefixed,
// the constraint name is used verbatim so it stays stable across runs.
func (b *Builder) CreateForeignKey(ctx context.Context, name, srcTable string, srcColumns []string, destTable string, destColumns []string) *Builder {
	return b.run("CreateForeignKey", func() error {
		cmd := NewCreateForeignKeyCommand(name, b.prefixed(srcTable), srcColumns, b.prefixed(destTable), destColumns)
		return b.execute(ctx, "CreateForeignKey", name, cmd)
	})
}

// DropForeignKey drops a named foreign key.
func (b *Builder) DropForeignKey(ctx context.Context, srcTable, name string) *Builder {
	return b.run("DropForeignKey", func() error {
		cmd := NewDropForeignKeyCommand(b.prefixed(srcTable), name)
		return b.execute(ctx, "DropForeignKey", name, cmd)
	})
}

// CreateSchema creates a database schema.
func (b *Builder) CreateSchema(ctx context.Context, schemaName string) *Builder {
	return b.run("CreateSchema", func() error {
		cmd := NewCreateSchemaCommand(schemaName)
		return b.execute(ctx, "CreateSchema", schemaName, cmd)
	})
}

// CreateDocumentTable creates the per-collection document table: identity
// Id, the document type discriminator, the serialized content and an
// optimistic concurrency version.
func (b *Builder) CreateDocumentTable(ctx context.Context, collection string) *Builder {
	return b.run("CreateDocumentTable", func() error {
		table := b.prefixed(b.conv.DocumentTable(collection))
		cmd := NewCreateTableCommand(table).
			Column("Id", sql.Integer, WithIdentity()).
			Column("Type", sql.String, WithLength(255), WithNotNull()).
			Column("Content", sql.String).
			Column("Version", sql.Integer, WithNotNull(), WithDefault("0"))
		return b.execute(ctx, "CreateDocumentTable", table, cmd)
	})
}

// DropDocumentTable drops the per-collection document table.
func (b *Builder) DropDocumentTable(ctx context.Context, collection string) *Builder {
	return b.run("DropDocumentTable", func() error {
		table := b.prefixed(b.conv.DocumentTable(collection))
		return b.execute(ctx, "DropDocumentTable", table, NewDropTableCommand(table))
	})
}

// CreateMapIndexTable creates the table backing a map index for the
// collection: identity Id, DocumentId plus caller-supplied extra columns,
// the foreign key from DocumentId to the document table, and a lookup
// index on DocumentId.
func (b *Builder) CreateMapIndexTable(ctx context.Context, indexType string, configure func(*CreateTableCommand), collection string) *Builder {
	const op = "CreateMapIndexTable"
	return b.run(op, func() error {
		indexName, docName, err := b.resolve(op, indexType, collection)
		if err != nil {
			return err
		}
		indexTable := b.prefixed(indexName)
		create := NewCreateTableCommand(indexTable).
			Column("Id", sql.Integer, WithIdentity()).
			Column("DocumentId", sql.Integer, WithSize(b.size))
		if configure != nil {
			configure(create)
		}
		fk := NewCreateForeignKeyCommand(
			"FK_"+collection+indexType,
			indexTable, []string{"DocumentId"},
			b.prefixed(docName), []string{"Id"},
		)
		index := NewAlterTableCommand(indexTable).
			CreateIndex("IDX_FK_"+indexName, "DocumentId")
		return b.execute(ctx, op, indexTable, create, fk, index)
	})
}

// DropMapIndexTable removes exactly the objects CreateMapIndexTable
// created. The foreign key is dropped explicitly first only when the
// dialect has no cascading constraint drop.
func (b *Builder) DropMapIndexTable(ctx context.Context, indexType, collection string) *Builder {
	const op = "DropMapIndexTable"
	return b.run(op, func() error {
		indexName, _, err := b.resolve(op, indexType, collection)
		if err != nil {
			return err
		}
		indexTable := b.prefixed(indexName)
		var cmds []Command
		if b.d.CascadeConstraintsString() == "" {
			cmds = append(cmds, NewDropForeignKeyCommand(indexTable, "FK_"+collection+indexType))
		}
		cmds = append(cmds, NewDropTableCommand(indexTable))
		return b.execute(ctx, op, indexTable, cmds...)
	})
}

// CreateReduceIndexTable creates the table backing a reduce index
// (identity Id plus caller-supplied grouping columns) together with its
// bridge table holding the two foreign keys to the index table and the
// document table, and a composite lookup index over both.
func (b *Builder) CreateReduceIndexTable(ctx context.Context, indexType string, configure func(*CreateTableCommand), collection string) *Builder {
	const op = "CreateReduceIndexTable"
	return b.run(op, func() error {
		indexName, docName, err := b.resolve(op, indexType, collection)
		if err != nil {
			return err
		}
		indexTable := b.prefixed(indexName)
		bridgeName := indexName + "_" + docName
		bridgeTable := b.prefixed(bridgeName)
		indexID := indexType + "Id"

		create := NewCreateTableCommand(indexTable).
			Column("Id", sql.Integer, WithIdentity())
		if configure != nil {
			configure(create)
		}
		bridge := NewCreateTableCommand(bridgeTable).
			Column(indexID, sql.Integer, WithSize(b.size), WithNotNull()).
			Column("DocumentId", sql.Integer, WithSize(b.size), WithNotNull())
		fkIndex := NewCreateForeignKeyCommand(
			"FK_"+bridgeName+"_Id",
			bridgeTable, []string{indexID},
			indexTable, []string{"Id"},
		)
		fkDoc := NewCreateForeignKeyCommand(
			"FK_"+bridgeName+"_DocumentId",
			bridgeTable, []string{"DocumentId"},
			b.prefixed(docName), []string{"Id"},
		)
		index := NewAlterTableCommand(bridgeTable).
			CreateIndex("IDX_FK_"+bridgeName, indexID, "DocumentId")
		return b.execute(ctx, op, indexTable, create, bridge, fkIndex, fkDoc, index)
	})
}

// DropReduceIndexTable removes the bridge table and the index table in
// reverse creation order, dropping the bridge foreign keys first when the
// dialect cannot cascade.
func (b *Builder) DropReduceIndexTable(ctx context.Context, indexType, collection string) *Builder {
	const op = "DropReduceIndexTable"
	return b.run(op, func() error {
		indexName, docName, err := b.resolve(op, indexType, collection)
		if err != nil {
			return err
		}
		indexTable := b.prefixed(indexName)
		bridgeName := indexName + "_" + docName
		bridgeTable := b.prefixed(bridgeName)

		var cmds []Command
		if b.d.CascadeConstraintsString() == "" {
			cmds = append(cmds,
				NewDropForeignKeyCommand(bridgeTable, "FK_"+bridgeName+"_Id"),
				NewDropForeignKeyCommand(bridgeTable, "FK_"+bridgeName+"_DocumentId"),
			)
		}
		cmds = append(cmds,
			NewDropTableCommand(bridgeTable),
			NewDropTableCommand(indexTable),
		)
		return b.execute(ctx, op, indexTable, cmds...)
	})
}

// AlterIndexTable resolves the index table name through the convention
// and delegates to AlterTable.
func (b *Builder) AlterIndexTable(ctx context.Context, indexType string, configure func(*AlterTableCommand), collection string) *Builder {
	const op = "AlterIndexTable"
	return b.run(op, func() error {
		indexName, _, err := b.resolve(op, indexType, collection)
		if err != nil {
			return err
		}
		cmd := NewAlterTableCommand(b.prefixed(indexName))
		if configure != nil {
			configure(cmd)
		}
		return b.execute(ctx, op, cmd.Name(), cmd)
	})
}

// resolve derives the unprefixed index and document table names through
// the convention.
func (b *Builder) resolve(op, indexType, collection string) (indexName, docName string, err error) {
	if indexType == "" {
		return "", "", yessql.NewSchemaError(yessql.ErrNameResolution, op, "", errors.New("empty index type"))
	}
	indexName = b.conv.IndexTable(indexType, collection)
	docName = b.conv.DocumentTable(collection)
	if indexName == "" || docName == "" {
		return "", "", yessql.NewSchemaError(yessql.ErrNameResolution, op, indexType, errors.New("convention produced empty table name"))
	}
	return indexName, docName, nil
}
