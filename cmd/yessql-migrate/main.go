// Command yessql-migrate runs an ensure-schema pass against a SQLite
// database: it creates the document table of a sample collection, a map
// index table and a reduce index table, tolerating objects that already
// exist so repeated runs converge on the same schema.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/joeeisel/yessql"
	"github.com/joeeisel/yessql/dialect"
	"github.com/joeeisel/yessql/dialect/sql"
	"github.com/joeeisel/yessql/dialect/sql/schema"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a yessql YAML configuration file")
		dsn        = flag.String("dsn", "file:yessql.db", "SQLite data source name")
		collection = flag.String("collection", "Blog", "sample collection to ensure")
		verbose    = flag.Bool("v", false, "log every executed statement")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(context.Background(), *configPath, *dsn, *collection, logger); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, dsn, collection string, logger *slog.Logger) error {
	cfg, err := yessql.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.Dialect == "" {
		cfg.Dialect = dialect.SQLite
	}
	cfg.Logger = logger

	drv, err := sql.Open(dialect.SQLite, dsn)
	if err != nil {
		return err
	}
	defer drv.Close()
	stats := sql.NewStatsDriver(drv, logger)

	// Each run gets its own id so interleaved runs are separable in logs.
	logger = logger.With("run", uuid.NewString())
	logger.Info("ensuring schema", "collection", collection, "prefix", cfg.TablePrefix)

	tx, err := stats.Tx(ctx)
	if err != nil {
		return err
	}
	b, err := schema.NewBuilder(cfg, tx, schema.WithThrowOnError(false))
	if err != nil {
		return fmt.Errorf("yessql-migrate: %w", err)
	}
	b.CreateDocumentTable(ctx, collection).
		CreateMapIndexTable(ctx, "TitleIndex", func(t *schema.CreateTableCommand) {
			t.Column("Title", sql.String, schema.WithLength(255))
		}, collection).
		CreateReduceIndexTable(ctx, "CountIndex", func(t *schema.CreateTableCommand) {
			t.Column("Count", sql.Integer)
		}, "")
	if err := b.Err(); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Warn("rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Info("schema ensured",
		"statements", stats.Stats().Execs.Load(),
		"errors", stats.Stats().Errors.Load(),
	)
	return nil
}
