package sql

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/joeeisel/yessql/dialect"
)

// ExecStats counts the statements a driver has executed. Migration code
// uses it to report how many DDL statements an ensure-schema run issued.
type ExecStats struct {
	// Execs is the number of executed statements.
	Execs atomic.Int64
	// Queries is the number of executed queries.
	Queries atomic.Int64
	// Errors is the number of failed operations.
	Errors atomic.Int64
}

// StatsDriver wraps a Driver with statement counting and debug logging
// through slog.
type StatsDriver struct {
	*Driver
	stats *ExecStats
	log   *slog.Logger
}

// NewStatsDriver wraps drv. A nil logger defaults to slog.Default.
func NewStatsDriver(drv *Driver, log *slog.Logger) *StatsDriver {
	if log == nil {
		log = slog.Default()
	}
	return &StatsDriver{Driver: drv, stats: &ExecStats{}, log: log}
}

// Stats returns the counters for reading.
func (d *StatsDriver) Stats() *ExecStats { return d.stats }

// Exec executes a statement, logging it and recording counters.
func (d *StatsDriver) Exec(ctx context.Context, query string, args, v any) error {
	d.log.Debug("exec", "sql", query)
	err := d.Driver.Exec(ctx, query, args, v)
	d.stats.Execs.Add(1)
	if err != nil {
		d.stats.Errors.Add(1)
	}
	return err
}

// Query executes a query, logging it and recording counters.
func (d *StatsDriver) Query(ctx context.Context, query string, args, v any) error {
	d.log.Debug("query", "sql", query)
	err := d.Driver.Query(ctx, query, args, v)
	d.stats.Queries.Add(1)
	if err != nil {
		d.stats.Errors.Add(1)
	}
	return err
}

// Tx starts a transaction whose statements are counted as well.
func (d *StatsDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsTx{Tx: tx, driver: d}, nil
}

// StatsTx wraps a transaction with the driver's counters.
type StatsTx struct {
	dialect.Tx
	driver *StatsDriver
}

// Exec executes a statement within the transaction.
func (tx *StatsTx) Exec(ctx context.Context, query string, args, v any) error {
	tx.driver.log.Debug("tx exec", "sql", query)
	err := tx.Tx.Exec(ctx, query, args, v)
	tx.driver.stats.Execs.Add(1)
	if err != nil {
		tx.driver.stats.Errors.Add(1)
	}
	return err
}

// Query executes a query within the transaction.
func (tx *StatsTx) Query(ctx context.Context, query string, args, v any) error {
	tx.driver.log.Debug("tx query", "sql", query)
	err := tx.Tx.Query(ctx, query, args, v)
	tx.driver.stats.Queries.Add(1)
	if err != nil {
		tx.driver.stats.Errors.Add(1)
	}
	return err
}

var (
	_ dialect.Driver = (*StatsDriver)(nil)
	_ dialect.Tx     = (*StatsTx)(nil)
)
