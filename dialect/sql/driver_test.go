package sql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeeisel/yessql/dialect"
)

func TestDriver_Dialect(t *testing.T) {
	tests := []struct {
		driverName string
		want       string
	}{
		{dialect.MySQL, dialect.MySQL},
		{dialect.SQLite, dialect.SQLite},
		{dialect.Postgres, dialect.Postgres},
		{dialect.SQLServer, dialect.SQLServer},
		// Instrumented driver names keep their base dialect.
		{"mysql-otel", dialect.MySQL},
		{"sqlite-otel", dialect.SQLite},
		{"sqlserver-otel", dialect.SQLServer},
	}
	for _, tt := range tests {
		t.Run(tt.driverName, func(t *testing.T) {
			db, _, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			assert.Equal(t, tt.want, OpenDB(tt.driverName, db).Dialect())
		})
	}
}

func TestDriver_Exec(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	drv := OpenDB(dialect.SQLite, db)

	mock.ExpectExec("DELETE FROM \"yx_Document\"").WillReturnResult(sqlmock.NewResult(0, 3))
	require.NoError(t, drv.Exec(context.Background(), "DELETE FROM \"yx_Document\"", []any{}, nil))

	mock.ExpectExec("DELETE FROM \"yx_Document\"").WillReturnResult(sqlmock.NewResult(0, 3))
	var res Result
	require.NoError(t, drv.Exec(context.Background(), "DELETE FROM \"yx_Document\"", []any{}, &res))
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.EqualValues(t, 3, affected)

	err = drv.Exec(context.Background(), "DELETE FROM \"yx_Document\"", "not-a-slice", nil)
	assert.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriver_Query(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	drv := OpenDB(dialect.SQLite, db)

	mock.ExpectQuery("SELECT \"Id\" FROM \"yx_Document\"").
		WillReturnRows(sqlmock.NewRows([]string{"Id"}).AddRow(1).AddRow(2))

	var rows Rows
	require.NoError(t, drv.Query(context.Background(), "SELECT \"Id\" FROM \"yx_Document\"", []any{}, &rows))
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []int64{1, 2}, ids)

	err = drv.Query(context.Background(), "SELECT 1", []any{}, nil)
	assert.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriver_Tx(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	drv := OpenDB(dialect.SQLite, db)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE \"t\" (\"Id\" INTEGER)").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Exec(context.Background(), "CREATE TABLE \"t\" (\"Id\" INTEGER)", []any{}, nil))
	require.NoError(t, tx.Commit())

	mock.ExpectBegin()
	mock.ExpectRollback()
	tx, err = drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsDriver_Counters(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	drv := NewStatsDriver(OpenDB(dialect.SQLite, db), nil)

	mock.ExpectExec("CREATE TABLE \"t\" (\"Id\" INTEGER)").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	require.NoError(t, drv.Exec(context.Background(), "CREATE TABLE \"t\" (\"Id\" INTEGER)", []any{}, nil))
	var rows Rows
	require.NoError(t, drv.Query(context.Background(), "SELECT 1", []any{}, &rows))
	rows.Close()
	require.Error(t, drv.Exec(context.Background(), "DROP TABLE \"missing\"", []any{}, nil))

	assert.EqualValues(t, 2, drv.Stats().Execs.Load())
	assert.EqualValues(t, 1, drv.Stats().Queries.Load())
	assert.EqualValues(t, 1, drv.Stats().Errors.Load())
}

func TestStatsDriver_TxCounters(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	drv := NewStatsDriver(OpenDB(dialect.SQLite, db), nil)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE \"t\" (\"Id\" INTEGER)").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Exec(context.Background(), "CREATE TABLE \"t\" (\"Id\" INTEGER)", []any{}, nil))
	require.NoError(t, tx.Commit())

	assert.EqualValues(t, 1, drv.Stats().Execs.Load())
	require.NoError(t, mock.ExpectationsWereMet())
}
