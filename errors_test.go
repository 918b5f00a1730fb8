package yessql_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeeisel/yessql"
)

func TestSchemaError(t *testing.T) {
	cause := errors.New("connection refused")
	err := yessql.NewSchemaError(yessql.ErrExecution, "CreateMapIndexTable", "yx_Blog_TitleIndex", cause)

	assert.Equal(t, `yessql: CreateMapIndexTable "yx_Blog_TitleIndex": connection refused`, err.Error())
	assert.ErrorIs(t, err, yessql.ErrExecution)
	assert.NotErrorIs(t, err, yessql.ErrDuplicateObject)
	assert.ErrorIs(t, err, cause)

	var serr *yessql.SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "CreateMapIndexTable", serr.Op)
	assert.Equal(t, "yx_Blog_TitleIndex", serr.Object)
}

func TestSchemaError_NoObject(t *testing.T) {
	err := yessql.NewSchemaError(yessql.ErrNameResolution, "CreateMapIndexTable", "", errors.New("empty index type"))
	assert.Equal(t, "yessql: CreateMapIndexTable: empty index type", err.Error())
	assert.ErrorIs(t, err, yessql.ErrNameResolution)
}

func TestIsSchemaError(t *testing.T) {
	err := yessql.NewSchemaError(yessql.ErrExecution, "DropTable", "yx_Document", errors.New("boom"))
	assert.True(t, yessql.IsSchemaError(err))
	assert.True(t, yessql.IsSchemaError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, yessql.IsSchemaError(errors.New("boom")))
	assert.False(t, yessql.IsSchemaError(nil))
}

func TestIsDuplicateObject(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"sentinel", yessql.ErrDuplicateObject, true},
		{"classified_schema_error", yessql.NewSchemaError(yessql.ErrDuplicateObject, "CreateTable", "yx_Document", errors.New("exists")), true},
		{"pq_duplicate_table", &pq.Error{Code: "42P07"}, true},
		{"pq_duplicate_object", &pq.Error{Code: "42710"}, true},
		{"pq_unrelated", &pq.Error{Code: "42601"}, false},
		{"mysql_table_exists", &mysql.MySQLError{Number: 1050}, true},
		{"mysql_dup_keyname", &mysql.MySQLError{Number: 1061}, true},
		{"mysql_unrelated", &mysql.MySQLError{Number: 1064}, false},
		{"wrapped_driver_error", fmt.Errorf("dialect/sql: exec: %w", &mysql.MySQLError{Number: 1050}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, yessql.IsDuplicateObject(tt.err))
		})
	}
}
