package yessql_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeeisel/yessql"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yessql.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
table_prefix: yx_
schema: app
identity_column_size: int64
dialect: postgres
`)
	cfg, err := yessql.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "yx_", cfg.TablePrefix)
	assert.Equal(t, "app", cfg.Schema)
	assert.Equal(t, yessql.Int64, cfg.IdentityColumnSize)
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.NotNil(t, cfg.Logger)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := yessql.LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.TablePrefix)
	assert.Equal(t, yessql.Int32, cfg.IdentityColumnSize)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
table_prefix: yx_
dialect: sqlite
`)
	t.Setenv("YESSQL_TABLE_PREFIX", "app_")
	t.Setenv("YESSQL_DIALECT", "mysql")
	t.Setenv("YESSQL_IDENTITY_SIZE", "64")

	cfg, err := yessql.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "app_", cfg.TablePrefix)
	assert.Equal(t, "mysql", cfg.Dialect)
	assert.Equal(t, yessql.Int64, cfg.IdentityColumnSize)
}

func TestLoadConfig_InvalidIdentitySize(t *testing.T) {
	path := writeConfig(t, "identity_column_size: int128\n")
	_, err := yessql.LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := yessql.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewConfig_Options(t *testing.T) {
	cfg := yessql.NewConfig(
		yessql.WithTablePrefix("yx_"),
		yessql.WithSchema("dbo"),
		yessql.WithIdentityColumnSize(yessql.Int64),
		yessql.WithDialect("sqlserver"),
	)
	assert.Equal(t, "yx_", cfg.TablePrefix)
	assert.Equal(t, "dbo", cfg.Schema)
	assert.Equal(t, yessql.Int64, cfg.IdentityColumnSize)
	assert.Equal(t, "sqlserver", cfg.Dialect)
	assert.NotNil(t, cfg.Logger)
}

func TestIdentitySize_String(t *testing.T) {
	assert.Equal(t, "int32", yessql.Int32.String())
	assert.Equal(t, "int64", yessql.Int64.String())
}
