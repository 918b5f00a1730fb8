package yessql

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk representation of a Config.
type fileConfig struct {
	TablePrefix        string `yaml:"table_prefix"`
	Schema             string `yaml:"schema"`
	IdentityColumnSize string `yaml:"identity_column_size"`
	Dialect            string `yaml:"dialect"`
}

// Environment variables overriding the file values. A .env file in the
// working directory is loaded first when present.
const (
	envTablePrefix  = "YESSQL_TABLE_PREFIX"
	envSchema       = "YESSQL_SCHEMA"
	envIdentitySize = "YESSQL_IDENTITY_SIZE"
	envDialect      = "YESSQL_DIALECT"
)

// LoadConfig reads a YAML configuration file and applies environment
// overrides. The path may be empty, in which case only the environment is
// consulted.
func LoadConfig(path string) (*Config, error) {
	// Missing .env files are not an error.
	_ = godotenv.Load()

	fc := fileConfig{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("yessql: read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("yessql: parse config: %w", err)
		}
	}
	if v := os.Getenv(envTablePrefix); v != "" {
		fc.TablePrefix = v
	}
	if v := os.Getenv(envSchema); v != "" {
		fc.Schema = v
	}
	if v := os.Getenv(envIdentitySize); v != "" {
		fc.IdentityColumnSize = v
	}
	if v := os.Getenv(envDialect); v != "" {
		fc.Dialect = v
	}

	size := Int32
	switch fc.IdentityColumnSize {
	case "", "int32", "32":
		size = Int32
	case "int64", "64":
		size = Int64
	default:
		return nil, fmt.Errorf("yessql: invalid identity_column_size %q", fc.IdentityColumnSize)
	}
	return &Config{
		TablePrefix:        fc.TablePrefix,
		Schema:             fc.Schema,
		IdentityColumnSize: size,
		Dialect:            fc.Dialect,
		Logger:             slog.Default(),
	}, nil
}
