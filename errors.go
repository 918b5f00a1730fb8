package yessql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"modernc.org/sqlite"
)

// Standard sentinel errors for schema operations. Each failure raised by
// the schema builder wraps exactly one of these, so callers wanting
// fine-grained recovery can classify with errors.Is.
var (
	// ErrNameResolution is returned when the naming convention cannot
	// produce a table name for the requested operation.
	ErrNameResolution = errors.New("yessql: cannot resolve table name")

	// ErrDuplicateObject is returned when a table, constraint or index
	// already exists on the target engine.
	ErrDuplicateObject = errors.New("yessql: object already exists")

	// ErrInterpreter is returned when a DDL command cannot be translated
	// for the active dialect.
	ErrInterpreter = errors.New("yessql: cannot interpret command")

	// ErrExecution is returned when a statement is rejected by the
	// target engine.
	ErrExecution = errors.New("yessql: statement execution failed")
)

// SchemaError describes a failed schema operation. It carries the
// operation name, the database object involved, and the underlying cause.
type SchemaError struct {
	Op     string // Operation, e.g. "CreateMapIndexTable".
	Object string // Table, constraint or index name, if known.
	kind   error  // One of the sentinel errors above.
	Err    error  // Underlying cause.
}

// Error returns the error string.
func (e *SchemaError) Error() string {
	if e.Object != "" {
		return fmt.Sprintf("yessql: %s %q: %v", e.Op, e.Object, e.Err)
	}
	return fmt.Sprintf("yessql: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error { return e.Err }

// Is reports whether the error matches the taxonomy sentinel it was
// created with.
func (e *SchemaError) Is(err error) bool { return err == e.kind }

// NewSchemaError returns a SchemaError classified by kind. The kind must
// be one of the sentinel errors of this package.
func NewSchemaError(kind error, op, object string, err error) *SchemaError {
	return &SchemaError{Op: op, Object: object, kind: kind, Err: err}
}

// IsSchemaError returns true if the error is a SchemaError.
func IsSchemaError(err error) bool {
	if err == nil {
		return false
	}
	var e *SchemaError
	return errors.As(err, &e)
}

// Duplicate-object error numbers per engine. PostgreSQL reports class 42
// names, MySQL numeric server errors.
var (
	pqDuplicateCodes = map[string]struct{}{
		"42701": {}, // duplicate_column
		"42710": {}, // duplicate_object
		"42P04": {}, // duplicate_database
		"42P06": {}, // duplicate_schema
		"42P07": {}, // duplicate_table
	}
	mysqlDuplicateNumbers = map[uint16]struct{}{
		1022: {}, // ER_DUP_KEY
		1050: {}, // ER_TABLE_EXISTS_ERROR
		1060: {}, // ER_DUP_FIELDNAME
		1061: {}, // ER_DUP_KEYNAME
		1826: {}, // ER_FK_DUP_NAME
	}
)

// IsDuplicateObject reports whether the error indicates that the object a
// DDL statement tried to create already exists. It recognizes the yessql
// taxonomy as well as the raw driver errors of PostgreSQL (lib/pq),
// MySQL (go-sql-driver) and SQLite (modernc.org/sqlite).
func IsDuplicateObject(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateObject) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		_, ok := pqDuplicateCodes[string(pqErr.Code)]
		return ok
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		_, ok := mysqlDuplicateNumbers[myErr.Number]
		return ok
	}
	// SQLite reports duplicates as a generic SQLITE_ERROR; the message
	// is the only discriminator the engine provides.
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return strings.Contains(liteErr.Error(), "already exists")
	}
	return false
}
