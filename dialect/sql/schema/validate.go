package schema

import (
	"fmt"
	"strings"
)

// ValidationError reports a defect in a DDL command.
type ValidationError struct {
	Table   string
	Column  string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the results of validating a set of commands.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

// ValidateCreateTable validates a single create-table command before it
// is handed to the interpreter: duplicate column names, multiple identity
// columns, and columns without a name.
func ValidateCreateTable(cmd *CreateTableCommand) *ValidationResult {
	result := &ValidationResult{}

	colNames := make(map[string]bool, len(cmd.Columns))
	identities := 0
	for _, c := range cmd.Columns {
		if c.Name == "" {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   cmd.Name(),
				Message: "column without a name",
			})
			continue
		}
		if colNames[c.Name] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   cmd.Name(),
				Column:  c.Name,
				Message: "duplicate column name",
			})
		}
		colNames[c.Name] = true
		if c.Identity {
			identities++
		}
		if c.Identity && c.Default != "" {
			result.Warnings = append(result.Warnings, &ValidationError{
				Table:   cmd.Name(),
				Column:  c.Name,
				Message: "default value on identity column is ignored",
			})
		}
	}
	if identities > 1 {
		result.Errors = append(result.Errors, &ValidationError{
			Table:   cmd.Name(),
			Message: "more than one identity column",
		})
	}
	if identities == 0 {
		result.Warnings = append(result.Warnings, &ValidationError{
			Table:   cmd.Name(),
			Message: "table has no identity primary key",
		})
	}
	return result
}

// ValidatePlan validates a sequence of commands as a whole: duplicate
// created tables, foreign keys with mismatched column lists, and foreign
// keys referencing columns their source table (when created in the same
// plan) does not define.
func ValidatePlan(cmds []Command) *ValidationResult {
	result := &ValidationResult{}

	created := make(map[string]map[string]bool)
	for _, cmd := range cmds {
		ct, ok := cmd.(*CreateTableCommand)
		if !ok {
			continue
		}
		if _, dup := created[ct.Name()]; dup {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   ct.Name(),
				Message: "table created twice",
			})
		}
		tr := ValidateCreateTable(ct)
		result.Errors = append(result.Errors, tr.Errors...)
		result.Warnings = append(result.Warnings, tr.Warnings...)
		cols := make(map[string]bool, len(ct.Columns))
		for _, c := range ct.Columns {
			cols[c.Name] = true
		}
		created[ct.Name()] = cols
	}

	for _, cmd := range cmds {
		fk, ok := cmd.(*CreateForeignKeyCommand)
		if !ok {
			continue
		}
		if len(fk.SrcColumns) == 0 || len(fk.SrcColumns) != len(fk.DestColumns) {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   fk.SrcTable,
				Message: fmt.Sprintf("foreign key %q has mismatched column lists", fk.Name()),
			})
		}
		if cols, ok := created[fk.SrcTable]; ok {
			for _, c := range fk.SrcColumns {
				if !cols[c] {
					result.Errors = append(result.Errors, &ValidationError{
						Table:   fk.SrcTable,
						Column:  c,
						Message: fmt.Sprintf("foreign key %q references non-existent column", fk.Name()),
					})
				}
			}
		}
	}
	return result
}
