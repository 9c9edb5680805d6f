// internal/record/errors.go
package record

import (
	"fmt"
	"strings"
)

// SchemaError means an operation needs columns the table does not have.
type SchemaError struct {
	Op      string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required column(s): %s", e.Op, strings.Join(e.Missing, ", "))
}

// MissingColumnError is returned by stages that consume exactly one column.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in table", e.Column)
}
