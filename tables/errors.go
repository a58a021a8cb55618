package tables

import "fmt"

// ErrRowOutOfRange indicates a rid of 0 or beyond the table's row count.
type ErrRowOutOfRange struct {
	Table Table
	Rid   uint32
}

func (e *ErrRowOutOfRange) Error() string {
	return fmt.Sprintf("%s: rid %d out of range", e.Table, e.Rid)
}

// ErrColumnOutOfRange indicates a column index the table does not have.
type ErrColumnOutOfRange struct {
	Table  Table
	Column int
}

func (e *ErrColumnOutOfRange) Error() string {
	return fmt.Sprintf("%s: column %d out of range", e.Table, e.Column)
}
