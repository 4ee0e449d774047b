package btrieve

import (
	"errors"
	"fmt"
)

var (
	// ErrShortPage indicates a file whose length is not a multiple of the
	// table's page size.
	ErrShortPage = errors.New("short page read")

	// ErrInvalidDefinition indicates a table definition whose record size
	// does not fit in a page.
	ErrInvalidDefinition = errors.New("invalid table definition")

	// ErrColumnNotFound indicates a row accessor named an unknown column.
	ErrColumnNotFound = errors.New("column not found")

	// ErrColumnType indicates a row accessor asked for the wrong type.
	ErrColumnType = errors.New("column has a different type")

	// ErrValueAbsent indicates a column whose value could not be decoded.
	ErrValueAbsent = errors.New("column value absent")
)

// StructuralError reports a fatal problem reading a database file: a short
// page, an unexpected end of file or an unreadable file or directory.
type StructuralError struct {
	Path string
	Op   string
	Err  error
}

func (e *StructuralError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// IsStructural reports whether err is, or wraps, a StructuralError.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}
