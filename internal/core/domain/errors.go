package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown backend, format or data type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Naming Errors.

	// ErrMalformedFilename indicates a filename does not follow the
	// export naming convention.
	ErrMalformedFilename = errors.New("malformed filename")

	// Parser Errors.

	// ErrUnknownTransaction indicates no parser is registered for a
	// transaction code.
	ErrUnknownTransaction = errors.New("unknown transaction")

	// ErrUnsupportedFunctionVariant indicates the transaction family is known
	// but has no routine for the requested layout version.
	ErrUnsupportedFunctionVariant = errors.New("unsupported function variant")

	// ErrMalformedSourceTable indicates the export markup does not have the
	// expected table shape.
	ErrMalformedSourceTable = errors.New("malformed source table")

	// Storage Errors.

	// ErrStorageRead indicates the storage collaborator failed to read or list.
	ErrStorageRead = errors.New("storage read failed")

	// ErrStorageWrite indicates the storage collaborator failed to write.
	ErrStorageWrite = errors.New("storage write failed")

	// ErrStorageDelete indicates the storage collaborator failed to delete.
	ErrStorageDelete = errors.New("storage delete failed")
)

// TableError describes where a source table stopped matching its header.
// It unwraps to ErrMalformedSourceTable.
type TableError struct {
	// Table is the index of the list table in the document.
	Table int

	// Row is the row index within the table body, -1 for header problems.
	Row int

	// Cell is the offending cell index, -1 when the whole row is wrong.
	Cell int

	// Reason is a short description of the mismatch.
	Reason string
}

func (e *TableError) Error() string {
	switch {
	case e.Row < 0:
		return fmt.Sprintf("%s: table %d: %s", ErrMalformedSourceTable, e.Table, e.Reason)
	case e.Cell < 0:
		return fmt.Sprintf("%s: table %d row %d: %s", ErrMalformedSourceTable, e.Table, e.Row, e.Reason)
	default:
		return fmt.Sprintf("%s: table %d row %d cell %d: %s", ErrMalformedSourceTable, e.Table, e.Row, e.Cell, e.Reason)
	}
}

// Unwrap lets errors.Is match ErrMalformedSourceTable.
func (e *TableError) Unwrap() error {
	return ErrMalformedSourceTable
}
