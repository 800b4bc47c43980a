package httpapi

import (
	"errors"
	"net/http"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
)

// Error codes returned in the response body.
const (
	CodeInvalidInput        = "invalid_input"
	CodeMalformedFilename   = "malformed_filename"
	CodeNotFound            = "not_found"
	CodeUnknownTransaction  = "unknown_transaction"
	CodeUnsupportedVariant  = "unsupported_function_variant"
	CodeMalformedTable      = "malformed_source_table"
	CodeStorageReadFailed   = "storage_read_failed"
	CodeStorageWriteFailed  = "storage_write_failed"
	CodeStorageDeleteFailed = "storage_delete_failed"
	CodeInternal            = "internal"
)

// classify maps an error to its HTTP status and response code.
// Order matters: a missing source is also a storage read failure.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMalformedFilename):
		return http.StatusBadRequest, CodeMalformedFilename
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidInput
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrUnknownTransaction):
		return http.StatusUnprocessableEntity, CodeUnknownTransaction
	case errors.Is(err, domain.ErrUnsupportedFunctionVariant):
		return http.StatusUnprocessableEntity, CodeUnsupportedVariant
	case errors.Is(err, domain.ErrMalformedSourceTable):
		return http.StatusUnprocessableEntity, CodeMalformedTable
	case errors.Is(err, domain.ErrStorageRead):
		return http.StatusBadGateway, CodeStorageReadFailed
	case errors.Is(err, domain.ErrStorageWrite):
		return http.StatusBadGateway, CodeStorageWriteFailed
	case errors.Is(err, domain.ErrStorageDelete):
		return http.StatusBadGateway, CodeStorageDeleteFailed
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
