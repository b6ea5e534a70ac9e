package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrSchemaValidation    = errors.New("schema validation failed")
	ErrMalformedRow        = errors.New("malformed row")
	ErrOpenDataset         = errors.New("open dataset failed")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// SchemaValidationError reports required columns absent from the header.
type SchemaValidationError struct {
	Missing  []string
	Expected []string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("%s: missing required columns [%s] (expected [%s])",
		ErrSchemaValidation, strings.Join(e.Missing, ", "), strings.Join(e.Expected, ", "))
}

// Unwrap lets errors.Is match ErrSchemaValidation.
func (e *SchemaValidationError) Unwrap() error { return ErrSchemaValidation }
