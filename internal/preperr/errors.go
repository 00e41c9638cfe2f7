// Package preperr defines the error kinds shared by the preprocessing
// packages. Callers match them with errors.Is.
package preperr

import "errors"

var (
	// ErrInvalidArgument reports a non-positive size or a missing input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConfiguration reports a collaborator that was required but not supplied.
	ErrConfiguration = errors.New("configuration error")

	// ErrDimensionMismatch reports an embedding whose width differs from the
	// configured vector length.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
