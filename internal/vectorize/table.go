package vectorize

import (
	"fmt"

	"github.com/example/textcnn-prep/internal/preperr"
)

// Table is a WordVectors whose embedding widths were checked once at
// construction, so vectorizing against it never fails on width.
type Table struct {
	vectors Map
	dim     int
}

// NewTable wraps vectors after checking that every embedding has width dim.
// The map is not copied and must not be modified afterwards.
func NewTable(vectors Map, dim int) (*Table, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("vectorize: table width %d: %w", dim, preperr.ErrInvalidArgument)
	}

	for word, vec := range vectors {
		if len(vec) != dim {
			return nil, fmt.Errorf("vectorize: embedding for %q has width %d, want %d: %w",
				word, len(vec), dim, preperr.ErrDimensionMismatch)
		}
	}

	return &Table{vectors: vectors, dim: dim}, nil
}

// Lookup implements WordVectors. A nil table finds nothing.
func (t *Table) Lookup(word string) ([]float64, bool) {
	if t == nil {
		return nil, false
	}

	return t.vectors.Lookup(word)
}

// Dim implements Dimensioned.
func (t *Table) Dim() int {
	if t == nil {
		return 0
	}

	return t.dim
}

// Len returns the vocabulary size.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.vectors)
}
