// Package vectorize converts token sequences into fixed-length feature
// vectors by concatenating per-token embeddings.
package vectorize

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/example/textcnn-prep/internal/preperr"
)

// WordVectors looks up the embedding of a single word.
// Implementations are treated as read-only.
type WordVectors interface {
	// Lookup returns the embedding for word and whether it was found.
	Lookup(word string) ([]float64, bool)
}

// Dimensioned is implemented by lookups that know their embedding width.
// When present it is checked against Shape.WordvecLen before any work.
type Dimensioned interface {
	Dim() int
}

// Map is an in-memory WordVectors.
type Map map[string][]float64

// Lookup implements WordVectors.
func (m Map) Lookup(word string) ([]float64, bool) {
	v, ok := m[word]
	return v, ok
}

// Shape is the fixed layout of a document feature vector.
type Shape struct {
	WordsPerDoc int // token budget per document
	WordvecLen  int // embedding width
}

// Cols returns the feature vector length.
func (s Shape) Cols() int {
	return s.WordsPerDoc * s.WordvecLen
}

// Validate rejects non-positive dimensions.
func (s Shape) Validate() error {
	if s.WordsPerDoc <= 0 {
		return fmt.Errorf("vectorize: words per doc %d: %w", s.WordsPerDoc, preperr.ErrInvalidArgument)
	}

	if s.WordvecLen <= 0 {
		return fmt.Errorf("vectorize: word vector length %d: %w", s.WordvecLen, preperr.ErrInvalidArgument)
	}

	return nil
}

// FlatVector builds the feature vector of one document. Row i of the
// WordsPerDoc x WordvecLen layout holds the embedding of words[i]; unknown
// words and positions past the end of words stay zero, and words beyond the
// budget are discarded. The result is the row-major flattening.
func FlatVector(words []string, wv WordVectors, shape Shape) ([]float64, error) {
	if err := check(wv, shape); err != nil {
		return nil, err
	}

	out := make([]float64, shape.Cols())
	if err := fill(out, words, wv, shape); err != nil {
		return nil, err
	}

	return out, nil
}

// Rows applies FlatVector to every document, preserving input order.
func Rows(docs [][]string, wv WordVectors, shape Shape) ([][]float64, error) {
	if err := check(wv, shape); err != nil {
		return nil, err
	}

	cols := shape.Cols()
	backing := make([]float64, len(docs)*cols)
	out := make([][]float64, len(docs))

	for i, doc := range docs {
		row := backing[i*cols : (i+1)*cols : (i+1)*cols]
		if err := fill(row, doc, wv, shape); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}

		out[i] = row
	}

	return out, nil
}

// Matrix is Rows as a len(docs) x Shape.Cols() dense matrix. Row i
// corresponds to docs[i]. An empty docs returns an empty matrix whose Dims
// are (0, 0) and IsEmpty reports true.
func Matrix(docs [][]string, wv WordVectors, shape Shape) (*mat.Dense, error) {
	if err := check(wv, shape); err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return &mat.Dense{}, nil
	}

	cols := shape.Cols()
	data := make([]float64, len(docs)*cols)

	for i, doc := range docs {
		if err := fill(data[i*cols:(i+1)*cols], doc, wv, shape); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
	}

	return mat.NewDense(len(docs), cols, data), nil
}

func check(wv WordVectors, shape Shape) error {
	if err := shape.Validate(); err != nil {
		return err
	}

	if wv == nil || isNilTable(wv) {
		return fmt.Errorf("vectorize: nil word vectors: %w", preperr.ErrInvalidArgument)
	}

	if d, ok := wv.(Dimensioned); ok && d.Dim() != shape.WordvecLen {
		return fmt.Errorf("vectorize: word vectors have width %d, want %d: %w",
			d.Dim(), shape.WordvecLen, preperr.ErrDimensionMismatch)
	}

	return nil
}

func isNilTable(wv WordVectors) bool {
	t, ok := wv.(*Table)
	return ok && t == nil
}

// fill writes the embeddings of words into dst, which must be zeroed and
// hold exactly shape.Cols() values.
func fill(dst []float64, words []string, wv WordVectors, shape Shape) error {
	n := min(len(words), shape.WordsPerDoc)

	for i, word := range words[:n] {
		vec, ok := wv.Lookup(word)
		if !ok {
			continue
		}

		if len(vec) != shape.WordvecLen {
			return fmt.Errorf("vectorize: embedding for %q has width %d, want %d: %w",
				word, len(vec), shape.WordvecLen, preperr.ErrDimensionMismatch)
		}

		copy(dst[i*shape.WordvecLen:], vec)
	}

	return nil
}
