package vectorize

import (
	"errors"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/example/textcnn-prep/internal/preperr"
)

func TestFlatVector(t *testing.T) {
	wv := Map{"cat": {1, 2}, "sat": {3, 4}}

	tests := []struct {
		name  string
		words []string
		shape Shape
		want  []float64
	}{
		{
			name:  "unknown word and missing position zero-fill",
			words: []string{"cat", "dog"},
			shape: Shape{WordsPerDoc: 3, WordvecLen: 2},
			want:  []float64{1, 2, 0, 0, 0, 0},
		},
		{
			name:  "truncates past the budget",
			words: []string{"sat", "cat", "sat"},
			shape: Shape{WordsPerDoc: 2, WordvecLen: 2},
			want:  []float64{3, 4, 1, 2},
		},
		{
			name:  "empty document",
			words: nil,
			shape: Shape{WordsPerDoc: 2, WordvecLen: 2},
			want:  []float64{0, 0, 0, 0},
		},
		{
			name:  "unknown word keeps later positions aligned",
			words: []string{"dog", "sat"},
			shape: Shape{WordsPerDoc: 2, WordvecLen: 2},
			want:  []float64{0, 0, 3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FlatVector(tt.words, wv, tt.shape)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FlatVector(%q) = %v, want %v", tt.words, got, tt.want)
			}
		})
	}
}

func TestFlatVector_DoesNotAliasEmbeddings(t *testing.T) {
	wv := Map{"cat": {1, 2}}

	got, err := FlatVector([]string{"cat"}, wv, Shape{WordsPerDoc: 1, WordvecLen: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got[0] = 99
	if wv["cat"][0] != 1 {
		t.Fatal("FlatVector output aliases the lookup's embedding")
	}
}

func TestFlatVector_Errors(t *testing.T) {
	tests := []struct {
		name    string
		wv      WordVectors
		shape   Shape
		wantErr error
	}{
		{"zero words per doc", Map{}, Shape{WordsPerDoc: 0, WordvecLen: 2}, preperr.ErrInvalidArgument},
		{"negative wordvec len", Map{}, Shape{WordsPerDoc: 2, WordvecLen: -1}, preperr.ErrInvalidArgument},
		{"nil lookup", nil, Shape{WordsPerDoc: 2, WordvecLen: 2}, preperr.ErrInvalidArgument},
		{"embedding too wide", Map{"cat": {1, 2, 3}}, Shape{WordsPerDoc: 2, WordvecLen: 2}, preperr.ErrDimensionMismatch},
		{"embedding too narrow", Map{"cat": {1}}, Shape{WordsPerDoc: 2, WordvecLen: 2}, preperr.ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FlatVector([]string{"cat"}, tt.wv, tt.shape)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFlatVector_MismatchOnlyCheckedForUsedWords(t *testing.T) {
	// "wide" sits past the budget, so it is never copied.
	wv := Map{"cat": {1, 2}, "wide": {1, 2, 3}}

	got, err := FlatVector([]string{"cat", "wide"}, wv, Shape{WordsPerDoc: 1, WordvecLen: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(got, []float64{1, 2}) {
		t.Errorf("got %v", got)
	}
}

func TestMatrix_PreservesRowOrder(t *testing.T) {
	wv := Map{"a": {1, 1}, "b": {2, 2}, "c": {3, 3}}
	docs := [][]string{{"b", "a"}, {"c"}, {}}
	shape := Shape{WordsPerDoc: 2, WordvecLen: 2}

	m, err := Matrix(docs, wv, shape)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, c := m.Dims()
	if r != 3 || c != 4 {
		t.Fatalf("Dims = (%d, %d), want (3, 4)", r, c)
	}

	want := mat.NewDense(3, 4, []float64{
		2, 2, 1, 1,
		3, 3, 0, 0,
		0, 0, 0, 0,
	})
	if !mat.Equal(m, want) {
		t.Errorf("Matrix =\n%v\nwant\n%v", mat.Formatted(m), mat.Formatted(want))
	}

	for i, doc := range docs {
		row, err := FlatVector(doc, wv, shape)
		if err != nil {
			t.Fatalf("FlatVector: %v", err)
		}

		if !reflect.DeepEqual(mat.Row(nil, i, m), row) {
			t.Errorf("row %d = %v, want %v", i, mat.Row(nil, i, m), row)
		}
	}
}

func TestMatrix_Empty(t *testing.T) {
	m, err := Matrix([][]string{}, Map{}, Shape{WordsPerDoc: 2, WordvecLen: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m == nil {
		t.Fatal("expected empty matrix, got nil")
	}

	if r, c := m.Dims(); r != 0 || c != 0 {
		t.Errorf("Dims = (%d, %d), want (0, 0)", r, c)
	}

	if !m.IsEmpty() {
		t.Error("IsEmpty = false, want true")
	}
}

func TestMatrix_ReportsFailingDocument(t *testing.T) {
	wv := Map{"ok": {1, 2}, "bad": {1}}

	_, err := Matrix([][]string{{"ok"}, {"bad"}}, wv, Shape{WordsPerDoc: 1, WordvecLen: 2})
	if !errors.Is(err, preperr.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestRows(t *testing.T) {
	wv := Map{"x": {7}, "y": {8}}

	got, err := Rows([][]string{{"y"}, {"x", "y", "x"}}, wv, Shape{WordsPerDoc: 2, WordvecLen: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [][]float64{{8, 0}, {7, 8}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rows = %v, want %v", got, want)
	}

	// Rows share a backing array but must not overlap.
	got[0] = append(got[0], 1)
	if got[1][0] != 7 {
		t.Error("appending to row 0 overwrote row 1")
	}
}

func TestTable(t *testing.T) {
	tbl, err := NewTable(Map{"cat": {1, 2}, "dog": {3, 4}}, 2)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	if tbl.Dim() != 2 || tbl.Len() != 2 {
		t.Fatalf("Dim/Len = %d/%d, want 2/2", tbl.Dim(), tbl.Len())
	}

	got, err := FlatVector([]string{"dog"}, tbl, Shape{WordsPerDoc: 1, WordvecLen: 2})
	if err != nil {
		t.Fatalf("FlatVector: %v", err)
	}

	if !reflect.DeepEqual(got, []float64{3, 4}) {
		t.Errorf("got %v", got)
	}

	// Width declared by the table is checked before any lookup.
	_, err = FlatVector(nil, tbl, Shape{WordsPerDoc: 1, WordvecLen: 3})
	if !errors.Is(err, preperr.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestNilTable(t *testing.T) {
	var tbl *Table

	if tbl.Dim() != 0 || tbl.Len() != 0 {
		t.Fatalf("Dim/Len = %d/%d, want 0/0", tbl.Dim(), tbl.Len())
	}

	if _, ok := tbl.Lookup("a"); ok {
		t.Fatal("nil table found a word")
	}

	shape := Shape{WordsPerDoc: 1, WordvecLen: 2}

	if _, err := FlatVector([]string{"a"}, tbl, shape); !errors.Is(err, preperr.ErrInvalidArgument) {
		t.Errorf("FlatVector: expected ErrInvalidArgument, got %v", err)
	}

	if _, err := Matrix([][]string{{"a"}}, tbl, shape); !errors.Is(err, preperr.ErrInvalidArgument) {
		t.Errorf("Matrix: expected ErrInvalidArgument, got %v", err)
	}
}

func TestNewTable_Errors(t *testing.T) {
	if _, err := NewTable(Map{"cat": {1, 2, 3}}, 2); !errors.Is(err, preperr.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	if _, err := NewTable(Map{}, 0); !errors.Is(err, preperr.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
