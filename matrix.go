package geomfit

import "fmt"

// SquareMatrix is a borrowed, mutable, indexable view of a square numeric
// matrix. The solver routines are written against this view so that any
// caller-owned storage scheme can participate; [Dense] is the canonical
// implementation.
type SquareMatrix interface {
	// Dim returns the number of rows (and columns).
	Dim() int
	// At returns the entry in row i, column j.
	At(i, j int) float64
	// Set stores v in row i, column j.
	Set(i, j int, v float64)
}

// Dense is a square matrix stored as a flat row-major buffer.
type Dense struct {
	n int
	a []float64
}

// NewDense returns a zero-valued n×n matrix.
func NewDense(n int) *Dense {
	if n < 1 {
		panic(fmt.Sprintf("geomfit: invalid matrix size %d", n))
	}
	return &Dense{n: n, a: make([]float64, n*n)}
}

// DenseOf returns an n×n matrix initialized from a row-major slice of
// length n*n. The slice is copied, not aliased.
func DenseOf(n int, a []float64) *Dense {
	if len(a) != n*n {
		panic(fmt.Sprintf("geomfit: need %d entries for a %d×%d matrix, got %d", n*n, n, n, len(a)))
	}
	m := NewDense(n)
	copy(m.a, a)
	return m
}

func (m *Dense) Dim() int { return m.n }

func (m *Dense) At(i, j int) float64 {
	return m.a[i*m.n+j]
}

func (m *Dense) Set(i, j int, v float64) {
	m.a[i*m.n+j] = v
}

// Row returns row i of the matrix. The slice aliases the matrix storage.
func (m *Dense) Row(i int) []float64 {
	return m.a[i*m.n : (i+1)*m.n]
}
