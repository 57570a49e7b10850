package geomfit

import "math"

// LUDecompose computes an LU decomposition of m in place, using Crout's
// algorithm with scaled partial pivoting. After it returns, the upper
// triangle of m (including the diagonal) holds U and the strict lower
// triangle holds the multipliers of the unit lower triangular L. perm must
// have length m.Dim(); it receives the row order that was actually used.
//
// The returned parity is true if the number of row swaps performed was
// even. Together with the diagonal of U it determines the sign of the
// determinant; see [Determinant].
//
// Decomposition fails with [ErrNullRow] if any row of m is entirely zero,
// and with [ErrSingular] if an exact zero pivot is met. No near-singularity
// threshold is applied: a tiny but nonzero pivot decomposes.
func LUDecompose(m SquareMatrix, perm []int) (parity bool, err error) {
	n := m.Dim()
	if len(perm) != n {
		return false, ErrSize
	}
	parity = true // no row swaps yet
	for k := range perm {
		perm[k] = k
	}

	// Scale each pivot candidate by the reciprocal of its row's largest
	// entry, so that pivot choice is independent of row magnitude.
	scaling := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if t := math.Abs(m.At(i, j)); t > scaling[i] {
				scaling[i] = t
			}
		}
		if scaling[i] == 0 {
			return parity, ErrNullRow
		}
		scaling[i] = 1.0 / scaling[i]
	}

	for j := 0; j < n; j++ {
		// Entries of U above the diagonal on this column.
		for i := 0; i < j; i++ {
			sum := m.At(i, j)
			for k := 0; k < i; k++ {
				sum -= m.At(i, k) * m.At(k, j)
			}
			m.Set(i, j, sum)
		}

		// Rest of the column, before division by the pivot.
		pivotVal := 0.0
		pivotRow := j
		for i := j; i < n; i++ {
			sum := m.At(i, j)
			for k := 0; k < j; k++ {
				sum -= m.At(i, k) * m.At(k, j)
			}
			m.Set(i, j, sum)
			if t := math.Abs(sum) * scaling[i]; t > pivotVal {
				pivotVal = t
				pivotRow = i
			}
		}

		if m.At(pivotRow, j) == 0 {
			return parity, ErrSingular
		}

		if pivotRow != j {
			for k := 0; k < n; k++ {
				t := m.At(pivotRow, k)
				m.Set(pivotRow, k, m.At(j, k))
				m.Set(j, k, t)
			}
			parity = !parity
			scaling[j], scaling[pivotRow] = scaling[pivotRow], scaling[j]
			perm[j], perm[pivotRow] = perm[pivotRow], perm[j]
		}

		if j < n-1 {
			inv := 1.0 / m.At(j, j)
			for i := j + 1; i < n; i++ {
				m.Set(i, j, m.At(i, j)*inv)
			}
		}
	}
	return parity, nil
}

// ForwardSubstitute solves the unit lower triangular system left implicit
// in a matrix processed by [LUDecompose]. x is both the right-hand side and,
// on return, the solution.
func ForwardSubstitute(m SquareMatrix, x []float64) {
	n := m.Dim()
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			x[i] -= m.At(i, j) * x[j]
		}
	}
}

// BackwardSubstitute solves the upper triangular system of a matrix
// processed by [LUDecompose], including division by the diagonal. x is both
// the right-hand side and, on return, the solution.
func BackwardSubstitute(m SquareMatrix, x []float64) {
	n := m.Dim()
	x[n-1] /= m.At(n-1, n-1)
	for i := n - 2; i >= 0; i-- {
		for j := i + 1; j < n; j++ {
			x[i] -= m.At(i, j) * x[j]
		}
		x[i] /= m.At(i, i)
	}
}

// ForwardSubstituteVec is [ForwardSubstitute] for a Point-valued right-hand
// side: each spatial coordinate is an independent right-hand side sharing
// the same decomposition.
func ForwardSubstituteVec(m SquareMatrix, x []Point) {
	n := m.Dim()
	dim := x[0].Dim()
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			f := m.At(i, j)
			for d := 0; d < dim; d++ {
				x[i][d] -= f * x[j][d]
			}
		}
	}
}

// BackwardSubstituteVec is [BackwardSubstitute] for a Point-valued
// right-hand side.
func BackwardSubstituteVec(m SquareMatrix, x []Point) {
	n := m.Dim()
	dim := x[0].Dim()
	inv := 1.0 / m.At(n-1, n-1)
	for d := 0; d < dim; d++ {
		x[n-1][d] *= inv
	}
	for i := n - 2; i >= 0; i-- {
		for j := i + 1; j < n; j++ {
			f := m.At(i, j)
			for d := 0; d < dim; d++ {
				x[i][d] -= f * x[j][d]
			}
		}
		inv := 1.0 / m.At(i, i)
		for d := 0; d < dim; d++ {
			x[i][d] *= inv
		}
	}
}

// LUSolve solves the linear system m·x = b. m is decomposed in place; b is
// overwritten with the solution. The combined solve applies the row
// permutation to b, then forward and backward substitution.
func LUSolve(m SquareMatrix, b []float64) error {
	n := m.Dim()
	if len(b) != n {
		return ErrSize
	}
	perm := make([]int, n)
	if _, err := LUDecompose(m, perm); err != nil {
		return err
	}
	old := make([]float64, n)
	copy(old, b)
	for i := 0; i < n; i++ {
		b[i] = old[perm[i]]
	}
	ForwardSubstitute(m, b)
	BackwardSubstitute(m, b)
	return nil
}

// LUSolveVec solves m·x = b for a Point-valued right-hand side, i.e. one
// independent scalar system per spatial coordinate over a single
// decomposition. This is the form used for curve coefficient fitting, where
// every coordinate of the control points solves against the same collocation
// matrix. rhs is overwritten with the solution.
func LUSolveVec(m SquareMatrix, rhs []Point) error {
	n := m.Dim()
	if len(rhs) != n {
		return ErrSize
	}
	perm := make([]int, n)
	if _, err := LUDecompose(m, perm); err != nil {
		return err
	}
	old := make([]Point, n)
	copy(old, rhs)
	for i := 0; i < n; i++ {
		rhs[i] = old[perm[i]]
	}
	ForwardSubstituteVec(m, rhs)
	BackwardSubstituteVec(m, rhs)
	return nil
}

// Determinant returns the determinant of a matrix already processed by
// [LUDecompose]: the product of U's diagonal, negated if the number of row
// swaps was odd.
func Determinant(m SquareMatrix, parity bool) float64 {
	det := 1.0
	for i := 0; i < m.Dim(); i++ {
		det *= m.At(i, i)
	}
	if !parity {
		det = -det
	}
	return det
}
