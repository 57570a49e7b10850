package geomfit

import (
	"math"
	"sort"
)

// Status reports the outcome of [SolveCG.Solve].
type Status int

const (
	// Converged means the residual criterion was met.
	Converged Status = iota
	// IterationLimit means the iteration budget ran out; the solution
	// vector holds the best approximation reached.
	IterationLimit
	// StructuralError means the solve could not run at all: no matrix
	// attached, size mismatch, or a singular preconditioner pivot. The
	// accompanying error has the detail.
	StructuralError
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case IterationLimit:
		return "iteration limit exceeded"
	case StructuralError:
		return "structural error"
	default:
		return "unknown status"
	}
}

// SolveCG solves the equation system A·x = b, where A is a symmetric
// positive definite sparse matrix, using the Conjugate Gradient method,
// optionally preconditioned with a relaxed incomplete LU factorization.
//
// Whether the attached matrix really is symmetric and positive definite is
// the caller's responsibility; no check is applied.
//
// A SolveCG owns its attached matrix exclusively. It is not safe for
// concurrent use; callers that want parallel solves use one instance per
// system.
type SolveCG struct {
	a    []float64 // nonzero values
	jcol []int     // column index of each nonzero
	irow []int     // index in a and jcol of the first nonzero of each row; length n+1
	n    int       // number of unknowns
	np   int       // number of nonzeros

	tolerance float64
	maxIter   int // 0 means 2n, chosen at solve time

	// RILU preconditioner state.
	m       []float64 // factorized preconditioning matrix, same pattern as a
	omega   float64   // relaxation parameter
	diag    []int     // index in jcol of each row's diagonal entry
	diagSet bool
}

// NewSolveCG returns a solver with the default tolerance of 1e-6 and an
// iteration limit of twice the system size.
func NewSolveCG() *SolveCG {
	return &SolveCG{tolerance: 1e-6}
}

// SetTolerance sets the numerical tolerance used by the solver. The solve
// stops once ‖r‖ ≤ tolerance·‖b‖.
func (s *SolveCG) SetTolerance(tolerance float64) {
	s.tolerance = tolerance
}

// SetMaxIterations sets the maximal number of iterations to be used by the
// solver.
func (s *SolveCG) SetMaxIterations(maxIterations int) {
	s.maxIter = maxIterations
}

// Attach hands the left side of the equation system to the solver in
// compressed sparse row form: values holds the nonzeros, colInd the column
// index of each nonzero, and rowStart (length n+1) the position in values
// of each row's first nonzero. The slices are owned by the solver after the
// call and must not be modified by the caller.
//
// Attaching replaces any previously attached matrix and discards any built
// preconditioner, including the cached diagonal indices.
func (s *SolveCG) Attach(values []float64, colInd, rowStart []int, n int) {
	s.a = values
	s.jcol = colInd
	s.irow = rowStart
	s.n = n
	s.np = len(values)
	s.sortRows()
	s.m = nil
	s.diag = nil
	s.diagSet = false
}

// AttachDense is [SolveCG.Attach] for a dense row-major matrix of size n×n:
// the nonzero entries are gathered into sparse form first. Diagonal entries
// are kept even when zero, so that the preconditioner can locate them.
func (s *SolveCG) AttachDense(gmat []float64, n int) {
	values := make([]float64, 0, n)
	colInd := make([]int, 0, n)
	rowStart := make([]int, 0, n+1)
	for i := 0; i < n; i++ {
		rowStart = append(rowStart, len(values))
		for j := 0; j < n; j++ {
			if v := gmat[i*n+j]; v != 0 || i == j {
				values = append(values, v)
				colInd = append(colInd, j)
			}
		}
	}
	rowStart = append(rowStart, len(values))
	s.Attach(values, colInd, rowStart, n)
}

// sortRows orders each row's nonzeros by column. Callers may attach rows in
// any order; factorization and elimination want ascending columns.
func (s *SolveCG) sortRows() {
	for i := 0; i < s.n; i++ {
		lo, hi := s.irow[i], s.irow[i+1]
		row := make([]int, hi-lo)
		for k := range row {
			row[k] = lo + k
		}
		sort.Slice(row, func(x, y int) bool { return s.jcol[row[x]] < s.jcol[row[y]] })
		vals := make([]float64, hi-lo)
		cols := make([]int, hi-lo)
		for k, idx := range row {
			vals[k] = s.a[idx]
			cols[k] = s.jcol[idx]
		}
		copy(s.a[lo:hi], vals)
		copy(s.jcol[lo:hi], cols)
	}
}

// index returns the position in a of the entry in row ki, column kj, or -1
// if the entry is not part of the sparsity pattern.
func (s *SolveCG) index(ki, kj int) int {
	for idx := s.irow[ki]; idx < s.irow[ki+1]; idx++ {
		if s.jcol[idx] == kj {
			return idx
		}
	}
	return -1
}

// matrixProduct computes sy = A·sx over the compressed rows.
func (s *SolveCG) matrixProduct(sx, sy []float64) {
	for kj := 0; kj < s.n; kj++ {
		sy[kj] = 0.0
		for ki := s.irow[kj]; ki < s.irow[kj+1]; ki++ {
			sy[kj] += s.a[ki] * sx[s.jcol[ki]]
		}
	}
}

// PrecondRILU prepares preconditioning: it builds a relaxed incomplete LU
// factorization of the attached matrix, restricted to the attached sparsity
// pattern. relaxFac is the relaxation parameter in [0, 1]: fill-in that the
// pattern cannot hold is discarded at 0 (plain ILU) and folded into the
// diagonal at 1 (fully relaxed). The factorization and the located diagonal
// indices are cached and reused across solves until the matrix is
// reattached.
//
// Returns [ErrNoMatrix] if no matrix is attached and [ErrZeroPivot] if the
// factorization meets an exactly zero pivot or a row without a diagonal
// entry.
func (s *SolveCG) PrecondRILU(relaxFac float64) error {
	if s.n == 0 {
		return ErrNoMatrix
	}
	s.omega = relaxFac
	s.m = make([]float64, s.np)
	copy(s.m, s.a)

	// Locate and cache the diagonal of every row for fast lookup during
	// factorization and back substitution.
	s.diag = make([]int, s.n)
	s.diagSet = false
	for i := 0; i < s.n; i++ {
		idx := s.index(i, i)
		if idx < 0 {
			return ErrZeroPivot
		}
		s.diag[i] = idx
	}
	if s.m[s.diag[0]] == 0 {
		return ErrZeroPivot
	}

	for i := 1; i < s.n; i++ {
		for ki := s.irow[i]; ki < s.irow[i+1] && s.jcol[ki] < i; ki++ {
			k := s.jcol[ki]
			pivot := s.m[s.diag[k]]
			if pivot == 0 {
				return ErrZeroPivot
			}
			s.m[ki] /= pivot
			dropped := 0.0
			for kk := s.diag[k] + 1; kk < s.irow[k+1]; kk++ {
				fill := s.m[ki] * s.m[kk]
				if idx := s.index(i, s.jcol[kk]); idx >= 0 {
					s.m[idx] -= fill
				} else {
					dropped += fill
				}
			}
			// Relaxation: dropped fill-in is charged to the diagonal.
			s.m[s.diag[i]] -= s.omega * dropped
		}
		if s.m[s.diag[i]] == 0 {
			return ErrZeroPivot
		}
	}
	s.diagSet = true
	return nil
}

// forwBack applies the preconditioner: it solves M·z = r, where M holds the
// LU-factorized preconditioning matrix, by forward elimination over the
// unit lower part and back substitution over the upper part.
func (s *SolveCG) forwBack(r, z []float64) {
	for i := 0; i < s.n; i++ {
		sum := r[i]
		for ki := s.irow[i]; ki < s.diag[i]; ki++ {
			sum -= s.m[ki] * z[s.jcol[ki]]
		}
		z[i] = sum
	}
	for i := s.n - 1; i >= 0; i-- {
		sum := z[i]
		for ki := s.diag[i] + 1; ki < s.irow[i+1]; ki++ {
			sum -= s.m[ki] * z[s.jcol[ki]]
		}
		z[i] = sum / s.m[s.diag[i]]
	}
}

// Solve runs the Conjugate Gradient method on the attached system. x is the
// initial guess on input and the solution (or best approximation) on
// return; b is the right side. If a preconditioner has been built with
// [SolveCG.PrecondRILU], the preconditioned variant is used.
//
// The error is non-nil exactly when the status is [StructuralError].
// [IterationLimit] is not an error: the caller decides whether the
// best-effort x is acceptable.
func (s *SolveCG) Solve(x, b []float64) (Status, error) {
	if s.n == 0 {
		return StructuralError, ErrNoMatrix
	}
	if len(x) != s.n || len(b) != s.n {
		return StructuralError, ErrSize
	}
	if s.diagSet {
		return s.solveRILU(x, b), nil
	}
	return s.solveStd(x, b), nil
}

func (s *SolveCG) limit() int {
	if s.maxIter > 0 {
		return s.maxIter
	}
	return 2 * s.n
}

// solveStd is plain CG without preconditioning.
func (s *SolveCG) solveStd(x, b []float64) Status {
	n := s.n
	r := make([]float64, n)
	q := make([]float64, n)
	s.matrixProduct(x, q)
	for i := 0; i < n; i++ {
		r[i] = b[i] - q[i]
	}
	bnorm := vecNorm(b)
	if bnorm == 0 {
		bnorm = 1
	}
	bound := s.tolerance * bnorm
	if vecNorm(r) <= bound {
		return Converged
	}

	p := make([]float64, n)
	copy(p, r)
	rho := vecDot(r, r)
	for _i := 0; _i < s.limit(); _i++ {
		s.matrixProduct(p, q)
		alpha := rho / vecDot(p, q)
		for i := 0; i < n; i++ {
			x[i] += alpha * p[i]
			r[i] -= alpha * q[i]
		}
		if vecNorm(r) <= bound {
			return Converged
		}
		rhoNew := vecDot(r, r)
		beta := rhoNew / rho
		rho = rhoNew
		for i := 0; i < n; i++ {
			p[i] = r[i] + beta*p[i]
		}
	}
	return IterationLimit
}

// solveRILU is CG with the residual transformed through the stored RILU
// factorization each iteration.
func (s *SolveCG) solveRILU(x, b []float64) Status {
	n := s.n
	r := make([]float64, n)
	z := make([]float64, n)
	q := make([]float64, n)
	s.matrixProduct(x, q)
	for i := 0; i < n; i++ {
		r[i] = b[i] - q[i]
	}
	bnorm := vecNorm(b)
	if bnorm == 0 {
		bnorm = 1
	}
	bound := s.tolerance * bnorm
	if vecNorm(r) <= bound {
		return Converged
	}

	s.forwBack(r, z)
	p := make([]float64, n)
	copy(p, z)
	rho := vecDot(r, z)
	for _i := 0; _i < s.limit(); _i++ {
		s.matrixProduct(p, q)
		alpha := rho / vecDot(p, q)
		for i := 0; i < n; i++ {
			x[i] += alpha * p[i]
			r[i] -= alpha * q[i]
		}
		if vecNorm(r) <= bound {
			return Converged
		}
		s.forwBack(r, z)
		rhoNew := vecDot(r, z)
		beta := rhoNew / rho
		rho = rhoNew
		for i := 0; i < n; i++ {
			p[i] = z[i] + beta*p[i]
		}
	}
	return IterationLimit
}

func vecDot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func vecNorm(a []float64) float64 {
	return math.Sqrt(vecDot(a, a))
}
