package geomfit

import "errors"

var (
	// ErrNullRow indicates a matrix row whose entries are all exactly zero.
	ErrNullRow = errors.New("geomfit: cannot decompose matrix, null row detected")
	// ErrSingular indicates an exactly zero pivot during dense decomposition.
	ErrSingular = errors.New("geomfit: cannot decompose singular matrix")
	// ErrZeroPivot indicates an exactly zero pivot during RILU factorization.
	ErrZeroPivot = errors.New("geomfit: zero pivot in RILU factorization")
	// ErrNoMatrix indicates a solve was requested before a matrix was attached.
	ErrNoMatrix = errors.New("geomfit: no matrix attached to solver")
	// ErrSize indicates a dimension mismatch between a matrix and a vector.
	ErrSize = errors.New("geomfit: dimension mismatch")
)
