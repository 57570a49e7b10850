package geomfit

// Curve is the minimal evaluation capability the search and evaluator types
// consume: positions, derivatives, and a parameter domain. Any curve
// representation (splines, analytic curves, composites) can participate by
// implementing it.
type Curve interface {
	// Point evaluates the curve's position at parameter t.
	Point(t float64) Point
	// Derivs evaluates the curve's position and derivatives up to the
	// given order at parameter t. The returned slice has order+1 entries,
	// the position first, then the first derivative, and so on.
	Derivs(t float64, order int) []Point
	// Start returns the start parameter of the curve's domain.
	Start() float64
	// End returns the end parameter of the curve's domain.
	End() float64
	// Dim returns the dimension of the space the curve lives in.
	Dim() int
}

// Surface is the surface capability consumed by the projection evaluator.
// Like [Curve] it is deliberately narrow; the surface's own representation
// stays opaque.
type Surface interface {
	// Point evaluates the surface's position at parameters (u, v).
	Point(u, v float64) Point
	// Derivs evaluates the position and partial derivatives up to the
	// given order. Order 1 returns [S, Su, Sv].
	Derivs(u, v float64, order int) []Point
	// Domain returns the surface's parameter domain.
	Domain() RectDomain
	// Dim returns the dimension of the space the surface lives in.
	Dim() int
	// ClosestPoint finds the point on the surface closest to pt, starting
	// the search at (seedU, seedV). If dom is non-nil the search is
	// restricted to that part of the parameter domain.
	ClosestPoint(pt Point, seedU, seedV float64, dom *RectDomain) (u, v float64, clo Point, dist float64)
}

// RectDomain is an axis-aligned rectangle in a surface's parameter domain.
type RectDomain struct {
	UMin, UMax float64
	VMin, VMax float64
}

// Contains reports whether (u, v) lies in the domain.
func (d RectDomain) Contains(u, v float64) bool {
	return u >= d.UMin && u <= d.UMax && v >= d.VMin && v <= d.VMax
}

// Clamp returns the point of the domain closest to (u, v).
func (d RectDomain) Clamp(u, v float64) (float64, float64) {
	return min(max(u, d.UMin), d.UMax), min(max(v, d.VMin), d.VMax)
}

// EvalCurve describes a curve the way an iterative approximation driver
// wants to see it. The driver samples positions and derivatives at chosen
// parameters, builds and solves a fitting system from them, and then asks
// ApproximationOK whether the approximation it computed is acceptable at a
// parameter, refining and iterating until it is.
type EvalCurve interface {
	// Eval evaluates the curve at parameter t.
	Eval(t float64) Point
	// EvalDerivs evaluates the curve and its derivatives up to the given
	// order at parameter t; the result has order+1 entries, position
	// first.
	EvalDerivs(t float64, order int) []Point
	// Start returns the start parameter of the curve's domain.
	Start() float64
	// End returns the end parameter of the curve's domain.
	End() float64
	// Dim returns the dimension of the space the curve lives in.
	Dim() int
	// ApproximationOK reports whether approxPos is an acceptable
	// approximation of the curve at parameter t. tol1 bounds the spatial
	// deviation directly; tol2 is an evaluator-specific secondary
	// tolerance that is only consulted when tol1 is borderline-satisfied.
	ApproximationOK(t float64, approxPos Point, tol1, tol2 float64) bool
}

// EvalCurveSet describes a fixed-size ordered set of logical sub-curves
// evaluated together at a common parameter, for approximation drivers that
// fit several mutually dependent curves at once. NumCurves lets callers
// size their buffers without knowing the evaluator's nature.
type EvalCurveSet interface {
	// Eval evaluates the curve set at parameter t. The result has
	// NumCurves entries.
	Eval(t float64) []Point
	// EvalDerivs evaluates the curve set and its derivatives up to the
	// given order at parameter t. The result has NumCurves entries, each
	// holding order+1 points, position first.
	EvalDerivs(t float64, order int) [][]Point
	// Start returns the start parameter of the common domain.
	Start() float64
	// End returns the end parameter of the common domain.
	End() float64
	// Dim returns the dimension of the set's primary curve.
	Dim() int
	// NumCurves returns the number of curves in the set.
	NumCurves() int
	// ApproximationOK reports whether approxPos (one point per curve in
	// the set) is an acceptable approximation at parameter t, with the
	// same two-tolerance contract as [EvalCurve.ApproximationOK].
	ApproximationOK(t float64, approxPos []Point, tol1, tol2 float64) bool
}

// EstimatedCurveLength estimates the length of a curve over [tmin, tmax] by
// sampling it at numPts uniformly spaced parameters and summing the chords
// of the linear approximation through the samples. numPts values below 2
// are raised to 4.
func EstimatedCurveLength(c Curve, tmin, tmax float64, numPts int) float64 {
	if numPts < 2 {
		numPts = 4
	}
	var length float64
	prev := c.Point(tmin)
	for i := 1; i < numPts; i++ {
		t := tmin + (tmax-tmin)*float64(i)/float64(numPts-1)
		next := c.Point(t)
		length += prev.Distance(next)
		prev = next
	}
	return length
}
