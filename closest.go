package geomfit

import "math"

const (
	// Iteration budget for the Newton refinement. Projection onto
	// well-behaved geometry converges in a handful of steps; anything
	// that needs more than this is reported as unconverged.
	closestMaxIter = 30
	// Number of samples of the coarse pass used to pick a start
	// parameter when the caller has no seed.
	closestSeedSamples = 17
	// Relative step threshold: the search has converged once an
	// unclamped Newton step moves the parameter by less than this
	// fraction of the search interval.
	closestStepTol = 1e-10
	// Residual threshold for the stationarity condition (c(t)−pt)·c′(t),
	// relative to the scale of the factors.
	closestResidualTol = 1e-12
)

// ClosestPointResult is the outcome of a closest-point search: the
// parameter of the closest point found, its position, and its distance to
// the target.
//
// Converged is false when the iteration budget ran out before the
// refinement settled; T, Pt and Dist then hold the best point seen, which
// is not guaranteed to be a local minimum.
type ClosestPointResult struct {
	T         float64
	Pt        Point
	Dist      float64
	Converged bool
}

// ClosestPoint finds the point on c, within the parameter interval
// [tmin, tmax], that minimizes the distance to pt. The start parameter is
// chosen by a coarse sampling pass over the interval; use
// [ClosestPointSeeded] when a good guess is already known.
func ClosestPoint(c Curve, pt Point, tmin, tmax float64) ClosestPointResult {
	seed := tmin
	best := math.Inf(1)
	for i := 0; i < closestSeedSamples; i++ {
		t := tmin + (tmax-tmin)*float64(i)/float64(closestSeedSamples-1)
		if d := c.Point(t).DistanceSquared(pt); d < best {
			best = d
			seed = t
		}
	}
	return ClosestPointSeeded(c, pt, tmin, tmax, seed)
}

// ClosestPointSeeded is [ClosestPoint] with a caller-supplied start
// parameter. The seed is clamped into [tmin, tmax].
//
// The search refines the parameter with Newton steps on the stationarity
// function f(t) = (c(t)−pt)·c′(t), clamping any step that would leave the
// interval. It stops once the step size or the residual f falls below an
// internal threshold.
func ClosestPointSeeded(c Curve, pt Point, tmin, tmax, seed float64) ClosestPointResult {
	t := min(max(seed, tmin), tmax)
	span := tmax - tmin

	bestT := t
	bestDist := math.Inf(1)
	record := func(t float64, pos Point) {
		if d := pos.DistanceSquared(pt); d < bestDist {
			bestDist = d
			bestT = t
		}
	}

	for _i := 0; _i < closestMaxIter; _i++ {
		ders := c.Derivs(t, 2)
		diff := ders[0].Sub(pt)
		record(t, ders[0])

		f := diff.Dot(ders[1])
		if math.Abs(f) <= closestResidualTol*(1.0+diff.Norm()*ders[1].Norm()) {
			return ClosestPointResult{t, ders[0], diff.Norm(), true}
		}

		df := ders[1].Norm2() + diff.Dot(ders[2])
		if df <= 0 {
			// Near a maximum or inflection of the distance function the
			// Newton denominator is useless; fall back to a first-order
			// step.
			df = ders[1].Norm2()
		}
		if df == 0 {
			// Degenerate curve point, no direction to move in.
			break
		}
		dt := -f / df
		next := min(max(t+dt, tmin), tmax)
		if math.Abs(next-t) <= closestStepTol*span {
			pos := c.Point(next)
			record(next, pos)
			return ClosestPointResult{next, pos, pos.Distance(pt), true}
		}
		t = next
	}

	pos := c.Point(bestT)
	return ClosestPointResult{bestT, pos, pos.Distance(pt), false}
}
