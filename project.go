package geomfit

import "fmt"

// Number of samples per parameter direction of the coarse pass that seeds
// the surface closest-point search.
const projectSeedSamples = 5

// Fraction of tol1 below which an approximation counts as satisfied "by
// far" and the secondary tolerance is not consulted.
const borderlineFraction = 0.8

// ProjectCurveAndCrossTan is an evaluator representing the projection of a
// space curve and its associated cross-tangent curve onto a surface. Three
// points are computed per parameter: the parameter-domain point of the
// projection, the corresponding space point, and the projected
// cross-tangent point.
//
// The evaluator borrows its input curves and surface for its lifetime and
// never mutates them.
type ProjectCurveAndCrossTan struct {
	spaceCrv    Curve
	crosstanCrv Curve
	surf        Surface
	startParPt  Point // optional override of the search at the domain start
	endParPt    Point // optional override of the search at the domain end
	epsgeo      float64
	domain      *RectDomain
}

var _ EvalCurveSet = (*ProjectCurveAndCrossTan)(nil)

// NewProjectCurveAndCrossTan returns a projection evaluator. spaceCrv is
// the space curve to project, crosstanCrv its cross-tangent curve, and surf
// the surface to project onto; the three must live in the same space.
// startParPt and endParPt may require the projected curve to start and end
// in specific points of the parameter domain; either may be nil. epsgeo is
// the geometric tolerance of the projection. If domain is non-nil it
// restricts the part of the surface's parameter domain that is considered.
func NewProjectCurveAndCrossTan(
	spaceCrv, crosstanCrv Curve,
	surf Surface,
	startParPt, endParPt Point,
	epsgeo float64,
	domain *RectDomain,
) *ProjectCurveAndCrossTan {
	if spaceCrv.Dim() != surf.Dim() || crosstanCrv.Dim() != surf.Dim() {
		panic(fmt.Sprintf("geomfit: projection inputs disagree in dimension: curve %d, cross tangent %d, surface %d",
			spaceCrv.Dim(), crosstanCrv.Dim(), surf.Dim()))
	}
	return &ProjectCurveAndCrossTan{
		spaceCrv:    spaceCrv,
		crosstanCrv: crosstanCrv,
		surf:        surf,
		startParPt:  startParPt,
		endParPt:    endParPt,
		epsgeo:      epsgeo,
		domain:      domain,
	}
}

// Start returns the start parameter of the space curve's domain.
func (p *ProjectCurveAndCrossTan) Start() float64 {
	return p.spaceCrv.Start()
}

// End returns the end parameter of the space curve's domain.
func (p *ProjectCurveAndCrossTan) End() float64 {
	return p.spaceCrv.End()
}

// Dim returns the dimension of the parameter domain, i.e. 2. The parameter
// curve is the set's primary curve; the space and cross-tangent curves live
// in the surface's space.
func (p *ProjectCurveAndCrossTan) Dim() int {
	return 2
}

// NumCurves returns the number of curves in the set, i.e. 3.
func (p *ProjectCurveAndCrossTan) NumCurves() int {
	return 3
}

// searchDomain returns the parameter region the projection may use.
func (p *ProjectCurveAndCrossTan) searchDomain() RectDomain {
	if p.domain != nil {
		return *p.domain
	}
	return p.surf.Domain()
}

// createSeed picks the start parameters for the surface search by a coarse
// scan of the search domain for the surface point nearest to pos. The scan
// is deterministic, so repeated evaluations at the same parameter see the
// same seed.
func (p *ProjectCurveAndCrossTan) createSeed(pos Point) (float64, float64) {
	dom := p.searchDomain()
	su, sv := dom.UMin, dom.VMin
	best := p.surf.Point(su, sv).DistanceSquared(pos)
	for i := 0; i < projectSeedSamples; i++ {
		u := dom.UMin + (dom.UMax-dom.UMin)*float64(i)/float64(projectSeedSamples-1)
		for j := 0; j < projectSeedSamples; j++ {
			v := dom.VMin + (dom.VMax-dom.VMin)*float64(j)/float64(projectSeedSamples-1)
			if d := p.surf.Point(u, v).DistanceSquared(pos); d < best {
				best = d
				su, sv = u, v
			}
		}
	}
	return su, sv
}

// project finds the surface parameters and position closest to pos.
func (p *ProjectCurveAndCrossTan) project(pos Point) (float64, float64, Point) {
	dom := p.searchDomain()
	su, sv := p.createSeed(pos)
	u, v, clo, _ := p.surf.ClosestPoint(pos, su, sv, &dom)
	return u, v, clo
}

// fixedPoint returns the fixed parameter point for t, if t is a domain
// boundary with an override configured.
func (p *ProjectCurveAndCrossTan) fixedPoint(t float64) Point {
	if p.startParPt != nil && t == p.Start() {
		return p.startParPt
	}
	if p.endParPt != nil && t == p.End() {
		return p.endParPt
	}
	return nil
}

// Eval evaluates the curve set at parameter t. The result holds the
// parameter-domain point of the projection, the projected space point, and
// the projected cross-tangent point (the cross tangent carried onto the
// surface: the difference between the projection of the cross-tangent tip
// and the projected position).
//
// At the domain boundaries a configured fixed parameter point overrides the
// search result, even when it is not the true closest point.
func (p *ProjectCurveAndCrossTan) Eval(t float64) []Point {
	pos := p.spaceCrv.Point(t)

	var u, v float64
	var clo Point
	if fixed := p.fixedPoint(t); fixed != nil {
		u, v = fixed[0], fixed[1]
		clo = p.surf.Point(u, v)
	} else {
		u, v, clo = p.project(pos)
	}

	tip := pos.Add(p.crosstanCrv.Point(t))
	dom := p.searchDomain()
	_, _, cloTip, _ := p.surf.ClosestPoint(tip, u, v, &dom)
	crosstan := cloTip.Sub(clo)

	return []Point{Pt(u, v), clo, crosstan}
}

// EvalDerivs evaluates the curve set and its derivatives at parameter t.
// At most first derivatives are supported; the projection's higher
// derivatives are not defined by this evaluator and asking for them panics.
//
// The parameter-domain derivative is the least-squares image of the space
// curve's tangent in the surface's tangent plane, obtained by solving the
// 2×2 normal equations of [Su Sv]·(du, dv) = c′(t) with the dense LU
// solver. The space derivative is that image mapped back through the
// partials, and the cross-tangent derivative is computed analogously from
// the tip curve.
func (p *ProjectCurveAndCrossTan) EvalDerivs(t float64, order int) [][]Point {
	if order > 1 {
		panic(fmt.Sprintf("geomfit: projection evaluator supports at most first derivatives, got order %d", order))
	}
	pts := p.Eval(t)
	if order == 0 {
		return [][]Point{{pts[0]}, {pts[1]}, {pts[2]}}
	}

	u, v := pts[0][0], pts[0][1]
	sd := p.surf.Derivs(u, v, 1)
	su, sv := sd[1], sd[2]

	cd := p.spaceCrv.Derivs(t, 1)
	du, dv, err := tangentPlaneCoords(su, sv, cd[1])
	if err != nil {
		panic("geomfit: degenerate surface tangent plane in projection derivative")
	}
	parDer := Pt(du, dv)
	spaceDer := su.Scale(du).Add(sv.Scale(dv))

	xd := p.crosstanCrv.Derivs(t, 1)
	tipDer := cd[1].Add(xd[1])
	tu, tv, err := tangentPlaneCoords(su, sv, tipDer)
	if err != nil {
		panic("geomfit: degenerate surface tangent plane in projection derivative")
	}
	crossDer := su.Scale(tu).Add(sv.Scale(tv)).Sub(spaceDer)

	return [][]Point{
		{pts[0], parDer},
		{pts[1], spaceDer},
		{pts[2], crossDer},
	}
}

// tangentPlaneCoords solves the normal equations projecting w onto the
// plane spanned by su and sv, returning w's coordinates in that basis.
func tangentPlaneCoords(su, sv, w Point) (float64, float64, error) {
	m := DenseOf(2, []float64{
		su.Dot(su), su.Dot(sv),
		su.Dot(sv), sv.Dot(sv),
	})
	rhs := []float64{w.Dot(su), w.Dot(sv)}
	if err := LUSolve(m, rhs); err != nil {
		return 0, 0, err
	}
	return rhs[0], rhs[1], nil
}

// ApproximationOK reports whether the approximation is within tolerance at
// parameter t. approxPos holds one point per curve in the set, as produced
// by a fitting driver. The spatial deviation of the projected point and of
// the cross-tangent point against tol1 decides directly, except in a
// borderline band below tol1 where the approximated cross tangent must
// additionally stay within the angular tolerance tol2 of the evaluated
// one.
func (p *ProjectCurveAndCrossTan) ApproximationOK(t float64, approxPos []Point, tol1, tol2 float64) bool {
	pts := p.Eval(t)
	d1 := pts[1].Distance(approxPos[1])
	dc := pts[2].Distance(approxPos[2])
	if d1 > tol1 || dc > tol1 {
		return false
	}
	if d1 < borderlineFraction*tol1 && dc < borderlineFraction*tol1 {
		return true
	}
	return angleBetween(pts[2], approxPos[2]) <= tol2
}
