package geomfit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProjection() (*ProjectCurveAndCrossTan, planeSurface) {
	surf := planeSurface{dom: RectDomain{UMin: 0, UMax: 10, VMin: 0, VMax: 10}}
	space := lineCurve{a: Pt(2, 3, 1), b: Pt(6, 3, 1)}
	crosstan := constCurve{v: Pt(0, 1, 0)}
	return NewProjectCurveAndCrossTan(space, crosstan, surf, nil, nil, 1e-6, nil), surf
}

func TestProjectEval(t *testing.T) {
	// Projecting the line z=1 onto the plane z=0 drops the z coordinate;
	// the cross tangent (0, 1, 0) is parallel to the plane and survives
	// unchanged.
	p, _ := testProjection()
	require.Equal(t, 2, p.Dim())
	require.Equal(t, 3, p.NumCurves())
	require.Equal(t, 0.0, p.Start())
	require.Equal(t, 1.0, p.End())

	pts := p.Eval(0.5)
	require.Len(t, pts, 3)
	diff(t, Pt(4, 3), pts[0])
	diff(t, Pt(4, 3, 0), pts[1])
	diff(t, Pt(0, 1, 0), pts[2])
}

func TestProjectEvalDeterministic(t *testing.T) {
	// The seeding scan is deterministic, so repeated evaluations agree
	// exactly.
	p, _ := testProjection()
	diff(t, p.Eval(0.25), p.Eval(0.25))
}

func TestProjectFixedEndpoints(t *testing.T) {
	// Configured parameter points override the search at the exact domain
	// boundaries, even though they are not the closest points.
	surf := planeSurface{dom: RectDomain{UMin: 0, UMax: 10, VMin: 0, VMax: 10}}
	space := lineCurve{a: Pt(2, 3, 1), b: Pt(6, 3, 1)}
	crosstan := constCurve{v: Pt(0, 1, 0)}
	p := NewProjectCurveAndCrossTan(space, crosstan, surf, Pt(0, 0), Pt(9, 9), 1e-6, nil)

	pts := p.Eval(0)
	diff(t, Pt(0, 0), pts[0])
	diff(t, Pt(0, 0, 0), pts[1])
	// The cross tangent is still measured from the overridden position.
	diff(t, Pt(2, 4, 0), pts[2])

	pts = p.Eval(1)
	diff(t, Pt(9, 9), pts[0])
	diff(t, Pt(9, 9, 0), pts[1])

	// Interior parameters are unaffected by the overrides.
	pts = p.Eval(0.5)
	diff(t, Pt(4, 3), pts[0])
}

func TestProjectDomainRestriction(t *testing.T) {
	// A restricted search domain clamps the projection into it.
	surf := planeSurface{dom: RectDomain{UMin: 0, UMax: 10, VMin: 0, VMax: 10}}
	space := lineCurve{a: Pt(2, 3, 1), b: Pt(6, 3, 1)}
	crosstan := constCurve{v: Pt(0, 1, 0)}
	restricted := &RectDomain{UMin: 3, UMax: 10, VMin: 0, VMax: 10}
	p := NewProjectCurveAndCrossTan(space, crosstan, surf, nil, nil, 1e-6, restricted)

	pts := p.Eval(0)
	diff(t, Pt(3, 3), pts[0])
	diff(t, Pt(3, 3, 0), pts[1])
}

func TestProjectEvalDerivs(t *testing.T) {
	p, _ := testProjection()

	ders := p.EvalDerivs(0.5, 1)
	require.Len(t, ders, 3)

	// The space tangent (4, 0, 0) lies in the plane, so its parameter
	// image is (4, 0) and the constant cross tangent has a zero
	// derivative.
	assert.InDelta(t, 4.0, ders[0][1][0], 1e-9)
	assert.InDelta(t, 0.0, ders[0][1][1], 1e-9)
	diff(t, Pt(4, 3), ders[0][0])

	assert.InDelta(t, 4.0, ders[1][1][0], 1e-9)
	assert.InDelta(t, 0.0, ders[1][1][1], 1e-9)
	assert.InDelta(t, 0.0, ders[1][1][2], 1e-9)

	for d := 0; d < 3; d++ {
		assert.InDelta(t, 0.0, ders[2][1][d], 1e-9)
	}

	// Order zero goes through the plain evaluation.
	pts := p.EvalDerivs(0.5, 0)
	diff(t, Pt(4, 3), pts[0][0])

	assert.Panics(t, func() { p.EvalDerivs(0.5, 2) })
}

func TestProjectApproximationOK(t *testing.T) {
	p, _ := testProjection()
	exact := p.Eval(0.5)

	// Exact approximations are well below the borderline band.
	assert.True(t, p.ApproximationOK(0.5, exact, 0.1, 0.01))

	// Too far off in space fails regardless of the angular tolerance.
	far := []Point{exact[0], Pt(4, 3, 0.2), exact[2]}
	assert.False(t, p.ApproximationOK(0.5, far, 0.1, 100))

	// In the borderline band the angular tolerance on the cross tangent
	// decides: a tilt of about 0.09 radians passes 0.2 but not 0.01.
	borderline := []Point{exact[0], exact[1], Pt(0, 1, 0.09)}
	assert.False(t, p.ApproximationOK(0.5, borderline, 0.1, 0.01))
	assert.True(t, p.ApproximationOK(0.5, borderline, 0.1, 0.2))
}

func TestProjectDimensionMismatchPanics(t *testing.T) {
	surf := planeSurface{dom: RectDomain{UMin: 0, UMax: 1, VMin: 0, VMax: 1}}
	flat := lineCurve{a: Pt(0, 0), b: Pt(1, 1)}
	crosstan := constCurve{v: Pt(0, 1, 0)}
	assert.Panics(t, func() {
		NewProjectCurveAndCrossTan(flat, crosstan, surf, nil, nil, 1e-6, nil)
	})
}
