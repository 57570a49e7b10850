package geomfit

import (
	"fmt"
	"math"
)

// CrossTangentOffset is an evaluator representing an offset curve from a
// given position curve, along a direction obtained by blending two
// cross-tangent curves, and with an offset distance which is a linear
// function interpolating the blended cross-tangent length at the start and
// end of the curve.
//
// To find the offset direction at a parameter, the two cross-tangent curves
// are evaluated there, multiplied by their respective blending functions
// (dimension 1), and added together.
type CrossTangentOffset struct {
	posCurve   Curve
	tangCurves [2]Curve
	blends     [2]Curve
	// Blended cross-tangent length at the domain's start and end; the
	// offset magnitude interpolates linearly between them.
	len0, len1 float64
}

var _ EvalCurve = (*CrossTangentOffset)(nil)

// NewCrossTangentOffset returns an offset evaluator over posCurve, with
// cross-tangent curves tangCv1 and tangCv2 weighted by the scalar blending
// curves blend1 and blend2. The blending curves must be one-dimensional;
// the tangent curves must live in posCurve's space. All five curves share
// posCurve's parameter domain.
func NewCrossTangentOffset(posCurve, tangCv1, tangCv2, blend1, blend2 Curve) *CrossTangentOffset {
	if blend1.Dim() != 1 || blend2.Dim() != 1 {
		panic(fmt.Sprintf("geomfit: blending curves must be scalar, got dimensions %d and %d", blend1.Dim(), blend2.Dim()))
	}
	if tangCv1.Dim() != posCurve.Dim() || tangCv2.Dim() != posCurve.Dim() {
		panic(fmt.Sprintf("geomfit: cross-tangent curves must live in the position curve's space (dimension %d)", posCurve.Dim()))
	}
	c := &CrossTangentOffset{
		posCurve:   posCurve,
		tangCurves: [2]Curve{tangCv1, tangCv2},
		blends:     [2]Curve{blend1, blend2},
	}
	c.len0 = c.evalBlend(posCurve.Start()).Norm()
	c.len1 = c.evalBlend(posCurve.End()).Norm()
	return c
}

// Start returns the start parameter of the position curve's domain.
func (c *CrossTangentOffset) Start() float64 {
	return c.posCurve.Start()
}

// End returns the end parameter of the position curve's domain.
func (c *CrossTangentOffset) End() float64 {
	return c.posCurve.End()
}

// Dim returns the dimension of the space the curve lives in.
func (c *CrossTangentOffset) Dim() int {
	return c.posCurve.Dim()
}

// evalBlend evaluates the blended cross tangent at parameter t.
func (c *CrossTangentOffset) evalBlend(t float64) Point {
	b0 := c.blends[0].Point(t)[0]
	b1 := c.blends[1].Point(t)[0]
	return c.tangCurves[0].Point(t).Scale(b0).Add(c.tangCurves[1].Point(t).Scale(b1))
}

// evalBlendDerivs evaluates the blended cross tangent and its derivatives
// up to the given order, by the product rule over each blend/tangent pair.
func (c *CrossTangentOffset) evalBlendDerivs(t float64, order int) []Point {
	dim := c.Dim()
	out := make([]Point, order+1)
	for k := range out {
		out[k] = make(Point, dim)
	}
	for i := 0; i < 2; i++ {
		bd := c.blends[i].Derivs(t, order)
		td := c.tangCurves[i].Derivs(t, order)
		for k := 0; k <= order; k++ {
			for j := 0; j <= k; j++ {
				out[k] = out[k].Add(td[k-j].Scale(float64(binomial(k, j)) * bd[j][0]))
			}
		}
	}
	return out
}

// offsetLength returns the offset magnitude and its first derivative at
// parameter t: a linear interpolation between the blended-tangent lengths
// at the domain ends.
func (c *CrossTangentOffset) offsetLength(t float64) (float64, float64) {
	span := c.End() - c.Start()
	s := (t - c.Start()) / span
	return c.len0 + s*(c.len1-c.len0), (c.len1 - c.len0) / span
}

// Eval evaluates the curve at parameter t: the position curve offset along
// the unit blended cross tangent by the interpolated offset length.
func (c *CrossTangentOffset) Eval(t float64) Point {
	b := c.evalBlend(t)
	length, _ := c.offsetLength(t)
	return c.posCurve.Point(t).Add(b.Scale(length / b.Norm()))
}

// EvalDerivs evaluates the curve and its derivatives at parameter t, by
// differentiating the offset composition through the constituent curves'
// own derivative evaluations. At most second derivatives are supported;
// asking for more panics.
func (c *CrossTangentOffset) EvalDerivs(t float64, order int) []Point {
	if order > 2 {
		panic(fmt.Sprintf("geomfit: cross-tangent offset supports at most second derivatives, got order %d", order))
	}
	if order == 0 {
		return []Point{c.Eval(t)}
	}

	pd := c.posCurve.Derivs(t, order)
	bd := c.evalBlendDerivs(t, order)
	length, dlength := c.offsetLength(t)

	// The curve is p(t) + g(t)·b(t) with g = L/‖b‖. Differentiate g
	// through the norm: ‖b‖′ = (b·b′)/‖b‖.
	nb := bd[0].Norm()
	dnb := bd[0].Dot(bd[1]) / nb
	g := length / nb
	dg := (dlength*nb - length*dnb) / (nb * nb)

	out := make([]Point, order+1)
	out[0] = pd[0].Add(bd[0].Scale(g))
	out[1] = pd[1].Add(bd[1].Scale(g)).Add(bd[0].Scale(dg))
	if order == 2 {
		// ‖b‖″ = (b′·b′ + b·b″ − ‖b‖′²)/‖b‖; L″ = 0.
		ddnb := (bd[1].Dot(bd[1]) + bd[0].Dot(bd[2]) - dnb*dnb) / nb
		ddg := -2*dlength*dnb/(nb*nb) - length*ddnb/(nb*nb) + 2*length*dnb*dnb/(nb*nb*nb)
		out[2] = pd[2].Add(bd[2].Scale(g)).Add(bd[1].Scale(2 * dg)).Add(bd[0].Scale(ddg))
	}
	return out
}

// ApproximationOK reports whether approxPos is an acceptable approximation
// of the curve at parameter t. Both tolerances are used: tol1 bounds the
// spatial deviation; when the deviation satisfies tol1 only in a borderline
// band, tol2 additionally requires the approximated cross tangent to lie
// within that angular tolerance of the plane spanned by the two tangent
// curves at t. The plane check applies in 3D space; for other dimensions,
// or when the tangent curves are parallel, the spatial check alone decides.
func (c *CrossTangentOffset) ApproximationOK(t float64, approxPos Point, tol1, tol2 float64) bool {
	pos := c.Eval(t)
	d := pos.Distance(approxPos)
	if d > tol1 {
		return false
	}
	if d < borderlineFraction*tol1 {
		return true
	}
	if c.Dim() != 3 {
		return true
	}
	normal := c.tangCurves[0].Point(t).Cross(c.tangCurves[1].Point(t))
	if normal.Norm() == 0 {
		return true
	}
	crosstan := approxPos.Sub(c.posCurve.Point(t))
	if crosstan.Norm() == 0 {
		return true
	}
	// Angle between the cross tangent and the plane: complement of its
	// angle with the plane normal.
	offPlane := math.Abs(math.Pi/2 - angleBetween(crosstan, normal))
	return offPlane <= tol2
}

// binomial returns the binomial coefficient C(n, k) for the small orders
// used by derivative composition.
func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	p := 1
	for i := 1; i <= k; i++ {
		p = p * (n - k + i) / i
	}
	return p
}
