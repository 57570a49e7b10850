package geomfit

import "math"

// Concrete collaborator implementations used across the tests. The library
// itself consumes curves and surfaces only through the Curve and Surface
// interfaces, so simple analytic shapes are enough.

// lineCurve is a straight curve from a to b over [0, 1].
type lineCurve struct {
	a, b Point
}

func (l lineCurve) Point(t float64) Point { return l.a.Lerp(l.b, t) }

func (l lineCurve) Derivs(t float64, order int) []Point {
	out := make([]Point, order+1)
	out[0] = l.Point(t)
	for k := 1; k <= order; k++ {
		if k == 1 {
			out[k] = l.b.Sub(l.a)
		} else {
			out[k] = make(Point, l.a.Dim())
		}
	}
	return out
}

func (l lineCurve) Start() float64 { return 0 }
func (l lineCurve) End() float64   { return 1 }
func (l lineCurve) Dim() int       { return l.a.Dim() }

// constCurve evaluates to a fixed point everywhere on [0, 1].
type constCurve struct {
	v Point
}

func (c constCurve) Point(t float64) Point { return c.v.Clone() }

func (c constCurve) Derivs(t float64, order int) []Point {
	out := make([]Point, order+1)
	out[0] = c.v.Clone()
	for k := 1; k <= order; k++ {
		out[k] = make(Point, c.v.Dim())
	}
	return out
}

func (c constCurve) Start() float64 { return 0 }
func (c constCurve) End() float64   { return 1 }
func (c constCurve) Dim() int       { return c.v.Dim() }

// circleCurve is a full circle in the plane, parametrized by angle over
// [0, 2π].
type circleCurve struct {
	cx, cy, r float64
}

func (c circleCurve) Point(t float64) Point {
	return Pt(c.cx+c.r*math.Cos(t), c.cy+c.r*math.Sin(t))
}

func (c circleCurve) Derivs(t float64, order int) []Point {
	out := make([]Point, order+1)
	out[0] = c.Point(t)
	if order >= 1 {
		out[1] = Pt(-c.r*math.Sin(t), c.r*math.Cos(t))
	}
	if order >= 2 {
		out[2] = Pt(-c.r*math.Cos(t), -c.r*math.Sin(t))
	}
	for k := 3; k <= order; k++ {
		out[k] = out[k-2].Scale(-1)
	}
	return out
}

func (c circleCurve) Start() float64 { return 0 }
func (c circleCurve) End() float64   { return 2 * math.Pi }
func (c circleCurve) Dim() int       { return 2 }

// planeSurface is the z=0 plane, parametrized by (u, v) ↦ (u, v, 0) over a
// rectangular domain. Its closest-point search is exact: clamp the target's
// first two coordinates into the domain.
type planeSurface struct {
	dom RectDomain
}

func (p planeSurface) Point(u, v float64) Point { return Pt(u, v, 0) }

func (p planeSurface) Derivs(u, v float64, order int) []Point {
	out := make([]Point, 0, 3)
	out = append(out, p.Point(u, v))
	if order >= 1 {
		out = append(out, Pt(1, 0, 0), Pt(0, 1, 0))
	}
	if order >= 2 {
		panic("planeSurface: second derivatives not needed by tests")
	}
	return out
}

func (p planeSurface) Domain() RectDomain { return p.dom }
func (p planeSurface) Dim() int           { return 3 }

func (p planeSurface) ClosestPoint(pt Point, seedU, seedV float64, dom *RectDomain) (float64, float64, Point, float64) {
	d := p.dom
	if dom != nil {
		d = *dom
	}
	u, v := d.Clamp(pt[0], pt[1])
	clo := Pt(u, v, 0)
	return u, v, clo, clo.Distance(pt)
}
