package geomfit

import (
	"fmt"
	"math"
	"strings"
)

// Point is a point or vector in n-dimensional space. The same type serves
// both roles; whether a value is interpreted as a position or as a direction
// depends on context, as is common in geometry kernels.
//
// All arithmetic methods return fresh values and never mutate their
// receiver. Mixing dimensions panics: operands must agree in length.
type Point []float64

// Pt returns the point with the given coordinates.
func Pt(coords ...float64) Point {
	pt := make(Point, len(coords))
	copy(pt, coords)
	return pt
}

// Dim returns the dimension of the space the point lives in.
func (pt Point) Dim() int {
	return len(pt)
}

func (pt Point) String() string {
	sb := &strings.Builder{}
	sb.WriteByte('(')
	for i, c := range pt {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "%g", c)
	}
	sb.WriteByte(')')
	return sb.String()
}

// Clone returns a copy of the point that shares no storage with it.
func (pt Point) Clone() Point {
	out := make(Point, len(pt))
	copy(out, pt)
	return out
}

func (pt Point) assertSameDim(o Point) {
	if len(pt) != len(o) {
		panic(fmt.Sprintf("geomfit: dimension mismatch: %d != %d", len(pt), len(o)))
	}
}

// Add adds two points componentwise and returns the resulting point.
func (pt Point) Add(o Point) Point {
	pt.assertSameDim(o)
	out := make(Point, len(pt))
	for i := range pt {
		out[i] = pt[i] + o[i]
	}
	return out
}

// Sub subtracts two points componentwise and returns the resulting point.
func (pt Point) Sub(o Point) Point {
	pt.assertSameDim(o)
	out := make(Point, len(pt))
	for i := range pt {
		out[i] = pt[i] - o[i]
	}
	return out
}

// Scale multiplies every coordinate by f and returns the resulting point.
func (pt Point) Scale(f float64) Point {
	out := make(Point, len(pt))
	for i := range pt {
		out[i] = pt[i] * f
	}
	return out
}

// Dot returns the dot product of pt and o.
func (pt Point) Dot(o Point) float64 {
	pt.assertSameDim(o)
	var sum float64
	for i := range pt {
		sum += pt[i] * o[i]
	}
	return sum
}

// Cross returns the cross product of pt and o. Both points must be
// three-dimensional.
func (pt Point) Cross(o Point) Point {
	if len(pt) != 3 || len(o) != 3 {
		panic("geomfit: cross product requires 3D operands")
	}
	return Point{
		pt[1]*o[2] - pt[2]*o[1],
		pt[2]*o[0] - pt[0]*o[2],
		pt[0]*o[1] - pt[1]*o[0],
	}
}

// Norm returns the euclidean length of the vector.
func (pt Point) Norm() float64 {
	return math.Sqrt(pt.Dot(pt))
}

// Norm2 returns the squared euclidean length of the vector.
//
// This function is more efficient than squaring the result of [Point.Norm].
func (pt Point) Norm2() float64 {
	return pt.Dot(pt)
}

// Normalize returns a vector of length 1.0 with the same direction.
// This produces a NaN vector if the length is 0.
func (pt Point) Normalize() Point {
	return pt.Scale(1.0 / pt.Norm())
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	return math.Sqrt(pt.DistanceSquared(o))
}

// DistanceSquared returns the squared euclidean distance between two points.
func (pt Point) DistanceSquared(o Point) float64 {
	pt.assertSameDim(o)
	var sum float64
	for i := range pt {
		d := pt[i] - o[i]
		sum += d * d
	}
	return sum
}

// Lerp linearly interpolates between two points.
func (pt Point) Lerp(o Point, t float64) Point {
	pt.assertSameDim(o)
	out := make(Point, len(pt))
	for i := range pt {
		out[i] = pt[i] + t*(o[i]-pt[i])
	}
	return out
}

// angleBetween returns the angle between two vectors, in radians. Zero
// vectors are treated as parallel to anything.
func angleBetween(a, b Point) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	cos := a.Dot(b) / (na * nb)
	return math.Acos(min(max(cos, -1), 1))
}

// IsNaN reports whether at least one coordinate is NaN.
func (pt Point) IsNaN() bool {
	for _, c := range pt {
		if math.IsNaN(c) {
			return true
		}
	}
	return false
}
