package geomfit

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(3, 5), Pt(1, 2).Add(Pt(2, 3)))
	diff(t, Pt(-1, -1), Pt(1, 2).Sub(Pt(2, 3)))
	diff(t, Pt(2, 4, 6), Pt(1, 2, 3).Scale(2))
	diff(t, Pt(2, 4), Pt(1, 2).Lerp(Pt(3, 6), 0.5))
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10)
	p2 := Pt(0, 5)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(-11, 1)
	p4 := Pt(-7, -2)
	if d := p3.Distance(p4); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
	if d := p3.DistanceSquared(p4); d != 25 {
		t.Errorf("got squared distance %v, want 25", d)
	}
}

func TestPointDotCross(t *testing.T) {
	if d := Pt(1, 2, 3).Dot(Pt(4, 5, 6)); d != 32 {
		t.Errorf("got dot product %v, want 32", d)
	}
	diff(t, Pt(0, 0, 1), Pt(1, 0, 0).Cross(Pt(0, 1, 0)))
	diff(t, Pt(0, 0, -1), Pt(0, 1, 0).Cross(Pt(1, 0, 0)))
}

func TestPointNorm(t *testing.T) {
	if n := Pt(3, 4).Norm(); n != 5 {
		t.Errorf("got norm %v, want 5", n)
	}
	if n := Pt(3, 4).Norm2(); n != 25 {
		t.Errorf("got squared norm %v, want 25", n)
	}
	diff(t, Pt(0.6, 0.8), Pt(3, 4).Normalize())
}

func TestPointCloneIsIndependent(t *testing.T) {
	p := Pt(1, 2)
	q := p.Clone()
	q[0] = 9
	diff(t, Pt(1, 2), p)
}

func TestPointMismatchedDimsPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for mismatched dimensions")
		}
	}()
	Pt(1, 2).Add(Pt(1, 2, 3))
}

func TestAngleBetween(t *testing.T) {
	if a := angleBetween(Pt(1, 0), Pt(0, 1)); math.Abs(a-math.Pi/2) > 1e-12 {
		t.Errorf("got angle %v, want π/2", a)
	}
	if a := angleBetween(Pt(1, 0), Pt(-1, 0)); math.Abs(a-math.Pi) > 1e-12 {
		t.Errorf("got angle %v, want π", a)
	}
	if a := angleBetween(Pt(2, 0), Pt(5, 0)); a != 0 {
		t.Errorf("got angle %v, want 0", a)
	}
	// Zero vectors are parallel to anything.
	if a := angleBetween(Pt(0, 0), Pt(1, 1)); a != 0 {
		t.Errorf("got angle %v, want 0", a)
	}
}

func TestPointIsNaN(t *testing.T) {
	if Pt(1, 2).IsNaN() {
		t.Error("finite point reported as NaN")
	}
	if !Pt(1, math.NaN()).IsNaN() {
		t.Error("NaN coordinate not detected")
	}
}

func TestPointString(t *testing.T) {
	if s := Pt(1, 2.5, -3).String(); s != "(1, 2.5, -3)" {
		t.Errorf("got %q", s)
	}
}
