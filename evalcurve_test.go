package geomfit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimatedCurveLengthLine(t *testing.T) {
	// The linear approximation of a straight line is exact for any number
	// of samples.
	l := lineCurve{a: Pt(1, 2, 3), b: Pt(4, 6, 3)}
	assert.InDelta(t, 5.0, EstimatedCurveLength(l, 0, 1, 2), 1e-12)
	assert.InDelta(t, 5.0, EstimatedCurveLength(l, 0, 1, 100), 1e-12)

	// A sub-interval measures the corresponding fraction.
	assert.InDelta(t, 2.5, EstimatedCurveLength(l, 0.25, 0.75, 10), 1e-12)
}

func TestEstimatedCurveLengthCircle(t *testing.T) {
	c := circleCurve{cx: 1, cy: -2, r: 1}
	got := EstimatedCurveLength(c, 0, 2*math.Pi, 200)
	assert.InDelta(t, 2*math.Pi, got, 1e-3)

	// Too few samples for a full circle underestimates badly but is still
	// a valid chord sum.
	coarse := EstimatedCurveLength(c, 0, 2*math.Pi, 3)
	assert.Less(t, coarse, got)
	assert.Greater(t, coarse, 0.0)
}

func TestEstimatedCurveLengthSampleFloor(t *testing.T) {
	// Sample counts below 2 fall back to the default of 4.
	c := circleCurve{cx: 0, cy: 0, r: 1}
	want := EstimatedCurveLength(c, 0, math.Pi, 4)
	assert.Equal(t, want, EstimatedCurveLength(c, 0, math.Pi, 0))
	assert.Equal(t, want, EstimatedCurveLength(c, 0, math.Pi, 1))
	assert.Equal(t, want, EstimatedCurveLength(c, 0, math.Pi, -5))
}

func TestRectDomain(t *testing.T) {
	d := RectDomain{UMin: 0, UMax: 2, VMin: -1, VMax: 1}
	assert.True(t, d.Contains(1, 0))
	assert.True(t, d.Contains(0, -1))
	assert.False(t, d.Contains(2.1, 0))
	assert.False(t, d.Contains(1, 1.5))

	u, v := d.Clamp(3, -4)
	assert.Equal(t, 2.0, u)
	assert.Equal(t, -1.0, v)
	u, v = d.Clamp(0.5, 0.5)
	assert.Equal(t, 0.5, u)
	assert.Equal(t, 0.5, v)
}
