package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsShortTrack(t *testing.T) {
	_, err := New(Point{X: 1, Y: 1})
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = New()
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestNew_CopiesPoints(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}}
	tr, err := New(pts...)
	require.NoError(t, err)

	pts[1] = Point{X: 99, Y: 99}
	assert.Equal(t, Point{X: 10, Y: 0}, tr.End())

	out := tr.Points()
	out[0] = Point{X: -1, Y: -1}
	assert.Equal(t, Point{X: 0, Y: 0}, tr.Start())
}

func TestDistanceToSegment(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 10, Y: 0}

	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"above middle", Point{X: 5, Y: 3}, 3},
		{"before start clamps to a", Point{X: -3, Y: 4}, 5},
		{"after end clamps to b", Point{X: 13, Y: 4}, 5},
		{"on segment", Point{X: 7, Y: 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DistanceToSegment(tt.p, a, b), 1e-9)
		})
	}
}

func TestDistanceToSegment_Degenerate(t *testing.T) {
	a := Point{X: 2, Y: 2}
	assert.InDelta(t, 5.0, DistanceToSegment(Point{X: 5, Y: 6}, a, a), 1e-9)
}

func TestTrack_DistanceUsesClosestSegment(t *testing.T) {
	tr := MustNew(Point{0, 0}, Point{100, 0}, Point{100, 100})

	assert.InDelta(t, 10.0, tr.Distance(Point{X: 50, Y: 10}), 1e-9)
	assert.InDelta(t, 20.0, tr.Distance(Point{X: 80, Y: 60}), 1e-9)
	assert.InDelta(t, 200.0, tr.Length(), 1e-9)
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew(Point{}) })
}
