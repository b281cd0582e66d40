// pkg/track/track.go
package track

import (
	"errors"
	"math"
)

// ErrTooFewPoints возвращается, если у маршрута меньше двух точек.
var ErrTooFewPoints = errors.New("track: at least two waypoints are required")

// Point - точка на плоскости в пикселях
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Len returns the length of p treated as a vector.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist - евклидово расстояние между точками
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Track - неизменяемая последовательность точек, по которой идут враги.
// Соседние точки образуют прямые отрезки.
type Track struct {
	points []Point
}

// New создаёт маршрут. Точки копируются, поэтому вызывающий может
// переиспользовать свой срез.
func New(points ...Point) (*Track, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	cp := make([]Point, len(points))
	copy(cp, points)
	return &Track{points: cp}, nil
}

// MustNew is New for package-level literals; it panics on invalid input.
func MustNew(points ...Point) *Track {
	t, err := New(points...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of waypoints.
func (t *Track) Len() int {
	return len(t.points)
}

// At returns waypoint i.
func (t *Track) At(i int) Point {
	return t.points[i]
}

// Start - точка входа врагов.
func (t *Track) Start() Point {
	return t.points[0]
}

// End - точка выхода (прорыв).
func (t *Track) End() Point {
	return t.points[len(t.points)-1]
}

// Points returns a copy of the waypoints.
func (t *Track) Points() []Point {
	cp := make([]Point, len(t.points))
	copy(cp, t.points)
	return cp
}

// Length - суммарная длина всех отрезков.
func (t *Track) Length() float64 {
	total := 0.0
	for i := 0; i < len(t.points)-1; i++ {
		total += t.points[i].Dist(t.points[i+1])
	}
	return total
}

// Distance возвращает минимальное расстояние от p до любого отрезка маршрута.
func (t *Track) Distance(p Point) float64 {
	best := math.MaxFloat64
	for i := 0; i < len(t.points)-1; i++ {
		if d := DistanceToSegment(p, t.points[i], t.points[i+1]); d < best {
			best = d
		}
	}
	return best
}

// DistanceToSegment - расстояние от точки до отрезка ab.
// Проекция зажимается в [0, 1]; вырожденный отрезок считается точкой a.
func DistanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.Dist(a)
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / lenSq
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	closest := Point{X: a.X + t*ab.X, Y: a.Y + t*ab.Y}
	return p.Dist(closest)
}
