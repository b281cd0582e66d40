// pkg/render/shapes.go
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var fillImg *ebiten.Image

// whiteImage создаётся при первой отрисовке, а не при импорте пакета.
func whiteImage() *ebiten.Image {
	if fillImg == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		fillImg = img.SubImage(img.Bounds().Inset(1)).(*ebiten.Image)
	}
	return fillImg
}

// RegularPolygon возвращает вершины правильного n-угольника.
// rotation - угол первой вершины в радианах.
func RegularPolygon(cx, cy, r float64, n int, rotation float64) [][2]float32 {
	pts := make([][2]float32, n)
	for i := 0; i < n; i++ {
		a := rotation + 2*math.Pi*float64(i)/float64(n)
		pts[i] = [2]float32{float32(cx + r*math.Cos(a)), float32(cy + r*math.Sin(a))}
	}
	return pts
}

func polygonPath(pts [][2]float32) *vector.Path {
	var p vector.Path
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt[0], pt[1])
		} else {
			p.LineTo(pt[0], pt[1])
		}
	}
	p.Close()
	return &p
}

// FillPolygon заливает многоугольник цветом clr.
func FillPolygon(dst *ebiten.Image, pts [][2]float32, clr color.Color) {
	if len(pts) < 3 {
		return
	}
	vs, is := polygonPath(pts).AppendVerticesAndIndicesForFilling(nil, nil)
	drawVertices(dst, vs, is, clr)
}

// StrokePolygon обводит многоугольник линией толщины width.
func StrokePolygon(dst *ebiten.Image, pts [][2]float32, width float32, clr color.Color) {
	if len(pts) < 2 {
		return
	}
	vs, is := polygonPath(pts).AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    width,
		LineJoin: vector.LineJoinRound,
	})
	drawVertices(dst, vs, is, clr)
}

// StrokePolyline рисует ломаную (без замыкания), например дорогу.
func StrokePolyline(dst *ebiten.Image, pts [][2]float32, width float32, clr color.Color) {
	if len(pts) < 2 {
		return
	}
	var p vector.Path
	p.MoveTo(pts[0][0], pts[0][1])
	for _, pt := range pts[1:] {
		p.LineTo(pt[0], pt[1])
	}
	vs, is := p.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    width,
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	drawVertices(dst, vs, is, clr)
}

func drawVertices(dst *ebiten.Image, vs []ebiten.Vertex, is []uint16, clr color.Color) {
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	dst.DrawTriangles(vs, is, whiteImage(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
