// Package tui рисует сессию в терминале через tcell: поле символами, HUD строками.
package tui

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	game "sui-tower-defense/internal/app"
	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/defs"
	"sui-tower-defense/internal/entity"
	"sui-tower-defense/internal/system"
	"sui-tower-defense/pkg/track"
)

const (
	hudRows = 2 // строка состояния сверху и строка сообщения снизу

	glyphGround     = ' '
	glyphPath       = '░'
	glyphProjectile = '*'
	glyphHit        = 'x'
)

// Cell - один символ кадра.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Frame - кадр поля в клетках терминала.
type Frame struct {
	W, H  int
	Cells []Cell
}

func newFrame(w, h int) *Frame {
	f := &Frame{W: w, H: h, Cells: make([]Cell, w*h)}
	for i := range f.Cells {
		f.Cells[i] = Cell{Ch: glyphGround, Style: tcell.StyleDefault}
	}
	return f
}

// At - клетка (x, y); за границами пустая клетка.
func (f *Frame) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return Cell{}
	}
	return f.Cells[y*f.W+x]
}

func (f *Frame) set(x, y int, ch rune, st tcell.Style) {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return
	}
	f.Cells[y*f.W+x] = Cell{Ch: ch, Style: st}
}

// Viewport переводит координаты поля в клетки и обратно.
type Viewport struct {
	Cols, Rows int
}

// ToCell - клетка, в которую попадает точка поля.
func (v Viewport) ToCell(x, y float64) (int, int) {
	cx := int(x * float64(v.Cols) / config.FieldWidth)
	cy := int(y * float64(v.Rows) / config.FieldHeight)
	if cx >= v.Cols {
		cx = v.Cols - 1
	}
	if cy >= v.Rows {
		cy = v.Rows - 1
	}
	return cx, cy
}

// ToField - центр клетки в координатах поля.
func (v Viewport) ToField(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * config.FieldWidth / float64(v.Cols),
		(float64(cy) + 0.5) * config.FieldHeight / float64(v.Rows)
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func enemyGlyph(kind component.MonsterKind) rune {
	switch kind {
	case component.MonsterFast:
		return 'f'
	case component.MonsterTank:
		return 'T'
	default:
		return 'n'
	}
}

// RenderField растеризует снимок: дорога, башни, враги, снаряды, вспышки.
// Башни подписаны цифрой редкости, враги буквой вида с цветом по здоровью.
func RenderField(ecs *entity.ECS, tr *track.Track, v Viewport) *Frame {
	f := newFrame(v.Cols, v.Rows)
	pathStyle := tcell.StyleDefault.Foreground(rgb(config.PathColor))
	for cy := 0; cy < v.Rows; cy++ {
		for cx := 0; cx < v.Cols; cx++ {
			x, y := v.ToField(cx, cy)
			if tr.Distance(track.Point{X: x, Y: y}) <= config.PathWidth/2 {
				f.set(cx, cy, glyphPath, pathStyle)
			}
		}
	}

	for _, id := range ecs.TowerIDs() {
		tower, pos := ecs.Towers[id], ecs.Positions[id]
		if pos == nil {
			continue
		}
		cx, cy := v.ToCell(pos.X, pos.Y)
		st := tcell.StyleDefault.Foreground(rgb(defs.Palette(tower.Rarity).Glow)).Bold(true)
		if tower.Selected {
			st = st.Reverse(true)
		}
		f.set(cx, cy, rune('0'+tower.Rarity%10), st)
	}

	for _, id := range ecs.EnemyIDs() {
		enemy, pos := ecs.Enemies[id], ecs.Positions[id]
		if pos == nil {
			continue
		}
		clr := config.HPGoodColor
		if h := ecs.Healths[id]; h != nil {
			clr = system.HealthBarColor(h.Fraction())
		}
		cx, cy := v.ToCell(pos.X, pos.Y)
		f.set(cx, cy, enemyGlyph(enemy.Kind), tcell.StyleDefault.Foreground(rgb(clr)).Bold(true))
	}

	bullet := tcell.StyleDefault.Foreground(rgb(config.BulletColor))
	for _, id := range entity.SortedIDs(ecs.Projectiles) {
		if pos := ecs.Positions[id]; pos != nil {
			cx, cy := v.ToCell(pos.X, pos.Y)
			f.set(cx, cy, glyphProjectile, bullet)
		}
	}
	hit := tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	for _, id := range entity.SortedIDs(ecs.HitEffects) {
		if pos := ecs.Positions[id]; pos != nil {
			cx, cy := v.ToCell(pos.X, pos.Y)
			f.set(cx, cy, glyphHit, hit)
		}
	}
	return f
}

// StatusLine - верхняя строка HUD.
func StatusLine(g *game.Game) string {
	ecs := g.ECS
	wave := 0
	if ecs.Wave != nil {
		wave = ecs.Wave.Number
	}
	line := fmt.Sprintf("Lives %d/%d  Wave %d/%d  Killed %d  %s  x%d",
		ecs.Lives, config.StartingLives, wave, g.TotalWaves(), ecs.Killed, ecs.Phase, g.SpeedMultiplier())
	if g.IsPaused() {
		line += "  PAUSED"
	}
	return line
}

// RosterLine - ростер одной строкой: номер, редкость, отметка о постройке.
func RosterLine(entries []game.RosterEntry) string {
	line := ""
	for i, e := range entries {
		mark := " "
		switch {
		case e.Selected:
			mark = ">"
		case e.Placed:
			mark = "+"
		}
		line += fmt.Sprintf("%s%d:%s ", mark, i+1, defs.RarityName(e.Source.Rarity))
	}
	return line
}
