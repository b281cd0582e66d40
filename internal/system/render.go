// internal/system/render.go
package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/defs"
	"sui-tower-defense/internal/entity"
	"sui-tower-defense/pkg/render"
	"sui-tower-defense/pkg/track"
)

// HealthBarColor - цвет полоски здоровья по доле оставшегося HP.
func HealthBarColor(fraction float64) color.RGBA {
	switch {
	case fraction > 0.5:
		return config.HPGoodColor
	case fraction > 0.25:
		return config.HPWarnColor
	default:
		return config.HPBadColor
	}
}

// RenderSystem рисует снимок симуляции. Только читает ECS.
type RenderSystem struct {
	ecs    *entity.ECS
	track  *track.Track
	ox, oy float32
}

func NewRenderSystem(ecs *entity.ECS, tr *track.Track) *RenderSystem {
	return &RenderSystem{ecs: ecs, track: tr, ox: config.FieldOffsetX, oy: config.FieldOffsetY}
}

// Draw рисует поле целиком, от фона к эффектам.
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, s.ox, s.oy, config.FieldWidth, config.FieldHeight, config.BackgroundColor, false)
	s.drawPath(screen)
	for _, id := range s.ecs.TowerIDs() {
		s.drawTower(screen, s.ecs.Towers[id], s.ecs.Positions[id], s.ecs.Turrets[id])
	}
	for _, id := range s.ecs.EnemyIDs() {
		s.drawEnemy(screen, s.ecs.Enemies[id], s.ecs.Positions[id], s.ecs.Healths[id])
	}
	for _, id := range entity.SortedIDs(s.ecs.Projectiles) {
		s.drawProjectile(screen, s.ecs.Projectiles[id], s.ecs.Positions[id])
	}
	for _, id := range entity.SortedIDs(s.ecs.HitEffects) {
		s.drawHitEffect(screen, s.ecs.HitEffects[id], s.ecs.Positions[id])
	}
}

func (s *RenderSystem) pt(x, y float64) (float32, float32) {
	return float32(x) + s.ox, float32(y) + s.oy
}

func (s *RenderSystem) drawPath(screen *ebiten.Image) {
	pts := make([][2]float32, 0, s.track.Len())
	for _, p := range s.track.Points() {
		x, y := s.pt(p.X, p.Y)
		pts = append(pts, [2]float32{x, y})
	}
	render.StrokePolyline(screen, pts, config.PathBorderWidth, config.PathBorderColor)
	render.StrokePolyline(screen, pts, config.PathWidth, config.PathColor)
}

func (s *RenderSystem) drawTower(screen *ebiten.Image, tower *component.Tower, pos *component.Position, turret *component.TurretComponent) {
	if pos == nil {
		return
	}
	x, y := s.pt(pos.X, pos.Y)
	pal := defs.Palette(tower.Rarity)

	if tower.Selected {
		vector.DrawFilledCircle(screen, x, y, float32(tower.Range), config.RangeFillColor, true)
		vector.StrokeCircle(screen, x, y, float32(tower.Range), 2, config.RangeStrokeColor, true)
	}

	// Тень
	vector.DrawFilledCircle(screen, x+3, y+4, 20, config.ShadowColor, true)

	// Шестиугольное основание
	base := render.RegularPolygon(float64(x), float64(y), 20, 6, math.Pi/6)
	render.FillPolygon(screen, base, config.TowerBaseColor)
	render.StrokePolygon(screen, base, 2, config.TowerBaseStroke)

	// Корпус цвета редкости
	vector.DrawFilledCircle(screen, x, y, 14, pal.Dark, true)
	vector.DrawFilledCircle(screen, x, y, 11, pal.Mid, true)
	vector.DrawFilledCircle(screen, x-3, y-3, 4, render.WithAlpha(pal.Light, 0.8), true)

	angle := -math.Pi / 2
	if turret != nil {
		angle = turret.Angle
	}
	bx := x + float32(math.Cos(angle)*22)
	by := y + float32(math.Sin(angle)*22)
	vector.StrokeLine(screen, x, y, bx, by, 6, render.DarkenColor(pal.Dark), true)
	vector.StrokeLine(screen, x, y, bx, by, 3, pal.Light, true)
	vector.DrawFilledCircle(screen, x, y, 5, pal.Glow, true)
}

func (s *RenderSystem) drawEnemy(screen *ebiten.Image, enemy *component.Enemy, pos *component.Position, health *component.Health) {
	if pos == nil || enemy == nil {
		return
	}
	x, y := s.pt(pos.X, pos.Y)
	def := defs.Monster(enemy.Kind)
	size := float32(def.Size)

	vector.DrawFilledCircle(screen, x+2, y+3, size, config.ShadowColor, true)
	switch enemy.Kind {
	case component.MonsterFast:
		// Вытянутый ромб
		body := [][2]float32{{x + size*1.3, y}, {x, y - size}, {x - size*1.3, y}, {x, y + size}}
		render.FillPolygon(screen, body, def.Shade)
		render.StrokePolygon(screen, body, 2, def.Color)
	case component.MonsterTank:
		body := render.RegularPolygon(float64(x), float64(y), float64(size), 8, math.Pi/8)
		render.FillPolygon(screen, body, def.Shade)
		render.StrokePolygon(screen, body, 3, def.Color)
	default:
		vector.DrawFilledCircle(screen, x, y, size, def.Shade, true)
		vector.DrawFilledCircle(screen, x, y, size-3, def.Color, true)
	}
	// Глаза
	vector.DrawFilledCircle(screen, x-size/3, y-size/4, 2.5, color.White, true)
	vector.DrawFilledCircle(screen, x+size/3, y-size/4, 2.5, color.White, true)

	if health == nil {
		return
	}
	const barW, barH = 30, 4
	bx, by := x-barW/2, y-size-10
	vector.DrawFilledRect(screen, bx-1, by-1, barW+2, barH+2, color.RGBA{0, 0, 0, 180}, false)
	frac := health.Fraction()
	vector.DrawFilledRect(screen, bx, by, float32(barW*frac), barH, HealthBarColor(frac), false)
}

func (s *RenderSystem) drawProjectile(screen *ebiten.Image, proj *component.Projectile, pos *component.Position) {
	if pos == nil {
		return
	}
	x, y := s.pt(pos.X, pos.Y)
	px, py := s.pt(proj.PrevX, proj.PrevY)

	vector.DrawFilledCircle(screen, x, y, 9, render.WithAlpha(proj.Color, 0.3), true)
	vector.StrokeLine(screen, px, py, x, y, 4, render.WithAlpha(proj.Color, 0.5), true)
	vector.DrawFilledCircle(screen, x, y, 4, config.BulletColor, true)
	vector.DrawFilledCircle(screen, x, y, 2, color.White, true)
}

func (s *RenderSystem) drawHitEffect(screen *ebiten.Image, fx *component.HitEffect, pos *component.Position) {
	if pos == nil {
		return
	}
	x, y := s.pt(pos.X, pos.Y)
	p := fx.Progress()
	alpha := 1 - p
	r := float32(8 + 22*p)

	vector.StrokeCircle(screen, x, y, r, 3, render.WithAlpha(color.RGBA{255, 152, 0, 255}, alpha), true)
	vector.StrokeCircle(screen, x, y, r*0.6, 2, render.WithAlpha(color.RGBA{255, 235, 59, 255}, alpha), true)
	if fx.Frame < 3 {
		vector.DrawFilledCircle(screen, x, y, 10, render.WithAlpha(color.RGBA{255, 255, 255, 255}, alpha), true)
	}
	for i := 0; i < 6; i++ {
		a := float64(i) * math.Pi / 3
		d := float64(r) * 1.2
		sx := x + float32(math.Cos(a)*d)
		sy := y + float32(math.Sin(a)*d)
		vector.DrawFilledCircle(screen, sx, sy, 2, render.WithAlpha(color.RGBA{255, 193, 7, 255}, alpha), true)
	}
}
