// internal/component/projectile.go
package component

import "image/color"

// Projectile - летящий снаряд. Точка прицеливания фиксируется при выстреле.
type Projectile struct {
	TargetX, TargetY float64
	PrevX, PrevY     float64 // позиция на прошлом тике, для шлейфа
	Speed            float64
	Damage           int
	Color            color.RGBA
}
