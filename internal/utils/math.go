// internal/utils/math.go
package utils

import "math"

// RotateTowards поворачивает угол from к to не больше чем на maxStep радиан,
// выбирая кратчайшее направление.
func RotateTowards(from, to, maxStep float64) float64 {
	diff := NormalizeAngle(to - from)
	if math.Abs(diff) <= maxStep {
		return NormalizeAngle(to)
	}
	if diff > 0 {
		return NormalizeAngle(from + maxStep)
	}
	return NormalizeAngle(from - maxStep)
}

// NormalizeAngle нормализует угол в диапазон [-π, π]
func NormalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

