// component/movement.go
package component

// Position - компонент позиции (пиксели игрового поля)
type Position struct {
	X, Y float64
}

// Velocity - компонент скорости, пикселей за тик симуляции
type Velocity struct {
	Speed float64
}

// PathFollower - прогресс врага по маршруту.
// Index - индекс начала текущего отрезка; цель - точка Index+1.
type PathFollower struct {
	Index int
}
