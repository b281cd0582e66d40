package component

// HitEffect - косметическая вспышка в точке попадания.
// Стареет по кадрам, на игру не влияет.
type HitEffect struct {
	Frame     int
	MaxFrames int
}

// Progress возвращает долю прожитой жизни эффекта в [0, 1].
func (e *HitEffect) Progress() float64 {
	if e.MaxFrames <= 0 {
		return 1
	}
	p := float64(e.Frame) / float64(e.MaxFrames)
	if p > 1 {
		return 1
	}
	return p
}
