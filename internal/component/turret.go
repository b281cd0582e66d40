package component

// TurretComponent отвечает за поворот ствола башни.
type TurretComponent struct {
	// Angle - текущий угол ствола в радианах.
	Angle float64
	// TargetAngle - угол, к которому стремится ствол.
	TargetAngle float64
	// TurnSpeed - максимальный поворот за тик, радианы.
	TurnSpeed float64
}
