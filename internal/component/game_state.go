package component

// Phase - фаза сессии
type Phase int

const (
	PhaseIdle   Phase = iota // расстановка башен
	PhaseActive              // враги выходят, идёт бой
	PhaseVictory
	PhaseDefeat
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Terminal сообщает, закончилась ли сессия.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}
