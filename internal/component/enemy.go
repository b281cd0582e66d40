package component

// MonsterKind - категория врага, влияет на скорость, здоровье и силуэт.
type MonsterKind int

const (
	MonsterNormal MonsterKind = iota + 1
	MonsterFast
	MonsterTank
)

func (k MonsterKind) String() string {
	switch k {
	case MonsterFast:
		return "fast"
	case MonsterTank:
		return "tank"
	default:
		return "normal"
	}
}

// Enemy представляет вражескую сущность.
type Enemy struct {
	Kind   MonsterKind
	Rarity int
}
