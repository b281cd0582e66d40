package component

// EnemyTemplate - параметры, с которыми спавнится враг.
type EnemyTemplate struct {
	HP     int
	Speed  float64
	Kind   MonsterKind
	Rarity int
}

// Wave - состояние текущей волны.
type Wave struct {
	Number        int
	Queue         []EnemyTemplate // кого ещё выпустить, по порядку
	Spawned       int
	SpawnTimer    float64 // мс с последнего спавна
	SpawnInterval float64 // мс
	Armed         bool    // таймер спавна активен
}

// Quota - общее число врагов волны.
func (w *Wave) Quota() int {
	return w.Spawned + len(w.Queue)
}

// Exhausted - все враги волны уже выпущены.
func (w *Wave) Exhausted() bool {
	return len(w.Queue) == 0
}
