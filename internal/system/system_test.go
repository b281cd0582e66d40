package system

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/defs"
	"sui-tower-defense/internal/entity"
	"sui-tower-defense/internal/event"
	"sui-tower-defense/internal/types"
	"sui-tower-defense/pkg/track"
)

type recorder struct {
	events []event.Event
}

func (r *recorder) OnEvent(e event.Event) { r.events = append(r.events, e) }

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

type world struct {
	ecs       *entity.ECS
	track     *track.Track
	events    *event.Dispatcher
	rec       *recorder
	movement  *MovementSystem
	combat    *CombatSystem
	projects  *ProjectileSystem
	effects   *VisualEffectSystem
	state     *StateSystem
	waves     *WaveSystem
	placement *PlacementSystem
}

// newWorld - прямая дорога (0,0)-(100,0)-(100,100).
func newWorld(t *testing.T, policy config.TargetPolicy, plans ...defs.WavePlan) *world {
	t.Helper()
	tr := track.MustNew(track.Point{X: 0, Y: 0}, track.Point{X: 100, Y: 0}, track.Point{X: 100, Y: 100})
	return newWorldOn(t, tr, policy, plans...)
}

func newWorldOn(t *testing.T, tr *track.Track, policy config.TargetPolicy, plans ...defs.WavePlan) *world {
	t.Helper()
	log := zerolog.Nop()
	ecs := entity.NewECS(config.StartingLives)
	events := event.NewDispatcher()
	rec := &recorder{}
	for _, et := range []event.EventType{
		event.EnemySpawned, event.EnemyKilled, event.EnemyBreached, event.TowerPlaced, event.TowerFired,
		event.ProjectileImpact, event.WaveStarted, event.WaveCleared, event.PhaseChanged,
	} {
		events.Subscribe(et, rec)
	}
	state := NewStateSystem(ecs, events, log)
	return &world{
		ecs:       ecs,
		track:     tr,
		events:    events,
		rec:       rec,
		movement:  NewMovementSystem(ecs, tr, events, log),
		combat:    NewCombatSystem(ecs, events, policy, log),
		projects:  NewProjectileSystem(ecs, events, log),
		effects:   NewVisualEffectSystem(ecs),
		state:     state,
		waves:     NewWaveSystem(ecs, tr, events, state, plans, log),
		placement: NewPlacementSystem(ecs, tr, events, log),
	}
}

// tick - один шаг симуляции в том же порядке, что и в игре.
func (w *world) tick() {
	w.ecs.Tick++
	w.ecs.GameTime += config.TickMillis
	w.movement.Update()
	w.combat.Update()
	w.projects.Update()
	RemoveDeadEnemies(w.ecs, w.events)
	w.effects.Update()
	w.waves.Update(config.TickMillis)
	w.state.Update()
}

func (w *world) addEnemy(x, y float64, hp int, speed float64, index int) types.EntityID {
	id := w.ecs.NewEntity()
	w.ecs.Positions[id] = &component.Position{X: x, Y: y}
	w.ecs.Velocities[id] = &component.Velocity{Speed: speed}
	w.ecs.Paths[id] = &component.PathFollower{Index: index}
	w.ecs.Healths[id] = &component.Health{Value: hp, Max: hp}
	w.ecs.Enemies[id] = &component.Enemy{Kind: component.MonsterNormal}
	return id
}

func (w *world) addTower(x, y float64, damage int, rng, interval float64) types.EntityID {
	id := w.ecs.NewEntity()
	w.ecs.Positions[id] = &component.Position{X: x, Y: y}
	w.ecs.Towers[id] = &component.Tower{Damage: damage, Range: rng, FireInterval: interval, Rarity: defs.RarityCommon}
	w.ecs.Turrets[id] = &component.TurretComponent{TurnSpeed: 0.25}
	w.ecs.TowersPlaced++
	return id
}

func plan(n int, hp int, speed float64) defs.WavePlan {
	return defs.WavePlan{
		Enemies:         defs.ChallengeWave(hp, speed, component.MonsterNormal, defs.RarityCommon, n),
		SpawnIntervalMs: config.ChallengeSpawnMillis,
	}
}

func TestMovement_StepsAndClampsOntoWaypoint(t *testing.T) {
	w := newWorld(t, config.TargetFirst)
	id := w.addEnemy(0, 0, 100, 30, 0)

	w.movement.Update()
	assert.InDelta(t, 30, w.ecs.Positions[id].X, 1e-9)

	w.movement.Update()
	w.movement.Update()
	assert.InDelta(t, 90, w.ecs.Positions[id].X, 1e-9)

	// осталось 10 < 30: встаёт ровно в точку, без перелёта
	w.movement.Update()
	assert.Equal(t, component.Position{X: 100, Y: 0}, *w.ecs.Positions[id])
	assert.Equal(t, 1, w.ecs.Paths[id].Index)

	w.movement.Update()
	assert.InDelta(t, 100, w.ecs.Positions[id].X, 1e-9)
	assert.InDelta(t, 30, w.ecs.Positions[id].Y, 1e-9)
}

func TestMovement_BreachCostsOneLifeAndRemovesEnemy(t *testing.T) {
	w := newWorld(t, config.TargetFirst)
	id := w.addEnemy(100, 95, 100, 10, 1)

	w.movement.Update()

	assert.Equal(t, config.StartingLives-1, w.ecs.Lives)
	assert.NotContains(t, w.ecs.Enemies, id)
	assert.NotContains(t, w.ecs.Positions, id)
	assert.Equal(t, 1, w.ecs.Breached)
	assert.Equal(t, 1, w.rec.count(event.EnemyBreached))
}

func TestMovement_SkipsBrokenEnemy(t *testing.T) {
	w := newWorld(t, config.TargetFirst)
	broken := w.ecs.NewEntity()
	w.ecs.Enemies[broken] = &component.Enemy{}
	ok := w.addEnemy(0, 0, 10, 5, 0)

	assert.NotPanics(t, w.movement.Update)
	assert.InDelta(t, 5, w.ecs.Positions[ok].X, 1e-9)
}

func TestCombat_FirstPolicyPicksEarliestSpawned(t *testing.T) {
	w := newWorld(t, config.TargetFirst)
	tower := w.addTower(50, 50, 10, 100, 1000)
	far := w.addEnemy(0, 0, 100, 1, 0)
	w.addEnemy(50, 10, 100, 1, 0)

	w.combat.Update()

	require.Len(t, w.ecs.Projectiles, 1)
	for _, p := range w.ecs.Projectiles {
		assert.Equal(t, w.ecs.Positions[far].X, p.TargetX)
		assert.Equal(t, w.ecs.Positions[far].Y, p.TargetY)
	}
	assert.True(t, w.ecs.Towers[tower].HasFired)
	assert.Equal(t, 1, w.rec.count(event.TowerFired))
}

func TestCombat_NearestPolicyBreaksTiesByID(t *testing.T) {
	w := newWorld(t, config.TargetNearest)
	w.addTower(50, 50, 10, 100, 1000)
	w.addEnemy(0, 0, 100, 1, 0)
	tieA := w.addEnemy(50, 20, 100, 1, 0)
	w.addEnemy(50, 80, 100, 1, 0)

	w.combat.Update()

	require.Len(t, w.ecs.Projectiles, 1)
	for _, p := range w.ecs.Projectiles {
		assert.Equal(t, w.ecs.Positions[tieA].Y, p.TargetY)
	}
}

func TestCombat_RangeBoundaryIsInclusive(t *testing.T) {
	w := newWorld(t, config.TargetFirst)
	w.addTower(0, 100, 10, 100, 1000)
	w.addEnemy(0, 0, 100, 1, 0)

	w.combat.Update()
	assert.Len(t, w.ecs.Projectiles, 1)
}

func TestCombat_NoTargetOutOfRange(t *testing.T) {
	w := newWorld(t, config.TargetFirst)
	tower := w.addTower(0, 100.5, 10, 100, 1000)
	w.addEnemy(0, 0, 100, 1, 0)

	w.combat.Update()
	assert.Empty(t, w.ecs.Projectiles)
	assert.False(t, w.ecs.Towers[tower].HasFired)
}

func TestCombat_RespectsFireInterval(t *testing.T) {
	w := newWorld(t, config.TargetFirst)
	tower := w.addTower(50, 50, 10, 200, 1000)
	w.addEnemy(50, 40, 10000, 0, 0)

	shots := 0
	for i := 0; i < 120; i++ {
		w.ecs.GameTime += config.TickMillis
		before := len(w.ecs.Projectiles)
		w.combat.Update()
		if len(w.ecs.Projectiles) > before {
			shots++
		}
		w.ecs.Projectiles = map[types.EntityID]*component.Projectile{}
	}
	// 2 секунды: выстрел сразу, затем раз в 1000 мс
	assert.Equal(t, 2, shots)
	assert.LessOrEqual(t, w.ecs.Towers[tower].LastFire, w.ecs.GameTime)
}

func TestProjectile_HitsNearestEnemyAtAimPoint(t *testing.T) {
	w := newWorld(t, config.TargetFirst)
	far := w.addEnemy(20, 0, 100, 0, 0)
	near := w.addEnemy(5, 0, 100, 0, 0)

	id := w.ecs.NewEntity()
	w.ecs.Positions[id] = &component.Position{X: 0, Y: 40}
	w.ecs.Projectiles[id] = &component.Projectile{TargetX: 0, TargetY: 0, Speed: 15, Damage: 25}

	w.projects.Update()
	w.projects.Update()
	assert.Equal(t, 100, w.ecs.Healths[near].Value)

	w.projects.Update()
	assert.Empty(t, w.ecs.Projectiles)
	assert.Equal(t, 75, w.ecs.Healths[near].Value)
	assert.Equal(t, 100, w.ecs.Healths[far].Value)
	assert.Len(t, w.ecs.HitEffects, 1)
	assert.Equal(t, 1, w.rec.count(event.ProjectileImpact))
}

func TestProjectile_MissWithoutEnemyNearby(t *testing.T) {
	w := newWorld(t, config.TargetFirst)
	w.addEnemy(90, 0, 100, 0, 0)

	id := w.ecs.NewEntity()
	w.ecs.Positions[id] = &component.Position{X: 0, Y: 5}
	w.ecs.Projectiles[id] = &component.Projectile{TargetX: 0, TargetY: 0, Speed: 15, Damage: 25}

	w.projects.Update()
	assert.Empty(t, w.ecs.Projectiles)
	assert.Empty(t, w.ecs.HitEffects)
	assert.Zero(t, w.rec.count(event.ProjectileImpact))
}

func TestFindEnemyNear_TieGoesToLowestID(t *testing.T) {
	w := newWorld(t, config.TargetFirst)
	a := w.addEnemy(10, 0, 1, 0, 0)
	w.addEnemy(-10, 0, 1, 0, 0)

	id, ok := FindEnemyNear(w.ecs, 0, 0, config.HitRadius)
	require.True(t, ok)
	assert.Equal(t, a, id)

	_, ok = FindEnemyNear(w.ecs, 500, 500, config.HitRadius)
	assert.False(t, ok)
}

func TestRemoveDeadEnemies_SameTick(t *testing.T) {
	w := newWorld(t, config.TargetFirst)
	dead := w.addEnemy(0, 0, 10, 0, 0)
	alive := w.addEnemy(0, 0, 10, 0, 0)
	ApplyDamage(w.ecs, dead, 50)
	ApplyDamage(w.ecs, alive, -5)

	assert.Equal(t, 1, RemoveDeadEnemies(w.ecs, w.events))
	assert.NotContains(t, w.ecs.Enemies, dead)
	assert.Equal(t, 10, w.ecs.Healths[alive].Value)
	assert.Equal(t, 1, w.ecs.Killed)
	assert.Equal(t, 1, w.rec.count(event.EnemyKilled))
}

func TestVisualEffects_ExpireAfterMaxFrames(t *testing.T) {
	w := newWorld(t, config.TargetFirst)
	id := w.ecs.NewEntity()
	w.ecs.HitEffects[id] = &component.HitEffect{MaxFrames: config.HitEffectFrames}

	for i := 0; i < config.HitEffectFrames-1; i++ {
		w.effects.Update()
	}
	require.Contains(t, w.ecs.HitEffects, id)
	w.effects.Update()
	assert.NotContains(t, w.ecs.HitEffects, id)
}

func TestHealthBarColor(t *testing.T) {
	assert.Equal(t, config.HPGoodColor, HealthBarColor(1))
	assert.Equal(t, config.HPGoodColor, HealthBarColor(0.51))
	assert.Equal(t, config.HPWarnColor, HealthBarColor(0.5))
	assert.Equal(t, config.HPWarnColor, HealthBarColor(0.26))
	assert.Equal(t, config.HPBadColor, HealthBarColor(0.25))
	assert.Equal(t, config.HPBadColor, HealthBarColor(0))
}
