// internal/system/placement.go
package system

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/defs"
	"sui-tower-defense/internal/entity"
	"sui-tower-defense/internal/event"
	"sui-tower-defense/internal/types"
	"sui-tower-defense/pkg/track"
)

// PlacementSystem - выбор башни из ростера и установка на поле.
// Все отказы возвращаются как текст статуса, состояние не меняется.
type PlacementSystem struct {
	ecs      *entity.ECS
	track    *track.Track
	events   *event.Dispatcher
	maxTower int
	selected *defs.TowerSource
	placed   map[string]bool
	log      zerolog.Logger
}

func NewPlacementSystem(ecs *entity.ECS, tr *track.Track, events *event.Dispatcher, log zerolog.Logger) *PlacementSystem {
	return &PlacementSystem{
		ecs:      ecs,
		track:    tr,
		events:   events,
		maxTower: config.MaxTowers,
		placed:   make(map[string]bool),
		log:      log,
	}
}

// Selected возвращает ожидающую установки башню.
func (s *PlacementSystem) Selected() (defs.TowerSource, bool) {
	if s.selected == nil {
		return defs.TowerSource{}, false
	}
	return *s.selected, true
}

// IsPlaced сообщает, стоит ли уже башня из этого источника.
func (s *PlacementSystem) IsPlaced(sourceID string) bool {
	return s.placed[sourceID]
}

// Select делает source ожидающей башней, заменяя прежний выбор.
func (s *PlacementSystem) Select(source defs.TowerSource) (string, bool) {
	if s.placed[source.ID] {
		return "Tower already placed", false
	}
	if s.ecs.TowersPlaced >= s.maxTower {
		return fmt.Sprintf("Max %d towers!", s.maxTower), false
	}
	src := source
	s.selected = &src
	return fmt.Sprintf("Selected %s tower - click on the field to place", defs.RarityName(source.Rarity)), true
}

// Deselect сбрасывает выбор.
func (s *PlacementSystem) Deselect() {
	s.selected = nil
}

// Place ставит выбранную башню в точку (x, y) поля.
func (s *PlacementSystem) Place(x, y float64) (string, bool) {
	if s.ecs.Phase != component.PhaseIdle {
		return "Cannot place towers now", false
	}
	if s.selected == nil {
		return "Select a tower first", false
	}
	if s.ecs.TowersPlaced >= s.maxTower {
		return fmt.Sprintf("Max %d towers!", s.maxTower), false
	}
	p := track.Point{X: x, Y: y}
	if s.track.Distance(p) < config.PathClearance {
		return "Too close to path!", false
	}
	for _, id := range s.ecs.TowerIDs() {
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		if math.Hypot(pos.X-x, pos.Y-y) < config.TowerSpacing {
			return "Too close to another tower!", false
		}
	}

	src := *s.selected
	id := s.ecs.NewEntity()
	s.ecs.Positions[id] = &component.Position{X: x, Y: y}
	s.ecs.Towers[id] = &component.Tower{
		SourceID:     src.ID,
		Damage:       src.Damage,
		Range:        src.Range,
		FireInterval: src.FireRate,
		Rarity:       src.Rarity,
	}
	s.ecs.Turrets[id] = &component.TurretComponent{Angle: -math.Pi / 2, TargetAngle: -math.Pi / 2, TurnSpeed: 0.25}
	s.ecs.TowersPlaced++
	s.placed[src.ID] = true
	s.selected = nil

	s.log.Info().Str("source", src.ID).Float64("x", x).Float64("y", y).Msg("tower placed")
	s.events.Dispatch(event.Event{Type: event.TowerPlaced, Data: id})
	return fmt.Sprintf("Tower placed! (%d/%d)", s.ecs.TowersPlaced, s.maxTower), true
}

// Click - щелчок по полю: установка, если есть выбор, иначе показ радиуса башни.
func (s *PlacementSystem) Click(x, y float64) (string, bool) {
	if s.selected != nil {
		return s.Place(x, y)
	}
	id, ok := s.towerAt(x, y)
	if !ok {
		return "", false
	}
	tower := s.ecs.Towers[id]
	tower.Selected = !tower.Selected
	return "", true
}

func (s *PlacementSystem) towerAt(x, y float64) (types.EntityID, bool) {
	var (
		best     types.EntityID
		bestDist = math.Inf(1)
		found    bool
	)
	for _, id := range s.ecs.TowerIDs() {
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		d := math.Hypot(pos.X-x, pos.Y-y)
		if d <= config.TowerSelectRadius && d < bestDist {
			best, bestDist, found = id, d, true
		}
	}
	return best, found
}
