package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/types"
)

func TestECS_NewEntityIsMonotonic(t *testing.T) {
	ecs := NewECS(10)
	a := ecs.NewEntity()
	b := ecs.NewEntity()
	assert.Less(t, a, b)
	assert.Equal(t, component.PhaseIdle, ecs.Phase)
	assert.Equal(t, 10, ecs.Lives)
}

func TestECS_RemoveEntity(t *testing.T) {
	ecs := NewECS(10)
	id := ecs.NewEntity()
	ecs.Positions[id] = &component.Position{}
	ecs.Enemies[id] = &component.Enemy{}
	ecs.Healths[id] = &component.Health{Value: 1, Max: 1}

	ecs.RemoveEntity(id)

	assert.Empty(t, ecs.Positions)
	assert.Empty(t, ecs.Enemies)
	assert.Empty(t, ecs.Healths)
}

func TestECS_LoseLifeStopsAtZero(t *testing.T) {
	ecs := NewECS(1)
	ecs.LoseLife()
	ecs.LoseLife()
	assert.Equal(t, 0, ecs.Lives)
}

func TestSortedIDs(t *testing.T) {
	m := map[types.EntityID]int{7: 0, 2: 0, 5: 0}
	assert.Equal(t, []types.EntityID{2, 5, 7}, SortedIDs(m))
}
