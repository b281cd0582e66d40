package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	got []Event
}

func (r *recorder) OnEvent(e Event) {
	r.got = append(r.got, e)
}

func TestDispatcher_SubscribeDispatch(t *testing.T) {
	d := NewDispatcher()
	a := &recorder{}
	b := &recorder{}
	d.Subscribe(EnemyKilled, a)
	d.Subscribe(EnemyKilled, b)
	d.Subscribe(TowerPlaced, b)

	d.Dispatch(Event{Type: EnemyKilled, Data: 3})
	d.Dispatch(Event{Type: TowerPlaced})
	d.Dispatch(Event{Type: WaveCleared})

	assert.Len(t, a.got, 1)
	assert.Equal(t, 3, a.got[0].Data)
	assert.Len(t, b.got, 2)
}

func TestDispatcher_Unsubscribe(t *testing.T) {
	d := NewDispatcher()
	a := &recorder{}
	d.Subscribe(EnemyBreached, a)
	d.Unsubscribe(EnemyBreached, a)

	d.Dispatch(Event{Type: EnemyBreached})
	assert.Empty(t, a.got)
}

type selfRemover struct {
	d     *Dispatcher
	calls int
}

func (s *selfRemover) OnEvent(e Event) {
	s.calls++
	s.d.Unsubscribe(e.Type, s)
}

func TestDispatcher_UnsubscribeDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	s := &selfRemover{d: d}
	other := &recorder{}
	d.Subscribe(WaveCleared, s)
	d.Subscribe(WaveCleared, other)

	d.Dispatch(Event{Type: WaveCleared})
	d.Dispatch(Event{Type: WaveCleared})

	assert.Equal(t, 1, s.calls)
	assert.Len(t, other.got, 2)
}

func TestDispatcher_SubscribeManyAndReset(t *testing.T) {
	d := NewDispatcher()
	r := &recorder{}
	d.Subscribe(EnemyKilled, r, EnemyBreached, PhaseChanged)

	d.Dispatch(Event{Type: EnemyBreached})
	d.Dispatch(Event{Type: PhaseChanged})
	assert.Len(t, r.got, 2)

	d.Reset()
	d.Dispatch(Event{Type: EnemyKilled})
	assert.Len(t, r.got, 2)
}
