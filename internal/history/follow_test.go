package history

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sui-tower-defense/internal/chain"
)

// scriptedSource отдаёт по одному набору событий на каждое подключение.
type scriptedSource struct {
	mu       sync.Mutex
	batches  [][]chain.EventEnvelope
	runs     int
	drained  chan struct{}
	drainOne sync.Once
}

func (s *scriptedSource) Run(ctx context.Context, handler func(chain.EventEnvelope)) error {
	s.mu.Lock()
	s.runs++
	var batch []chain.EventEnvelope
	if len(s.batches) > 0 {
		batch, s.batches = s.batches[0], s.batches[1:]
	}
	left := len(s.batches)
	s.mu.Unlock()

	for _, env := range batch {
		handler(env)
	}
	if left == 0 {
		s.drainOne.Do(func() { close(s.drained) })
		<-ctx.Done()
		return nil
	}
	return errors.New("connection reset")
}

func feedEnvelope(digest, typ string, payload any) chain.EventEnvelope {
	raw, _ := json.Marshal(payload)
	env := chain.EventEnvelope{Type: typ, ParsedJSON: raw, TimestampMs: 1700000000000}
	env.ID.TxDigest = digest
	return env
}

func TestStore_FollowReconnectsAndRecords(t *testing.T) {
	s := openTestStore(t)
	game := feedEnvelope("D1", "0xpkg::game::GameCompletedEvent", map[string]string{"player": "0xp", "waves_cleared": "3", "reward": "1"})
	listed := feedEnvelope("D2", "0xpkg::game::TowerListedEvent", map[string]string{"seller": "0xp", "tower_id": "0xt", "price": "5"})
	won := feedEnvelope("D3", "0xpkg::game::ChallengeCompletedEvent", map[string]any{"player": "0xp", "success": true, "reward": "500000000"})

	src := &scriptedSource{
		batches: [][]chain.EventEnvelope{{game, listed}, {game, won}},
		drained: make(chan struct{}),
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Follow(ctx, src, "0xp", time.Millisecond)
		close(done)
	}()

	select {
	case <-src.drained:
	case <-time.After(5 * time.Second):
		t.Fatal("feed was not drained")
	}
	cancel()
	<-done

	assert.Equal(t, 2, src.runs)
	recent, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 2, "duplicate digest and listing are skipped")

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Victories)
}

func TestStore_RecordEventRejectsGarbage(t *testing.T) {
	s := openTestStore(t)
	bad := chain.EventEnvelope{Type: "0xpkg::game::GameCompletedEvent", ParsedJSON: json.RawMessage(`{"waves_cleared":`)}
	assert.Error(t, s.RecordEvent(bad, "0xp"))
	assert.NoError(t, s.RecordEvent(feedEnvelope("X", "0xpkg::game::ListingCancelledEvent", map[string]string{}), "0xp"))
}

func TestStore_RecordEventSkipsOtherPlayers(t *testing.T) {
	s := openTestStore(t)
	foreign := feedEnvelope("F1", "0xpkg::game::GameCompletedEvent", map[string]string{"player": "0xsomeone", "waves_cleared": "5", "reward": "1"})
	foreignWin := feedEnvelope("F2", "0xpkg::game::ChallengeCompletedEvent", map[string]any{"player": "0xsomeone", "success": true, "reward": "1"})
	mine := feedEnvelope("M1", "0xpkg::game::GameCompletedEvent", map[string]string{"player": "0xme", "waves_cleared": "2", "reward": "1"})

	for _, env := range []chain.EventEnvelope{foreign, foreignWin, mine} {
		require.NoError(t, s.RecordEvent(env, "0xme"))
	}

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.InDelta(t, 2.0, stats.AverageWaves, 1e-9)

	recent, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "0xme", recent[0].Player)
}
