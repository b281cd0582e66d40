package chain

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sui-tower-defense/internal/defs"
)

func TestDecodeTower(t *testing.T) {
	tower, err := DecodeTower("0xabc", []byte(`{"id":{"id":"0xabc"},"damage":"42","range":"150","fire_rate":"600","rarity":3}`))
	require.NoError(t, err)
	assert.Equal(t, U64(42), tower.Damage)

	src := tower.Source()
	assert.Equal(t, defs.TowerSource{ID: "0xabc", Damage: 42, Range: 150, FireRate: 600, Rarity: 3}, src)

	_, err = DecodeTower("0xbad", []byte(`{"damage":"-1"}`))
	assert.Error(t, err)
}

func TestDecodeChallenge(t *testing.T) {
	data := `{
		"creator": "0xc0ffee",
		"entry_fee": "1000000",
		"prize_pool": "50000000",
		"max_winners": "3",
		"current_winners": "1",
		"monster": {"type": "x::game::MonsterNFT", "fields": {"hp": "250", "speed": "150", "monster_type": "2", "rarity": "2"}}
	}`
	ch, err := DecodeChallenge("0x1", []byte(data))
	require.NoError(t, err)
	assert.Equal(t, "0x1", ch.ID)
	assert.Equal(t, U64(250), ch.MonsterHP)
	assert.Equal(t, U64(1_000_000), ch.EntryFee)
	assert.True(t, ch.Open())

	params := ch.Params()
	assert.Equal(t, 250, params.MonsterHP)
	assert.Equal(t, 150.0, params.MonsterSpeed)
	assert.Equal(t, 2, params.MonsterType)
	assert.Positive(t, params.Count)

	_, err = DecodeChallenge("0x2", []byte(`{"creator":"0x"}`))
	assert.Error(t, err)
}

func TestDecodeEvent(t *testing.T) {
	ev, err := DecodeEvent("0xpkg::game::GameCompletedEvent", []byte(`{"player":"0xp","waves_cleared":"3","reward":"1"}`))
	require.NoError(t, err)
	assert.Equal(t, GameCompletedEvent{Player: "0xp", WavesCleared: 3, Reward: 1}, ev)

	ev, err = DecodeEvent("0xpkg::game::ChallengeCompletedEvent", []byte(`{"player":"0xp","success":true,"reward":"2000000000"}`))
	require.NoError(t, err)
	assert.Equal(t, 2.0, MistToSui(uint64(ev.(ChallengeCompletedEvent).Reward)))

	ev, err = DecodeEvent("0xpkg::game::TowerSoldEvent", []byte(`{"seller":"a","buyer":"b","tower_id":"t","price":"5"}`))
	require.NoError(t, err)
	assert.Equal(t, TowerSoldEvent{Seller: "a", Buyer: "b", TowerID: "t", Price: 5}, ev)

	_, err = DecodeEvent("0xpkg::game::Whatever", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestSuiMist(t *testing.T) {
	assert.Equal(t, uint64(500_000), SuiToMist(0.0005))
	assert.Equal(t, uint64(0), SuiToMist(-1))
	assert.InDelta(t, 0.001, MistToSui(1_000_000), 1e-12)
}

// flakyContract падает первые failures вызовов.
type flakyContract struct {
	*OfflineContract
	mu       sync.Mutex
	failures int
	calls    int
}

func (f *flakyContract) PlayAndSubmit(ctx context.Context, towerID string, payment uint64, waves uint8) (GameCompletedEvent, error) {
	f.mu.Lock()
	f.calls++
	fail := f.calls <= f.failures
	f.mu.Unlock()
	if fail {
		return GameCompletedEvent{}, errors.New("rpc unavailable")
	}
	return f.OfflineContract.PlayAndSubmit(ctx, towerID, payment, waves)
}

func newFlaky(failures int) *flakyContract {
	roster := []defs.TowerSource{{ID: "t1", Damage: 10, Range: 100, FireRate: 1000, Rarity: 1}}
	return &flakyContract{OfflineContract: NewOfflineContract(1, "0xp", roster, zerolog.Nop()), failures: failures}
}

func drain(t *testing.T, s *Submitter) []Result {
	t.Helper()
	var out []Result
	for {
		select {
		case r := <-s.Results():
			out = append(out, r)
			if r.Final {
				return out
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for submission result")
			return out
		}
	}
}

func TestSubmitter_SubmitsOnce(t *testing.T) {
	c := newFlaky(0)
	s := NewSubmitter(c, time.Second, zerolog.Nop())
	sub := Submission{Outcome: Outcome{Victory: true, WavesCleared: 3, LivesRemaining: 7}, TowerID: "t1", Payment: 500_000}

	require.NoError(t, s.Submit(sub))
	assert.ErrorIs(t, s.Submit(sub), ErrAlreadySubmitted)

	results := drain(t, s)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.True(t, s.Done())
	assert.ErrorIs(t, s.Submit(sub), ErrAlreadySubmitted)
	assert.ErrorIs(t, s.Retry(), ErrAlreadySubmitted)
	assert.Equal(t, 1, c.calls)
	assert.Len(t, c.Completed, 1)
}

func TestSubmitter_OneAutomaticRetry(t *testing.T) {
	c := newFlaky(1)
	s := NewSubmitter(c, time.Second, zerolog.Nop())
	require.NoError(t, s.Submit(Submission{Outcome: Outcome{WavesCleared: 2}, TowerID: "t1"}))

	results := drain(t, s)
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.False(t, results[0].Final)
	assert.NoError(t, results[1].Err)
	assert.True(t, results[1].Auto)
	assert.Equal(t, 2, c.calls)
}

func TestSubmitter_ManualRetryAfterTwoFailures(t *testing.T) {
	c := newFlaky(2)
	s := NewSubmitter(c, time.Second, zerolog.Nop())
	assert.ErrorIs(t, s.Retry(), ErrNothingToRetry)
	require.NoError(t, s.Submit(Submission{Outcome: Outcome{WavesCleared: 1}, TowerID: "t1"}))

	results := drain(t, s)
	require.Len(t, results, 2)
	assert.Error(t, results[1].Err)
	assert.Contains(t, results[1].Message, "Press R to retry")
	assert.True(t, s.Failed())
	// автоматических попыток больше нет
	s.Wait()
	assert.Equal(t, 2, c.calls)

	require.NoError(t, s.Retry())
	results = drain(t, s)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, 3, results[0].Attempt)
	assert.True(t, s.Done())
}

func TestSubmitter_UndrainedResultsDoNotBlock(t *testing.T) {
	c := newFlaky(100)
	s := NewSubmitter(c, time.Second, zerolog.Nop())
	require.NoError(t, s.Submit(Submission{Outcome: Outcome{WavesCleared: 1}, TowerID: "t1"}))
	for i := 0; i < 4; i++ {
		require.Eventually(t, s.Failed, 5*time.Second, time.Millisecond)
		require.NoError(t, s.Retry())
	}

	waited := make(chan struct{})
	go func() {
		s.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(5 * time.Second):
		t.Fatal("submitter blocked on a full results channel")
	}

	latest := 0
	for len(s.Results()) > 0 {
		if r := <-s.Results(); r.Attempt > latest {
			latest = r.Attempt
		}
	}
	assert.Equal(t, 6, latest)
	assert.Equal(t, 6, c.calls)
	assert.True(t, s.Failed())
}

func TestSubmitter_ChallengeRoute(t *testing.T) {
	off := NewOfflineContract(3, "0xp", nil, zerolog.Nop())
	ctx := context.Background()
	_, err := off.ClaimFaucet(ctx)
	require.NoError(t, err)
	m, err := off.MintMonster(ctx, 0)
	require.NoError(t, err)
	created, err := off.CreateChallenge(ctx, m.ID, 1_000_000, 30_000_000, 3)
	require.NoError(t, err)

	s := NewSubmitter(off, time.Second, zerolog.Nop())
	require.NoError(t, s.Submit(Submission{Outcome: Outcome{Victory: true}, ChallengeID: created.ChallengeID, Payment: 1_000_000}))
	results := drain(t, s)
	require.Len(t, results, 1)
	ev, ok := results[0].Event.(ChallengeCompletedEvent)
	require.True(t, ok)
	assert.True(t, ev.Success)
	assert.Equal(t, U64(10_000_000), ev.Reward)
	assert.Contains(t, results[0].Message, "Challenge completed")
}

func TestOfflineContract_MintAndPlay(t *testing.T) {
	ctx := context.Background()
	c := NewOfflineContract(42, "0xp", nil, zerolog.Nop())

	_, err := c.MintTower(ctx, FaucetGrant+1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	for i := 0; i < 20; i++ {
		tower, err := c.MintTower(ctx, 0)
		require.NoError(t, err)
		entry, ok := defs.MintEntryFor(int(tower.Rarity))
		require.True(t, ok)
		assert.GreaterOrEqual(t, int(tower.Damage), entry.DamageMin)
		assert.LessOrEqual(t, int(tower.Damage), entry.DamageMax)
	}
	towers, err := c.OwnedTowers(ctx)
	require.NoError(t, err)
	require.Len(t, towers, 20)

	// провал уничтожает башню
	ev, err := c.PlayAndSubmit(ctx, towers[0].ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, U64(0), ev.Reward)
	towers, _ = c.OwnedTowers(ctx)
	assert.Len(t, towers, 19)

	before, _ := c.Balance(ctx)
	ev, err = c.PlayAndSubmit(ctx, towers[0].ID, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, U64(1), ev.Reward)
	after, _ := c.Balance(ctx)
	assert.Equal(t, before+SuiToMist(Rewards[5]), after)

	_, err = c.PlayAndSubmit(ctx, "missing", 0, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOfflineContract_SeedIsReproducible(t *testing.T) {
	ctx := context.Background()
	a := NewOfflineContract(7, "", nil, zerolog.Nop())
	b := NewOfflineContract(7, "", nil, zerolog.Nop())
	for i := 0; i < 5; i++ {
		ta, err := a.MintTower(ctx, 0)
		require.NoError(t, err)
		tb, err := b.MintTower(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, ta, tb)
	}
}

func TestOfflineContract_ChallengeFull(t *testing.T) {
	ctx := context.Background()
	c := NewOfflineContract(5, "0xp", nil, zerolog.Nop())
	m, err := c.MintMonster(ctx, 0)
	require.NoError(t, err)
	created, err := c.CreateChallenge(ctx, m.ID, 0, 1000, 1)
	require.NoError(t, err)

	_, err = c.PlayChallenge(ctx, created.ChallengeID, 0, true)
	require.NoError(t, err)
	_, err = c.PlayChallenge(ctx, created.ChallengeID, 0, true)
	assert.ErrorIs(t, err, ErrChallengeFull)
}

func TestFeed_DeliversEvents(t *testing.T) {
	upgrader := ws.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	gotSubscribe := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()

		_, msg, err := c.ReadMessage()
		if err != nil {
			return
		}
		gotSubscribe <- string(msg)
		_ = c.WriteMessage(ws.TextMessage, []byte(`{"jsonrpc":"2.0","id":1,"result":77}`))
		_ = c.WriteMessage(ws.TextMessage, []byte(`{"jsonrpc":"2.0","method":"suix_subscribeEvent","params":{"subscription":77,"result":{
			"id":{"txDigest":"D1","eventSeq":"0"},
			"type":"0xpkg::game::GameCompletedEvent",
			"sender":"0xp",
			"parsedJson":{"player":"0xp","waves_cleared":"4","reward":"1"},
			"timestampMs":"1700000000000"}}}`))
		_ = c.WriteMessage(ws.CloseMessage, ws.FormatCloseMessage(ws.CloseNormalClosure, ""))
		time.Sleep(50 * time.Millisecond)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	feed := NewFeed(url, "0xpkg", zerolog.Nop())

	var got []EventEnvelope
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := feed.Run(ctx, func(e EventEnvelope) { got = append(got, e) })
	require.NoError(t, err)

	assert.Contains(t, <-gotSubscribe, `"suix_subscribeEvent"`)
	require.Len(t, got, 1)
	assert.Equal(t, "D1", got[0].ID.TxDigest)
	assert.Equal(t, int64(1700000000000), got[0].Timestamp().UnixMilli())
	ev, err := got[0].Decode()
	require.NoError(t, err)
	assert.Equal(t, U64(4), ev.(GameCompletedEvent).WavesCleared)
}

func TestFeed_DialError(t *testing.T) {
	feed := NewFeed("ws://127.0.0.1:1/none", "0xpkg", zerolog.Nop())
	err := feed.Run(context.Background(), func(EventEnvelope) {})
	assert.Error(t, err)
}
