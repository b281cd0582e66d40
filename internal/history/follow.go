package history

import (
	"context"
	"errors"
	"time"

	"sui-tower-defense/internal/chain"
)

// EventSource - лента событий контракта; chain.Feed её реализует.
type EventSource interface {
	Run(ctx context.Context, handler func(chain.EventEnvelope)) error
}

// RecordEvent пишет в журнал результат игры player из события.
// Чужие игры, прочие и незнакомые события пропускаются.
func (s *Store) RecordEvent(env chain.EventEnvelope, player string) error {
	rec, err := RecordFromEvent(env)
	if errors.Is(err, ErrNotSessionEvent) || errors.Is(err, chain.ErrUnknownEvent) {
		return nil
	}
	if err != nil {
		return err
	}
	if rec.Player != player {
		return nil
	}
	return s.Append(rec)
}

// Follow слушает ленту до отмены ctx и переподключается через backoff после обрыва.
// В журнал попадают только игры player.
func (s *Store) Follow(ctx context.Context, src EventSource, player string, backoff time.Duration) {
	for {
		err := src.Run(ctx, func(env chain.EventEnvelope) {
			if err := s.RecordEvent(env, player); err != nil {
				s.log.Warn().Err(err).Str("type", env.Type).Msg("failed to record chain event")
			}
		})
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.log.Warn().Err(err).Dur("backoff", backoff).Msg("event feed dropped")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}
