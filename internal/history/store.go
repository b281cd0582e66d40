// Package history - локальный журнал сыгранных сессий (SQLite через gorm).
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sui-tower-defense/internal/chain"
	"sui-tower-defense/internal/config"
)

// Источник записи.
const (
	SourceLocal     = "local"
	SourceGame      = "game"
	SourceChallenge = "challenge"
)

// Record - одна сыгранная сессия. Журнал только дополняется.
type Record struct {
	ID             uint      `gorm:"primarykey"`
	Timestamp      time.Time `gorm:"index"`
	SessionID      string    `gorm:"size:128;uniqueIndex"`
	Source         string    `gorm:"size:16"`
	Mode           string    `gorm:"size:16"`
	Player         string    `gorm:"size:80"`
	Victory        bool
	WavesCleared   int
	LivesRemaining int
	Reward         float64        // SUI для испытаний, 1/0 для кампании
	Payload        datatypes.JSON // исходное событие или итог, как есть
}

// Stats - сводка по журналу.
type Stats struct {
	Total        int64
	Victories    int64
	AverageWaves float64
}

// Store - журнал поверх gorm.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open открывает (или создаёт) базу по пути. Пустой путь - база в памяти.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history db: %w", err)
	}
	log.Debug().Str("path", path).Msg("history store opened")
	return &Store{db: db, log: log}, nil
}

// Close закрывает соединение.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Append добавляет запись. Запись с уже известным SessionID пропускается.
func (s *Store) Append(r *Record) error {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	if r.SessionID == "" {
		r.SessionID = fmt.Sprintf("%s-%d", r.Source, r.Timestamp.UnixNano())
	}
	var existing int64
	if err := s.db.Model(&Record{}).Where("session_id = ?", r.SessionID).Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to check history: %w", err)
	}
	if existing > 0 {
		return nil
	}
	if err := s.db.Create(r).Error; err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// Recent - последние limit записей, новые первыми.
func (s *Store) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []Record
	err := s.db.Order("timestamp desc").Order("id desc").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return out, nil
}

// Stats считает всего игр, побед и среднее число отбитых волн.
func (s *Store) Stats() (Stats, error) {
	var row struct {
		Total     int64
		Victories int64
		AvgWaves  *float64
	}
	err := s.db.Model(&Record{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN victory THEN 1 ELSE 0 END), 0) AS victories, AVG(waves_cleared) AS avg_waves").
		Scan(&row).Error
	if err != nil {
		return Stats{}, fmt.Errorf("failed to compute stats: %w", err)
	}
	st := Stats{Total: row.Total, Victories: row.Victories}
	if row.AvgWaves != nil {
		st.AverageWaves = *row.AvgWaves
	}
	return st, nil
}

// RecordFromOutcome - запись о локально сыгранной сессии.
func RecordFromOutcome(mode string, out chain.Outcome, at time.Time) (*Record, error) {
	payload, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return &Record{
		Timestamp:      at,
		SessionID:      fmt.Sprintf("local-%d", at.UnixNano()),
		Source:         SourceLocal,
		Mode:           mode,
		Victory:        out.Victory,
		WavesCleared:   out.WavesCleared,
		LivesRemaining: out.LivesRemaining,
		Payload:        datatypes.JSON(payload),
	}, nil
}

// RecordFromEvent переводит событие узла в запись журнала.
// Испытание считается одной волной: 1 при успехе, 0 при провале.
func RecordFromEvent(env chain.EventEnvelope) (*Record, error) {
	ev, err := env.Decode()
	if err != nil {
		return nil, err
	}
	r := &Record{
		Timestamp: env.Timestamp(),
		Payload:   datatypes.JSON(env.ParsedJSON),
	}
	switch e := ev.(type) {
	case chain.GameCompletedEvent:
		r.SessionID = env.ID.TxDigest
		r.Source = SourceGame
		r.Mode = config.ModeCampaign
		r.Player = e.Player
		r.WavesCleared = int(e.WavesCleared)
		r.Victory = e.WavesCleared > 0
		r.Reward = float64(e.Reward)
	case chain.ChallengeCompletedEvent:
		r.SessionID = "challenge-" + env.ID.TxDigest
		r.Source = SourceChallenge
		r.Mode = config.ModeChallenge
		r.Player = e.Player
		r.Victory = e.Success
		if e.Success {
			r.WavesCleared = 1
		}
		r.Reward = chain.MistToSui(uint64(e.Reward))
	default:
		return nil, ErrNotSessionEvent
	}
	if env.ID.TxDigest == "" {
		r.SessionID = fmt.Sprintf("%s-%d", r.Source, int64(env.TimestampMs))
	}
	return r, nil
}

// ErrNotSessionEvent - событие не описывает сыгранную сессию.
var ErrNotSessionEvent = errors.New("event is not a session result")
