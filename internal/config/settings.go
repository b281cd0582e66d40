package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// TargetPolicy selects which in-range enemy a tower shoots at.
type TargetPolicy string

const (
	// TargetFirst picks the earliest-spawned enemy in range.
	TargetFirst TargetPolicy = "first"
	// TargetNearest picks the closest enemy in range, earliest-spawned on ties.
	TargetNearest TargetPolicy = "nearest"
)

// Режимы игры.
const (
	ModeChallenge = "challenge" // одна волна монстров из объекта Challenge
	ModeCampaign  = "campaign"  // пять волн, результат уходит в play_and_submit
)

// Settings holds runtime options that can be overridden from td.yaml or TD_* env vars.
type Settings struct {
	LogLevel     string       `mapstructure:"logLevel"`
	LogFile      string       `mapstructure:"logFile"`
	LevelFile    string       `mapstructure:"levelFile"`
	Mode         string       `mapstructure:"mode"`
	TargetPolicy TargetPolicy `mapstructure:"targetPolicy"`
	Seed         int64        `mapstructure:"seed"`

	History HistorySettings `mapstructure:"history"`
	Audio   AudioSettings   `mapstructure:"audio"`
	Chain   ChainSettings   `mapstructure:"chain"`
}

// HistorySettings configures the local session log.
type HistorySettings struct {
	Path string `mapstructure:"path"`
}

// AudioSettings configures background music.
type AudioSettings struct {
	Enabled   bool    `mapstructure:"enabled"`
	MusicFile string  `mapstructure:"musicFile"`
	Volume    float64 `mapstructure:"volume"`
}

// ChainSettings configures the contract package and event feed.
type ChainSettings struct {
	PackageID   string  `mapstructure:"packageId"`
	GameStateID string  `mapstructure:"gameStateId"`
	ChallengeID string  `mapstructure:"challengeId"`
	FeedURL     string  `mapstructure:"feedUrl"`
	Player      string  `mapstructure:"player"`
	GameCost    float64 `mapstructure:"gameCost"`
	MintCost    float64 `mapstructure:"mintCost"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
	v.SetDefault("levelFile", "")
	v.SetDefault("mode", ModeChallenge)
	v.SetDefault("targetPolicy", string(TargetFirst))
	v.SetDefault("seed", 0)

	v.SetDefault("history.path", "td_history.db")

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.musicFile", "assets/music/1.mp3")
	v.SetDefault("audio.volume", 0.3)

	v.SetDefault("chain.packageId", "0x0285a254d2b0b380212d9c01f5131c654a7f36bf5bea46474bd1d9478ce8a786")
	v.SetDefault("chain.gameStateId", "0x2487c1bb7c60d319478c37c5865f1013400dae8d8a82b269635d0a029057ea6b")
	v.SetDefault("chain.challengeId", "")
	v.SetDefault("chain.feedUrl", "")
	v.SetDefault("chain.player", "")
	v.SetDefault("chain.gameCost", 0.0005)
	v.SetDefault("chain.mintCost", 0.001)
}

// Load reads td.yaml from configDir (if present) on top of the defaults.
// A missing config file is not an error.
func Load(configDir string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("td")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("TD")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks enum-like fields.
func (s *Settings) Validate() error {
	switch s.TargetPolicy {
	case TargetFirst, TargetNearest:
	default:
		return fmt.Errorf("unknown targetPolicy %q", s.TargetPolicy)
	}
	switch s.Mode {
	case ModeChallenge, ModeCampaign:
	default:
		return fmt.Errorf("unknown mode %q", s.Mode)
	}
	if s.Audio.Volume < 0 || s.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be within [0, 1], got %v", s.Audio.Volume)
	}
	return nil
}
