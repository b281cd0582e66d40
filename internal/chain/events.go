package chain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEvent - тип события не относится к игре.
var ErrUnknownEvent = errors.New("unknown event type")

// Имена событий модуля game.
const (
	EventChallengeCreated   = "ChallengeCreatedEvent"
	EventGameCompleted      = "GameCompletedEvent"
	EventChallengeCompleted = "ChallengeCompletedEvent"
	EventTowerListed        = "TowerListedEvent"
	EventTowerSold          = "TowerSoldEvent"
	EventListingCancelled   = "ListingCancelledEvent"
)

type ChallengeCreatedEvent struct {
	ChallengeID string `json:"challenge_id"`
}

type GameCompletedEvent struct {
	Player       string `json:"player"`
	WavesCleared U64    `json:"waves_cleared"`
	Reward       U64    `json:"reward"` // 1 - башня возвращена с наградой
}

type ChallengeCompletedEvent struct {
	Player  string `json:"player"`
	Success bool   `json:"success"`
	Reward  U64    `json:"reward"` // MIST
}

type TowerListedEvent struct {
	Seller  string `json:"seller"`
	TowerID string `json:"tower_id"`
	Price   U64    `json:"price"`
}

type TowerSoldEvent struct {
	Seller  string `json:"seller"`
	Buyer   string `json:"buyer"`
	TowerID string `json:"tower_id"`
	Price   U64    `json:"price"`
}

type ListingCancelledEvent struct {
	Seller string `json:"seller"`
}

// EventName отрезает пакет и модуль: "0x..::game::GameCompletedEvent" -> "GameCompletedEvent".
func EventName(moveType string) string {
	if i := strings.LastIndex(moveType, "::"); i >= 0 {
		return moveType[i+2:]
	}
	return moveType
}

// DecodeEvent разбирает parsedJson события по его Move-типу.
// Возвращает значение одного из типов *Event этого пакета.
func DecodeEvent(moveType string, data []byte) (any, error) {
	var target any
	switch EventName(moveType) {
	case EventChallengeCreated:
		target = &ChallengeCreatedEvent{}
	case EventGameCompleted:
		target = &GameCompletedEvent{}
	case EventChallengeCompleted:
		target = &ChallengeCompletedEvent{}
	case EventTowerListed:
		target = &TowerListedEvent{}
	case EventTowerSold:
		target = &TowerSoldEvent{}
	case EventListingCancelled:
		target = &ListingCancelledEvent{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, moveType)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", EventName(moveType), err)
	}
	return deref(target), nil
}

func deref(v any) any {
	switch e := v.(type) {
	case *ChallengeCreatedEvent:
		return *e
	case *GameCompletedEvent:
		return *e
	case *ChallengeCompletedEvent:
		return *e
	case *TowerListedEvent:
		return *e
	case *TowerSoldEvent:
		return *e
	case *ListingCancelledEvent:
		return *e
	}
	return v
}
