package entity

import (
	"errors"
	"fmt"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is the observable snapshot of one round: the ordered deck, the score,
// the elapsed seconds and the round status. Cards keep their slice order after
// the shuffle; positions are the grid cells.
type Game struct {
	ID      string    `json:"id"`
	Cards   []*Card   `json:"cards"`
	Score   int       `json:"score"`
	Elapsed int       `json:"elapsed_seconds"`
	Status  string    `json:"status"`
	Players []*Player `json:"players,omitempty"`
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

// MatchedPairs counts fully matched pairs in the deck.
func (that *Game) MatchedPairs() int {
	matched := 0
	for _, card := range that.Cards {
		if card.Matched {
			matched++
		}
	}

	return matched / 2
}

func (that *Game) ConfirmKnownStatus() error {
	switch that.Status {
	case StatusWaiting, StatusOngoing, StatusFinished:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
