package entity

import "time"

// GameResult is the summary of a finished round kept for the scoreboard.
type GameResult struct {
	GameID     string    `json:"game_id"`
	Score      int       `json:"score"`
	Elapsed    int       `json:"elapsed_seconds"`
	FinishedAt time.Time `json:"finished_at"`
}
