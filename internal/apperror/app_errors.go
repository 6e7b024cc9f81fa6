package apperror

import "errors"

var (
	ErrGameFinished  = errors.New("game is already finished")
	ErrNoActiveGames = errors.New("no active games")
)
