package apperror

import "errors"

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrInvalidBoard  = errors.New("board is not reachable by legal play")
	ErrGameFinished  = errors.New("game is already finished")
	ErrNotTerminal   = errors.New("game is not finished")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrGameNotFound  = errors.New("game not found")
	ErrNotFound      = errors.New("not found")

	ErrConcurrentUpdate = errors.New("game was changed by another request")
)
