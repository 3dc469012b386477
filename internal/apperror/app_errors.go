package apperror

import "errors"

var (
	ErrGameFinished    = errors.New("game is already finished")
	ErrGameNotActive   = errors.New("game is not active")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrColumnFull      = errors.New("column is full")
	ErrInvalidMove     = errors.New("invalid move")
	ErrUnknownGameType = errors.New("unknown game type")
	ErrAdminOnly       = errors.New("operation requires admin role")
)
