package apperror

import "errors"

var (
	ErrGameFinished  = errors.New("game is already finished")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrInvalidCell   = errors.New("invalid cell index")
	ErrNoActiveGame  = errors.New("no active game")
	ErrNotInRoom     = errors.New("not in a room")
	ErrNameRequired  = errors.New("player name is required")
	ErrRoomRequired  = errors.New("room code is required")
	ErrEmptyMessage  = errors.New("message is empty")
	ErrUnknownAction = errors.New("unknown action")
)
