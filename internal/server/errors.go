package server

import "errors"

// Rejections of a single intent. None of these are fatal to the room or the
// process; room state is left unchanged when one is returned.
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrRoomFull         = errors.New("room is full")
	ErrGameInProgress   = errors.New("game already in progress")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrWrongPhase       = errors.New("wrong phase")
	ErrSelfVote         = errors.New("cannot vote for yourself")
	ErrInvalidWord      = errors.New("invalid word")
	ErrNotHost          = errors.New("only the host can do that")
)

// errClockStale marks a timer callback that lost the race against a player
// action; the callback no-ops without surfacing an error to anyone.
var errClockStale = errors.New("clock is stale")

func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "RoomNotFound"
	case errors.Is(err, ErrPlayerNotFound):
		return "PlayerNotFound"
	case errors.Is(err, ErrRoomFull):
		return "RoomFull"
	case errors.Is(err, ErrGameInProgress):
		return "GameInProgress"
	case errors.Is(err, ErrNotEnoughPlayers):
		return "NotEnoughPlayers"
	case errors.Is(err, ErrNotYourTurn):
		return "NotYourTurn"
	case errors.Is(err, ErrWrongPhase):
		return "WrongPhase"
	case errors.Is(err, ErrSelfVote):
		return "SelfVote"
	case errors.Is(err, ErrInvalidWord):
		return "InvalidWord"
	case errors.Is(err, ErrNotHost):
		return "NotHost"
	default:
		return "Internal"
	}
}
