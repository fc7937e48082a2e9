package game

import "errors"

// Rule and registry failures surfaced to clients. The protocol adapter
// forwards their messages verbatim in {success:false, message} responses.
var (
	ErrRoomNotFound        = errors.New("game not found")
	ErrGameAlreadyStarted  = errors.New("game already started")
	ErrInsufficientPlayers = errors.New("not enough players to start the game")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrCardNotInHand       = errors.New("card not in hand")
	ErrMustFollowSuit      = errors.New("must follow suit")
	ErrPlayerNotInGame     = errors.New("player not in a game")
)
