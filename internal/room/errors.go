package room

import "errors"

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrNotYourTurn      = errors.New("not your turn or player invalid")
	ErrIllegalMove      = errors.New("illegal move")
	ErrPromotionPending = errors.New("promotion pending")
	ErrIllegalPromotion = errors.New("nothing to promote")
	ErrNotAwaited       = errors.New("not awaiting this action")
	ErrNotBotTurn       = errors.New("not bot's turn")
	ErrGameOver         = errors.New("game is over")
)
