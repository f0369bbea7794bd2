package models

import "errors"

// Application-wide errors. Services return these (possibly wrapped), handlers
// map them onto HTTP status codes.
var (
	// ErrNotFound indicates that the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized indicates that the caller could not be authenticated.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates that the caller lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict indicates that the operation collides with existing state.
	ErrConflict = errors.New("conflict with existing state")
	// ErrInvalidInput indicates malformed or out-of-range request data.
	ErrInvalidInput = errors.New("invalid input data")
	// ErrInsufficientFunds indicates the trainer cannot afford the purchase.
	ErrInsufficientFunds = errors.New("not enough money")
	// ErrMovementRange indicates a move beyond the participant's speed.
	ErrMovementRange = errors.New("destination out of movement range")
	// ErrTokenInvalid indicates a malformed or mismatched activity token.
	ErrTokenInvalid = errors.New("activity token is invalid")
	// ErrTokenExpired indicates an activity token outside its validity window.
	ErrTokenExpired = errors.New("activity token has expired")
	// ErrUserExists indicates a registration attempt with a taken username.
	ErrUserExists = errors.New("username already exists")
	// ErrNameTaken indicates a trainer name already in use within the game.
	ErrNameTaken = errors.New("trainer name already taken in this game")
	// ErrSelfTrade indicates an attempt to trade a pokemon to its own trainer.
	ErrSelfTrade = errors.New("cannot trade pokemon to oneself")
	// ErrInternalServer indicates an unexpected internal failure.
	ErrInternalServer = errors.New("internal server error")
)
