package game

import "errors"

var (
	ErrRoomNotFound            = errors.New("room not found")
	ErrRoomNotAcceptingAnswers = errors.New("room is not accepting answers")
	ErrRoomNotUnboxing         = errors.New("room is not in the unboxing phase")
	ErrInvalidTransition       = errors.New("invalid status transition")
	ErrValidation              = errors.New("validation failed")
	ErrWriteFailed             = errors.New("write failed")
	ErrCreateFailed            = errors.New("create failed")
	ErrCodeCollision           = errors.New("room code collision")
	ErrAnswerNotFound          = errors.New("answer not found")
)
