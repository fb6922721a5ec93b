package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenIsExpired = errors.New("token is expired")

	// Chat turn controller rejections. All of them leave the transcript and
	// the controller state untouched.
	ErrChatBusy          = errors.New("a query is already being processed")
	ErrEmptyQuery        = errors.New("query must not be empty")
	ErrQueryTooLong      = errors.New("query exceeds the maximum length")
	ErrQueryNotPrintable = errors.New("query contains unsupported characters")
)
