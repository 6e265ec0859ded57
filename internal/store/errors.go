package store

import "errors"

var (
	ErrEmptyMessage     = errors.New("message text is empty")
	ErrMessageTooLong   = errors.New("message text is too long")
	ErrChatNotFound     = errors.New("chat not found")
	ErrStoreUnavailable = errors.New("message store is unavailable")
)
