package chat

import "errors"

// Domain-level errors for chat behaviors. Gateway and HTTP layers map these
// onto their own error codes; unexpected failures fall through as server
// errors.
var (
	ErrUnauthorized    = errors.New("chat: unauthorized")
	ErrForbidden       = errors.New("chat: sender is not a participant in the conversation")
	ErrNotFound        = errors.New("chat: conversation not found")
	ErrInvalidArgument = errors.New("chat: invalid argument")
	ErrSelfDM          = errors.New("chat: cannot open a conversation with yourself")
)
