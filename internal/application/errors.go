package application

import "errors"

// Domain failures surfaced by the services. Handlers map these onto HTTP
// status codes; anything not in this list is treated as an internal error.
var (
	ErrValidation         = errors.New("invalid input")
	ErrEmailTaken         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrSelfRequest      = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends   = errors.New("you are already friends with this user")
	ErrDuplicateRequest = errors.New("friend request already exists")
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrNotRecipient     = errors.New("this friend request was not sent to you")
)
