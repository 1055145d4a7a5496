package repository

import (
	"errors"

	"github.com/PPanwar29/Streamify/internal/domain/entity"
)

// ErrDuplicate is returned when an insert collides with a uniqueness
// constraint, e.g. two concurrent sends racing for the same pair.
var ErrDuplicate = errors.New("duplicate")

// FriendRequestRepository defines the friend-request ledger.
type FriendRequestRepository interface {
	// Create inserts a new record. Returns ErrDuplicate when the pair
	// already holds a pending request.
	Create(r *entity.FriendRequest) error
	GetByID(id string) (*entity.FriendRequest, error)
	// FindBetween looks up a record for the unordered pair {a, b} in any
	// status. Returns (nil, nil) when no record exists.
	FindBetween(a, b string) (*entity.FriendRequest, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
	ListByRecipient(recipientID, status string) ([]*entity.FriendRequest, error)
	ListBySender(senderID, status string) ([]*entity.FriendRequest, error)
}
