package repository

import (
	"errors"

	"github.com/PPanwar29/Streamify/internal/domain/entity"
)

// ErrNotFound is returned by repositories when a row does not exist.
var ErrNotFound = errors.New("not found")

// UserRepository defines the identity-store operations, including the
// friends set attached to every user. Friendship rows are directional; the
// relationship engine is responsible for writing both directions.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(u *entity.User) error

	// AddFriend is an idempotent set-add of friendID into userID's friends set.
	AddFriend(userID, friendID string) error
	// RemoveFriend is a no-op when the friendship row does not exist.
	RemoveFriend(userID, friendID string) error
	IsFriend(userID, friendID string) (bool, error)
	ListFriends(userID string) ([]*entity.User, error)
	// ListRecommended returns onboarded users excluding userID and its friends.
	ListRecommended(userID string) ([]*entity.User, error)
}
