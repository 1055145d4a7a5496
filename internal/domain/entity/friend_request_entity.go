package entity

import "time"

// FriendRequest statuses. Rejection deletes the record instead of keeping a
// third status, so only these two values ever reach the database.
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
)

// FriendRequest is one edge of the friend-request ledger: SenderID asked
// RecipientID to connect.
type FriendRequest struct {
	ID          string
	SenderID    string
	RecipientID string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
