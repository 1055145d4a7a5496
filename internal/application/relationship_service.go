package application

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/PPanwar29/Streamify/internal/domain/entity"
	repo "github.com/PPanwar29/Streamify/internal/domain/repository"
)

// RelationshipService orchestrates the friend-request lifecycle and keeps the
// friends sets of both parties symmetric on every state change.
//
// Request state machine: pending --accept--> accepted; pending --reject-->
// deleted; accepted --(unfriend, then re-send)--> deleted and replaced by a
// fresh pending record. The two friendship writes in accept/reject/remove are
// not wrapped in a transaction; each statement is individually atomic and a
// failure between them leaves a transiently asymmetric state.
type RelationshipService struct {
	Users    repo.UserRepository
	Requests repo.FriendRequestRepository
	Logger   *logrus.Logger
}

func NewRelationshipService(users repo.UserRepository, requests repo.FriendRequestRepository, logger *logrus.Logger) *RelationshipService {
	return &RelationshipService{Users: users, Requests: requests, Logger: logger}
}

// canonicalID normalizes an identifier to its canonical lowercase UUID string
// so every comparison and set operation uses one representation.
func canonicalID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

// FriendRequestView is a ledger record with its counterpart resolved to a
// public summary. Sender is populated for incoming/accepted listings,
// Recipient for outgoing ones.
type FriendRequestView struct {
	ID        string          `json:"id"`
	Sender    *entity.Summary `json:"sender,omitempty"`
	Recipient *entity.Summary `json:"recipient,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListFriends resolves the actor's friends set to public summaries.
func (s *RelationshipService) ListFriends(actorID string) ([]entity.Summary, error) {
	if _, err := s.Users.GetByID(actorID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	friends, err := s.Users.ListFriends(actorID)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Summary, 0, len(friends))
	for _, f := range friends {
		out = append(out, f.Summary())
	}
	return out, nil
}

// Recommend returns onboarded users excluding the actor and current friends.
func (s *RelationshipService) Recommend(actorID string) ([]*entity.User, error) {
	return s.Users.ListRecommended(actorID)
}

// SendRequest creates a pending ledger record from actor to target.
func (s *RelationshipService) SendRequest(actorID, targetID string) (*entity.FriendRequest, error) {
	actor, ok := canonicalID(actorID)
	if !ok {
		return nil, ErrValidation
	}
	target, ok := canonicalID(targetID)
	if !ok {
		return nil, ErrUserNotFound
	}
	if actor == target {
		return nil, ErrSelfRequest
	}

	if _, err := s.Users.GetByID(target); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	alreadyFriends, err := s.Users.IsFriend(actor, target)
	if err != nil {
		return nil, err
	}
	if alreadyFriends {
		return nil, ErrAlreadyFriends
	}

	existing, err := s.Requests.FindBetween(actor, target)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case entity.RequestStatusPending:
			return nil, ErrDuplicateRequest
		case entity.RequestStatusAccepted:
			// The actor side is already known not to list the target. If the
			// target still lists the actor, trust the accepted record;
			// otherwise it is stale (an unfriend happened) and is replaced.
			reverse, err := s.Users.IsFriend(target, actor)
			if err != nil {
				return nil, err
			}
			if reverse {
				return nil, ErrAlreadyFriends
			}
			if err := s.Requests.Delete(existing.ID); err != nil {
				return nil, err
			}
			s.Logger.WithFields(logrus.Fields{
				"request_id": existing.ID,
				"sender":     actor,
				"recipient":  target,
			}).Info("stale accepted request deleted")
		}
	}

	fr := &entity.FriendRequest{
		SenderID:    actor,
		RecipientID: target,
		Status:      entity.RequestStatusPending,
	}
	if err := s.Requests.Create(fr); err != nil {
		// A concurrent send for the same pair may slip past the FindBetween
		// check and lose the race at the insert.
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateRequest
		}
		return nil, err
	}
	return fr, nil
}

// AcceptRequest marks the record accepted and adds each party to the other's
// friends set. Only the designated recipient may accept.
func (s *RelationshipService) AcceptRequest(actorID, requestID string) error {
	fr, err := s.getForRecipient(actorID, requestID)
	if err != nil {
		return err
	}

	if err := s.Requests.UpdateStatus(fr.ID, entity.RequestStatusAccepted); err != nil {
		return err
	}
	if err := s.Users.AddFriend(fr.RecipientID, fr.SenderID); err != nil {
		return err
	}
	if err := s.Users.AddFriend(fr.SenderID, fr.RecipientID); err != nil {
		return err
	}
	return nil
}

// RejectRequest deletes the record. The friendship rows are removed first as
// defensive cleanup; for a pending request they do not exist and the removal
// is a no-op.
func (s *RelationshipService) RejectRequest(actorID, requestID string) error {
	fr, err := s.getForRecipient(actorID, requestID)
	if err != nil {
		return err
	}

	if err := s.Users.RemoveFriend(fr.RecipientID, fr.SenderID); err != nil {
		return err
	}
	if err := s.Users.RemoveFriend(fr.SenderID, fr.RecipientID); err != nil {
		return err
	}
	return s.Requests.Delete(fr.ID)
}

func (s *RelationshipService) getForRecipient(actorID, requestID string) (*entity.FriendRequest, error) {
	actor, ok := canonicalID(actorID)
	if !ok {
		return nil, ErrValidation
	}
	id, ok := canonicalID(requestID)
	if !ok {
		return nil, ErrRequestNotFound
	}
	fr, err := s.Requests.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if fr.RecipientID != actor {
		return nil, ErrNotRecipient
	}
	return fr, nil
}

// RemoveFriend removes each party from the other's friends set. The ledger is
// left untouched; a stale accepted record is reconciled lazily by the next
// SendRequest for the pair.
func (s *RelationshipService) RemoveFriend(actorID, targetID string) error {
	actor, ok := canonicalID(actorID)
	if !ok {
		return ErrValidation
	}
	target, ok := canonicalID(targetID)
	if !ok {
		return ErrValidation
	}

	if err := s.Users.RemoveFriend(actor, target); err != nil {
		return err
	}
	return s.Users.RemoveFriend(target, actor)
}

// ListIncomingRequests returns pending requests addressed to the actor, with
// senders resolved.
func (s *RelationshipService) ListIncomingRequests(actorID string) ([]FriendRequestView, error) {
	requests, err := s.Requests.ListByRecipient(actorID, entity.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	return s.resolveSenders(requests), nil
}

// ListAcceptedRequests returns accepted requests addressed to the actor, with
// senders resolved.
func (s *RelationshipService) ListAcceptedRequests(actorID string) ([]FriendRequestView, error) {
	requests, err := s.Requests.ListByRecipient(actorID, entity.RequestStatusAccepted)
	if err != nil {
		return nil, err
	}
	return s.resolveSenders(requests), nil
}

// ListOutgoingRequests returns pending requests the actor has sent, with
// recipients resolved.
func (s *RelationshipService) ListOutgoingRequests(actorID string) ([]FriendRequestView, error) {
	requests, err := s.Requests.ListBySender(actorID, entity.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	views := make([]FriendRequestView, 0, len(requests))
	for _, fr := range requests {
		u, err := s.Users.GetByID(fr.RecipientID)
		if err != nil {
			s.Logger.WithError(err).WithField("user_id", fr.RecipientID).Warn("recipient lookup failed")
			continue
		}
		sum := u.Summary()
		views = append(views, FriendRequestView{
			ID:        fr.ID,
			Recipient: &sum,
			Status:    fr.Status,
			CreatedAt: fr.CreatedAt,
		})
	}
	return views, nil
}

func (s *RelationshipService) resolveSenders(requests []*entity.FriendRequest) []FriendRequestView {
	views := make([]FriendRequestView, 0, len(requests))
	for _, fr := range requests {
		u, err := s.Users.GetByID(fr.SenderID)
		if err != nil {
			s.Logger.WithError(err).WithField("user_id", fr.SenderID).Warn("sender lookup failed")
			continue
		}
		sum := u.Summary()
		views = append(views, FriendRequestView{
			ID:        fr.ID,
			Sender:    &sum,
			Status:    fr.Status,
			CreatedAt: fr.CreatedAt,
		})
	}
	return views
}
