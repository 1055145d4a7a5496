package application

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/PPanwar29/Streamify/internal/domain/entity"
	repo "github.com/PPanwar29/Streamify/internal/domain/repository"
)

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// memUserRepo is an in-memory UserRepository for service tests. Friendship
// rows are directional, mirroring the postgres schema.
type memUserRepo struct {
	mu      sync.Mutex
	users   map[string]*entity.User
	friends map[string]map[string]bool
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:   make(map[string]*entity.User),
		friends: make(map[string]map[string]bool),
	}
}

func (m *memUserRepo) Create(u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) Update(u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) AddFriend(userID, friendID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.friends[userID] == nil {
		m.friends[userID] = make(map[string]bool)
	}
	m.friends[userID][friendID] = true
	return nil
}

func (m *memUserRepo) RemoveFriend(userID, friendID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.friends[userID], friendID)
	return nil
}

func (m *memUserRepo) IsFriend(userID, friendID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.friends[userID][friendID], nil
}

func (m *memUserRepo) ListFriends(userID string) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.User, 0)
	for id := range m.friends[userID] {
		if u, ok := m.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fullname < out[j].Fullname })
	return out, nil
}

func (m *memUserRepo) ListRecommended(userID string) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.User, 0)
	for id, u := range m.users {
		if id == userID || !u.IsOnboarded || m.friends[userID][id] {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fullname < out[j].Fullname })
	return out, nil
}

var _ repo.UserRepository = (*memUserRepo)(nil)

// memRequestRepo is an in-memory FriendRequestRepository for service tests.
type memRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*entity.FriendRequest
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{requests: make(map[string]*entity.FriendRequest)}
}

func (m *memRequestRepo) Create(r *entity.FriendRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	m.requests[r.ID] = &cp
	return nil
}

func (m *memRequestRepo) GetByID(id string) (*entity.FriendRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRequestRepo) FindBetween(a, b string) (*entity.FriendRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if (r.SenderID == a && r.RecipientID == b) || (r.SenderID == b && r.RecipientID == a) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRequestRepo) UpdateStatus(id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return repo.ErrNotFound
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	return nil
}

func (m *memRequestRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.requests, id)
	return nil
}

func (m *memRequestRepo) ListByRecipient(recipientID, status string) ([]*entity.FriendRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.FriendRequest, 0)
	for _, r := range m.requests {
		if r.RecipientID == recipientID && r.Status == status {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRequestRepo) ListBySender(senderID, status string) ([]*entity.FriendRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.FriendRequest, 0)
	for _, r := range m.requests {
		if r.SenderID == senderID && r.Status == status {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

var _ repo.FriendRequestRepository = (*memRequestRepo)(nil)
