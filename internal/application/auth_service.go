package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/PPanwar29/Streamify/internal/domain/entity"
	repo "github.com/PPanwar29/Streamify/internal/domain/repository"
	"github.com/PPanwar29/Streamify/pkg/chat"
	"github.com/PPanwar29/Streamify/pkg/helpers"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MirrorPublisher enqueues chat-identity mirror jobs. Satisfied by
// helpers.RabbitPublisher.
type MirrorPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService is the credential service: it registers identities, verifies
// passwords, and issues/clears sessions. It also owns the profile side
// effects (chat-identity mirror, search index, avatar storage).
type AuthService struct {
	Repo         repo.UserRepository
	JWT          *helpers.JWTManager
	Redis        *redis.Client
	Logger       *logrus.Logger
	MirrorPub    MirrorPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
	GCS          *storage.Client
	GCSBucket    string
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub MirrorPublisher, es *elasticsearch.Client, esUsersIndex string, gcs *storage.Client, gcsBucket string) *AuthService {
	return &AuthService{
		Repo:         r,
		JWT:          jwt,
		Redis:        rdb,
		Logger:       logger,
		MirrorPub:    pub,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
	}
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Register creates a new identity. The profile picture defaults to a random
// avatar index in [1,100], matching the frontend's avatar service.
func (s *AuthService) Register(ctx context.Context, fullname, email, password string) (*entity.User, error) {
	if fullname == "" || email == "" || password == "" {
		return nil, ErrValidation
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrValidation
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	idx := rand.Intn(100) + 1
	u := &entity.User{
		Fullname:   fullname,
		Email:      email,
		Password:   hash,
		ProfilePic: fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", idx),
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	s.mirrorProfile(ctx, u)
	s.indexUser(ctx, u)
	return u, nil
}

// Authenticate validates email/password without issuing a session.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	if email == "" || password == "" {
		return nil, ErrValidation
	}
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueSession generates the signed session token and records the session in
// Redis so logout can invalidate it server-side.
func (s *AuthService) IssueSession(ctx context.Context, u *entity.User) (string, time.Time, error) {
	token, exp, err := s.JWT.GenerateSessionToken(u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate session token failed")
		return "", time.Time{}, err
	}

	if s.Redis != nil {
		key := helpers.SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"fullname":   u.Fullname,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, s.JWT.SessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return token, exp, nil
}

// ClearSession removes the server-side session record.
func (s *AuthService) ClearSession(ctx context.Context, userID string) {
	if s.Redis == nil || userID == "" {
		return
	}
	if err := s.Redis.Del(ctx, helpers.SessionKey(userID)).Err(); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("session delete failed")
	}
}

func (s *AuthService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

type OnboardInput struct {
	Fullname         string
	Bio              string
	NativeLanguage   string
	LearningLanguage string
	Location         string
}

// Onboard completes the profile and flips the onboarding flag.
func (s *AuthService) Onboard(ctx context.Context, userID string, in OnboardInput) (*entity.User, error) {
	if in.Fullname == "" || in.Bio == "" || in.NativeLanguage == "" || in.LearningLanguage == "" || in.Location == "" {
		return nil, ErrValidation
	}
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	u.Fullname = in.Fullname
	u.Bio = in.Bio
	u.NativeLanguage = in.NativeLanguage
	u.LearningLanguage = in.LearningLanguage
	u.Location = in.Location
	u.IsOnboarded = true
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		key := helpers.SessionKey(u.ID)
		if err := s.Redis.HSet(ctx, key, map[string]any{
			"fullname":   u.Fullname,
			"updated_at": nowRFC3339(),
		}).Err(); err != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("session update failed")
		}
	}

	s.mirrorProfile(ctx, u)
	s.indexUser(ctx, u)
	return u, nil
}

// UploadAvatar stores a new profile picture in GCS and updates the profile.
func (s *AuthService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, id+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	u.ProfilePic = url
	if err := s.Repo.Update(u); err != nil {
		return "", err
	}

	s.mirrorProfile(ctx, u)
	s.indexUser(ctx, u)
	return url, nil
}

// mirrorProfile enqueues a chat-identity mirror job. The mirror is strictly
// best-effort: a publish failure is logged and swallowed so it can never fail
// the primary operation.
func (s *AuthService) mirrorProfile(ctx context.Context, u *entity.User) {
	if s.MirrorPub == nil {
		return
	}
	job := chat.MirrorJob{UserID: u.ID, Name: u.Fullname, Image: u.ProfilePic}
	if err := s.MirrorPub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("chat mirror publish failed")
	}
}

func (s *AuthService) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":                u.ID,
		"fullname":          u.Fullname,
		"profile_pic":       u.ProfilePic,
		"native_language":   u.NativeLanguage,
		"learning_language": u.LearningLanguage,
		"location":          u.Location,
		"is_onboarded":      u.IsOnboarded,
		"updated_at":        u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

// SearchUsers runs a multi_match query over the profile fields of onboarded
// users. Returns an empty slice when Elasticsearch is not configured.
func (s *AuthService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"fullname^2", "native_language", "learning_language", "location"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"is_onboarded": true},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
