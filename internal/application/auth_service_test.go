package application

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PPanwar29/Streamify/pkg/chat"
	"github.com/PPanwar29/Streamify/pkg/helpers"
)

type recordingPublisher struct {
	jobs []chat.MirrorJob
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	if job, ok := body.(chat.MirrorJob); ok {
		p.jobs = append(p.jobs, job)
	}
	return p.err
}

func newAuthFixture(t *testing.T, pub MirrorPublisher) (*AuthService, *memUserRepo) {
	t.Helper()
	users := newMemUserRepo()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(users, jwt, nil, discardLogger(), pub, nil, "", nil, ""), users
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "a@b.com", "password123")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Register(ctx, "Alice", "", "password123")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Register(ctx, "Alice", "a@b.com", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Register(ctx, "Alice", "not an email", "password123")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterDefaultsAndHashing(t *testing.T) {
	svc, users := newAuthFixture(t, nil)

	u, err := svc.Register(context.Background(), "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Regexp(t, regexp.MustCompile(`^https://avatar\.iran\.liara\.run/public/\d+\.png$`), u.ProfilePic)
	assert.NotEqual(t, "password123", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "password123"))

	stored, err := users.GetByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, stored.ID)
}

func TestRegisterEmailTaken(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Alice", "alice@example.com", "password456")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	u, err := svc.Authenticate(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Fullname)
}

func TestIssueSessionRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	token, exp, err := svc.IssueSession(ctx, u)
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	claims, err := svc.JWT.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestMirrorPublishedOnRegisterAndOnboard(t *testing.T) {
	pub := &recordingPublisher{}
	svc, _ := newAuthFixture(t, pub)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	require.Len(t, pub.jobs, 1)
	assert.Equal(t, u.ID, pub.jobs[0].UserID)
	assert.Equal(t, "Alice", pub.jobs[0].Name)

	_, err = svc.Onboard(ctx, u.ID, OnboardInput{
		Fullname:         "Alice Lidell",
		Bio:              "learning japanese",
		NativeLanguage:   "english",
		LearningLanguage: "japanese",
		Location:         "London",
	})
	require.NoError(t, err)
	require.Len(t, pub.jobs, 2)
	assert.Equal(t, "Alice Lidell", pub.jobs[1].Name)
}

func TestMirrorPublishFailureIsSwallowed(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc, _ := newAuthFixture(t, pub)

	u, err := svc.Register(context.Background(), "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
}

func TestOnboard(t *testing.T) {
	svc, users := newAuthFixture(t, nil)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.False(t, u.IsOnboarded)

	_, err = svc.Onboard(ctx, u.ID, OnboardInput{Fullname: "Alice"})
	assert.ErrorIs(t, err, ErrValidation)

	in := OnboardInput{
		Fullname:         "Alice",
		Bio:              "hello",
		NativeLanguage:   "english",
		LearningLanguage: "spanish",
		Location:         "Madrid",
	}
	out, err := svc.Onboard(ctx, u.ID, in)
	require.NoError(t, err)
	assert.True(t, out.IsOnboarded)
	assert.Equal(t, "spanish", out.LearningLanguage)

	stored, err := users.GetByID(u.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsOnboarded)

	_, err = svc.Onboard(ctx, "11111111-2222-3333-4444-555555555555", in)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSearchUsersWithoutElasticsearch(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)

	out, err := svc.SearchUsers(context.Background(), "spanish", 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}
