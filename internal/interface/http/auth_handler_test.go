package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	engine := newTestRouter(t)

	rec, env := doJSON(t, engine, http.MethodPost, "/api/auth/signup", gin.H{
		"fullname": "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	var data struct {
		Fullname   string `json:"fullname"`
		Email      string `json:"email"`
		ProfilePic string `json:"profilePic"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Alice", data.Fullname)
	assert.Equal(t, "alice@example.com", data.Email)
	assert.NotEmpty(t, data.ProfilePic)

	ck := sessionCookie(t, rec)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	assert.NotEmpty(t, ck.Value)
}

func TestSignupDuplicateEmail(t *testing.T) {
	engine := newTestRouter(t)
	signup(t, engine, "Alice", "alice@example.com")

	rec, env := doJSON(t, engine, http.MethodPost, "/api/auth/signup", gin.H{
		"fullname": "Other Alice",
		"email":    "alice@example.com",
		"password": "password456",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "user already exists", env.Message)
}

func TestSignupValidation(t *testing.T) {
	engine := newTestRouter(t)

	// Short password fails the pwd binding.
	rec, env := doJSON(t, engine, http.MethodPost, "/api/auth/signup", gin.H{
		"fullname": "Alice",
		"email":    "alice@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var details map[string]string
	require.NoError(t, json.Unmarshal(env.Error, &details))
	assert.Contains(t, details, "password")

	rec, _ = doJSON(t, engine, http.MethodPost, "/api/auth/signup", gin.H{
		"fullname": "Alice",
		"email":    "not-an-email",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	engine := newTestRouter(t)
	signup(t, engine, "Alice", "alice@example.com")

	rec, env := doJSON(t, engine, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "user doesn't exist, please register first", env.Message)

	rec, env = doJSON(t, engine, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "password is incorrect", env.Message)

	rec, env = doJSON(t, engine, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, sessionCookie(t, rec).Value)
}

func TestLogoutClearsCookie(t *testing.T) {
	engine := newTestRouter(t)
	ck, _ := signup(t, engine, "Alice", "alice@example.com")

	rec, env := doJSON(t, engine, http.MethodPost, "/api/auth/logout", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	cleared := sessionCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	// Logout without a session still succeeds.
	rec, _ = doJSON(t, engine, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMeRequiresSession(t *testing.T) {
	engine := newTestRouter(t)

	rec, env := doJSON(t, engine, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)

	rec, _ = doJSON(t, engine, http.MethodGet, "/api/auth/me", nil, &http.Cookie{Name: "session_token", Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe(t *testing.T) {
	engine := newTestRouter(t)
	ck, id := signup(t, engine, "Alice", "alice@example.com")

	rec, env := doJSON(t, engine, http.MethodGet, "/api/auth/me", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		ID          string `json:"id"`
		Fullname    string `json:"fullname"`
		Email       string `json:"email"`
		IsOnboarded bool   `json:"isOnboarded"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, id, me.ID)
	assert.Equal(t, "Alice", me.Fullname)
	assert.Equal(t, "alice@example.com", me.Email)
	assert.False(t, me.IsOnboarded)

	assert.NotContains(t, rec.Body.String(), "password")
}

func TestOnboarding(t *testing.T) {
	engine := newTestRouter(t)
	ck, _ := signup(t, engine, "Alice", "alice@example.com")

	rec, _ := doJSON(t, engine, http.MethodPost, "/api/auth/onboarding", gin.H{
		"fullname": "Alice",
	}, ck)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := doJSON(t, engine, http.MethodPost, "/api/auth/onboarding", gin.H{
		"fullname":         "Alice Lidell",
		"bio":              "learning japanese",
		"nativeLanguage":   "english",
		"learningLanguage": "japanese",
		"location":         "London",
	}, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Fullname    string `json:"fullname"`
		IsOnboarded bool   `json:"isOnboarded"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Alice Lidell", data.Fullname)
	assert.True(t, data.IsOnboarded)
}
