package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatToken(t *testing.T) {
	engine := newTestRouter(t)
	ck, id := signup(t, engine, "Alice", "alice@example.com")

	rec, env := doJSON(t, engine, http.MethodGet, "/api/chat/token", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)

	// The token must be an HS256 JWT signed with the provider secret and
	// carrying the caller's user id.
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(data.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testChatSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, id, claims["user_id"])
}
