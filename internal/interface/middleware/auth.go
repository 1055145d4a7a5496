package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PPanwar29/Streamify/internal/domain/entity"
	repo "github.com/PPanwar29/Streamify/internal/domain/repository"
	"github.com/PPanwar29/Streamify/pkg/helpers"
	"github.com/PPanwar29/Streamify/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxUserKey   = "currentUser"
)

// Auth is the session gate: it resolves the session cookie into an
// authenticated identity and aborts with 401 when the token is missing,
// fails verification, or the identity no longer exists. On success the user
// (password excluded) is attached to the context for downstream handlers.
func Auth(users repo.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing session token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseSessionToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid session token", nil)
			c.Abort()
			return
		}

		u, err := users.GetByID(claims.UserID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				response.Error[any](c, http.StatusUnauthorized, "user not found", nil)
			} else {
				response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
			}
			c.Abort()
			return
		}

		u.Password = ""
		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// CurrentUser fetches the user attached by Auth.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
