package modules

import (
	"github.com/gin-gonic/gin"

	repo "github.com/PPanwar29/Streamify/internal/domain/repository"
	handlers "github.com/PPanwar29/Streamify/internal/interface/http"
	"github.com/PPanwar29/Streamify/internal/interface/middleware"
	"github.com/PPanwar29/Streamify/pkg/helpers"
)

// UserModule wires the friend graph routes. Every route requires a session.
type UserModule struct {
	Handler *handlers.UserHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, users repo.UserRepository, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, Users: users, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	user.Use(middleware.Auth(m.Users, m.JWT))
	{
		user.GET("", m.Handler.Recommended)
		user.GET("/friends", m.Handler.Friends)
		user.DELETE("/friends/:id", m.Handler.RemoveFriend)

		user.POST("/friend-request/:id", m.Handler.SendFriendRequest)
		user.PUT("/friend-request/:id/accept", m.Handler.AcceptFriendRequest)
		user.DELETE("/friend-request/:id/reject", m.Handler.RejectFriendRequest)

		user.GET("/friend-requests", m.Handler.FriendRequests)
		user.GET("/outgoing-friend-requests", m.Handler.OutgoingFriendRequests)

		user.GET("/search", m.Handler.Search)
	}
}
