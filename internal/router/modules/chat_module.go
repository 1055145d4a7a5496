package modules

import (
	"github.com/gin-gonic/gin"

	repo "github.com/PPanwar29/Streamify/internal/domain/repository"
	handlers "github.com/PPanwar29/Streamify/internal/interface/http"
	"github.com/PPanwar29/Streamify/internal/interface/middleware"
	"github.com/PPanwar29/Streamify/pkg/helpers"
)

// ChatModule wires the chat-provider token proxy.
type ChatModule struct {
	Handler *handlers.ChatHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewChatModule(h *handlers.ChatHandler, users repo.UserRepository, jwt *helpers.JWTManager) *ChatModule {
	return &ChatModule{Handler: h, Users: users, JWT: jwt}
}

func (m *ChatModule) Register(rg *gin.RouterGroup) {
	chat := rg.Group("/chat")
	chat.Use(middleware.Auth(m.Users, m.JWT))
	{
		chat.GET("/token", m.Handler.Token)
	}
}
