package modules

import (
	"github.com/gin-gonic/gin"

	repo "github.com/PPanwar29/Streamify/internal/domain/repository"
	handlers "github.com/PPanwar29/Streamify/internal/interface/http"
	"github.com/PPanwar29/Streamify/internal/interface/middleware"
	"github.com/PPanwar29/Streamify/pkg/helpers"
)

// AuthModule wires signup/login/logout plus the session-gated profile routes.
// Public: POST /api/auth/signup, /api/auth/login, /api/auth/logout
// Protected: POST /api/auth/onboarding, GET /api/auth/me, POST /api/auth/avatar
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, users repo.UserRepository, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, Users: users, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", m.Handler.Signup)
	rg.POST("/auth/login", m.Handler.Login)
	rg.POST("/auth/logout", m.Handler.Logout)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	{
		auth.POST("/onboarding", m.Handler.Onboarding)
		auth.GET("/me", m.Handler.Me)
		auth.POST("/avatar", m.Handler.UploadAvatar)
	}
}
