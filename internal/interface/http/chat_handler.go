package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/PPanwar29/Streamify/internal/interface/middleware"
	"github.com/PPanwar29/Streamify/pkg/chat"
	"github.com/PPanwar29/Streamify/pkg/response"
)

// ChatHandler proxies token minting for the external chat provider. The
// client is constructed once at process start and injected here.
type ChatHandler struct {
	Chat   *chat.Client
	Logger *logrus.Logger
}

func NewChatHandler(client *chat.Client, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{Chat: client, Logger: logger}
}

// Token GET /api/chat/token
func (h *ChatHandler) Token(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if h.Chat == nil {
		h.Logger.Error("chat client not configured")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	token, err := h.Chat.CreateToken(uid)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("chat token generation failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token}, "chat token")
}
