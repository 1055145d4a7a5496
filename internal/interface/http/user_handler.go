package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/PPanwar29/Streamify/internal/application"
	"github.com/PPanwar29/Streamify/internal/interface/middleware"
	"github.com/PPanwar29/Streamify/pkg/response"
)

type UserHandler struct {
	Relations *application.RelationshipService
	Auth      *application.AuthService
	Logger    *logrus.Logger
}

func NewUserHandler(relations *application.RelationshipService, auth *application.AuthService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Relations: relations, Auth: auth, Logger: logger}
}

// mapRelationError translates relationship-engine failures to status codes.
// Unanticipated failures become 500 with no internal detail in the body.
func (h *UserHandler) mapRelationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrSelfRequest):
		response.Error[any](c, http.StatusBadRequest, "you cannot send a friend request to yourself", nil)
	case errors.Is(err, application.ErrAlreadyFriends):
		response.Error[any](c, http.StatusBadRequest, "you are already friends with this user", nil)
	case errors.Is(err, application.ErrDuplicateRequest):
		response.Error[any](c, http.StatusBadRequest, "friend request already exists", nil)
	case errors.Is(err, application.ErrValidation):
		response.Error[any](c, http.StatusBadRequest, "invalid identifier", nil)
	case errors.Is(err, application.ErrNotRecipient):
		response.Error[any](c, http.StatusForbidden, "this friend request was not sent to you", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrRequestNotFound):
		response.Error[any](c, http.StatusNotFound, "friend request not found", nil)
	default:
		h.Logger.WithError(err).Error("relationship operation failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}

// Recommended GET /api/user
func (h *UserHandler) Recommended(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	users, err := h.Relations.Recommend(uid)
	if err != nil {
		h.mapRelationError(c, err)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":               u.ID,
			"fullname":         u.Fullname,
			"bio":              u.Bio,
			"profilePic":       u.ProfilePic,
			"nativeLanguage":   u.NativeLanguage,
			"learningLanguage": u.LearningLanguage,
			"location":         u.Location,
		})
	}
	response.Success(c, http.StatusOK, out, "recommended users")
}

// Friends GET /api/user/friends
func (h *UserHandler) Friends(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	friends, err := h.Relations.ListFriends(uid)
	if err != nil {
		h.mapRelationError(c, err)
		return
	}
	response.Success(c, http.StatusOK, friends, "friends")
}

// SendFriendRequest POST /api/user/friend-request/:id
func (h *UserHandler) SendFriendRequest(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	fr, err := h.Relations.SendRequest(uid, c.Param("id"))
	if err != nil {
		h.mapRelationError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":        fr.ID,
		"sender":    fr.SenderID,
		"recipient": fr.RecipientID,
		"status":    fr.Status,
		"createdAt": fr.CreatedAt,
	}, "friend request sent")
}

// AcceptFriendRequest PUT /api/user/friend-request/:id/accept
func (h *UserHandler) AcceptFriendRequest(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Relations.AcceptRequest(uid, c.Param("id")); err != nil {
		h.mapRelationError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"accepted": true}, "friend request accepted")
}

// RejectFriendRequest DELETE /api/user/friend-request/:id/reject
func (h *UserHandler) RejectFriendRequest(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Relations.RejectRequest(uid, c.Param("id")); err != nil {
		h.mapRelationError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"rejected": true}, "friend request rejected")
}

// FriendRequests GET /api/user/friend-requests
func (h *UserHandler) FriendRequests(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	incoming, err := h.Relations.ListIncomingRequests(uid)
	if err != nil {
		h.mapRelationError(c, err)
		return
	}
	accepted, err := h.Relations.ListAcceptedRequests(uid)
	if err != nil {
		h.mapRelationError(c, err)
		return
	}
	outgoing, err := h.Relations.ListOutgoingRequests(uid)
	if err != nil {
		h.mapRelationError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"incomingReq": incoming,
		"acceptedReq": accepted,
		"outgoingReq": outgoing,
	}, "friend requests")
}

// OutgoingFriendRequests GET /api/user/outgoing-friend-requests
func (h *UserHandler) OutgoingFriendRequests(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	outgoing, err := h.Relations.ListOutgoingRequests(uid)
	if err != nil {
		h.mapRelationError(c, err)
		return
	}
	response.Success(c, http.StatusOK, outgoing, "outgoing friend requests")
}

// RemoveFriend DELETE /api/user/friends/:id
func (h *UserHandler) RemoveFriend(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Relations.RemoveFriend(uid, c.Param("id")); err != nil {
		h.mapRelationError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"removed": true}, "friend removed")
}

// Search GET /api/user/search?q=
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	hits, err := h.Auth.SearchUsers(c.Request.Context(), q, 10)
	if err != nil {
		h.Logger.WithError(err).Error("user search failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}
