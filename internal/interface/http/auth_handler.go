package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/PPanwar29/Streamify/internal/application"
	"github.com/PPanwar29/Streamify/internal/interface/middleware"
	"github.com/PPanwar29/Streamify/pkg/helpers"
	"github.com/PPanwar29/Streamify/pkg/response"
	"github.com/PPanwar29/Streamify/pkg/validation"
)

// maxAvatarBytes caps multipart avatar uploads.
const maxAvatarBytes = 5 << 20

type AuthHandler struct {
	Svc     *application.AuthService
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, jwt *helpers.JWTManager, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, JWT: jwt, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type signupRequest struct {
	Fullname string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type onboardingRequest struct {
	Fullname         string `json:"fullname" binding:"required"`
	Bio              string `json:"bio" binding:"required"`
	NativeLanguage   string `json:"nativeLanguage" binding:"required"`
	LearningLanguage string `json:"learningLanguage" binding:"required"`
	Location         string `json:"location" binding:"required"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), req.Fullname, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Error[any](c, http.StatusBadRequest, "user already exists", nil)
		case errors.Is(err, application.ErrValidation):
			response.Error[any](c, http.StatusBadRequest, "all fields are required", nil)
		default:
			h.Logger.WithError(err).Error("signup failed")
			response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}

	token, exp, err := h.Svc.IssueSession(c.Request.Context(), u)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	h.Cookies.SetSession(c, token, exp)

	response.Success(c, http.StatusCreated, gin.H{
		"fullname":   u.Fullname,
		"email":      u.Email,
		"profilePic": u.ProfilePic,
	}, "signup successful")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusBadRequest, "user doesn't exist, please register first", nil)
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error[any](c, http.StatusBadRequest, "password is incorrect", nil)
		case errors.Is(err, application.ErrValidation):
			response.Error[any](c, http.StatusBadRequest, "email and password are required", nil)
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}

	token, exp, err := h.Svc.IssueSession(c.Request.Context(), u)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	h.Cookies.SetSession(c, token, exp)

	response.Success(c, http.StatusOK, gin.H{
		"fullname":   u.Fullname,
		"email":      u.Email,
		"profilePic": u.ProfilePic,
	}, "login successful")
}

// Logout POST /api/auth/logout
// Logout is unauthenticated: it clears the cookie regardless, and drops the
// server-side session record when the token still resolves to a user.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(helpers.SessionCookieName); err == nil && token != "" {
		if claims, err := h.JWT.ParseSessionToken(token); err == nil {
			h.Svc.ClearSession(c.Request.Context(), claims.UserID)
		}
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out successfully")
}

// Onboarding POST /api/auth/onboarding (session)
func (h *AuthHandler) Onboarding(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "all fields are required", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Onboard(c.Request.Context(), uid, application.OnboardInput{
		Fullname:         req.Fullname,
		Bio:              req.Bio,
		NativeLanguage:   req.NativeLanguage,
		LearningLanguage: req.LearningLanguage,
		Location:         req.Location,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrValidation):
			response.Error[any](c, http.StatusBadRequest, "all fields are required", nil)
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		default:
			h.Logger.WithError(err).WithField("user_id", uid).Error("onboarding failed")
			response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"fullname":         u.Fullname,
		"bio":              u.Bio,
		"nativeLanguage":   u.NativeLanguage,
		"learningLanguage": u.LearningLanguage,
		"location":         u.Location,
		"isOnboarded":      u.IsOnboarded,
	}, "onboarding complete")
}

// Me GET /api/auth/me (session)
func (h *AuthHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":               u.ID,
		"fullname":         u.Fullname,
		"email":            u.Email,
		"bio":              u.Bio,
		"profilePic":       u.ProfilePic,
		"nativeLanguage":   u.NativeLanguage,
		"learningLanguage": u.LearningLanguage,
		"location":         u.Location,
		"isOnboarded":      u.IsOnboarded,
	}, "current user")
}

// UploadAvatar POST /api/auth/avatar (session, multipart field "avatar")
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	if fh.Size > maxAvatarBytes {
		response.Error[any](c, http.StatusBadRequest, "avatar too large", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "avatar file unreadable", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), uid, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("avatar upload failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profilePic": url}, "avatar updated")
}
