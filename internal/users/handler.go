package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/shared/server/middleware"
	"cvmaker-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)
	authGroup.POST("/request-reset", h.requestReset)
	authGroup.POST("/reset-password/:token", h.resetPassword)
	authGroup.GET("/all-users", middleware.RequireAdmin(h.Svc), h.listUsers)

	rg.GET("/me", middleware.RequireUser(), h.me)
}

func (h *Handler) register(c *gin.Context) {
	var req RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, err)
		return
	}
	if _, err := h.Svc.Register(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusBadRequest, "user_exists", "User already exists", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.BadRequest(c, "invalid registration", nil)
		default:
			respond.Internal(c)
		}
		return
	}
	respond.Created(c, gin.H{"message": "User created successfully"})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, err)
		return
	}
	token, _, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusBadRequest, "invalid_credentials", "Invalid email or password", nil)
			return
		}
		respond.Internal(c)
		return
	}
	respond.OK(c, gin.H{"message": "Login successful", "token": token})
}

func (h *Handler) requestReset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, err)
		return
	}
	if err := h.Svc.RequestReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.NotFound(c, "User not found")
			return
		}
		respond.Internal(c)
		return
	}
	respond.OK(c, gin.H{"message": "Password reset email sent successfully!"})
}

func (h *Handler) resetPassword(c *gin.Context) {
	var req newPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, err)
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		if errors.Is(err, ErrResetTokenInvalid) {
			respond.Error(c, http.StatusBadRequest, "invalid_token", "Invalid or expired token", nil)
			return
		}
		if errors.Is(err, ErrInvalidInput) {
			respond.BadRequest(c, "invalid password", nil)
			return
		}
		respond.Internal(c)
		return
	}
	respond.OK(c, gin.H{"message": "Password reset successfully!"})
}

func (h *Handler) listUsers(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Internal(c)
		return
	}
	respond.OK(c, gin.H{"users": list})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.Svc.GetByID(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.NotFound(c, "User not found")
			return
		}
		respond.Internal(c)
		return
	}
	respond.OK(c, user)
}
