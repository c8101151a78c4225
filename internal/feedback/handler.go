package feedback

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/shared/server/middleware"
	"cvmaker-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc   *Service
	Admin middleware.AdminLookup
}

func NewHandler(svc *Service, admin middleware.AdminLookup) *Handler {
	return &Handler{Svc: svc, Admin: admin}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	fb := rg.Group("/feedback")

	user := fb.Group("", middleware.RequireUser())
	user.POST("/submit", h.submit)
	user.GET("/my-feedbacks", h.mine)

	admin := fb.Group("", middleware.RequireAdmin(h.Admin))
	admin.GET("/all", h.all)
	admin.GET("/stats", h.stats)
	admin.DELETE("/:feedbackId", h.delete)
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, err)
		return
	}

	rating, ratingErr := req.Rating.Int64()
	missingRating := req.Rating == "" || (ratingErr == nil && rating == 0)
	missingText := req.Feedback == ""
	if missingRating || missingText {
		respond.Error(c, http.StatusBadRequest, "validation_error", "All fields are required", gin.H{
			"missing": gin.H{"rating": missingRating, "feedback": missingText},
		})
		return
	}
	if ratingErr != nil {
		respond.BadRequest(c, "Rating must be between 1 and 5", nil)
		return
	}

	fb, err := h.Svc.Submit(c.Request.Context(), middleware.UserIDFromContext(c), int(rating), req.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRating):
			respond.BadRequest(c, "Rating must be between 1 and 5", nil)
		case errors.Is(err, ErrEmptyFeedback):
			respond.BadRequest(c, "Feedback cannot be empty", nil)
		case errors.Is(err, ErrUserNotFound):
			respond.NotFound(c, "User not found")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit feedback", nil)
		}
		return
	}
	respond.Created(c, gin.H{"message": "Feedback submitted successfully", "feedback": fb})
}

func (h *Handler) mine(c *gin.Context) {
	list, err := h.Svc.ListByUser(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list feedback", nil)
		return
	}
	respond.OK(c, gin.H{"message": "Your feedbacks retrieved successfully", "count": len(list), "feedbacks": list})
}

func (h *Handler) all(c *gin.Context) {
	list, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list feedback", nil)
		return
	}
	respond.OK(c, gin.H{"message": "Feedbacks retrieved successfully", "count": len(list), "feedbacks": list})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute feedback stats", nil)
		return
	}
	respond.OK(c, gin.H{"message": "Feedback statistics retrieved successfully", "stats": stats})
}

func (h *Handler) delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("feedbackId"))
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.NotFound(c, "Feedback not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete feedback", nil)
		return
	}
	respond.OK(c, gin.H{"message": "Feedback deleted successfully", "feedbackId": id})
}
