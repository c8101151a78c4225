package applications

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/shared/server/middleware"
	"cvmaker-backend/internal/shared/server/respond"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Svc   *Service
	Admin middleware.AdminLookup
}

func NewHandler(svc *Service, admin middleware.AdminLookup) *Handler {
	return &Handler{Svc: svc, Admin: admin}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	applied := rg.Group("/applied-jobs")

	user := applied.Group("", middleware.RequireUser())
	user.POST("/apply", h.apply)
	user.GET("/my-applications", h.mine)
	user.DELETE("/withdraw/:applicationId", h.withdraw)

	admin := applied.Group("", middleware.RequireAdmin(h.Admin))
	admin.GET("/all-applications", h.all)
	admin.GET("/job/:jobId", h.forJob)
	admin.GET("/job/:jobId/export", h.export)
	admin.PATCH("/status/:applicationId", h.updateStatus)
}

func (h *Handler) apply(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		respond.Validation(c, err)
		return
	}
	in, missing := ParseApply(raw)
	if missing != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "All fields are required", gin.H{"missing": missing})
		return
	}

	app, err := h.Svc.Apply(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		var dup *DuplicateError
		switch {
		case errors.As(err, &dup):
			respond.Error(c, http.StatusBadRequest, "already_applied", "You have already applied for this job", gin.H{
				"applicationId": dup.Existing.ID,
				"appliedAt":     dup.Existing.AppliedAt,
			})
		case errors.Is(err, ErrJobNotFound):
			respond.NotFound(c, "Job not found")
		case errors.Is(err, ErrInvalidInput):
			respond.BadRequest(c, "jobId is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit application", nil)
		}
		return
	}

	c.Set(middleware.ApplicationIDKey, app.ID)
	c.Set(middleware.JobIDKey, app.JobID)
	respond.Created(c, gin.H{
		"message": "Application submitted successfully",
		"application": gin.H{
			"applicationId":     app.ID,
			"jobTitle":          app.JobTitle,
			"jobType":           app.JobType,
			"atsScore":          app.ATSScore,
			"applicationStatus": app.Status,
			"appliedAt":         app.AppliedAt,
		},
	})
}

func (h *Handler) all(c *gin.Context) {
	list, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	respond.OK(c, gin.H{"message": "All applications retrieved successfully", "count": len(list), "applications": list})
}

func (h *Handler) mine(c *gin.Context) {
	list, err := h.Svc.ListByUser(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	respond.OK(c, gin.H{"message": "Applications retrieved successfully", "count": len(list), "applications": list})
}

func (h *Handler) forJob(c *gin.Context) {
	jobID := c.Param("jobId")
	c.Set(middleware.JobIDKey, jobID)
	list, err := h.Svc.Ranking(c.Request.Context(), jobID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	respond.OK(c, gin.H{"message": "Applications retrieved successfully", "count": len(list), "applications": list})
}

func (h *Handler) export(c *gin.Context) {
	jobID := c.Param("jobId")
	c.Set(middleware.JobIDKey, jobID)
	data, fileName, err := h.Svc.ExportRanking(c.Request.Context(), jobID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export applications", nil)
		return
	}
	respond.Attachment(c, fileName, xlsxContentType, data)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	id := c.Param("applicationId")
	c.Set(middleware.ApplicationIDKey, id)

	var req statusRequest
	_ = c.ShouldBindJSON(&req)
	app, err := h.Svc.UpdateStatus(c.Request.Context(), id, Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Valid status is required", gin.H{"validStatuses": ValidStatuses})
		case errors.Is(err, ErrNotFound):
			respond.NotFound(c, "Application not found")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update application", nil)
		}
		return
	}
	respond.OK(c, gin.H{"message": "Application status updated successfully", "application": app})
}

func (h *Handler) withdraw(c *gin.Context) {
	id := c.Param("applicationId")
	c.Set(middleware.ApplicationIDKey, id)
	if err := h.Svc.Withdraw(c.Request.Context(), id, middleware.UserIDFromContext(c)); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.NotFound(c, "Application not found or you don't have permission to withdraw it")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to withdraw application", nil)
		return
	}
	respond.OK(c, gin.H{"message": "Application withdrawn successfully", "applicationId": id})
}
