package jobs

import (
	"errors"
	"net/http"

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
	jobs := rg.Group("/jobs")
	jobs.GET("/getAll", h.list)

	admin := jobs.Group("", middleware.RequireAdmin(h.Admin))
	admin.POST("/create", h.create)
	admin.PATCH("/updateJob/:id", h.update)
	admin.DELETE("/deleteJob/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, err)
		return
	}
	job, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "Error creating job")
		return
	}
	c.Set(middleware.JobIDKey, job.ID)
	respond.Created(c, job)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "Error fetching jobs")
		return
	}
	respond.OK(c, list)
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, err)
		return
	}
	id := c.Param("id")
	c.Set(middleware.JobIDKey, id)
	job, err := h.Svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err, "Error updating job")
		return
	}
	respond.OK(c, job)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.JobIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, "Error deleting job")
		return
	}
	respond.OK(c, gin.H{"message": "Job deleted successfully"})
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.NotFound(c, "Job not found")
	case errors.Is(err, ErrInvalidInput):
		respond.BadRequest(c, "jobTitle, vacancies, jobType and salary are required", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
