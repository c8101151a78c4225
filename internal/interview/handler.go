package interview

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/interview/:discipline", h.get)
}

func (h *Handler) get(c *gin.Context) {
	set, err := h.Svc.Get(c.Request.Context(), c.Param("discipline"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.NotFound(c, "No questions found for this discipline")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Internal Server Error", nil)
		return
	}
	respond.OK(c, set)
}
