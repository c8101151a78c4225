package cvs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/ats"
	"cvmaker-backend/internal/extract"
	"cvmaker-backend/internal/llm"
	"cvmaker-backend/internal/shared/server/middleware"
	"cvmaker-backend/internal/shared/server/respond"
)

const (
	maxUploadSize = 10 << 20 // 10MB
	uploadField   = "cv"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	cv := rg.Group("/cv")
	cv.POST("/score", h.scoreRaw)

	authed := cv.Group("", middleware.RequireUser())
	authed.POST("/upload-cv", h.upload)
	authed.GET("/current", h.current)
	authed.GET("", h.list)
	authed.POST("/current/score", h.scoreCurrent)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds 10MB limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file uploaded", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	cv, err := h.Svc.Process(c.Request.Context(), UploadInput{
		UserID:   middleware.UserIDFromContext(c),
		Email:    middleware.UserEmailFromContext(c),
		FileName: fileHeader.Filename,
		JobTitle: c.PostForm("jobTitle"),
	}, file)
	if err != nil {
		writeProcessError(c, err)
		return
	}

	c.Set(middleware.CVIDKey, cv.ID)
	respond.Created(c, gin.H{
		"message": "CV processed successfully",
		"cvId":    cv.ID,
		"data":    cv.ExtractedData,
		"ats":     cv.ATSResult,
	})
}

func writeProcessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid upload", nil)
	case errors.Is(err, extract.ErrUnreadable):
		respond.Error(c, http.StatusUnprocessableEntity, "unreadable_document", "Could not read text from the uploaded file", nil)
	case errors.Is(err, llm.ErrExtractionFormat):
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_format", "Could not extract structured data from the CV", nil)
	case errors.Is(err, llm.ErrUnavailable):
		respond.Error(c, http.StatusBadGateway, "llm_unavailable", "CV extraction service unavailable", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process CV", nil)
	}
}

func (h *Handler) current(c *gin.Context) {
	cv, err := h.Svc.Current(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.NotFound(c, "No CV found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch CV", nil)
		return
	}
	c.Set(middleware.CVIDKey, cv.ID)
	respond.OK(c, cv)
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	limit = min(max(limit, 0), 50)
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	offset = max(offset, 0)

	list, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list CVs", nil)
		return
	}

	resp := make([]gin.H, 0, len(list))
	for _, cv := range list {
		resp = append(resp, gin.H{
			"cvId":       cv.ID,
			"fileName":   cv.FileName,
			"mimeType":   cv.MimeType,
			"sizeBytes":  cv.SizeBytes,
			"jobTitle":   cv.JobTitle,
			"atsScore":   cv.ATSScore,
			"uploadedAt": cv.CreatedAt,
		})
	}
	respond.OK(c, resp)
}

func (h *Handler) scoreCurrent(c *gin.Context) {
	var req scoreCurrentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, err)
		return
	}
	cv, result, err := h.Svc.ScoreCurrent(c.Request.Context(), middleware.UserIDFromContext(c), req.JobTitle)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.NotFound(c, "No CV found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to score CV", nil)
		return
	}
	c.Set(middleware.CVIDKey, cv.ID)
	respond.OK(c, gin.H{"cvId": cv.ID, "ats": result})
}

func (h *Handler) scoreRaw(c *gin.Context) {
	var req scoreRawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, err)
		return
	}
	if len(req.Resume) == 0 {
		respond.BadRequest(c, "resume is required", nil)
		return
	}
	normalized, result, err := h.Svc.ScoreRaw(req.Resume, req.JobTitle)
	if err != nil {
		if errors.Is(err, ats.ErrNotObject) {
			respond.BadRequest(c, "resume must be a JSON object", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to score resume", nil)
		return
	}
	respond.OK(c, gin.H{"data": normalized, "ats": result})
}
