package timeblock

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicboard/allotment-api/internal/model"
	"github.com/clinicboard/allotment-api/internal/repository"
	apperrors "github.com/clinicboard/allotment-api/pkg/errors"
	"github.com/clinicboard/allotment-api/pkg/httputil"
)

type Handler struct {
	repo repository.TimeBlockRepository
	now  func() time.Time
}

func NewHandler(repo repository.TimeBlockRepository, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{repo: repo, now: now}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	blocks := r.Group("/time-blocks")
	{
		blocks.GET("", h.List)
		blocks.POST("", h.Create)
		blocks.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = h.now().Format("2006-01-02")
	}
	blocks, err := h.repo.ListByDate(c.Request.Context(), date)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, blocks)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateTimeBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	block := &model.TimeBlock{
		Assistant: req.Assistant,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	}
	if block.Reason == "" {
		block.Reason = "Backend Work"
	}
	if err := h.repo.Create(c.Request.Context(), block); err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithCreated(c, block)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid time block id", err))
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("time block", err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": id})
}
