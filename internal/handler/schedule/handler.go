package schedule

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clinicboard/allotment-api/internal/model"
	"github.com/clinicboard/allotment-api/internal/service/allocation"
	scheduleService "github.com/clinicboard/allotment-api/internal/service/schedule"
	apperrors "github.com/clinicboard/allotment-api/pkg/errors"
	"github.com/clinicboard/allotment-api/pkg/httputil"
)

type Handler struct {
	service   *scheduleService.Service
	allocator *allocation.Service
}

func NewHandler(service *scheduleService.Service, allocator *allocation.Service) *Handler {
	return &Handler{service: service, allocator: allocator}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	rows := r.Group("/schedule")
	{
		rows.GET("", h.List)
		rows.POST("", h.Create)
		rows.POST("/allocate", h.AllocateAll)
		rows.PUT("/:id", h.Update)
		rows.PUT("/:id/status", h.UpdateStatus)
		rows.POST("/:id/allocate", h.AllocateRow)
		rows.DELETE("/:id/assistants/:name", h.RemoveAssistant)
	}
}

func (h *Handler) List(c *gin.Context) {
	rows, err := h.service.ListByDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rows)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	row, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, row)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	row, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, row)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	row, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), model.AppointmentStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, row)
}

func (h *Handler) RemoveAssistant(c *gin.Context) {
	row, err := h.service.RemoveAssistant(c.Request.Context(), c.Param("id"), c.Param("name"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, row)
}

type allocateRequest struct {
	OnlyFillEmpty bool `json:"only_fill_empty"`
}

func (h *Handler) AllocateRow(c *gin.Context) {
	var req allocateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
			return
		}
	}
	result, err := h.allocator.AllocateRow(c.Request.Context(), c.Param("id"), req.OnlyFillEmpty)
	if err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("appointment", err))
		return
	}
	httputil.RespondWithSuccess(c, result)
}

func (h *Handler) AllocateAll(c *gin.Context) {
	var req allocateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
			return
		}
	}
	changed, err := h.allocator.AllocateAll(c.Request.Context(), req.OnlyFillEmpty)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"slots_changed": changed})
}
