package attendance

import (
	"github.com/gin-gonic/gin"

	attendanceService "github.com/clinicboard/allotment-api/internal/service/attendance"
	apperrors "github.com/clinicboard/allotment-api/pkg/errors"
	"github.com/clinicboard/allotment-api/pkg/httputil"
)

type Handler struct {
	service *attendanceService.Service
}

func NewHandler(service *attendanceService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	attendance := r.Group("/attendance")
	{
		attendance.GET("", h.Today)
		attendance.POST("/punch-in", h.PunchIn)
		attendance.POST("/punch-out", h.PunchOut)
	}
}

func (h *Handler) Today(c *gin.Context) {
	today, err := h.service.Today(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, today)
}

type punchRequest struct {
	Assistant string `json:"assistant" binding:"required"`
}

func (h *Handler) PunchIn(c *gin.Context) {
	var req punchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	if err := h.service.PunchIn(c.Request.Context(), req.Assistant); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"assistant": req.Assistant, "state": "IN"})
}

func (h *Handler) PunchOut(c *gin.Context) {
	var req punchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	if err := h.service.PunchOut(c.Request.Context(), req.Assistant); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"assistant": req.Assistant, "state": "OUT"})
}
