package availability

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicboard/allotment-api/internal/service/allocation"
	availabilityService "github.com/clinicboard/allotment-api/internal/service/availability"
	apperrors "github.com/clinicboard/allotment-api/pkg/errors"
	"github.com/clinicboard/allotment-api/pkg/httputil"
	"github.com/clinicboard/allotment-api/pkg/metrics"
)

type Handler struct {
	service *availabilityService.Service
	metrics *metrics.Metrics
}

func NewHandler(service *availabilityService.Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/availability", h.Report)
	r.GET("/status-board", h.Board)
	r.GET("/workload", h.Workload)
}

func (h *Handler) Report(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		httputil.RespondWithError(c, apperrors.BadRequest("start and end are required", nil))
		return
	}
	if h.metrics != nil {
		h.metrics.AvailabilityChecks.Inc()
	}
	report := h.service.Report(c.Request.Context(), start, end, c.Query("exclude_row_id"))
	httputil.RespondWithSuccess(c, report)
}

func (h *Handler) Board(c *gin.Context) {
	if h.metrics != nil {
		h.metrics.StatusBoardRequests.Inc()
	}
	httputil.RespondWithSuccess(c, h.service.Board(c.Request.Context()))
}

func (h *Handler) Workload(c *gin.Context) {
	ctx := c.Request.Context()
	snap := h.service.Snapshot(ctx)
	assistants := h.service.Directory().AllAssistants(ctx)
	httputil.RespondWithSuccess(c, allocation.WorkloadSummary(snap.Schedule, assistants))
}
