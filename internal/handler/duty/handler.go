package duty

import (
	"github.com/gin-gonic/gin"

	dutyService "github.com/clinicboard/allotment-api/internal/service/duty"
	"github.com/clinicboard/allotment-api/pkg/httputil"
)

type Handler struct {
	service *dutyService.Service
}

func NewHandler(service *dutyService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/duties/pending", h.Pending)
	r.GET("/duty-runs/active", h.ActiveRuns)
}

func (h *Handler) Pending(c *gin.Context) {
	pending, err := h.service.Pending(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, pending)
}

func (h *Handler) ActiveRuns(c *gin.Context) {
	runs, err := h.service.ActiveRuns(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, runs)
}
