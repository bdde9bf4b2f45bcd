package doctor

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicboard/allotment-api/internal/model"
	"github.com/clinicboard/allotment-api/internal/repository"
	"github.com/clinicboard/allotment-api/internal/service/profile"
	apperrors "github.com/clinicboard/allotment-api/pkg/errors"
	"github.com/clinicboard/allotment-api/pkg/httputil"
	"github.com/clinicboard/allotment-api/pkg/messaging"
)

type Handler struct {
	repo      repository.ProfileRepository
	directory *profile.Directory
	broker    messaging.Broker
}

func NewHandler(repo repository.ProfileRepository, directory *profile.Directory, broker messaging.Broker) *Handler {
	return &Handler{repo: repo, directory: directory, broker: broker}
}

// profileChanged busts the directory cache and tells other processes to
// do the same. The event is best effort; the local cache bust is not.
func (h *Handler) profileChanged(ctx context.Context, payload interface{}) {
	h.directory.Invalidate()
	if h.broker == nil {
		return
	}
	event := messaging.Event{
		Type:       messaging.ChannelProfileUpdated,
		OccurredAt: time.Now(),
		Payload:    payload,
	}
	_ = h.broker.Publish(ctx, messaging.ChannelProfileUpdated, event)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("", h.List)
		doctors.POST("", h.Create)
	}
}

func (h *Handler) List(c *gin.Context) {
	doctors, err := h.repo.ListDoctors(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, doctors)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	d := &model.Doctor{
		Name:           req.Name,
		Department:     req.Department,
		Specialisation: req.Specialisation,
		RegNumber:      req.RegNumber,
		Active:         true,
	}
	if err := h.repo.CreateDoctor(c.Request.Context(), d); err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	h.profileChanged(c.Request.Context(), d)
	httputil.RespondWithCreated(c, d)
}
