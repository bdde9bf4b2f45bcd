package assistant

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

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
	assistants := r.Group("/assistants")
	{
		assistants.GET("", h.List)
		assistants.POST("", h.Create)
		assistants.PUT("/:id", h.Update)
	}
}

func (h *Handler) List(c *gin.Context) {
	assistants, err := h.repo.ListAssistants(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, assistants)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	a := &model.Assistant{
		Name:       req.Name,
		Department: req.Department,
		Phone:      req.Phone,
		Email:      req.Email,
		WeeklyOff:  req.WeeklyOff,
		PrefFirst:  model.ParseRolePreference(req.PrefFirst),
		PrefSecond: model.ParseRolePreference(req.PrefSecond),
		PrefThird:  model.ParseRolePreference(req.PrefThird),
		Active:     true,
	}
	if err := h.repo.CreateAssistant(c.Request.Context(), a); err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	h.profileChanged(c.Request.Context(), a)
	httputil.RespondWithCreated(c, a)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid assistant id", err))
		return
	}
	var req model.UpdateAssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	a, err := h.repo.GetAssistant(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("assistant", err))
		return
	}

	if req.Department != nil {
		a.Department = *req.Department
	}
	if req.Phone != nil {
		a.Phone = *req.Phone
	}
	if req.Email != nil {
		a.Email = *req.Email
	}
	if req.WeeklyOff != nil {
		a.WeeklyOff = *req.WeeklyOff
	}
	if req.PrefFirst != nil {
		a.PrefFirst = model.ParseRolePreference(*req.PrefFirst)
	}
	if req.PrefSecond != nil {
		a.PrefSecond = model.ParseRolePreference(*req.PrefSecond)
	}
	if req.PrefThird != nil {
		a.PrefThird = model.ParseRolePreference(*req.PrefThird)
	}
	if req.Active != nil {
		a.Active = *req.Active
	}

	if err := h.repo.UpdateAssistant(c.Request.Context(), a); err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	h.profileChanged(c.Request.Context(), a)
	httputil.RespondWithSuccess(c, a)
}
