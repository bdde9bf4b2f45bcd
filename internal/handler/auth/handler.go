package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicboard/allotment-api/internal/model"
	authService "github.com/clinicboard/allotment-api/internal/service/auth"
	apperrors "github.com/clinicboard/allotment-api/pkg/errors"
	"github.com/clinicboard/allotment-api/pkg/httputil"
)

type Handler struct {
	service *authService.Service
}

func NewHandler(service *authService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, resp)
}
