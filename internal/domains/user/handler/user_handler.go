package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booklog-backend/internal/domains/user/model"
	"booklog-backend/internal/domains/user/service"
	"booklog-backend/internal/shared/middleware"
	"booklog-backend/internal/shared/response"
)

// Handler exposes auth and profile endpoints
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Register - POST /auth/register
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	auth, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		handleUserError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, auth)
}

// Login - POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	auth, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		handleUserError(c, err)
		return
	}
	response.Success(c, http.StatusOK, auth)
}

// Refresh - POST /auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	auth, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		handleUserError(c, err)
		return
	}
	response.Success(c, http.StatusOK, auth)
}

// GetProfile - GET /users/me
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		handleUserError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// UpdateProfile - PUT /users/me
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		handleUserError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// =====================================================
// HELPERS
// =====================================================

func handleUserError(c *gin.Context, err error) {
	var userErr *model.UserError
	if errors.As(err, &userErr) {
		switch userErr.Code {
		case model.ErrCodeUserNotFound:
			response.ErrorResponse(c, http.StatusNotFound, userErr.Code, userErr.Message)
		case model.ErrCodeEmailTaken, model.ErrCodeUsernameTaken:
			response.ErrorResponse(c, http.StatusConflict, userErr.Code, userErr.Message)
		case model.ErrCodeInvalidCredentials:
			response.ErrorResponse(c, http.StatusUnauthorized, userErr.Code, userErr.Message)
		case model.ErrCodeAccountDisabled:
			response.ErrorResponse(c, http.StatusForbidden, userErr.Code, userErr.Message)
		default:
			response.ErrorResponse(c, http.StatusBadRequest, userErr.Code, userErr.Message)
		}
		return
	}

	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", validationErrs)
		return
	}

	response.InternalServerError(c, "internal server error")
}
