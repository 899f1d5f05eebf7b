package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"booklog-backend/internal/domains/semester/model"
	"booklog-backend/internal/domains/semester/service"
	"booklog-backend/internal/shared/middleware"
	"booklog-backend/internal/shared/response"
)

// Handler exposes the semester calendar over HTTP
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetCurrent - GET /semesters/current
func (h *Handler) GetCurrent(c *gin.Context) {
	current, err := h.service.GetCurrent(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		handleSemesterError(c, err)
		return
	}
	response.Success(c, http.StatusOK, current)
}

// GetSemester - GET /semesters/:number
func (h *Handler) GetSemester(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		response.BadRequest(c, "invalid semester number")
		return
	}

	semester, err := h.service.GetSemester(c.Request.Context(), middleware.CurrentUserID(c), number)
	if err != nil {
		handleSemesterError(c, err)
		return
	}
	response.Success(c, http.StatusOK, semester)
}

// GetForDate - GET /semesters/for-date?date=YYYY-MM-DD
func (h *Handler) GetForDate(c *gin.Context) {
	raw := c.Query("date")
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}

	semester, err := h.service.GetSemesterForDate(c.Request.Context(), middleware.CurrentUserID(c), date)
	if err != nil {
		handleSemesterError(c, err)
		return
	}
	response.Success(c, http.StatusOK, semester)
}

// ListSemesters - GET /semesters?limit=&offset=
// Walks from the current semester backwards, stats included per entry.
func (h *Handler) ListSemesters(c *gin.Context) {
	var req model.ListSemestersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	semesters, err := h.service.ListSemesters(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		handleSemesterError(c, err)
		return
	}
	response.Success(c, http.StatusOK, semesters)
}

// UpsertAnnotation - PUT /semesters
func (h *Handler) UpsertAnnotation(c *gin.Context) {
	var req model.UpsertSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	semester, err := h.service.UpsertAnnotation(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		handleSemesterError(c, err)
		return
	}
	response.Success(c, http.StatusOK, semester)
}

// DeleteAnnotation - DELETE /semesters/:number
func (h *Handler) DeleteAnnotation(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		response.BadRequest(c, "invalid semester number")
		return
	}

	if err := h.service.DeleteAnnotation(c.Request.Context(), middleware.CurrentUserID(c), number); err != nil {
		handleSemesterError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// =====================================================
// HELPERS
// =====================================================

func handleSemesterError(c *gin.Context, err error) {
	var semErr *model.SemesterError
	if errors.As(err, &semErr) {
		switch semErr.Code {
		case model.ErrCodeNotFound:
			response.ErrorResponse(c, http.StatusNotFound, semErr.Code, semErr.Message)
		default:
			// Invalid number and pre-epoch dates are domain errors,
			// rejected rather than clamped
			response.ErrorResponse(c, http.StatusBadRequest, semErr.Code, semErr.Message)
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
