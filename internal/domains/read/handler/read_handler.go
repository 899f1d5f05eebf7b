package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	bookModel "booklog-backend/internal/domains/book/model"
	"booklog-backend/internal/domains/read/model"
	"booklog-backend/internal/domains/read/service"
	"booklog-backend/internal/shared/middleware"
	"booklog-backend/internal/shared/response"
)

// Handler exposes reading sessions over HTTP
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateRead - POST /reads
func (h *Handler) CreateRead(c *gin.Context) {
	var req model.CreateReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	read, err := h.service.CreateRead(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		handleReadError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, read)
}

// GetRead - GET /reads/:id
func (h *Handler) GetRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	read, err := h.service.GetRead(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		handleReadError(c, err)
		return
	}
	response.Success(c, http.StatusOK, read)
}

// UpdateRead - PUT /reads/:id
func (h *Handler) UpdateRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	read, err := h.service.UpdateRead(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		handleReadError(c, err)
		return
	}
	response.Success(c, http.StatusOK, read)
}

// DeleteRead - DELETE /reads/:id
func (h *Handler) DeleteRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRead(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		handleReadError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListReads - GET /reads
// Query params: status, book_id, year, is_reread, page, limit
func (h *Handler) ListReads(c *gin.Context) {
	req := &model.ListReadsRequest{
		Status: c.Query("status"),
		BookID: c.Query("book_id"),
	}
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		req.Year = year
	}
	if raw := c.Query("is_reread"); raw != "" {
		if isReread, err := strconv.ParseBool(raw); err == nil {
			req.IsReread = &isReread
		}
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		req.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		req.Limit = limit
	}

	list, err := h.service.ListReads(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		handleReadError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// ListBookReads - GET /books/:id/reads
func (h *Handler) ListBookReads(c *gin.Context) {
	bookID, ok := parseID(c)
	if !ok {
		return
	}

	reads, err := h.service.ListBookReads(c.Request.Context(), middleware.CurrentUserID(c), bookID)
	if err != nil {
		handleReadError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reads)
}

// =====================================================
// HELPERS
// =====================================================

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func handleReadError(c *gin.Context, err error) {
	var readErr *model.ReadError
	if errors.As(err, &readErr) {
		switch readErr.Code {
		case model.ErrCodeReadNotFound:
			response.ErrorResponse(c, http.StatusNotFound, readErr.Code, readErr.Message)
		case model.ErrCodeNotOwner:
			response.ErrorResponse(c, http.StatusForbidden, readErr.Code, readErr.Message)
		default:
			response.ErrorResponse(c, http.StatusBadRequest, readErr.Code, readErr.Message)
		}
		return
	}

	var bookErr *bookModel.BookError
	if errors.As(err, &bookErr) {
		switch bookErr.Code {
		case bookModel.ErrCodeBookNotFound:
			response.ErrorResponse(c, http.StatusNotFound, bookErr.Code, bookErr.Message)
		case bookModel.ErrCodeNotOwner:
			response.ErrorResponse(c, http.StatusForbidden, bookErr.Code, bookErr.Message)
		default:
			response.ErrorResponse(c, http.StatusBadRequest, bookErr.Code, bookErr.Message)
		}
		return
	}

	if errors.Is(err, model.ErrReadNotFound) {
		response.NotFound(c, "read not found")
		return
	}
	if errors.Is(err, bookModel.ErrBookNotFound) {
		response.NotFound(c, "book not found")
		return
	}

	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", validationErrs)
		return
	}

	response.InternalServerError(c, "internal server error")
}
