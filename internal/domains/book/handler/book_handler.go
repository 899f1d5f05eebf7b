package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"booklog-backend/internal/domains/book/model"
	"booklog-backend/internal/domains/book/service"
	"booklog-backend/internal/shared/middleware"
	"booklog-backend/internal/shared/response"
)

// Handler exposes book CRUD over HTTP
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateBook - POST /books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		handleBookError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, book)
}

// GetBook - GET /books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		handleBookError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// UpdateBook - PUT /books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		handleBookError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// DeleteBook - DELETE /books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		handleBookError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListBooks - GET /books
// Query params: search, book_type, format, sort, page, limit
func (h *Handler) ListBooks(c *gin.Context) {
	req := &model.ListBooksRequest{
		Search:   c.Query("search"),
		BookType: c.Query("book_type"),
		Format:   c.Query("format"),
		Sort:     c.Query("sort"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		req.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		req.Limit = limit
	}

	list, err := h.service.ListBooks(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		handleBookError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
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

func handleBookError(c *gin.Context, err error) {
	var bookErr *model.BookError
	if errors.As(err, &bookErr) {
		switch bookErr.Code {
		case model.ErrCodeBookNotFound:
			response.ErrorResponse(c, http.StatusNotFound, bookErr.Code, bookErr.Message)
		case model.ErrCodeNotOwner:
			response.ErrorResponse(c, http.StatusForbidden, bookErr.Code, bookErr.Message)
		default:
			response.ErrorResponse(c, http.StatusBadRequest, bookErr.Code, bookErr.Message)
		}
		return
	}
	if errors.Is(err, model.ErrBookNotFound) {
		response.NotFound(c, "book not found")
		return
	}

	// Validation errors from ozzo carry per-field details
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", validationErrs)
		return
	}

	response.InternalServerError(c, "internal server error")
}
