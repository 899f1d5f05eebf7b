package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	semesterModel "booklog-backend/internal/domains/semester/model"
	"booklog-backend/internal/domains/statistics/model"
	"booklog-backend/internal/domains/statistics/service"
	"booklog-backend/internal/shared/middleware"
	"booklog-backend/internal/shared/response"
)

// Handler exposes personal statistics and community analytics
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Summary - GET /statistics/summary
func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		handleStatisticsError(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

// ReadingStats - GET /statistics/reading?dimension=month
func (h *Handler) ReadingStats(c *gin.Context) {
	dim := model.ParseTimeDimension(c.Query("dimension"))

	buckets, err := h.service.ReadingStats(c.Request.Context(), middleware.CurrentUserID(c), dim)
	if err != nil {
		handleStatisticsError(c, err)
		return
	}
	response.Success(c, http.StatusOK, buckets)
}

// PointsTrend - GET /statistics/points?dimension=semester&algorithm=reasonable
func (h *Handler) PointsTrend(c *gin.Context) {
	dim := model.ParseTimeDimension(c.Query("dimension"))
	algorithm := c.DefaultQuery("algorithm", "allegory")

	buckets, err := h.service.PointsTrend(c.Request.Context(), middleware.CurrentUserID(c), dim, algorithm)
	if err != nil {
		handleStatisticsError(c, err)
		return
	}
	response.Success(c, http.StatusOK, buckets)
}

// FormatBreakdown - GET /statistics/format-breakdown
func (h *Handler) FormatBreakdown(c *gin.Context) {
	dim := model.ParseTimeDimension(c.Query("dimension"))

	slices, err := h.service.FormatBreakdown(c.Request.Context(), middleware.CurrentUserID(c), dim)
	if err != nil {
		handleStatisticsError(c, err)
		return
	}
	response.Success(c, http.StatusOK, slices)
}

// BookTypeBreakdown - GET /statistics/book-type-breakdown
func (h *Handler) BookTypeBreakdown(c *gin.Context) {
	dim := model.ParseTimeDimension(c.Query("dimension"))

	slices, err := h.service.BookTypeBreakdown(c.Request.Context(), middleware.CurrentUserID(c), dim)
	if err != nil {
		handleStatisticsError(c, err)
		return
	}
	response.Success(c, http.StatusOK, slices)
}

// GenreBreakdown - GET /statistics/genre-breakdown?limit=10
func (h *Handler) GenreBreakdown(c *gin.Context) {
	dim := model.ParseTimeDimension(c.Query("dimension"))
	limit := queryInt(c, "limit", 0)

	slices, err := h.service.GenreBreakdown(c.Request.Context(), middleware.CurrentUserID(c), dim, limit)
	if err != nil {
		handleStatisticsError(c, err)
		return
	}
	response.Success(c, http.StatusOK, slices)
}

// AuthorFrequency - GET /statistics/author-frequency?limit=10
func (h *Handler) AuthorFrequency(c *gin.Context) {
	limit := queryInt(c, "limit", 0)

	authors, err := h.service.AuthorFrequency(c.Request.Context(), middleware.CurrentUserID(c), limit)
	if err != nil {
		handleStatisticsError(c, err)
		return
	}
	response.Success(c, http.StatusOK, authors)
}

// ReviewRate - GET /statistics/review-rate
func (h *Handler) ReviewRate(c *gin.Context) {
	dim := model.ParseTimeDimension(c.Query("dimension"))

	rate, err := h.service.ReviewRate(c.Request.Context(), middleware.CurrentUserID(c), dim)
	if err != nil {
		handleStatisticsError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rate)
}

// CommentRate - GET /statistics/comment-rate
func (h *Handler) CommentRate(c *gin.Context) {
	dim := model.ParseTimeDimension(c.Query("dimension"))

	rate, err := h.service.CommentRate(c.Request.Context(), middleware.CurrentUserID(c), dim)
	if err != nil {
		handleStatisticsError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rate)
}

// =====================================================
// COMMUNITY ANALYTICS
// =====================================================

// ReadsInCommon - GET /community/reads-in-common?min_users=2
func (h *Handler) ReadsInCommon(c *gin.Context) {
	minUsers := queryInt(c, "min_users", 0)

	entries, err := h.service.ReadsInCommon(c.Request.Context(), minUsers)
	if err != nil {
		handleStatisticsError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

// SimilarSentiment - GET /community/similar-sentiment?threshold=1.5
func (h *Handler) SimilarSentiment(c *gin.Context) {
	threshold := 0.0
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			response.BadRequest(c, "threshold must be a positive number")
			return
		}
		threshold = parsed
	}

	entries, err := h.service.SimilarSentiment(c.Request.Context(), threshold)
	if err != nil {
		handleStatisticsError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

// ConjugationHighlights - GET /community/conjugation?limit=10
func (h *Handler) ConjugationHighlights(c *gin.Context) {
	limit := queryInt(c, "limit", 0)

	entries, err := h.service.ConjugationHighlights(c.Request.Context(), limit)
	if err != nil {
		handleStatisticsError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

// =====================================================
// HELPERS
// =====================================================

func queryInt(c *gin.Context, name string, fallback int) int {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func handleStatisticsError(c *gin.Context, err error) {
	// The semester dimension inherits calendar domain errors
	var semErr *semesterModel.SemesterError
	if errors.As(err, &semErr) {
		response.ErrorResponse(c, http.StatusBadRequest, semErr.Code, semErr.Message)
		return
	}

	response.InternalServerError(c, "internal server error")
}
