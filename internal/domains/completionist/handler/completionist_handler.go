package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"booklog-backend/internal/domains/completionist/model"
	"booklog-backend/internal/domains/completionist/service"
	"booklog-backend/internal/shared"
	"booklog-backend/internal/shared/middleware"
	"booklog-backend/internal/shared/response"
)

// Handler exposes completionist progress tracking
type Handler struct {
	service     service.ServiceInterface
	asynqClient *asynq.Client
}

func NewHandler(service service.ServiceInterface, asynqClient *asynq.Client) *Handler {
	return &Handler{service: service, asynqClient: asynqClient}
}

// ListProgress - GET /completionist/authors?sort=books_read&min_completion=0.8&page=1&limit=20
func (h *Handler) ListProgress(c *gin.Context) {
	var req model.ListProgressRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		handleCompletionistError(c, err)
		return
	}

	entries, total, err := h.service.ListProgress(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		handleCompletionistError(c, err)
		return
	}
	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	response.SuccessWithMeta(c, http.StatusOK, entries, &response.Meta{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
	})
}

// AuthorDetail - GET /completionist/authors/:id
func (h *Handler) AuthorDetail(c *gin.Context) {
	canonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid canon id")
		return
	}

	detail, err := h.service.AuthorDetail(c.Request.Context(), middleware.CurrentUserID(c), canonID)
	if err != nil {
		handleCompletionistError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// SetGoal - POST /completionist/goals
func (h *Handler) SetGoal(c *gin.Context) {
	var req model.SetGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	progress, err := h.service.SetGoal(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		handleCompletionistError(c, err)
		return
	}
	response.Success(c, http.StatusOK, progress)
}

// ListAchievements - GET /completionist/achievements
func (h *Handler) ListAchievements(c *gin.Context) {
	entries, err := h.service.ListAchievements(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		handleCompletionistError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

// Leaderboard - GET /completionist/leaderboard?limit=10
func (h *Handler) Leaderboard(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	entries, err := h.service.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		handleCompletionistError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

// TriggerSync - POST /completionist/sync
// Queues a full progress recompute for the calling user instead of
// blocking the request on it.
func (h *Handler) TriggerSync(c *gin.Context) {
	h.enqueueSync(c, "")
}

// SyncAuthor - POST /completionist/authors/:id/sync
func (h *Handler) SyncAuthor(c *gin.Context) {
	canonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid canon id")
		return
	}
	h.enqueueSync(c, canonID.String())
}

func (h *Handler) enqueueSync(c *gin.Context, canonID string) {
	userID := middleware.CurrentUserID(c)

	payload, err := json.Marshal(shared.SyncAuthorProgressPayload{
		UserID:  userID.String(),
		CanonID: canonID,
	})
	if err != nil {
		response.InternalServerError(c, "failed to queue sync")
		return
	}

	task := asynq.NewTask(shared.TypeSyncAuthorProgress, payload)
	info, err := h.asynqClient.EnqueueContext(c.Request.Context(), task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to enqueue progress sync")
		response.InternalServerError(c, "failed to queue sync")
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"task_id": info.ID})
}

func handleCompletionistError(c *gin.Context, err error) {
	var cmpErr *model.CompletionistError
	if errors.As(err, &cmpErr) {
		switch cmpErr.Code {
		case model.ErrCodeCanonNotFound, model.ErrCodeProgressNotFound:
			response.NotFound(c, cmpErr.Message)
		default:
			response.BadRequest(c, cmpErr.Message)
		}
		return
	}

	var valErrs validation.Errors
	if errors.As(err, &valErrs) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", valErrs)
		return
	}

	response.InternalServerError(c, "internal server error")
}
