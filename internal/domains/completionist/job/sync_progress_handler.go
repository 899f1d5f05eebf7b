package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"booklog-backend/internal/domains/completionist/service"
	"booklog-backend/internal/shared"
)

// ============================================
// Author Progress Sync Handler
// ============================================

type SyncProgressHandler struct {
	completionistService service.ServiceInterface
}

func NewSyncProgressHandler(completionistService service.ServiceInterface) *SyncProgressHandler {
	return &SyncProgressHandler{
		completionistService: completionistService,
	}
}

func (h *SyncProgressHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.SyncAuthorProgressPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal SyncAuthorProgress payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	// No user scoping means the nightly full sweep
	if payload.UserID == "" {
		log.Info().Msg("Processing author progress sync for all users")
		if err := h.completionistService.SyncAllUsers(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to sync author progress")
			return fmt.Errorf("sync all users: %w", err)
		}
		log.Info().Msg("Author progress sync completed")
		return nil
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", payload.UserID).Msg("Invalid user id in SyncAuthorProgress payload")
		return fmt.Errorf("parse user id: %w", err)
	}

	var canonID *uuid.UUID
	if payload.CanonID != "" {
		id, err := uuid.Parse(payload.CanonID)
		if err != nil {
			log.Error().Err(err).Str("canon_id", payload.CanonID).Msg("Invalid canon id in SyncAuthorProgress payload")
			return fmt.Errorf("parse canon id: %w", err)
		}
		canonID = &id
	}

	log.Info().
		Str("user_id", payload.UserID).
		Msg("Processing author progress sync")

	if err := h.completionistService.SyncUserProgress(ctx, userID, canonID); err != nil {
		log.Error().Err(err).Msg("Failed to sync author progress")
		return fmt.Errorf("sync author progress: %w", err)
	}

	log.Info().
		Str("user_id", payload.UserID).
		Msg("Author progress sync completed")

	return nil
}
