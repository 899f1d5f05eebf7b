package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"booklog-backend/internal/domains/read/service"
	"booklog-backend/internal/shared"
)

// ============================================
// Read Points Recalculation Handler
// ============================================

type RecalculatePointsHandler struct {
	readService service.ServiceInterface
}

func NewRecalculatePointsHandler(readService service.ServiceInterface) *RecalculatePointsHandler {
	return &RecalculatePointsHandler{
		readService: readService,
	}
}

func (h *RecalculatePointsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.RecalculateReadPointsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal RecalculateReadPoints payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	// No explicit reads means the nightly backfill of missing scores
	if len(payload.ReadIDs) == 0 {
		updated, err := h.readService.RecalculateMissing(ctx, payload.Limit)
		if err != nil {
			log.Error().Err(err).Msg("Failed to backfill read points")
			return fmt.Errorf("backfill read points: %w", err)
		}
		log.Info().
			Int("updated", updated).
			Msg("Read points backfill completed")
		return nil
	}

	for _, raw := range payload.ReadIDs {
		readID, err := uuid.Parse(raw)
		if err != nil {
			log.Error().Err(err).Str("read_id", raw).Msg("Invalid read id in RecalculateReadPoints payload")
			continue
		}
		if err := h.readService.RecalculatePoints(ctx, readID); err != nil {
			log.Error().Err(err).Str("read_id", raw).Msg("Failed to recalculate read points")
			return fmt.Errorf("recalculate read points: %w", err)
		}
	}

	log.Info().
		Int("count", len(payload.ReadIDs)).
		Msg("Read points recalculation completed")

	return nil
}
