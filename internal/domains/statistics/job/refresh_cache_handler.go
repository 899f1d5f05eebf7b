package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"booklog-backend/internal/domains/statistics/service"
)

// ============================================
// Community Cache Refresh Handler
// ============================================

type RefreshCommunityCacheHandler struct {
	statisticsService service.ServiceInterface
}

func NewRefreshCommunityCacheHandler(statisticsService service.ServiceInterface) *RefreshCommunityCacheHandler {
	return &RefreshCommunityCacheHandler{
		statisticsService: statisticsService,
	}
}

func (h *RefreshCommunityCacheHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	log.Info().Msg("Processing community cache refresh")

	if err := h.statisticsService.RefreshCommunityCache(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to refresh community cache")
		return fmt.Errorf("refresh community cache: %w", err)
	}

	log.Info().Msg("Community cache refresh completed")
	return nil
}
