package main

import (
	"github.com/hibiken/asynq"

	completionistJob "booklog-backend/internal/domains/completionist/job"
	readJob "booklog-backend/internal/domains/read/job"
	statisticsJob "booklog-backend/internal/domains/statistics/job"
	"booklog-backend/internal/shared"
	"booklog-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	syncProgress          *completionistJob.SyncProgressHandler
	recalculatePoints     *readJob.RecalculatePointsHandler
	refreshCommunityCache *statisticsJob.RefreshCommunityCacheHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		syncProgress:          completionistJob.NewSyncProgressHandler(c.CompletionistService),
		recalculatePoints:     readJob.NewRecalculatePointsHandler(c.ReadService),
		refreshCommunityCache: statisticsJob.NewRefreshCommunityCacheHandler(c.StatisticsService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSyncAuthorProgress, h.syncProgress.ProcessTask)
	mux.HandleFunc(shared.TypeRecalculateReadPoints, h.recalculatePoints.ProcessTask)
	mux.HandleFunc(shared.TypeRefreshCommunityCache, h.refreshCommunityCache.ProcessTask)
}
