package shared

// Asynq queue names, weights are configured in cmd/worker
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// Task types
const (
	TypeRecalculateReadPoints = "read:recalculate_points"
	TypeSyncAuthorProgress    = "completionist:sync_progress"
	TypeRefreshCommunityCache = "community:refresh_cache"
)

// RecalculateReadPointsPayload selects which reads to recalculate.
// Empty ReadIDs means scan for finished reads with missing scores.
type RecalculateReadPointsPayload struct {
	ReadIDs []string `json:"readIds,omitempty"`
	Limit   int      `json:"limit,omitempty"`
}

// SyncAuthorProgressPayload scopes a canon progress sync.
// Empty UserID means all users, empty CanonID means all canons.
type SyncAuthorProgressPayload struct {
	UserID  string `json:"userId,omitempty"`
	CanonID string `json:"canonId,omitempty"`
}

// RefreshCommunityCachePayload rebuilds cached community analytics
type RefreshCommunityCachePayload struct{}

// UserBasicInfo carries user identity across domains without importing
// the user domain (avoids import cycles).
type UserBasicInfo struct {
	ID          string
	Email       string
	DisplayName string
}
