package services

import (
	"context"
	"errors"
	"time"

	"github.com/projectdesk/projectdesk-api/internal/cache"
	"github.com/projectdesk/projectdesk-api/internal/repository"
	"github.com/projectdesk/projectdesk-api/pkg/logger"
)

const (
	dashboardSummaryKey = "dashboard:summary"
	dashboardSummaryTTL = 5 * time.Minute
)

// AnalyticsService serves the dashboard summary, optionally mirrored in the
// key-value cache. The database stays the source of truth; the cache is
// invalidated after writes that change the numbers.
type AnalyticsService struct {
	repo  repository.AnalyticsRepository
	cache *cache.Cache
}

func NewAnalyticsService(repo repository.AnalyticsRepository, store *cache.Cache) *AnalyticsService {
	return &AnalyticsService{repo: repo, cache: store}
}

func (s *AnalyticsService) DashboardSummary(ctx context.Context) (*repository.DashboardSummary, error) {
	var cached repository.DashboardSummary
	err := s.cache.GetJSON(ctx, dashboardSummaryKey, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		logger.Warn("Dashboard cache read failed", "error", err)
	}

	summary, err := s.repo.GetDashboardSummary(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, dashboardSummaryKey, summary, dashboardSummaryTTL); err != nil {
		logger.Warn("Dashboard cache write failed", "error", err)
	}
	return summary, nil
}

// InvalidateSummary drops the cached summary after a write. Failures only
// shorten the cache's usefulness, so they are logged and swallowed.
func (s *AnalyticsService) InvalidateSummary(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, dashboardSummaryKey); err != nil {
		logger.Warn("Dashboard cache invalidation failed", "error", err)
	}
}
