package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectdesk/projectdesk-api/internal/cache"
	"github.com/projectdesk/projectdesk-api/internal/repository"
	"github.com/projectdesk/projectdesk-api/pkg/logger"
)

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.New(client)
}

func TestDashboardSummary_CachesSecondRead(t *testing.T) {
	logger.Setup("test")

	calls := 0
	repo := &mockAnalyticsRepository{
		mockGetDashboardSummary: func(ctx context.Context) (*repository.DashboardSummary, error) {
			calls++
			return &repository.DashboardSummary{TotalClients: 3, TotalInvoiced: 11800}, nil
		},
	}
	svc := NewAnalyticsService(repo, newTestCache(t))

	first, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), first.TotalClients)

	second, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 11800.0, second.TotalInvoiced)
	assert.Equal(t, 1, calls, "second read should come from the cache")
}

func TestDashboardSummary_InvalidateForcesRefetch(t *testing.T) {
	logger.Setup("test")

	calls := 0
	repo := &mockAnalyticsRepository{
		mockGetDashboardSummary: func(ctx context.Context) (*repository.DashboardSummary, error) {
			calls++
			return &repository.DashboardSummary{TotalProjects: int64(calls)}, nil
		},
	}
	svc := NewAnalyticsService(repo, newTestCache(t))

	_, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)

	svc.InvalidateSummary(context.Background())

	refreshed, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, int64(2), refreshed.TotalProjects)
}

func TestDashboardSummary_RunsWithoutCache(t *testing.T) {
	logger.Setup("test")

	calls := 0
	repo := &mockAnalyticsRepository{
		mockGetDashboardSummary: func(ctx context.Context) (*repository.DashboardSummary, error) {
			calls++
			return &repository.DashboardSummary{OverdueInvoices: 5}, nil
		},
	}
	svc := NewAnalyticsService(repo, nil)

	for i := 0; i < 2; i++ {
		summary, err := svc.DashboardSummary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(5), summary.OverdueInvoices)
	}
	assert.Equal(t, 2, calls, "every read hits the database when no cache is configured")
}
