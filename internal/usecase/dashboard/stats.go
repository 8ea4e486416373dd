package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/ksrlabs/resource-booking/internal/domain/booking"
)

const (
	cacheKey = "dashboard:stats"
	cacheTTL = 30 * time.Second
)

type Stats struct {
	TotalUsers            int64 `json:"total_users"`
	TotalResources        int64 `json:"total_resources"`
	TotalBookings         int64 `json:"total_bookings"`
	TotalApprovedBookings int64 `json:"total_approved_bookings"`
}

type GetStats struct {
	repo  domain.Repository
	cache *redis.Client
}

func NewGetStats(repo domain.Repository, cache *redis.Client) *GetStats {
	return &GetStats{repo: repo, cache: cache}
}

// Execute returns the dashboard counters, served from Redis when a fresh
// copy exists. Cache errors are ignored in favor of direct counts.
func (uc *GetStats) Execute(ctx context.Context) (*Stats, error) {

	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached Stats
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var (
		stats Stats
		err   error
	)

	if stats.TotalUsers, err = uc.repo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if stats.TotalResources, err = uc.repo.CountResources(ctx); err != nil {
		return nil, err
	}
	if stats.TotalBookings, err = uc.repo.CountBookings(ctx); err != nil {
		return nil, err
	}
	if stats.TotalApprovedBookings, err = uc.repo.CountApprovedBookings(ctx); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			uc.cache.Set(ctx, cacheKey, raw, cacheTTL)
		}
	}

	return &stats, nil
}
