package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/engine"
	"github.com/redis/go-redis/v9"
)

// KPICache stores aggregated monthly KPIs in redis with a TTL. All methods
// are nil-receiver safe: a nil cache is a disabled cache, so callers never
// branch on configuration.
type KPICache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewKPICache connects the KPI cache. An empty addr disables caching and
// returns nil.
func NewKPICache(addr, password string, db int, ttl time.Duration) *KPICache {
	if addr == "" {
		return nil
	}
	return &KPICache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// Ping verifies connectivity; nil cache reports healthy.
func (c *KPICache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func monthlyKey(companyID, employeeID, month string) string {
	return fmt.Sprintf("kpi:monthly:%s:%s:%s", companyID, employeeID, month)
}

// GetMonthlyKPIs returns the cached aggregation, or nil on a miss.
func (c *KPICache) GetMonthlyKPIs(ctx context.Context, companyID, employeeID, month string) (*engine.MonthlyKPIs, error) {
	if c == nil {
		return nil, nil
	}

	raw, err := c.client.Get(ctx, monthlyKey(companyID, employeeID, month)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read kpi cache: %w", err)
	}

	var kpis engine.MonthlyKPIs
	if err := json.Unmarshal([]byte(raw), &kpis); err != nil {
		return nil, fmt.Errorf("failed to decode cached kpis: %w", err)
	}
	return &kpis, nil
}

// SetMonthlyKPIs stores an aggregation under the configured TTL.
func (c *KPICache) SetMonthlyKPIs(ctx context.Context, companyID string, kpis engine.MonthlyKPIs) error {
	if c == nil {
		return nil
	}

	raw, err := json.Marshal(kpis)
	if err != nil {
		return fmt.Errorf("failed to encode kpis: %w", err)
	}

	key := monthlyKey(companyID, kpis.EmployeeID, kpis.Month)
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write kpi cache: %w", err)
	}
	return nil
}

// InvalidateMonth drops one employee-month from the cache.
func (c *KPICache) InvalidateMonth(ctx context.Context, companyID, employeeID, month string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, monthlyKey(companyID, employeeID, month)).Err()
}
