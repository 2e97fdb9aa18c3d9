package health

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	rediskey "mkt-settle-api/internal/types/redis-key"
)

// RailHealthManager 出款通道成功率跟踪器。
// 按出款方式（BANK_WIRE、PAYPAL 等）维护成功率，低于阈值的方式打上熔断标记，
// 批次处理前可据此拦截明显不可用的通道。
type RailHealthManager struct {
	Redis     *redis.Client
	Strategy  SuccessRateStrategy
	Threshold float64 // 熔断阈值，例如 60.0
	TTL       time.Duration
}

// Update 按单笔出款结果刷新方式成功率，返回更新后的值
func (m *RailHealthManager) Update(method string, success bool) (float64, error) {
	ctx := context.Background()
	key := rediskey.ChannelHealthKey(method)

	currentRate, err := m.Redis.Get(ctx, key).Float64()
	if err != nil {
		currentRate = 100.0
	}

	newRate := m.Strategy.Update(currentRate, success)
	if newRate < m.Threshold {
		// 熔断标记
		_ = m.Redis.Set(ctx, rediskey.ChannelDisabledKey(method), 1, m.TTL).Err()
	}

	if err := m.Redis.Set(ctx, key, newRate, m.TTL).Err(); err != nil {
		return newRate, err
	}
	return newRate, nil
}

// Rate 当前成功率，无记录视为 100
func (m *RailHealthManager) Rate(method string) float64 {
	ctx := context.Background()
	rate, err := m.Redis.Get(ctx, rediskey.ChannelHealthKey(method)).Float64()
	if err != nil {
		return 100.0
	}
	return rate
}

// IsDisabled 方式是否处于熔断中
func (m *RailHealthManager) IsDisabled(method string) bool {
	ctx := context.Background()
	val, err := m.Redis.Get(ctx, rediskey.ChannelDisabledKey(method)).Int()
	return err == nil && val == 1
}

// Enable 解除熔断（人工介入后）
func (m *RailHealthManager) Enable(method string) error {
	ctx := context.Background()
	return m.Redis.Del(ctx, rediskey.ChannelDisabledKey(method)).Err()
}
