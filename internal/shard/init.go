package shard

import (
	"mkt-settle-api/internal/config"
)

var (
	CommissionShard       *ShardEngine
	CommissionAdjustShard *ShardEngine
	SettleLogShard        *ShardEngine
)

// InitShardEngines 初始化所有分片引擎，按配置选择路由策略
func InitShardEngines() {
	n := uint32(config.C.Ledger.ShardsPerMonth)
	RegisterStrategy("crc32", NewCRC32Strategy(n))
	RegisterStrategy("mod", NewModStrategy(n))
	if !UseStrategy(config.C.Ledger.ShardStrategy) {
		UseStrategy("crc32")
	}

	CommissionShard = newEngineWithActive("p_commission", n)
	CommissionAdjustShard = newEngineWithActive("p_commission_adjust", n)
	SettleLogShard = newEngineWithActive("p_settle_log", n)
}

func newEngineWithActive(base string, count uint32) *ShardEngine {
	e := NewShardEngine(base, count)
	e.Strategy = GetActiveStrategy()
	return e
}
