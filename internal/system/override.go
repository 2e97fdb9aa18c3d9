package system

import (
	"strconv"

	"github.com/shopspring/decimal"

	"mkt-settle-api/internal/config"
)

// 运行期阈值：w_sys_config 有值时覆盖配置文件

// MinPayoutAmount 出款起付金额
func MinPayoutAmount() decimal.Decimal {
	if v := (&ConfigSystem{}).GetConfigCacheByConfigKey("payout.min.amount").ConfigValue; v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.IsPositive() {
			return d
		}
	}
	d, _ := decimal.NewFromString(config.C.Payout.MinAmount)
	return d
}

// PayoutMaxAttempts 出款最大重试次数
func PayoutMaxAttempts() int {
	if v := (&ConfigSystem{}).GetConfigCacheByConfigKey("payout.max.attempts").ConfigValue; v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return config.C.Payout.MaxAttempts
}

// ImpactWindowDays 影响分析回溯天数
func ImpactWindowDays() int {
	if v := (&ConfigSystem{}).GetConfigCacheByConfigKey("impact.window.days").ConfigValue; v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return config.C.Impact.WindowDays
}
