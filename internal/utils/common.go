package utils

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// MapToJSON 任意值转为 json 字符串（失败时返回空串）
func MapToJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// JSONToMap json 字符串反解到目标结构
func JSONToMap(s string, out any) error {
	return json.Unmarshal([]byte(s), out)
}

// MatchAmountRange 判断金额是否落在规则内，规则形如 "1-5000,10000"（区间或固定值，逗号分隔）
func MatchAmountRange(amount decimal.Decimal, amountRange string) bool {
	rules := strings.Split(amountRange, ",")
	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		if strings.Contains(rule, "-") {
			bounds := strings.Split(rule, "-")
			if len(bounds) != 2 {
				continue
			}
			min, err1 := decimal.NewFromString(strings.TrimSpace(bounds[0]))
			max, err2 := decimal.NewFromString(strings.TrimSpace(bounds[1]))
			if err1 != nil || err2 != nil {
				continue
			}
			if amount.Cmp(min) >= 0 && amount.Cmp(max) <= 0 {
				return true
			}
		} else {
			val, err := decimal.NewFromString(rule)
			if err != nil {
				continue
			}
			if amount.Cmp(val) == 0 {
				return true
			}
		}
	}
	return false
}

// TruncateString 按字节截断（用于入库前压缩明细字段）
func TruncateString(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
