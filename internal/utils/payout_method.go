package utils

import (
	"fmt"
	"strings"
)

type PayoutMethodInfo struct {
	Method       string
	Rail         string // 结算通道类型
	Currency     string
	AmountRange  string // 单笔限额规则，空串表示不限
	NeedBankInfo bool
}

// 全量出款方式映射表
var PayoutMethodMap = map[string]PayoutMethodInfo{
	// 银行转账
	"BANK_WIRE": {"BANK_WIRE", "BANK", "USD", "1-1000000", true},
	"BANK_ACH":  {"BANK_ACH", "BANK", "USD", "1-100000", true},
	"SEPA":      {"SEPA", "BANK", "EUR", "1-100000", true},

	// 电子钱包
	"PAYPAL":   {"PAYPAL", "WALLET", "USD", "1-60000", false},
	"PAYONEER": {"PAYONEER", "WALLET", "USD", "20-50000", false},

	// 稳定币
	"USDT_TRC20": {"USDT_TRC20", "CRYPTO", "USDT", "10-500000", false},
	"USDC_ERC20": {"USDC_ERC20", "CRYPTO", "USDC", "10-500000", false},
}

// ParsePayoutMethod 根据出款方式取通道要素
func ParsePayoutMethod(method string) (PayoutMethodInfo, error) {
	info, ok := PayoutMethodMap[strings.ToUpper(strings.TrimSpace(method))]
	if !ok {
		return PayoutMethodInfo{}, fmt.Errorf("unsupported payout method: %s", method)
	}
	return info, nil
}

func IsBankRail(method string) bool {
	info, ok := PayoutMethodMap[strings.ToUpper(method)]
	return ok && info.Rail == "BANK"
}

func IsCryptoRail(method string) bool {
	info, ok := PayoutMethodMap[strings.ToUpper(method)]
	return ok && info.Rail == "CRYPTO"
}

func InArray(item string, arr []string) bool {
	for _, v := range arr {
		if strings.EqualFold(v, item) {
			return true
		}
	}
	return false
}
