package service

import "errors"

// 服务层公共错误，handler 用 errors.Is 映射为响应码
var (
	ErrScheduleNotFound   = errors.New("rate schedule not initialized")
	ErrSupplierNotFound   = errors.New("supplier not found or disabled")
	ErrCommissionNotFound = errors.New("commission not found")
	ErrPayoutNotFound     = errors.New("payout not found")
	ErrBatchNotFound      = errors.New("batch not found")
	ErrBatchSizeInvalid   = errors.New("sub-batch size out of range")
)
