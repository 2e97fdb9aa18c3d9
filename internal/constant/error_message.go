package constant

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	CN string `json:"cn"` // 中文错误信息
	EN string `json:"en"` // 英文错误信息
}

// ErrorMessages 错误信息映射
var ErrorMessages = map[int]ErrorInfo{
	// 系统错误
	CodeSuccess:            {"操作成功", "Success"},
	CodeSystemError:        {"系统错误", "System error"},
	CodeDatabaseError:      {"数据库错误", "Database error"},
	CodeRedisError:         {"缓存服务错误", "Cache service error"},
	CodeInternalError:      {"内部服务错误", "Internal service error"},
	CodeServiceUnavailable: {"服务暂时不可用", "Service unavailable"},
	CodeTimeout:            {"请求处理超时", "Request timeout"},
	CodeRateLimit:          {"请求频率超过限制", "Rate limit exceeded"},

	// 参数错误
	CodeInvalidParams:     {"参数格式错误", "Invalid params"},
	CodeMissingParams:     {"缺少必要参数", "Missing params"},
	CodeParamsFormatError: {"参数格式错误", "Params format error"},
	CodeParamsRangeError:  {"参数范围错误", "Params out of range"},
	CodeDuplicateRequest:  {"重复请求", "Duplicate request"},

	// 认证授权错误
	CodeUnauthorized:     {"未授权访问", "Unauthorized"},
	CodeSignatureError:   {"签名验证失败", "Signature mismatch"},
	CodeAccessDenied:     {"访问权限不足", "Access denied"},
	CodeIPNotWhitelisted: {"IP不在白名单内", "IP not whitelisted"},

	// 费率表相关错误
	CodeScheduleNotFound:     {"费率表不存在", "Rate schedule not found"},
	CodeScheduleVersionStale: {"费率表版本已过期", "Rate schedule version stale"},
	CodeRateValueInvalid:     {"费率值无效", "Rate value invalid"},
	CodeTierNameInvalid:      {"等级名称无效", "Tier name invalid"},
	CodeScheduleFieldEmpty:   {"费率表字段为空", "Schedule field empty"},

	// 佣金相关错误
	CodeCommissionNotFound: {"佣金记录不存在", "Commission record not found"},
	CodeCommissionExists:   {"佣金记录已存在", "Commission record already exists"},
	CodeCommissionStale:    {"佣金记录已被并发调整", "Commission adjusted concurrently"},
	CodeAdjustTypeInvalid:  {"调整类型无效", "Adjustment type invalid"},
	CodeAdjustAmountError:  {"调整金额无效", "Adjustment amount invalid"},
	CodeAdjustRefundZero:   {"订单金额为零，无法按比例退款", "Refund against zero order amount"},

	// 供应商相关错误
	CodeSupplierNotFound:    {"供应商不存在", "Supplier not found"},
	CodeSupplierDisabled:    {"供应商已禁用", "Supplier disabled"},
	CodeSupplierTierInvalid: {"供应商等级配置无效", "Supplier tier invalid"},

	// 出款相关错误
	CodePayoutNotFound:      {"出款记录不存在", "Payout item not found"},
	CodePayoutTransition:    {"出款状态不允许该操作", "Illegal payout state transition"},
	CodePayoutClaimed:       {"出款项已被其他批次锁定", "Payout item claimed by another batch"},
	CodePayoutBelowMin:      {"出款金额低于最低门槛", "Payout below minimum threshold"},
	CodePayoutNotDue:        {"出款未到计划日期", "Payout not due yet"},
	CodePayoutExhausted:     {"出款重试次数已用尽", "Payout attempts exhausted"},
	CodePayoutDuplicate:     {"出款项已存在", "Payout item already exists"},
	CodePayoutAmountInvalid: {"出款净额无效", "Payout net amount invalid"},

	// 批次相关错误
	CodeBatchNotFound:    {"出款批次不存在", "Payout batch not found"},
	CodeBatchSizeInvalid: {"子批次大小无效", "Batch size invalid"},
	CodeBatchEmpty:       {"批次明细为空", "Batch item set empty"},
	CodeBatchBusy:        {"批次处理中", "Batch already processing"},

	// 对账相关错误
	CodeReconDataMismatch: {"对账数据不一致", "Reconciliation mismatch"},
	CodeReconNoData:       {"暂无对账数据", "No reconciliation data"},
	CodeReconSignError:    {"对账回调签名验证失败", "Reconciliation signature mismatch"},

	// 代付通道错误
	CodeUpstreamError:               {"代付通道错误", "Payment channel error"},
	CodeUpstreamTimeout:             {"代付通道请求超时", "Payment channel timeout"},
	CodeUpstreamRejected:            {"代付通道拒绝交易", "Payment channel rejected"},
	CodeUpstreamBalanceInsufficient: {"代付通道余额不足", "Payment channel balance insufficient"},
	CodeUpstreamNetworkError:        {"代付通道网络异常", "Payment channel network error"},
	CodeUpstreamSignError:           {"代付通道签名错误", "Payment channel signature error"},
	CodeUpstreamDuplicateOrder:      {"代付通道幂等键重复", "Payment channel duplicate idempotency key"},
	CodeUpstreamChannelClosed:       {"代付通道已关闭", "Payment channel closed"},
}
