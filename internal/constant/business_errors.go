package constant

// 业务级错误码 (2xxx)

// 费率表相关错误码
const (
	CodeScheduleNotFound     = 2000 // 费率表不存在，请先初始化费率表
	CodeScheduleVersionStale = 2001 // 费率表版本已过期，请重新读取最新版本后再提交
	CodeRateValueInvalid     = 2002 // 费率值无效，费率必须在 0~100 之间
	CodeTierNameInvalid      = 2003 // 等级名称无效，仅支持 free/silver/gold/platinum
	CodeScheduleFieldEmpty   = 2004 // 费率表字段为空，目标类目或供应商不存在覆盖配置
)

// 佣金相关错误码
const (
	CodeCommissionNotFound = 2100 // 佣金记录不存在，请检查订单号是否正确
	CodeCommissionExists   = 2101 // 佣金记录已存在，请勿重复入账
	CodeCommissionStale    = 2102 // 佣金记录已被并发调整，请刷新后重新预览
	CodeAdjustTypeInvalid  = 2103 // 调整类型无效，仅支持 refund/penalty/bonus/correction
	CodeAdjustAmountError  = 2104 // 调整金额无效，请检查金额格式和范围
	CodeAdjustRefundZero   = 2105 // 订单金额为零，无法按退款比例计算调整
)

// 供应商相关错误码
const (
	CodeSupplierNotFound    = 2200 // 供应商不存在或未找到，请检查供应商编号
	CodeSupplierDisabled    = 2201 // 供应商已禁用，无法参与结算
	CodeSupplierTierInvalid = 2202 // 供应商会员等级配置无效
)

// 出款相关错误码
const (
	CodePayoutNotFound      = 2300 // 出款记录不存在，请检查出款编号
	CodePayoutTransition    = 2301 // 出款状态不允许该操作
	CodePayoutClaimed       = 2302 // 出款项已被其他批次锁定，请勿重复提交
	CodePayoutBelowMin      = 2303 // 出款金额低于最低出款门槛
	CodePayoutNotDue        = 2304 // 出款未到计划日期，暂不可出款
	CodePayoutExhausted     = 2305 // 出款重试次数已用尽，需人工介入处理
	CodePayoutDuplicate     = 2306 // 出款项已存在，请勿重复入队
	CodePayoutAmountInvalid = 2307 // 出款净额无效，净额不能为负数
)

// 批次相关错误码
const (
	CodeBatchNotFound    = 2400 // 出款批次不存在
	CodeBatchSizeInvalid = 2401 // 子批次大小无效，请检查批次参数
	CodeBatchEmpty       = 2402 // 批次明细为空，请至少选择一条出款项
	CodeBatchBusy        = 2403 // 批次处理中，请勿重复提交
)

// 对账相关错误码
const (
	CodeReconDataMismatch = 2800 // 对账数据不一致，请人工核对
	CodeReconNoData       = 2801 // 暂无对账数据
	CodeReconSignError    = 2802 // 对账回调签名验证失败
)
