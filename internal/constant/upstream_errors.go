package constant

// 代付通道错误码 (3xxx) - 用于表示与外部代付方相关的错误
const (
	// CodeUpstreamError 代付通道通用错误
	// 适用场景：代付方返回未知错误、系统内部异常等
	// 示例：代付方系统繁忙、内部处理失败
	CodeUpstreamError = 3000

	// CodeUpstreamTimeout 代付通道请求超时
	// 适用场景：调用代付接口超时未响应
	// 示例：HTTP请求超时、代付方响应超时
	CodeUpstreamTimeout = 3001

	// CodeUpstreamRejected 代付通道拒绝交易
	// 适用场景：代付方明确拒绝处理该笔出款
	// 示例：金额超限、收款账户无效、通道暂停服务
	CodeUpstreamRejected = 3002

	// CodeUpstreamBalanceInsufficient 代付通道余额不足
	// 适用场景：代付方账户余额不足以完成出款
	// 示例：通道账户余额不足、额度已用完
	CodeUpstreamBalanceInsufficient = 3003

	// CodeUpstreamNetworkError 代付通道网络异常
	// 适用场景：与代付方网络连接异常
	// 示例：DNS解析失败、连接被拒绝、SSL证书错误
	CodeUpstreamNetworkError = 3005

	// CodeUpstreamSignError 代付通道签名错误
	// 适用场景：签名验证失败或生成错误
	// 示例：签名算法不一致、密钥不匹配、签名过期
	CodeUpstreamSignError = 3007

	// CodeUpstreamDuplicateOrder 代付通道订单重复
	// 适用场景：代付方检测到重复的幂等键
	// 示例：同一出款项同一尝试次数重复提交
	CodeUpstreamDuplicateOrder = 3014

	// CodeUpstreamChannelClosed 代付通道已关闭
	// 适用场景：该代付通道健康度过低被禁用或已停止服务
	// 示例：成功率跌破阈值自动下线、通道合作终止
	CodeUpstreamChannelClosed = 3015
)
