package constant

// 出款项状态
const (
	PayoutStatusPending    int8 = 1 // 待出款，可被批次选取
	PayoutStatusProcessing int8 = 2 // 出款中，已被某批次锁定
	PayoutStatusCompleted  int8 = 3 // 出款成功（终态）
	PayoutStatusFailed     int8 = 4 // 出款失败，可显式重试
	PayoutStatusCancelled  int8 = 5 // 已取消（终态，仅限未锁定的待出款项）
)

// 出款批次状态
const (
	BatchStatusProcessing int8 = 1 // 批次内仍有未终态成员
	BatchStatusCompleted  int8 = 2 // 全部成员出款成功
	BatchStatusFailed     int8 = 3 // 处理结束后仍有失败成员
)

// PayoutStatusText 出款状态描述（对外展示用）
var PayoutStatusText = map[int8]string{
	PayoutStatusPending:    "pending",
	PayoutStatusProcessing: "processing",
	PayoutStatusCompleted:  "completed",
	PayoutStatusFailed:     "failed",
	PayoutStatusCancelled:  "cancelled",
}

// BatchStatusText 批次状态描述
var BatchStatusText = map[int8]string{
	BatchStatusProcessing: "processing",
	BatchStatusCompleted:  "completed",
	BatchStatusFailed:     "failed",
}
