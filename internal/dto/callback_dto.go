package dto

// SettlementFileItem 代付服务结算文件中的单条记录
type SettlementFileItem struct {
	PayoutNo      string `json:"payout_no" binding:"required"` //出款单号
	TransactionId string `json:"transaction_id"`               //外部交易号
	Amount        string `json:"amount" binding:"required"`    //外部记账金额
	Status        string `json:"status"`                       //SUCCESS/FAILED
}

// SettlementCallbackReq 代付服务结算确认回调
type SettlementCallbackReq struct {
	AppId       string               `json:"appId" binding:"required"`
	BatchNo     string               `json:"batchNo"`                      //可为空，跨批次文件
	FileNo      string               `json:"fileNo" binding:"required"`    //结算文件编号
	ItemCount   string               `json:"itemCount" binding:"required"` //条目数
	TotalAmount string               `json:"totalAmount" binding:"required"`
	Timestamp   string               `json:"timestamp" binding:"required"` //毫秒时间戳
	Items       []SettlementFileItem `json:"items" binding:"required,min=1"`
	Sign        string               `json:"sign" binding:"required"` //MD5 签名 32大写（对顶层标量字段）
}

// SettlementCallbackResp 回调应答（非0则对方会重推）
type SettlementCallbackResp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// DiscrepancyVO 对账差异视图
type DiscrepancyVO struct {
	ID           uint64 `json:"id"`
	PayoutID     uint64 `json:"payout_id"`
	BatchID      uint64 `json:"batch_id"`
	LocalTxnID   string `json:"local_txn_id"`
	RemoteTxnID  string `json:"remote_txn_id"`
	RemoteAmount string `json:"remote_amount"`
	Kind         string `json:"kind"` //txn_mismatch/amount_mismatch/status_conflict/unknown_item
	Remark       string `json:"remark"`
}
