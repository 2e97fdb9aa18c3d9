package dto

// PaymentSubmitReq 请求代付服务的参数
type PaymentSubmitReq struct {
	AppId     string `json:"appId" binding:"required"`          //接入方编号
	PayoutNo  string `json:"payoutNo" binding:"required"`       //出款单号
	Amount    string `json:"amount" binding:"required"`         //出款净额
	Currency  string `json:"currency" binding:"required,len=3"` //货币符号
	Method    string `json:"method" binding:"required"`         //出款方式
	Rail      string `json:"rail"`                              //结算通道类型 BANK/WALLET/CRYPTO
	AccNo     string `json:"accNo"`                             //收款账号
	AccName   string `json:"accName"`                           //收款户名
	BankCode  string `json:"bankCode"`                          //银行编码
	Remark    string `json:"remark"`                            //附言
	NotifyUrl string `json:"notifyUrl" binding:"omitempty,url"` //回调地址
	Timestamp string `json:"timestamp"`                         //毫秒时间戳
	Sign      string `json:"sign"`                              //MD5 签名 32大写
}

// PaymentSubmitData 代付服务业务数据段
type PaymentSubmitData struct {
	Status        string `json:"status"`         //SUCCESS/FAILED/PROCESSING
	TransactionId string `json:"transaction_id"` //外部交易号
	PayoutNo      string `json:"payout_no"`
	FailReason    string `json:"fail_reason"`
}
