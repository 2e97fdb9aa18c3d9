package callback

import (
	"fmt"
	"log"
	"strconv"

	"github.com/shopspring/decimal"

	"mkt-settle-api/internal/config"
	"mkt-settle-api/internal/constant"
	"mkt-settle-api/internal/dao"
	"mkt-settle-api/internal/dto"
	mainmodel "mkt-settle-api/internal/model/main"
	"mkt-settle-api/internal/notify"
	"mkt-settle-api/internal/utils"
)

// 对账差异类型
const (
	DiscrepancyTxnMismatch    = "txn_mismatch"
	DiscrepancyAmountMismatch = "amount_mismatch"
	DiscrepancyStatusConflict = "status_conflict"
	DiscrepancyUnknownItem    = "unknown_item"
)

type SettlementCallback struct {
	payoutDao *dao.PayoutDao
	batchDao  *dao.BatchDao
	discDao   *dao.DiscrepancyDao
}

func NewSettlementCallback() *SettlementCallback {
	return &SettlementCallback{
		payoutDao: dao.NewPayoutDao(),
		batchDao:  dao.NewBatchDao(),
		discDao:   dao.NewDiscrepancyDao(),
	}
}

// HandleSettlementFile 处理代付服务的结算文件确认回调
// 只做核对与差异记录，绝不回改出款项状态；应答非0时对方会重推
func (s *SettlementCallback) HandleSettlementFile(req *dto.SettlementCallbackReq) *dto.SettlementCallbackResp {
	// 1. 校验接入方
	if req.AppId != config.C.Payment.AppId {
		log.Printf("[CALLBACK-SETTLE] 未知接入方 appId=%s fileNo=%s", req.AppId, req.FileNo)
		return &dto.SettlementCallbackResp{Code: constant.CodeUnauthorized, Msg: "unknown appId"}
	}

	// 2. 验签，签名只覆盖顶层标量字段
	params := map[string]string{
		"appId":       req.AppId,
		"batchNo":     req.BatchNo,
		"fileNo":      req.FileNo,
		"itemCount":   req.ItemCount,
		"totalAmount": req.TotalAmount,
		"timestamp":   req.Timestamp,
		"sign":        req.Sign,
	}
	if !utils.VerifySign(params, config.C.Payment.Secret) {
		log.Printf("[CALLBACK-SETTLE] 验签失败 fileNo=%s", req.FileNo)
		return &dto.SettlementCallbackResp{Code: constant.CodeReconSignError, Msg: "sign mismatch"}
	}

	// 3. 文件完整性：声明的条目数和总金额必须与明细一致，不一致视为传输不完整，等对方重推
	itemCount, err := strconv.Atoi(req.ItemCount)
	if err != nil || itemCount != len(req.Items) {
		log.Printf("[CALLBACK-SETTLE] 文件条目数不一致 fileNo=%s 声明=%s 实际=%d", req.FileNo, req.ItemCount, len(req.Items))
		return &dto.SettlementCallbackResp{Code: constant.CodeReconDataMismatch, Msg: "item count mismatch"}
	}
	declared, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		return &dto.SettlementCallbackResp{Code: constant.CodeReconDataMismatch, Msg: "bad totalAmount"}
	}
	sum := decimal.Zero
	for i := range req.Items {
		amt, aErr := decimal.NewFromString(req.Items[i].Amount)
		if aErr != nil {
			return &dto.SettlementCallbackResp{Code: constant.CodeReconDataMismatch, Msg: fmt.Sprintf("bad amount at %s", req.Items[i].PayoutNo)}
		}
		sum = sum.Add(amt)
	}
	if !sum.Equal(declared) {
		log.Printf("[CALLBACK-SETTLE] 文件总金额不一致 fileNo=%s 声明=%s 实际=%s", req.FileNo, declared.StringFixed(2), sum.StringFixed(2))
		return &dto.SettlementCallbackResp{Code: constant.CodeReconDataMismatch, Msg: "total amount mismatch"}
	}

	// 4. 批次号可为空（跨批次文件），能解析就给差异记录带上批次ID
	var fileBatchID uint64
	if req.BatchNo != "" {
		if b, bErr := s.batchDao.GetByNo(req.BatchNo); bErr == nil && b != nil {
			fileBatchID = b.BatchID
		}
	}

	// 5. 逐条核对
	matched := 0
	var diffs []*mainmodel.PayoutDiscrepancy
	for i := range req.Items {
		d, hit, rErr := s.reconcileItem(&req.Items[i], fileBatchID)
		if rErr != nil {
			log.Printf("[CALLBACK-SETTLE] 核对中断 fileNo=%s: %v", req.FileNo, rErr)
			return &dto.SettlementCallbackResp{Code: constant.CodeSystemError, Msg: "reconcile aborted"}
		}
		if hit {
			matched++
		}
		if d != nil {
			diffs = append(diffs, d)
		}
	}

	// 6. 差异落库并告警
	if len(diffs) > 0 {
		if err := s.discDao.InsertBatch(diffs); err != nil {
			log.Printf("[CALLBACK-SETTLE] 差异落库失败 fileNo=%s: %v", req.FileNo, err)
			return &dto.SettlementCallbackResp{Code: constant.CodeSystemError, Msg: "persist failed"}
		}
		detail := fmt.Sprintf("首条: payout=%d kind=%s %s", diffs[0].PayoutID, diffs[0].Kind, diffs[0].Remark)
		go notify.NotifyDiscrepancyAlert(req.BatchNo, req.FileNo, len(diffs), detail)
		log.Printf("⚠️ [CALLBACK-SETTLE] 对账发现差异 fileNo=%s 共%d条", req.FileNo, len(diffs))
	}

	// 7. 整个文件没有一条能对上本地记录，多半是发错了环境，回非0让对方自查
	if matched == 0 {
		log.Printf("🚨 [CALLBACK-SETTLE] 结算文件无匹配记录 fileNo=%s 共%d条", req.FileNo, len(req.Items))
		return &dto.SettlementCallbackResp{Code: constant.CodeReconNoData, Msg: "no matching records"}
	}

	log.Printf("✅ [CALLBACK-SETTLE] 对账完成 fileNo=%s 共%d条 匹配%d 差异%d", req.FileNo, len(req.Items), matched, len(diffs))
	return &dto.SettlementCallbackResp{Code: 0, Msg: "ok"}
}

// ListDiscrepancies 差异记录分页查询，运营核对用
func (s *SettlementCallback) ListDiscrepancies(limit, offset int) ([]dto.DiscrepancyVO, int64, error) {
	rows, total, err := s.discDao.ListRecent(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.DiscrepancyVO, 0, len(rows))
	for i := range rows {
		out = append(out, dto.DiscrepancyVO{
			ID:           rows[i].ID,
			PayoutID:     rows[i].PayoutID,
			BatchID:      rows[i].BatchID,
			LocalTxnID:   rows[i].LocalTxnID,
			RemoteTxnID:  rows[i].RemoteTxnID,
			RemoteAmount: rows[i].RemoteAmount.StringFixed(2),
			Kind:         rows[i].Kind,
			Remark:       rows[i].Remark,
		})
	}
	return out, total, nil
}

// reconcileItem 单条核对，返回差异记录（无差异为nil）与是否命中本地记录
// 一条最多记一个差异，按 状态 > 交易号 > 金额 的顺序取第一个
func (s *SettlementCallback) reconcileItem(item *dto.SettlementFileItem, fileBatchID uint64) (*mainmodel.PayoutDiscrepancy, bool, error) {
	// 金额在完整性校验阶段已保证可解析
	remoteAmount, _ := decimal.NewFromString(item.Amount)

	payoutID, err := strconv.ParseUint(item.PayoutNo, 10, 64)
	if err != nil {
		return &mainmodel.PayoutDiscrepancy{
			BatchID:      fileBatchID,
			RemoteTxnID:  item.TransactionId,
			RemoteAmount: remoteAmount,
			Kind:         DiscrepancyUnknownItem,
			Remark:       fmt.Sprintf("出款单号无法解析: %s", item.PayoutNo),
		}, false, nil
	}

	local, err := s.payoutDao.GetByID(payoutID)
	if err != nil {
		return nil, false, fmt.Errorf("查询出款项失败 payoutNo=%s: %w", item.PayoutNo, err)
	}
	if local == nil {
		return &mainmodel.PayoutDiscrepancy{
			PayoutID:     payoutID,
			BatchID:      fileBatchID,
			RemoteTxnID:  item.TransactionId,
			RemoteAmount: remoteAmount,
			Kind:         DiscrepancyUnknownItem,
			Remark:       "本地不存在该出款项",
		}, false, nil
	}

	batchID := local.ClaimBatchID
	if batchID == 0 {
		batchID = fileBatchID
	}
	localTxn := ""
	if local.TransactionID != nil {
		localTxn = *local.TransactionID
	}

	// 状态核对：结算文件默认只含成功记录，空状态按成功处理
	remoteOK := item.Status == "" || item.Status == "SUCCESS"
	localOK := local.Status == constant.PayoutStatusCompleted
	if remoteOK != localOK {
		return &mainmodel.PayoutDiscrepancy{
			PayoutID:     payoutID,
			BatchID:      batchID,
			LocalTxnID:   localTxn,
			RemoteTxnID:  item.TransactionId,
			RemoteAmount: remoteAmount,
			Kind:         DiscrepancyStatusConflict,
			Remark:       fmt.Sprintf("本地状态=%s 远端状态=%s", constant.PayoutStatusText[local.Status], item.Status),
		}, true, nil
	}
	if !remoteOK {
		// 双方都认定失败，无需再核交易号与金额
		return nil, true, nil
	}

	if localTxn != item.TransactionId {
		return &mainmodel.PayoutDiscrepancy{
			PayoutID:     payoutID,
			BatchID:      batchID,
			LocalTxnID:   localTxn,
			RemoteTxnID:  item.TransactionId,
			RemoteAmount: remoteAmount,
			Kind:         DiscrepancyTxnMismatch,
			Remark:       "交易号不一致",
		}, true, nil
	}

	if !local.NetAmount.Equal(remoteAmount) {
		return &mainmodel.PayoutDiscrepancy{
			PayoutID:     payoutID,
			BatchID:      batchID,
			LocalTxnID:   localTxn,
			RemoteTxnID:  item.TransactionId,
			RemoteAmount: remoteAmount,
			Kind:         DiscrepancyAmountMismatch,
			Remark:       fmt.Sprintf("本地=%s 远端=%s", local.NetAmount.StringFixed(2), remoteAmount.StringFixed(2)),
		}, true, nil
	}

	return nil, true, nil
}
