package logger

import (
	"log"
	"time"

	"mkt-settle-api/internal/dal"
	"mkt-settle-api/internal/dto"
	ledgermodel "mkt-settle-api/internal/model/ledger"
	"mkt-settle-api/internal/shard"
	"mkt-settle-api/internal/utils"
)

// 请求明细入库上限，超长报文只留头部
const maxDetailBytes = 8192

// WriteSettleLog 审计动作落分表。未补充业务域的请求不落库。
func WriteSettleLog(payload *dto.AuditContextPayload) {
	if payload == nil {
		log.Printf("[AuditLogger] payload 为空，跳过写入")
		return
	}
	if payload.Biz == "" {
		return
	}

	ts := payload.CreatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	table := shard.SettleLogShard.GetTable(payload.RefID, ts)
	if table == "" {
		log.Printf("[AuditLogger] 表名为空, ref_id=%d, biz=%s", payload.RefID, payload.Biz)
		return
	}

	entry := ledgermodel.SettleLogM{
		RefID:      payload.RefID,
		Biz:        payload.Biz,
		Action:     payload.Action,
		TraceID:    payload.TraceID,
		Detail:     utils.TruncateString(payload.RequestBody, maxDetailBytes),
		Status:     payload.Status,
		ErrorMsg:   utils.TruncateString(payload.ErrorMsg, 255),
		Operator:   payload.Operator,
		IP:         payload.IP,
		LatencyMs:  payload.LatencyMs,
		CreateTime: ts,
	}

	go func(e ledgermodel.SettleLogM, tableName string) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[AuditLogger] goroutine panic: trace_id=%s, err=%v", e.TraceID, r)
			}
		}()

		if err := dal.LedgerDB.Table(tableName).Create(&e).Error; err != nil {
			log.Printf("[AuditLogger] 写入失败: table=%s, trace_id=%s, err=%v", tableName, e.TraceID, err)
		}
	}(entry, table)
}
