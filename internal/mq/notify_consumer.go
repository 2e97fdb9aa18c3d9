package mq

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"

	"mkt-settle-api/internal/dal"
	"mkt-settle-api/internal/dao"
	"mkt-settle-api/internal/dto"
	"mkt-settle-api/internal/utils"
)

const (
	webhookTimeout       = 10 * time.Second
	webhookRetryTimes    = 3
	webhookRetryInterval = 2 * time.Second
)

// StartNotifyConsumer 出款结果通知消费者，投递供应商 webhook
func StartNotifyConsumer() {
	log.Printf("[NOTIFY-CONSUMER] RabbitMQ payout_notify consumer is starting")

	StartConsumer(dal.QueuePayoutNotify, handlePayoutNotify)
}

// 投递重试在调用内完成，耗尽后丢弃。通知非资金动作，接收方可查单补偿。
func handlePayoutNotify(d amqp.Delivery) {
	var msg dto.PayoutNotifyMsg
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		log.Printf("❌ [NOTIFY-CONSUMER] 消息解析失败: %v", err)
		d.Nack(false, false)
		return
	}

	log.Printf("📨 [NOTIFY-CONSUMER] 出款结果通知: PayoutID=%d, Supplier=%d, Status=%s",
		msg.PayoutID, msg.SupplierID, msg.Status)

	if err := deliverWebhook(&msg); err != nil {
		log.Printf("🚨 [NOTIFY-CONSUMER] webhook 投递失败，通知丢弃: PayoutID=%d: %v", msg.PayoutID, err)
		d.Nack(false, false)
		return
	}

	d.Ack(false)
	log.Printf("✅ [NOTIFY-CONSUMER] 通知投递完成: PayoutID=%d", msg.PayoutID)
}

// deliverWebhook 签名后投递到供应商回调地址。未配置回调的直接吞掉。
func deliverWebhook(msg *dto.PayoutNotifyMsg) error {
	sup, err := dao.NewSupplierDao().GetByID(msg.SupplierID)
	if err != nil {
		return err
	}
	if sup == nil || sup.WebhookURL == "" {
		log.Printf("⚠️ [NOTIFY-CONSUMER] 供应商 %d 未配置 webhook，通知丢弃", msg.SupplierID)
		return nil
	}

	net, err := decimal.NewFromString(msg.NetAmount)
	if err != nil {
		log.Printf("⚠️ [NOTIFY-CONSUMER] 通知净额非法 PayoutID=%d amount=%q，通知丢弃", msg.PayoutID, msg.NetAmount)
		return nil
	}

	payload := dto.SupplierWebhookPayload{
		PayoutID:      strconv.FormatUint(msg.PayoutID, 10),
		Period:        msg.Period,
		Status:        msg.Status,
		NetAmount:     net,
		Currency:      msg.Currency,
		TransactionID: msg.TransactionID,
		Reason:        msg.Reason,
		BatchNo:       msg.BatchNo,
		Timestamp:     strconv.FormatInt(time.Now().UnixMilli(), 10),
	}
	payload.Sign = utils.GenerateSign(map[string]string{
		"payout_id":      payload.PayoutID,
		"period":         payload.Period,
		"status":         payload.Status,
		"net_amount":     payload.NetAmount.StringFixed(2),
		"currency":       payload.Currency,
		"transaction_id": payload.TransactionID,
		"reason":         payload.Reason,
		"batch_no":       payload.BatchNo,
		"timestamp":      payload.Timestamp,
	}, sup.WebhookSecret)

	ctx, cancel := context.WithTimeout(context.Background(), webhookTimeout)
	defer cancel()
	return utils.DoWithRetry(ctx, webhookRetryTimes, webhookRetryInterval, func() error {
		_, err := utils.HttpPostJsonWithHeaders(ctx, sup.WebhookURL, payload, nil)
		return err
	})
}
