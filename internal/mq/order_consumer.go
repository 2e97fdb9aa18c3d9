package mq

import (
	"context"
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"mkt-settle-api/internal/dal"
	"mkt-settle-api/internal/dto"
	"mkt-settle-api/internal/service"
)

// StartOrderConsumer 订单完成事件消费者，驱动佣金落账
func StartOrderConsumer() {
	log.Printf("[STAMP-CONSUMER] RabbitMQ order_completed consumer is starting")

	StartConsumer(dal.QueueOrderCompleted, handleOrderCompleted)
}

func handleOrderCompleted(d amqp.Delivery) {
	var ev dto.OrderCompletedEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		log.Printf("❌ [STAMP-CONSUMER] 消息解析失败: %v", err)
		d.Nack(false, false)
		return
	}

	log.Printf("📨 [STAMP-CONSUMER] 收到订单完成事件: OrderNo=%s, Supplier=%d, Amount=%s",
		ev.OrderNo, ev.SupplierID, ev.Amount)

	stamped, err := service.NewCommissionService().StampFromEvent(context.Background(), &ev)
	if err != nil {
		log.Printf("❌ [STAMP-CONSUMER] 佣金落账失败: OrderNo=%s: %v", ev.OrderNo, err)

		// 落账幂等，重投安全
		if ev.RetryCount < maxRetry {
			ev.RetryCount++
			body, _ := json.Marshal(ev)
			requeue(dal.QueueOrderCompleted, body)
			log.Printf("🔁 [STAMP-CONSUMER] 重投订单 %s (attempt %d)", ev.OrderNo, ev.RetryCount)
		} else {
			log.Printf("🚨 [STAMP-CONSUMER] 订单 %s 重投次数用尽，人工排查", ev.OrderNo)
		}

		d.Nack(false, false)
		return
	}

	if !stamped {
		log.Printf("⚠️ [STAMP-CONSUMER] 订单 %s 佣金已存在，跳过", ev.OrderNo)
		d.Ack(false)
		return
	}

	d.Ack(false)
	log.Printf("✅ [STAMP-CONSUMER] 订单 %s 佣金落账完成", ev.OrderNo)
}
