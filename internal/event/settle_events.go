package event

import (
	"log"

	"mkt-settle-api/internal/dal"
	"mkt-settle-api/internal/dto"
)

// PublishCommissionStamped 异步发布佣金落账事件
func PublishCommissionStamped(msg *dto.CommissionStampedEvent) {
	if msg == nil {
		log.Print("❌ [EVENT] 佣金落账消息为空")
		return
	}
	go func() {
		if err := defaultPub.Publish(dal.RKCommissionStamped, msg); err != nil {
			log.Printf("❌ [EVENT] 佣金落账发布失败: %v", err)
		}
	}()
}

// PublishScheduleChanged 异步发布费率表变更事件
func PublishScheduleChanged(msg *dto.ScheduleChangedEvent) {
	if msg == nil {
		return
	}
	go func() {
		if err := defaultPub.Publish(dal.RKScheduleChanged, msg); err != nil {
			log.Printf("❌ [EVENT] 费率变更发布失败: %v", err)
		}
	}()
}

// PublishPayoutNotify 异步投递出款结果通知（payout_notify 队列消费后回调供应商）
func PublishPayoutNotify(msg *dto.PayoutNotifyMsg) {
	if msg == nil {
		return
	}
	go func() {
		if err := defaultPub.Publish(dal.RKPayoutNotify, msg); err != nil {
			log.Printf("❌ [EVENT] 出款通知发布失败: %v", err)
		}
	}()
}

// PublishBatchFinished 异步发布批次完结事件
func PublishBatchFinished(msg *dto.BatchFinishedEvent) {
	if msg == nil {
		return
	}
	go func() {
		if err := defaultPub.Publish(dal.RKBatchFinished, msg); err != nil {
			log.Printf("❌ [EVENT] 批次完结发布失败: %v", err)
		}
	}()
}
