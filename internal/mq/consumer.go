package mq

import (
	"log"

	"github.com/streadway/amqp"

	"mkt-settle-api/internal/dal"
)

// 消费失败的有限重投次数，超过后丢弃并告警
const maxRetry = 3

// StartConsumers 启动全部消费者，每个队列一个常驻协程
func StartConsumers() {
	go StartOrderConsumer()
	go StartNotifyConsumer()
}

// StartConsumer 通用消费循环，消息级别并发处理
func StartConsumer(queue string, handler func(amqp.Delivery)) {
	if dal.RabbitCh == nil {
		log.Printf("[MQ] RabbitMQ channel not initialized, consumer %s skipped", queue)
		return
	}
	msgs, err := dal.RabbitCh.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		log.Printf("❌ [MQ] consume %s failed: %v", queue, err)
		return
	}
	for d := range msgs {
		go handler(d)
	}
}

// requeue 带重投计数的有限重试，直接投回队列（默认交换机）
func requeue(queue string, body []byte) {
	if dal.RabbitCh == nil {
		return
	}
	err := dal.RabbitCh.Publish(
		"", queue, false, false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		log.Printf("❌ [MQ] requeue to %s failed: %v", queue, err)
	}
}
