package event

import (
	"encoding/json"

	"github.com/streadway/amqp"

	"mkt-settle-api/internal/dal"
)

// Publisher 事件投递口，异步发布函数统一走默认实现，测试时可替换
type Publisher interface {
	Publish(routingKey string, msg any) error
}

// MQPublisher 基于 RabbitMQ 的默认实现
type MQPublisher struct{}

func NewPublisher() Publisher { return &MQPublisher{} }

func (p *MQPublisher) Publish(routingKey string, msg any) error {
	return publish(routingKey, msg)
}

var defaultPub = NewPublisher()

// publish 经 settle_events 交换机投递（topic，持久化消息）
func publish(routingKey string, msg any) error {
	if dal.RabbitCh == nil {
		return nil
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return dal.RabbitCh.Publish(
		dal.ExchangeSettleEvents,
		routingKey,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         b,
		},
	)
}
