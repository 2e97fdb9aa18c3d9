package dal

import (
	"log"
	"sync"
	"time"

	"mkt-settle-api/internal/config"

	"github.com/streadway/amqp"
)

const (
	ExchangeSettleEvents = "settle_events"

	QueueOrderCompleted = "order_completed"
	QueuePayoutNotify   = "payout_notify"

	RKOrderCompleted    = "order.completed"
	RKPayoutNotify      = "payout.notify"
	RKCommissionStamped = "commission.stamped"
	RKScheduleChanged   = "schedule.changed"
	RKBatchFinished     = "payout.batch.finished"
)

var (
	RabbitConn *amqp.Connection
	RabbitCh   *amqp.Channel

	mqMu         sync.Mutex
	connClosedCh chan *amqp.Error
	reconnecting bool
)

func InitRabbitMQ() {
	if err := mqConnect(); err != nil {
		log.Fatalf("rabbitmq init failed: %v", err)
	}
}

func mqConnect() error {
	mqMu.Lock()
	defer mqMu.Unlock()

	conn, err := amqp.Dial(config.C.RabbitMQ.URL)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}

	// exchange & queues
	if err := ch.ExchangeDeclare(ExchangeSettleEvents, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(QueueOrderCompleted, true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(QueuePayoutNotify, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(QueueOrderCompleted, RKOrderCompleted, ExchangeSettleEvents, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(QueuePayoutNotify, RKPayoutNotify, ExchangeSettleEvents, false, nil); err != nil {
		return err
	}

	RabbitConn = conn
	RabbitCh = ch
	connClosedCh = conn.NotifyClose(make(chan *amqp.Error, 1))
	go mqWatchClose()
	return nil
}

// 监听关闭事件，断线后台自愈重连
func mqWatchClose() {
	err, ok := <-connClosedCh
	if !ok {
		return
	}
	log.Printf("[RabbitMQ] connection closed: %v", err)
	mqReconnect()
}

func mqReconnect() {
	mqMu.Lock()
	if reconnecting {
		mqMu.Unlock()
		return
	}
	reconnecting = true
	mqMu.Unlock()

	defer func() {
		mqMu.Lock()
		reconnecting = false
		mqMu.Unlock()
	}()

	for {
		log.Println("[RabbitMQ] reconnecting...")
		if err := mqConnect(); err == nil {
			log.Println("[RabbitMQ] reconnected")
			return
		}
		time.Sleep(5 * time.Second)
	}
}
