package seatfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
	"github.com/m04kA/SMC-SeatLive/internal/service/seats"
	"github.com/m04kA/SMC-SeatLive/internal/service/seats/models"
)

const (
	maxBackoff      = 30 * time.Second
	reconnectPause  = 2 * time.Second
	defaultPrefetch = 50
	resultProcessed = "processed"
	resultRejected  = "rejected"
	resultRequeued  = "requeued"
)

// Consumer читает смены состояния мест из очереди RabbitMQ
type Consumer struct {
	url      string
	queue    string
	prefetch int
	service  SeatService
	metrics  Metrics
	log      Logger
}

// NewConsumer создает новый экземпляр консьюмера
func NewConsumer(url, queue string, prefetch int, service SeatService, metrics Metrics, log Logger) *Consumer {
	if prefetch <= 0 {
		prefetch = defaultPrefetch
	}
	return &Consumer{
		url:      url,
		queue:    queue,
		prefetch: prefetch,
		service:  service,
		metrics:  metrics,
		log:      log,
	}
}

// Run подключается к брокеру и обрабатывает сообщения до отмены ctx
// При обрыве соединения переподключается с экспоненциальной задержкой
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("seatfeed: failed to dial broker: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < maxBackoff {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.log.Warn("seatfeed: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, reconnectPause) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		c.log.Warn("seatfeed: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	c.log.Info("seatfeed: consuming from %s", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return ErrDeliveriesClosed
			}
			c.process(ctx, d.Body, d)
		}
	}
}

// process обрабатывает одно сообщение и подтверждает его
// Невалидные сообщения отклоняются без возврата в очередь, внутренние ошибки возвращают сообщение
func (c *Consumer) process(ctx context.Context, body []byte, d acknowledger) {
	req, err := decode(body)
	if err == nil {
		err = c.service.RecordTransition(ctx, req)
	}

	switch {
	case err == nil:
		c.metrics.IncSeatFeed(resultProcessed)
		_ = d.Ack(false)
	case errors.Is(err, ErrDecode), errors.Is(err, seats.ErrInvalidInput):
		c.log.Warn("seatfeed: message rejected: %v", err)
		c.metrics.IncSeatFeed(resultRejected)
		_ = d.Nack(false, false)
	default:
		c.log.Error("seatfeed: message processing failed: %v", err)
		c.metrics.IncSeatFeed(resultRequeued)
		_ = d.Nack(false, true)
	}
}

func decode(body []byte) (*models.TransitionRequest, error) {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &models.TransitionRequest{
		SeatID:    msg.SeatID,
		Status:    domain.SeatState(msg.Status),
		ChangedAt: msg.ChangedAt,
	}, nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
