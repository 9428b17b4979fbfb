package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/flicky/carcare-storefront/internal/events"
	"github.com/flicky/carcare-storefront/internal/model"
	"github.com/flicky/carcare-storefront/internal/repository"
)

const (
	dlxExchange    = "orders.dlx"
	dlqQueueName   = "orders.dlq"
	idempotencyTTL = 24 * time.Hour
)

var ErrOrderNotFound = errors.New("order not found")

// errRetry marks failures worth redelivering.
type errRetry struct{ err error }

func (e errRetry) Error() string { return e.err.Error() }
func (e errRetry) Unwrap() error { return e.err }

// DashboardInvalidator drops cached admin views once a new order lands.
type DashboardInvalidator interface {
	InvalidateDashboard(ctx context.Context) error
}

type OrderWorker struct {
	channel     *amqp.Channel
	orderRepo   repository.OrderRepository
	redisClient *redis.Client
	dashboard   DashboardInvalidator
	log         *slog.Logger
	done        chan struct{}
}

func NewOrderWorker(
	ch *amqp.Channel,
	orderRepo repository.OrderRepository,
	redisClient *redis.Client,
	dashboard DashboardInvalidator,
	log *slog.Logger,
) *OrderWorker {
	return &OrderWorker{
		channel:     ch,
		orderRepo:   orderRepo,
		redisClient: redisClient,
		dashboard:   dashboard,
		log:         log,
		done:        make(chan struct{}),
	}
}

// SetupRabbitMQ declares exchanges, queues, and bindings (DLX/DLQ).
func SetupRabbitMQ(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(dlxExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLX: %w", err)
	}
	if _, err := ch.QueueDeclare(dlqQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLQ: %w", err)
	}
	if err := ch.QueueBind(dlqQueueName, events.OrderQueue, dlxExchange, false, nil); err != nil {
		return fmt.Errorf("bind DLQ: %w", err)
	}
	if _, err := ch.QueueDeclare(events.OrderQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    dlxExchange,
		"x-dead-letter-routing-key": events.OrderQueue,
	}); err != nil {
		return fmt.Errorf("declare order queue: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set QoS: %w", err)
	}
	return nil
}

func (w *OrderWorker) Start(ctx context.Context) error {
	msgs, err := w.channel.Consume(events.OrderQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				w.processMessage(ctx, msg)
			case <-w.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	w.log.Info("order worker started")
	return nil
}

func (w *OrderWorker) Stop() { close(w.done) }

func (w *OrderWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	var orderMsg model.OrderMessage
	if err := json.Unmarshal(msg.Body, &orderMsg); err != nil {
		w.log.Error("unmarshal order message", "error", err)
		_ = msg.Nack(false, false)
		return
	}

	err := w.Handle(ctx, orderMsg)
	var retry errRetry
	switch {
	case err == nil:
		_ = msg.Ack(false)
	case errors.As(err, &retry) && !msg.Redelivered:
		_ = msg.Nack(false, true)
	default:
		_ = msg.Nack(false, false) // → DLQ
	}
}

// Handle processes one order.placed message. A message seen before is a no-op.
func (w *OrderWorker) Handle(ctx context.Context, msg model.OrderMessage) error {
	log := w.log.With("order_id", msg.OrderID, "user_id", msg.UserID)

	idempotencyKey := "order_processed:" + msg.OrderID.String()
	if w.redisClient != nil {
		exists, err := w.redisClient.Exists(ctx, idempotencyKey).Result()
		if err != nil {
			log.Error("check idempotency key", "error", err)
			return errRetry{fmt.Errorf("check idempotency key: %w", err)}
		}
		if exists > 0 {
			log.Info("order already processed, skipping")
			return nil
		}
	}

	order, err := w.orderRepo.GetByID(ctx, msg.OrderID)
	if err != nil {
		log.Error("load order", "error", err)
		return errRetry{fmt.Errorf("get order: %w", err)}
	}
	if order == nil {
		log.Error("order not found")
		return fmt.Errorf("%w: %s", ErrOrderNotFound, msg.OrderID)
	}

	if w.dashboard != nil {
		if err := w.dashboard.InvalidateDashboard(ctx); err != nil {
			log.Error("invalidate dashboard cache", "error", err)
		}
	}

	if w.redisClient != nil {
		if err := w.redisClient.Set(ctx, idempotencyKey, "1", idempotencyTTL).Err(); err != nil {
			log.Error("set idempotency key", "error", err)
		}
	}

	log.Info("order received",
		"phone", msg.Phone,
		"total", order.TotalAmount.String(),
		"items", len(order.Items),
	)
	return nil
}
