// Package events publishes order lifecycle messages.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/flicky/carcare-storefront/internal/model"
)

const OrderQueue = "orders"

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, msg model.OrderMessage) error
}

type AMQPPublisher struct {
	ch *amqp.Channel
}

func NewAMQPPublisher(ch *amqp.Channel) *AMQPPublisher {
	return &AMQPPublisher{ch: ch}
}

func (p *AMQPPublisher) PublishOrderPlaced(ctx context.Context, msg model.OrderMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode order message: %w", err)
	}
	err = p.ch.PublishWithContext(ctx, "", OrderQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.OrderID.String(),
	})
	if err != nil {
		return fmt.Errorf("publish order message: %w", err)
	}
	return nil
}

// HandlerFunc processes one order message in-process.
type HandlerFunc func(ctx context.Context, msg model.OrderMessage) error

// LocalPublisher hands messages straight to a handler, for runs without a broker.
type LocalPublisher struct {
	handle HandlerFunc
}

func NewLocalPublisher(handle HandlerFunc) *LocalPublisher {
	return &LocalPublisher{handle: handle}
}

func (p *LocalPublisher) PublishOrderPlaced(ctx context.Context, msg model.OrderMessage) error {
	if p.handle == nil {
		return nil
	}
	return p.handle(ctx, msg)
}
