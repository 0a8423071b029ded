// Package amqpbridge relays store change notifications between processes over
// RabbitMQ, so live subscriptions in every API instance see writes made by the
// others.
package amqpbridge

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cashflow/internal/events"
	"cashflow/internal/logger"
	"cashflow/internal/uuid"
)

const (
	publishTimeout = 5 * time.Second
	outboxSize     = 256
)

// publisher is the part of *amqp091.Channel used to send changes.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// Bridge is an events.Notifier that forwards every change to the local
// Broadcaster immediately and to a fanout exchange for peer processes.
// Outgoing changes are queued and sent by Run, so a slow broker never holds
// up a store write. Changes received from peers are forwarded to the local
// Broadcaster only.
type Bridge struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	pub      publisher
	outbox   chan events.Change
	exchange string
	queue    string
	origin   string
	local    *events.Broadcaster
	log      *zap.SugaredLogger
}

// New dials url, declares the fanout exchange and a private queue bound to it.
func New(url, exchange string, local *events.Broadcaster) (*Bridge, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	b := &Bridge{
		conn:     conn,
		channel:  channel,
		pub:      channel,
		outbox:   make(chan events.Change, outboxSize),
		exchange: exchange,
		origin:   uuid.New(),
		local:    local,
		log:      logger.Named("amqp"),
	}

	if err := b.setup(); err != nil {
		b.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return b, nil
}

func (b *Bridge) setup() error {
	err := b.channel.ExchangeDeclare(
		b.exchange, // name
		"fanout",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	// Each process gets its own exclusive queue; change signals are only
	// useful to processes that are running now.
	q, err := b.channel.QueueDeclare(
		"",    // server-named
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	b.queue = q.Name

	if err := b.channel.QueueBind(b.queue, "", b.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// Origin returns the identity this process stamps on published changes.
func (b *Bridge) Origin() string {
	return b.origin
}

// Publish implements events.Notifier. Local subscribers are notified at once;
// the change is queued for peers and dropped with a warning when the queue is
// full.
func (b *Bridge) Publish(ctx context.Context, change events.Change) {
	b.local.Publish(ctx, change)

	change.Origin = b.origin
	select {
	case b.outbox <- change:
	default:
		b.log.Warnw("change outbox full, dropping change for peers",
			"collection", change.Collection,
			"op", change.Op,
			"id", change.ID,
		)
	}
}

// Run sends queued changes to the exchange and consumes peer changes until
// ctx is done.
func (b *Bridge) Run(ctx context.Context) error {
	msgs, err := b.channel.Consume(
		b.queue, // queue
		"",      // consumer
		true,    // auto-ack, signals are idempotent
		true,    // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	b.log.Infow("consuming change notifications", "exchange", b.exchange, "queue", b.queue)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b.drain(ctx)
		return nil
	})
	g.Go(func() error {
		return b.consume(ctx, msgs)
	})
	return g.Wait()
}

func (b *Bridge) consume(ctx context.Context, msgs <-chan amqp091.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}
			b.handle(ctx, delivery.Body)
		}
	}
}

// drain sends queued changes one at a time until ctx is done.
func (b *Bridge) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case change := <-b.outbox:
			b.send(ctx, change)
		}
	}
}

func (b *Bridge) send(ctx context.Context, change events.Change) {
	body, err := change.ToJSON()
	if err != nil {
		b.log.Errorw("failed to marshal change", "error", err, "collection", change.Collection)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = b.pub.PublishWithContext(
		ctx,
		b.exchange, // exchange
		"",         // routing key, ignored by fanout
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   change.Timestamp,
			Body:        body,
		},
	)
	if err != nil {
		b.log.Warnw("failed to publish change",
			"error", err,
			"collection", change.Collection,
			"op", change.Op,
			"id", change.ID,
		)
	}
}

func (b *Bridge) handle(ctx context.Context, body []byte) {
	change, err := events.ChangeFromJSON(body)
	if err != nil {
		b.log.Errorw("failed to unmarshal change", "error", err)
		return
	}
	if change.Origin == b.origin {
		return
	}
	b.local.Publish(ctx, change)
}

// Close closes the channel and connection.
func (b *Bridge) Close() error {
	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
