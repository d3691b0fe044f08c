package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"orderflow/internal/config"
	"orderflow/internal/errors"
)

const (
	exchangeName = "orders"
	routingKey   = "order.created"
)

// OrderCreatedEvent is the payload published after a successful persist.
// Key casing is fixed: the downstream worker reads exactly these names.
type OrderCreatedEvent struct {
	ID       uuid.UUID `json:"Id"`
	Product  string    `json:"Product"`
	Quantity int       `json:"Quantity"`
	Price    *float64  `json:"Price"`
}

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type dialFunc func(url string) (io.Closer, channel, error)

func dialAMQP(url string) (io.Closer, channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

// Publisher delivers order-created events to the "orders" topic exchange.
// The broker connection is established lazily on the first publish; the
// mutex guarantees at most one connection and channel even when concurrent
// first calls race. A dial failure surfaces to every waiting caller and
// leaves the publisher disconnected for the next attempt.
type Publisher struct {
	url    string
	logger *zap.Logger
	dial   dialFunc

	mu   sync.Mutex
	conn io.Closer
	ch   channel

	// Duplicate declares are idempotent at the broker, so this flag only
	// needs to suppress the steady-state declare call, not race-proof it.
	exchangeDeclared atomic.Bool
}

func NewPublisher(cfg config.RabbitMQConfig, logger *zap.Logger) *Publisher {
	return &Publisher{
		url:    fmt.Sprintf("amqp://%s:%s@%s/", cfg.Username, cfg.Password, cfg.Host),
		logger: logger,
		dial:   dialAMQP,
	}
}

func (p *Publisher) getChannel() (channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		return p.ch, nil
	}

	conn, ch, err := p.dial(p.url)
	if err != nil {
		return nil, err
	}

	p.conn = conn
	p.ch = ch
	p.logger.Info("connected to message broker")
	return p.ch, nil
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error {
	ch, err := p.getChannel()
	if err != nil {
		return errors.NewPublishError("connecting to broker", err)
	}

	if !p.exchangeDeclared.Load() {
		if err := ch.ExchangeDeclare(exchangeName, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			return errors.NewPublishError("declaring exchange", err)
		}
		p.exchangeDeclared.Store(true)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return errors.NewPublishError("encoding event", err)
	}

	err = ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return errors.NewPublishError("publishing order.created event", err)
	}

	p.logger.Info("published order.created event", zap.String("orderId", event.ID.String()))
	return nil
}

// Close tears down the channel and then the connection, best-effort.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			p.logger.Warn("closing channel", zap.Error(err))
		}
		p.ch = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.logger.Warn("closing connection", zap.Error(err))
		}
		p.conn = nil
	}
}
