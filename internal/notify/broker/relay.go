package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/notify"
)

// Exchange is the topic exchange carrying order status events between instances.
const Exchange = "order_events"

type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	ConsumeWithContext(ctx context.Context, queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Relay publishes events to RabbitMQ and feeds every event seen on the
// exchange, including its own, into the local hub.
type Relay struct {
	ch     amqpChannel
	conn   io.Closer
	hub    *notify.Hub
	logger *slog.Logger
	queue  string

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Dial connects to url and declares the exchange topology.
func Dial(url string, hub *notify.Hub, logger *slog.Logger) (*Relay, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	r, err := newRelay(ch, conn, hub, logger)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return r, nil
}

func newRelay(ch amqpChannel, conn io.Closer, hub *notify.Hub, logger *slog.Logger) (*Relay, error) {
	if err := ch.ExchangeDeclare(Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, "#", Exchange, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}
	return &Relay{
		ch:     ch,
		conn:   conn,
		hub:    hub,
		logger: logger,
		queue:  q.Name,
	}, nil
}

// Emit publishes event with the channel as routing key. When the broker is
// unreachable the event is still delivered to local subscribers.
func (r *Relay) Emit(ctx context.Context, ch notify.Channel, event model.StatusEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("failed to encode order event", slog.String("order_id", event.OrderID), slog.Any("error", err))
		return
	}

	err = r.ch.PublishWithContext(ctx, Exchange, ch.String(), false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		r.logger.Warn("failed to publish order event, delivering locally",
			slog.String("channel", ch.String()),
			slog.String("order_id", event.OrderID),
			slog.Any("error", err),
		)
		r.hub.Emit(ctx, ch, event)
	}
}

// Start begins consuming the relay queue.
func (r *Relay) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	deliveries, err := r.ch.ConsumeWithContext(runCtx, r.queue, "", true, true, false, false, nil)
	if err != nil {
		cancel()
		return fmt.Errorf("consume %s: %w", r.queue, err)
	}
	r.cancel = cancel

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.consume(runCtx, deliveries)
	}()
	return nil
}

func (r *Relay) consume(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			r.deliver(ctx, d)
		}
	}
}

func (r *Relay) deliver(ctx context.Context, d amqp.Delivery) {
	ch, ok := notify.ParseChannel(d.RoutingKey)
	if !ok {
		r.logger.Warn("ignoring event with unknown routing key", slog.String("routing_key", d.RoutingKey))
		return
	}
	if r.hub.Subscribers(ch) == 0 {
		return
	}
	var event model.StatusEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		r.logger.Warn("ignoring malformed order event", slog.String("routing_key", d.RoutingKey), slog.Any("error", err))
		return
	}
	r.hub.Emit(ctx, ch, event)
}

// Stop ends consumption and closes the broker connection.
func (r *Relay) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel == nil {
		return r.close()
	}
	cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return r.close()
}

func (r *Relay) close() error {
	var errs []error
	if err := r.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		errs = append(errs, fmt.Errorf("close channel: %w", err))
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, fmt.Errorf("close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}
