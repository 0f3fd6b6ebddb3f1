package notify

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

const defaultBuffer = 16

// Subscription receives events emitted on one channel after it was created.
type Subscription struct {
	ID      string
	Channel Channel

	events chan model.StatusEvent
	hub    *Hub
	once   sync.Once
}

// Events is closed when the subscription ends.
func (s *Subscription) Events() <-chan model.StatusEvent {
	return s.events
}

// Close detaches the subscription from its hub.
func (s *Subscription) Close() {
	s.hub.remove(s)
}

// Hub is an in-process publish/subscribe registry.
// Slow subscribers lose events instead of blocking the emitter.
type Hub struct {
	mu      sync.RWMutex
	subs    map[Channel]map[string]*Subscription
	buffer  int
	logger  *slog.Logger
	dropped atomic.Int64
}

// NewHub creates hub whose subscriptions buffer up to buffer events.
func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		subs:   make(map[Channel]map[string]*Subscription),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe registers subscriberID on ch. A second subscription with the same
// id on the same channel replaces the first one.
func (h *Hub) Subscribe(ch Channel, subscriberID string) *Subscription {
	sub := &Subscription{
		ID:      subscriberID,
		Channel: ch,
		events:  make(chan model.StatusEvent, h.buffer),
		hub:     h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.subs[ch]
	if !ok {
		members = make(map[string]*Subscription)
		h.subs[ch] = members
	}
	if previous, exists := members[subscriberID]; exists {
		previous.once.Do(func() { close(previous.events) })
	}
	members[subscriberID] = sub
	return sub
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.subs[sub.Channel][sub.ID]; ok && current == sub {
		h.detach(sub)
		return
	}
	sub.once.Do(func() { close(sub.events) })
}

// detach requires h.mu to be held for writing.
func (h *Hub) detach(sub *Subscription) {
	members := h.subs[sub.Channel]
	delete(members, sub.ID)
	if len(members) == 0 {
		delete(h.subs, sub.Channel)
	}
	sub.once.Do(func() { close(sub.events) })
}

// Emit hands event to every current subscriber of ch without waiting.
func (h *Hub) Emit(ctx context.Context, ch Channel, event model.StatusEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs[ch] {
		select {
		case sub.events <- event:
		default:
			h.dropped.Add(1)
			h.logger.Warn("dropping order event for slow subscriber",
				slog.String("channel", ch.String()),
				slog.String("subscriber", sub.ID),
				slog.String("order_id", event.OrderID),
			)
		}
	}
}

// Subscribers reports how many subscribers ch currently has.
func (h *Hub) Subscribers(ch Channel) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[ch])
}

// Dropped reports how many deliveries were skipped because a buffer was full.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Close ends every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, members := range h.subs {
		for _, sub := range members {
			sub.once.Do(func() { close(sub.events) })
		}
	}
	h.subs = make(map[Channel]map[string]*Subscription)
}
