package notify

import (
	"context"
	"strings"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

// Kind names an addressable audience.
type Kind string

const (
	KindCanteen Kind = "canteen"
	KindStudent Kind = "student"
)

// Channel addresses every subscriber interested in one canteen or one student.
type Channel struct {
	Kind Kind
	ID   string
}

// CanteenChannel addresses the dashboards of canteen id.
func CanteenChannel(id string) Channel { return Channel{Kind: KindCanteen, ID: id} }

// StudentChannel addresses the sessions of student id.
func StudentChannel(id string) Channel { return Channel{Kind: KindStudent, ID: id} }

// String renders the channel as "<kind>.<id>", which doubles as a routing key.
func (c Channel) String() string {
	return string(c.Kind) + "." + c.ID
}

// ParseChannel reverses String.
func ParseChannel(raw string) (Channel, bool) {
	kind, id, ok := strings.Cut(raw, ".")
	if !ok || id == "" {
		return Channel{}, false
	}
	switch Kind(kind) {
	case KindCanteen, KindStudent:
		return Channel{Kind: Kind(kind), ID: id}, true
	}
	return Channel{}, false
}

// Emitter delivers an event to the current subscribers of a channel.
// Delivery is best effort and never reports failure to the caller.
type Emitter interface {
	Emit(ctx context.Context, ch Channel, event model.StatusEvent)
}
