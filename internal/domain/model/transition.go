package model

// TransitionPolicy decides whether an order may move between two statuses.
type TransitionPolicy interface {
	Allowed(from, to OrderStatus) bool
	// Next lists the statuses an order in from may be moved to.
	Next(from OrderStatus) []OrderStatus
	Name() string
}

var orderStatuses = []OrderStatus{
	OrderStatusPendingPayment, OrderStatusRequested, OrderStatusPreparing,
	OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled,
}

var strictEdges = map[OrderStatus][]OrderStatus{
	OrderStatusPendingPayment: {OrderStatusRequested, OrderStatusCancelled},
	OrderStatusRequested:      {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:          {OrderStatusCompleted, OrderStatusCancelled},
}

// StrictTransitions only allows forward steps and cancellation of non-terminal orders.
type StrictTransitions struct{}

// Allowed checks the adjacency table.
func (StrictTransitions) Allowed(from, to OrderStatus) bool {
	for _, next := range strictEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (StrictTransitions) Next(from OrderStatus) []OrderStatus { return NextStatuses(from) }

func (StrictTransitions) Name() string { return "strict" }

// LegacyTransitions accepts any post-creation status from any state.
// It reproduces the historical crew dashboard behaviour and exists for compatibility runs.
type LegacyTransitions struct{}

// Allowed only rejects unknown statuses and a return to PENDING_PAYMENT.
func (LegacyTransitions) Allowed(_, to OrderStatus) bool {
	return to.IsValid() && to != OrderStatusPendingPayment
}

// Next returns every other status the legacy policy accepts.
func (p LegacyTransitions) Next(from OrderStatus) []OrderStatus {
	var out []OrderStatus
	for _, to := range orderStatuses {
		if to != from && p.Allowed(from, to) {
			out = append(out, to)
		}
	}
	return out
}

func (LegacyTransitions) Name() string { return "legacy" }

// NextStatuses lists the statuses reachable from s under the strict policy.
func NextStatuses(s OrderStatus) []OrderStatus {
	next := strictEdges[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}
