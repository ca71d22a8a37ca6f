package order

import "fmt"

// Status is an order's position in its lifecycle. Orders start Confirmed and
// progress one step at a time towards Delivered; Cancelled is reachable from
// any non-terminal status. Delivered and Cancelled are terminal.
type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusInTransit  Status = "in_transit"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// next maps each status to its single forward successor.
var next = map[Status]Status{
	StatusConfirmed:  StatusProcessing,
	StatusProcessing: StatusInTransit,
	StatusInTransit:  StatusDelivered,
}

// ParseStatus validates a wire-format status string.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusConfirmed, StatusProcessing, StatusInTransit, StatusDelivered, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// Terminal reports whether no further transitions are defined from s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s Status) String() string {
	return string(s)
}

// CanTransition reports whether advancing from one status to another is
// allowed: either the single forward step, or cancellation of a non-terminal
// order.
func CanTransition(from, to Status) bool {
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return next[from] == to
}

// InvalidTransitionError reports a status advance outside the transition
// graph. The order's status is left unchanged.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition %s -> %s", e.From, e.To)
}
