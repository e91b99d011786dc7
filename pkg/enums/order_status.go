package enums

import "fmt"

// OrderStatus tracks the preparation workflow of a customer order.
type OrderStatus string

const (
	OrderStatusPendingPreparation OrderStatus = "pending_preparation"
	OrderStatusReadyToShip        OrderStatus = "ready_to_ship"
	OrderStatusShipped            OrderStatus = "shipped"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPendingPreparation,
	OrderStatusReadyToShip,
	OrderStatusShipped,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status ends the preparation workflow.
func (o OrderStatus) IsTerminal() bool {
	return o == OrderStatusShipped
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
