package enums

import "fmt"

// OrderStatus tracks the kitchen lifecycle of a committed order. The
// progression is strictly New -> InProgress -> Preparing -> Ready and never
// moves backwards.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "NEW"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusPreparing  OrderStatus = "PREPARING"
	OrderStatusReady      OrderStatus = "READY"
)

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusNew, OrderStatusInProgress, OrderStatusPreparing, OrderStatusReady:
		return true
	}
	return false
}

// IsTerminal reports whether the status is the end of the lifecycle.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusReady
}

// Next returns the immediate successor status. A terminal status returns
// itself with ok=false.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderStatusNew:
		return OrderStatusInProgress, true
	case OrderStatusInProgress:
		return OrderStatusPreparing, true
	case OrderStatusPreparing:
		return OrderStatusReady, true
	}
	return s, false
}

func ParseOrderStatus(value string) (OrderStatus, error) {
	status := OrderStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid order status %q", value)
	}
	return status, nil
}

// AllOrderStatuses lists the lifecycle in progression order.
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusNew,
		OrderStatusInProgress,
		OrderStatusPreparing,
		OrderStatusReady,
	}
}
