package enums

import "fmt"

// OrderStatus tracks the order saga state. Orders start ING at checkout,
// move to COMPLETE on payment approval, and end CANCEL on compensation.
// There is no path back out of CANCEL.
type OrderStatus string

const (
	OrderStatusIng      OrderStatus = "ING"
	OrderStatusComplete OrderStatus = "COMPLETE"
	OrderStatusCancel   OrderStatus = "CANCEL"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusIng,
	OrderStatusComplete,
	OrderStatusCancel,
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

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
