package enums

import "fmt"

// DeliveryStatus is the shipment state of one order line. Rows are
// created READY at payment approval and advanced by courier updates.
type DeliveryStatus string

const (
	DeliveryStatusReady    DeliveryStatus = "READY"
	DeliveryStatusIng      DeliveryStatus = "ING"
	DeliveryStatusComplete DeliveryStatus = "COMPLETE"
	DeliveryStatusCancel   DeliveryStatus = "CANCEL"
)

var validDeliveryStatuses = []DeliveryStatus{
	DeliveryStatusReady,
	DeliveryStatusIng,
	DeliveryStatusComplete,
	DeliveryStatusCancel,
}

// String implements fmt.Stringer.
func (d DeliveryStatus) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeliveryStatus.
func (d DeliveryStatus) IsValid() bool {
	for _, candidate := range validDeliveryStatuses {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDeliveryStatus converts raw input into a DeliveryStatus.
func ParseDeliveryStatus(value string) (DeliveryStatus, error) {
	for _, candidate := range validDeliveryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery status %q", value)
}
