package enums

import "testing"

func TestParseOrderStatus(t *testing.T) {
	for _, value := range []string{"ING", "COMPLETE", "CANCEL"} {
		status, err := ParseOrderStatus(value)
		if err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
		if !status.IsValid() {
			t.Fatalf("expected %q to be valid", value)
		}
	}

	if _, err := ParseOrderStatus("READY"); err == nil {
		t.Fatal("READY is not an order status")
	}
	if OrderStatus("ordering").IsValid() {
		t.Fatal("order statuses are case sensitive")
	}
}

func TestParseDeliveryStatus(t *testing.T) {
	for _, value := range []string{"READY", "ING", "COMPLETE", "CANCEL"} {
		if _, err := ParseDeliveryStatus(value); err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
	}
	if _, err := ParseDeliveryStatus("SHIPPED"); err == nil {
		t.Fatal("expected parse error for unknown status")
	}
}

func TestParsePaymentStatus(t *testing.T) {
	status, err := ParsePaymentStatus("PENDING")
	if err != nil {
		t.Fatalf("parse PENDING: %v", err)
	}
	if status != PaymentStatusPending {
		t.Fatalf("unexpected status %q", status)
	}
	if _, err := ParsePaymentStatus("READY"); err == nil {
		t.Fatal("READY is not a payment status")
	}
}
