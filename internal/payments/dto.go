package payments

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ms-You/emmerce-api-sub000/pkg/kakaopay"
)

// ReadyResult is what the client needs to hand the buyer to the
// provider's payment page.
type ReadyResult struct {
	TID                   string    `json:"tid"`
	NextRedirectPCURL     string    `json:"nextRedirectPcUrl"`
	NextRedirectMobileURL string    `json:"nextRedirectMobileUrl,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
}

// ApproveResult mirrors the provider's approval payload plus the local
// order id.
type ApproveResult struct {
	OrderID           uuid.UUID `json:"orderId"`
	TID               string    `json:"tid"`
	AID               string    `json:"aid"`
	PaymentMethodType string    `json:"paymentMethodType"`
	TotalAmount       int       `json:"totalAmount"`
	TaxFreeAmount     int       `json:"taxFreeAmount"`
	VATAmount         int       `json:"vatAmount"`
	CardIssuer        *string   `json:"cardIssuer,omitempty"`
	ApprovedAt        time.Time `json:"approvedAt"`
}

// PaymentInfo is the provider read-through payload for one transaction.
type PaymentInfo struct {
	OrderID  uuid.UUID              `json:"orderId"`
	TID      string                 `json:"tid"`
	Provider *kakaopay.OrderResponse `json:"provider"`
}
