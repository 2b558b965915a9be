package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ms-You/emmerce-api-sub000/pkg/enums"
)

// StartOrderLine is one requested product/quantity pair.
type StartOrderLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// DeliveryInfo is the recipient snapshot captured at checkout.
type DeliveryInfo struct {
	RecipientName    string
	RecipientContact string
	Address          string
}

// StartOrderInput is everything needed to open an order.
type StartOrderInput struct {
	MemberID     uuid.UUID
	Lines        []StartOrderLine
	DeliveryInfo DeliveryInfo
}

// OrderLineInfo is the per-line read model. DeliveryStatus is nil until
// the payment approval creates the delivery row.
type OrderLineInfo struct {
	OrderLineID    uuid.UUID             `json:"orderLineId"`
	ProductID      uuid.UUID             `json:"productId"`
	ProductName    string                `json:"productName"`
	Quantity       int                   `json:"quantity"`
	TotalPrice     int                   `json:"totalPrice"`
	DeliveryStatus *enums.DeliveryStatus `json:"deliveryStatus,omitempty"`
	ReviewWritten  bool                  `json:"reviewWritten"`
}

// OrderInfo is the full order read model for the detail endpoint.
type OrderInfo struct {
	OrderID          uuid.UUID         `json:"orderId"`
	Status           enums.OrderStatus `json:"status"`
	RecipientName    string            `json:"recipientName"`
	RecipientContact string            `json:"recipientContact"`
	Address          string            `json:"address"`
	Lines            []OrderLineInfo   `json:"lines"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// OrderSummary is one row of the member's order list.
type OrderSummary struct {
	OrderID    uuid.UUID         `json:"orderId"`
	Status     enums.OrderStatus `json:"status"`
	LineCount  int               `json:"lineCount"`
	TotalPrice int               `json:"totalPrice"`
	Lines      []OrderLineInfo   `json:"lines"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// OrderList is a cursor page of order summaries.
type OrderList struct {
	Items      []OrderSummary `json:"items"`
	NextCursor *string        `json:"nextCursor,omitempty"`
}
