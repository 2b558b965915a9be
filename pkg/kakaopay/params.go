package kakaopay

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp handles the provider's zone-less timestamps
// ("2016-11-15T21:18:22") alongside plain RFC3339.
type Timestamp struct {
	time.Time
}

const providerTimeLayout = "2006-01-02T15:04:05"

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(providerTimeLayout, raw)
	if err != nil {
		return fmt.Errorf("invalid provider timestamp %q: %w", raw, err)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + t.Time.Format(providerTimeLayout) + `"`), nil
}

// Amount mirrors the provider's amount breakdown.
type Amount struct {
	Total    int `json:"total"`
	TaxFree  int `json:"tax_free"`
	VAT      int `json:"vat"`
	Point    int `json:"point"`
	Discount int `json:"discount"`
}

// CardInfo echoes card metadata on card payments.
type CardInfo struct {
	PurchaseCorp  string `json:"purchase_corp"`
	IssuerCorp    string `json:"issuer_corp"`
	Bin           string `json:"bin"`
	CardType      string `json:"card_type"`
	InstallMonth  string `json:"install_month"`
	ApprovedID    string `json:"approved_id"`
	CardMID       string `json:"card_mid"`
	InterestFreeInstall string `json:"interest_free_install"`
}

// ReadyRequest carries the computed order summary to the ready endpoint.
type ReadyRequest struct {
	PartnerOrderID string
	PartnerUserID  string
	ItemName       string
	Quantity       int
	TotalAmount    int
	TaxFreeAmount  int
}

// ReadyResponse is the provider's answer to a ready call.
type ReadyResponse struct {
	TID                   string    `json:"tid"`
	NextRedirectPCURL     string    `json:"next_redirect_pc_url"`
	NextRedirectMobileURL string    `json:"next_redirect_mobile_url"`
	CreatedAt             Timestamp `json:"created_at"`
}

// ApproveRequest finalizes a transaction with the buyer's callback token.
type ApproveRequest struct {
	TID            string
	PartnerOrderID string
	PartnerUserID  string
	PGToken        string
}

// ApproveResponse mirrors the full approval payload.
type ApproveResponse struct {
	AID               string    `json:"aid"`
	TID               string    `json:"tid"`
	CID               string    `json:"cid"`
	PartnerOrderID    string    `json:"partner_order_id"`
	PartnerUserID     string    `json:"partner_user_id"`
	PaymentMethodType string    `json:"payment_method_type"`
	Amount            Amount    `json:"amount"`
	CardInfo          *CardInfo `json:"card_info,omitempty"`
	ItemName          string    `json:"item_name"`
	Quantity          int       `json:"quantity"`
	CreatedAt         Timestamp `json:"created_at"`
	ApprovedAt        Timestamp `json:"approved_at"`
}

// PaymentActionDetail is one audit entry in the provider's order lookup.
type PaymentActionDetail struct {
	AID             string    `json:"aid"`
	ApprovedAt      Timestamp `json:"approved_at"`
	Amount          int       `json:"amount"`
	PointAmount     int       `json:"point_amount"`
	DiscountAmount  int       `json:"discount_amount"`
	PaymentActionType string  `json:"payment_action_type"`
	PayloadText     string    `json:"payload"`
}

// OrderRequest identifies the transaction to look up.
type OrderRequest struct {
	TID string
}

// OrderResponse is the provider's order-lookup payload, returned to
// callers verbatim.
type OrderResponse struct {
	TID                   string                `json:"tid"`
	CID                   string                `json:"cid"`
	Status                string                `json:"status"`
	PartnerOrderID        string                `json:"partner_order_id"`
	PartnerUserID         string                `json:"partner_user_id"`
	PaymentMethodType     string                `json:"payment_method_type"`
	Amount                Amount                `json:"amount"`
	CanceledAmount        *Amount               `json:"canceled_amount,omitempty"`
	CancelAvailableAmount *Amount               `json:"cancel_available_amount,omitempty"`
	ItemName              string                `json:"item_name"`
	Quantity              int                   `json:"quantity"`
	CreatedAt             Timestamp             `json:"created_at"`
	ApprovedAt            Timestamp             `json:"approved_at"`
	CanceledAt            *Timestamp            `json:"canceled_at,omitempty"`
	PaymentActionDetails  []PaymentActionDetail `json:"payment_action_details,omitempty"`
}
