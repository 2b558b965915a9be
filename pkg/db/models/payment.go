package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ms-You/emmerce-api-sub000/pkg/enums"
)

// Payment is the local mirror of one gateway transaction, keyed by the
// provider-issued tid. Rows are created PENDING at the ready step,
// overwritten with the approval payload, and flipped to CANCEL on
// compensation. They are never deleted so the audit trail survives.
type Payment struct {
	TID               string              `gorm:"column:tid;type:text;primaryKey"`
	OrderID           uuid.UUID           `gorm:"column:order_id;type:uuid;not null;index"`
	CID               string              `gorm:"column:cid;not null"`
	PartnerOrderID    string              `gorm:"column:partner_order_id;not null"`
	PartnerUserID     string              `gorm:"column:partner_user_id;not null"`
	ItemName          string              `gorm:"column:item_name;not null"`
	Quantity          int                 `gorm:"column:quantity;not null"`
	TotalAmount       int                 `gorm:"column:total_amount;not null"`
	TaxFreeAmount     int                 `gorm:"column:tax_free_amount;not null;default:0"`
	VATAmount         int                 `gorm:"column:vat_amount;not null;default:0"`
	AID               *string             `gorm:"column:aid"`
	PaymentMethodType *string             `gorm:"column:payment_method_type"`
	CardIssuer        *string             `gorm:"column:card_issuer"`
	Status            enums.PaymentStatus `gorm:"column:status;type:text;not null;default:'PENDING'"`
	ReadyAt           time.Time           `gorm:"column:ready_at;not null"`
	ApprovedAt        *time.Time          `gorm:"column:approved_at"`
	CanceledAt        *time.Time          `gorm:"column:canceled_at"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
