package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ms-You/emmerce-api-sub000/pkg/enums"
)

// Order groups the order lines created from one checkout request.
//
// The recipient snapshot is captured here at checkout time and copied
// onto per-line Delivery rows once the payment is approved.
type Order struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MemberID         uuid.UUID         `gorm:"column:member_id;type:uuid;not null;index"`
	Status           enums.OrderStatus `gorm:"column:status;type:text;not null;default:'ING'"`
	RecipientName    string            `gorm:"column:recipient_name;not null"`
	RecipientContact string            `gorm:"column:recipient_contact;not null"`
	Address          string            `gorm:"column:address;not null"`
	Lines            []OrderLine       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
