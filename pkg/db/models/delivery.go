package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ms-You/emmerce-api-sub000/pkg/enums"
)

// Delivery is the shipment record for exactly one order line. Lines ship
// independently, so deliveries hang off the line rather than the order.
type Delivery struct {
	ID               uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderLineID      uuid.UUID            `gorm:"column:order_line_id;type:uuid;not null;uniqueIndex"`
	RecipientName    string               `gorm:"column:recipient_name;not null"`
	RecipientContact string               `gorm:"column:recipient_contact;not null"`
	Address          string               `gorm:"column:address;not null"`
	Status           enums.DeliveryStatus `gorm:"column:status;type:text;not null;default:'READY'"`
	CreatedAt        time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
