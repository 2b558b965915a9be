package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderLine is one product/quantity pair within an order. Lines are
// created atomically with their order and never mutated afterwards.
type OrderLine struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Quantity   int       `gorm:"column:quantity;not null"`
	TotalPrice int       `gorm:"column:total_price;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
