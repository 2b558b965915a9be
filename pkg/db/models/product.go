package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is the catalog listing. Catalog CRUD is owned by the catalog
// service; the order saga only reads price/name and mutates StockQuantity
// through the conditional decrement in internal/products.
type Product struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	Description   *string   `gorm:"column:description"`
	Price         int       `gorm:"column:price;not null"`
	DiscountPrice int       `gorm:"column:discount_price;not null"`
	StockQuantity int       `gorm:"column:stock_quantity;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
