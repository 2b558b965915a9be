package models

import (
	"time"

	"github.com/google/uuid"
)

// Review CRUD is owned by the review service. The storefront only counts
// rows per member/order-line for the reviewWritten flag and the
// already-wrote eligibility gate.
type Review struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MemberID    uuid.UUID `gorm:"column:member_id;type:uuid;not null;index"`
	OrderLineID uuid.UUID `gorm:"column:order_line_id;type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Rating      int       `gorm:"column:rating;not null"`
	Content     string    `gorm:"column:content;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
