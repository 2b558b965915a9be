package models

import (
	"time"

	"github.com/google/uuid"
)

// Member is the canonical identity row. Registration and authentication
// live in the identity service; the storefront only references members by
// id for ownership checks.
type Member struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
