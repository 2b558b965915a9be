package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ms-You/emmerce-api-sub000/pkg/db/models"
)

// Repository defines the review reads the storefront needs. Review CRUD
// itself lives in the review service.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CountByMemberAndOrderLine(ctx context.Context, memberID, orderLineID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a reviews repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CountByMemberAndOrderLine(ctx context.Context, memberID, orderLineID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("member_id = ? AND order_line_id = ?", memberID, orderLineID).
		Count(&count).Error
	return count, err
}
