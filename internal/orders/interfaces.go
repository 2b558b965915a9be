package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ms-You/emmerce-api-sub000/pkg/db/models"
	"github.com/Ms-You/emmerce-api-sub000/pkg/enums"
	"github.com/Ms-You/emmerce-api-sub000/pkg/pagination"
)

// Repository defines persistence operations for the order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindOrderLine(ctx context.Context, lineID uuid.UUID) (*models.OrderLine, error)
	ListByMember(ctx context.Context, memberID uuid.UUID, params pagination.Params) ([]models.Order, bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// reviewCounter reports how many reviews a member wrote for a line.
type reviewCounter interface {
	CountByMemberAndOrderLine(ctx context.Context, memberID, orderLineID uuid.UUID) (int64, error)
}
