package deliveries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ms-You/emmerce-api-sub000/pkg/db/models"
	"github.com/Ms-You/emmerce-api-sub000/pkg/enums"
)

// Repository defines persistence operations for delivery rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateBatch(ctx context.Context, rows []models.Delivery) error
	FindByOrderLineID(ctx context.Context, orderLineID uuid.UUID) (*models.Delivery, error)
	FindByOrderLineIDs(ctx context.Context, orderLineIDs []uuid.UUID) (map[uuid.UUID]models.Delivery, error)
	UpdateStatusByOrderLineID(ctx context.Context, orderLineID uuid.UUID, status enums.DeliveryStatus) (int64, error)
	UpdateStatusByOrderLineIDs(ctx context.Context, orderLineIDs []uuid.UUID, status enums.DeliveryStatus) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a deliveries repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateBatch(ctx context.Context, rows []models.Delivery) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) FindByOrderLineID(ctx context.Context, orderLineID uuid.UUID) (*models.Delivery, error) {
	var row models.Delivery
	err := r.db.WithContext(ctx).
		Where("order_line_id = ?", orderLineID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindByOrderLineIDs(ctx context.Context, orderLineIDs []uuid.UUID) (map[uuid.UUID]models.Delivery, error) {
	if len(orderLineIDs) == 0 {
		return map[uuid.UUID]models.Delivery{}, nil
	}

	var rows []models.Delivery
	err := r.db.WithContext(ctx).
		Where("order_line_id IN ?", orderLineIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byLine := make(map[uuid.UUID]models.Delivery, len(rows))
	for _, d := range rows {
		byLine[d.OrderLineID] = d
	}
	return byLine, nil
}

func (r *repository) UpdateStatusByOrderLineID(ctx context.Context, orderLineID uuid.UUID, status enums.DeliveryStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Delivery{}).
		Where("order_line_id = ?", orderLineID).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *repository) UpdateStatusByOrderLineIDs(ctx context.Context, orderLineIDs []uuid.UUID, status enums.DeliveryStatus) error {
	if len(orderLineIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Delivery{}).
		Where("order_line_id IN ?", orderLineIDs).
		Update("status", status).Error
}
