package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ms-You/emmerce-api-sub000/pkg/db/models"
	"github.com/Ms-You/emmerce-api-sub000/pkg/enums"
)

// Repository defines persistence operations for payment rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	FindLatestByOrder(ctx context.Context, orderID uuid.UUID) (*models.Payment, error)
	CancelPendingByOrder(ctx context.Context, orderID uuid.UUID, canceledAt time.Time) error
	Update(ctx context.Context, tid string, updates map[string]any) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a payments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *repository) FindLatestByOrder(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	var row models.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("ready_at DESC").
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CancelPendingByOrder flips any still-PENDING payments for the order to
// CANCEL. An abandoned ready handshake leaves a PENDING row behind; the
// next ready call supersedes it so the order keeps at most one live
// payment.
func (r *repository) CancelPendingByOrder(ctx context.Context, orderID uuid.UUID, canceledAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("order_id = ? AND status = ?", orderID, enums.PaymentStatusPending).
		Updates(map[string]any{
			"status":      enums.PaymentStatusCancel,
			"canceled_at": canceledAt,
		}).Error
}

func (r *repository) Update(ctx context.Context, tid string, updates map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("tid = ?", tid).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
