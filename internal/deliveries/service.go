// Package deliveries tracks per-line shipment rows. Rows are created by
// the payment approve step and advance through courier updates.
package deliveries

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Ms-You/emmerce-api-sub000/pkg/enums"
	pkgerrors "github.com/Ms-You/emmerce-api-sub000/pkg/errors"
)

// Service defines delivery tracking operations.
type Service interface {
	ChangeStatus(ctx context.Context, orderLineID uuid.UUID, status enums.DeliveryStatus) error
	GetByOrderLine(ctx context.Context, orderLineID uuid.UUID) (*DeliveryInfo, error)
}

type service struct {
	repo Repository
}

// NewService builds a delivery service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("deliveries repository required")
	}
	return &service{repo: repo}, nil
}

// ChangeStatus overwrites the delivery status for the given order line.
// Any valid status may be set regardless of the current one; the courier
// integration is trusted to send sane transitions.
func (s *service) ChangeStatus(ctx context.Context, orderLineID uuid.UUID, status enums.DeliveryStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery status")
	}

	affected, err := s.repo.UpdateStatusByOrderLineID(ctx, orderLineID, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeDeliveryNotFound, "no delivery for order line")
	}
	return nil
}

func (s *service) GetByOrderLine(ctx context.Context, orderLineID uuid.UUID) (*DeliveryInfo, error) {
	row, err := s.repo.FindByOrderLineID(ctx, orderLineID)
	if err != nil {
		if isNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeDeliveryNotFound, "no delivery for order line")
		}
		return nil, err
	}
	return &DeliveryInfo{
		ID:               row.ID,
		OrderLineID:      row.OrderLineID,
		RecipientName:    row.RecipientName,
		RecipientContact: row.RecipientContact,
		Address:          row.Address,
		Status:           row.Status,
	}, nil
}
