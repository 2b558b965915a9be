// Package reviews gates review creation. The review service calls
// CheckWritable before accepting a submission; every denial carries a
// distinct code so the client can explain itself.
package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ms-You/emmerce-api-sub000/pkg/db/models"
	"github.com/Ms-You/emmerce-api-sub000/pkg/enums"
	pkgerrors "github.com/Ms-You/emmerce-api-sub000/pkg/errors"
)

// orderReader loads order rows for the eligibility checks.
type orderReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindOrderLine(ctx context.Context, lineID uuid.UUID) (*models.OrderLine, error)
}

// deliveryReader loads the delivery row of one order line.
type deliveryReader interface {
	FindByOrderLineID(ctx context.Context, orderLineID uuid.UUID) (*models.Delivery, error)
}

// Service defines review eligibility operations.
type Service interface {
	CheckWritable(ctx context.Context, memberID, orderLineID uuid.UUID) error
}

type service struct {
	repo       Repository
	orders     orderReader
	deliveries deliveryReader
}

// NewService builds a review eligibility service.
func NewService(repo Repository, orders orderReader, deliveries deliveryReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reviews repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order reader required")
	}
	if deliveries == nil {
		return nil, fmt.Errorf("delivery reader required")
	}
	return &service{repo: repo, orders: orders, deliveries: deliveries}, nil
}

// CheckWritable returns nil when the member may review the order line.
// Checks run owner → order state → delivery state → duplicate, so the
// caller always gets the most fundamental failure first.
func (s *service) CheckWritable(ctx context.Context, memberID, orderLineID uuid.UUID) error {
	line, err := s.orders.FindOrderLine(ctx, orderLineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeOrderNotFound, "order line not found")
		}
		return err
	}

	order, err := s.orders.FindByID(ctx, line.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeOrderNotFound, "order not found")
		}
		return err
	}
	if order.MemberID != memberID {
		return pkgerrors.New(pkgerrors.CodeOrderMemberNotMatched, "order belongs to another member")
	}
	if order.Status == enums.OrderStatusCancel {
		return pkgerrors.New(pkgerrors.CodeOrderCanceled, "order was canceled")
	}
	if order.Status != enums.OrderStatusComplete {
		return pkgerrors.New(pkgerrors.CodeAfterOrderComplete, "reviews open after the order completes")
	}

	delivery, err := s.deliveries.FindByOrderLineID(ctx, orderLineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeDeliveryNotFoundByLine, "no delivery for order line")
		}
		return err
	}
	if delivery.Status == enums.DeliveryStatusCancel {
		return pkgerrors.New(pkgerrors.CodeDeliveryCanceled, "delivery was canceled")
	}
	if delivery.Status != enums.DeliveryStatusComplete {
		return pkgerrors.New(pkgerrors.CodeAfterDeliveryComplete, "reviews open after the delivery completes")
	}

	count, err := s.repo.CountByMemberAndOrderLine(ctx, memberID, orderLineID)
	if err != nil {
		return err
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeAlreadyWrote, "review already written for this order line")
	}
	return nil
}
