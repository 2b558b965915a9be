// Package orders implements checkout and the member-facing order reads.
//
// Start is the first saga step: it opens an ING order and takes stock in
// one transaction. Payment ready/approve/cancel continue the saga in
// internal/payments.
package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ms-You/emmerce-api-sub000/internal/deliveries"
	"github.com/Ms-You/emmerce-api-sub000/internal/products"
	"github.com/Ms-You/emmerce-api-sub000/pkg/db/models"
	"github.com/Ms-You/emmerce-api-sub000/pkg/enums"
	pkgerrors "github.com/Ms-You/emmerce-api-sub000/pkg/errors"
	"github.com/Ms-You/emmerce-api-sub000/pkg/pagination"
)

// Service defines checkout and order query operations.
type Service interface {
	Start(ctx context.Context, input StartOrderInput) (uuid.UUID, error)
	GetOrderInfo(ctx context.Context, orderID, memberID uuid.UUID) (*OrderInfo, error)
	ListOrders(ctx context.Context, memberID uuid.UUID, params pagination.Params) (*OrderList, error)
}

type service struct {
	repo       Repository
	tx         txRunner
	products   products.Repository
	deliveries deliveries.Repository
	reviews    reviewCounter
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner, productsRepo products.Repository, deliveriesRepo deliveries.Repository, reviews reviewCounter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if deliveriesRepo == nil {
		return nil, fmt.Errorf("deliveries repository required")
	}
	if reviews == nil {
		return nil, fmt.Errorf("review counter required")
	}
	return &service{
		repo:       repo,
		tx:         tx,
		products:   productsRepo,
		deliveries: deliveriesRepo,
		reviews:    reviews,
	}, nil
}

// Start validates stock for every requested line, then creates the order,
// its lines, and the stock decrements in a single transaction. Any
// insufficient line aborts the whole checkout with nothing persisted.
func (s *service) Start(ctx context.Context, input StartOrderInput) (uuid.UUID, error) {
	if len(input.Lines) == 0 {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one line")
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
		}
	}

	var orderID uuid.UUID
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		prodRepo := s.products.WithTx(tx)

		ids := make([]uuid.UUID, 0, len(input.Lines))
		for _, line := range input.Lines {
			ids = append(ids, line.ProductID)
		}
		byID, err := prodRepo.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}

		// Full validation pass before the first write.
		for _, line := range input.Lines {
			product, ok := byID[line.ProductID]
			if !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			if product.StockQuantity < line.Quantity {
				return pkgerrors.New(pkgerrors.CodeStockInsufficient, "not enough stock remaining")
			}
		}

		order := &models.Order{
			ID:               uuid.New(),
			MemberID:         input.MemberID,
			Status:           enums.OrderStatusIng,
			RecipientName:    input.DeliveryInfo.RecipientName,
			RecipientContact: input.DeliveryInfo.RecipientContact,
			Address:          input.DeliveryInfo.Address,
		}
		for _, line := range input.Lines {
			product := byID[line.ProductID]
			order.Lines = append(order.Lines, models.OrderLine{
				ID:         uuid.New(),
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				TotalPrice: product.DiscountPrice * line.Quantity,
			})
		}
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return err
		}

		// The conditional decrement re-checks remaining stock, closing
		// the window between the validation pass and this write.
		for _, line := range input.Lines {
			if err := prodRepo.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return orderID, nil
}

// GetOrderInfo returns the full read model of a completed order.
func (s *service) GetOrderInfo(ctx context.Context, orderID, memberID uuid.UUID) (*OrderInfo, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeOrderNotFound, "order not found")
		}
		return nil, err
	}
	if order.MemberID != memberID {
		return nil, pkgerrors.New(pkgerrors.CodeOrderMemberNotMatched, "order belongs to another member")
	}
	if order.Status != enums.OrderStatusComplete {
		return nil, pkgerrors.New(pkgerrors.CodeOrderNotCompleted, "order is not completed")
	}

	lines, err := s.assembleLines(ctx, memberID, order.Lines, true)
	if err != nil {
		return nil, err
	}

	return &OrderInfo{
		OrderID:          order.ID,
		Status:           order.Status,
		RecipientName:    order.RecipientName,
		RecipientContact: order.RecipientContact,
		Address:          order.Address,
		Lines:            lines,
		CreatedAt:        order.CreatedAt,
	}, nil
}

// ListOrders returns the member's orders newest first. Lines of orders
// that never reached payment approval report no delivery status.
func (s *service) ListOrders(ctx context.Context, memberID uuid.UUID, params pagination.Params) (*OrderList, error) {
	rows, hasMore, err := s.repo.ListByMember(ctx, memberID, params)
	if err != nil {
		return nil, err
	}

	items := make([]OrderSummary, 0, len(rows))
	for _, order := range rows {
		lines, err := s.assembleLines(ctx, memberID, order.Lines, false)
		if err != nil {
			return nil, err
		}
		total := 0
		for _, line := range lines {
			total += line.TotalPrice
		}
		items = append(items, OrderSummary{
			OrderID:    order.ID,
			Status:     order.Status,
			LineCount:  len(lines),
			TotalPrice: total,
			Lines:      lines,
			CreatedAt:  order.CreatedAt,
		})
	}

	list := &OrderList{Items: items}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		list.NextCursor = &cursor
	}
	return list, nil
}

// assembleLines joins product names, delivery statuses, and review flags
// onto raw order lines. When requireDelivery is set a missing delivery
// row is an error; list views tolerate it instead.
func (s *service) assembleLines(ctx context.Context, memberID uuid.UUID, raw []models.OrderLine, requireDelivery bool) ([]OrderLineInfo, error) {
	if len(raw) == 0 {
		return []OrderLineInfo{}, nil
	}

	productIDs := make([]uuid.UUID, 0, len(raw))
	lineIDs := make([]uuid.UUID, 0, len(raw))
	for _, line := range raw {
		productIDs = append(productIDs, line.ProductID)
		lineIDs = append(lineIDs, line.ID)
	}

	productsByID, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	deliveriesByLine, err := s.deliveries.FindByOrderLineIDs(ctx, lineIDs)
	if err != nil {
		return nil, err
	}

	infos := make([]OrderLineInfo, 0, len(raw))
	for _, line := range raw {
		info := OrderLineInfo{
			OrderLineID: line.ID,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			TotalPrice:  line.TotalPrice,
		}
		if product, ok := productsByID[line.ProductID]; ok {
			info.ProductName = product.Name
		}

		if delivery, ok := deliveriesByLine[line.ID]; ok {
			status := delivery.Status
			info.DeliveryStatus = &status
		} else if requireDelivery {
			return nil, pkgerrors.New(pkgerrors.CodeDeliveryNotFoundByLine, "no delivery for order line")
		}

		count, err := s.reviews.CountByMemberAndOrderLine(ctx, memberID, line.ID)
		if err != nil {
			return nil, err
		}
		info.ReviewWritten = count > 0

		infos = append(infos, info)
	}
	return infos, nil
}
