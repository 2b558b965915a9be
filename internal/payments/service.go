// Package payments coordinates the payment leg of the order saga: the
// provider's ready/approve handshake, the local Payment mirror, and the
// cancel compensation that flips statuses back.
package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ms-You/emmerce-api-sub000/internal/deliveries"
	"github.com/Ms-You/emmerce-api-sub000/internal/orders"
	"github.com/Ms-You/emmerce-api-sub000/internal/products"
	"github.com/Ms-You/emmerce-api-sub000/pkg/db/models"
	"github.com/Ms-You/emmerce-api-sub000/pkg/enums"
	pkgerrors "github.com/Ms-You/emmerce-api-sub000/pkg/errors"
	"github.com/Ms-You/emmerce-api-sub000/pkg/kakaopay"
)

// Gateway is the provider surface the saga needs. *kakaopay.Client
// satisfies it; tests substitute a fake.
type Gateway interface {
	CID() string
	Ready(ctx context.Context, req kakaopay.ReadyRequest) (*kakaopay.ReadyResponse, error)
	Approve(ctx context.Context, req kakaopay.ApproveRequest) (*kakaopay.ApproveResponse, error)
	Order(ctx context.Context, req kakaopay.OrderRequest) (*kakaopay.OrderResponse, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the payment saga operations.
type Service interface {
	Ready(ctx context.Context, orderID, memberID uuid.UUID) (*ReadyResult, error)
	Approve(ctx context.Context, orderID, memberID uuid.UUID, pgToken string) (*ApproveResult, error)
	Cancel(ctx context.Context, orderID, memberID uuid.UUID) error
	Info(ctx context.Context, orderID, memberID uuid.UUID) (*PaymentInfo, error)
}

type service struct {
	repo       Repository
	orders     orders.Repository
	products   products.Repository
	deliveries deliveries.Repository
	gateway    Gateway
	tx         txRunner
	now        func() time.Time
}

// NewService builds a payment service with the required dependencies.
func NewService(repo Repository, ordersRepo orders.Repository, productsRepo products.Repository, deliveriesRepo deliveries.Repository, gateway Gateway, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if deliveriesRepo == nil {
		return nil, fmt.Errorf("deliveries repository required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:       repo,
		orders:     ordersRepo,
		products:   productsRepo,
		deliveries: deliveriesRepo,
		gateway:    gateway,
		tx:         tx,
		now:        time.Now,
	}, nil
}

// Ready opens a provider transaction for the order and mirrors it as a
// PENDING payment. A provider failure leaves no local writes behind.
func (s *service) Ready(ctx context.Context, orderID, memberID uuid.UUID) (*ReadyResult, error) {
	order, err := s.loadOwnedOrder(ctx, orderID, memberID)
	if err != nil {
		return nil, err
	}
	switch order.Status {
	case enums.OrderStatusCancel:
		return nil, pkgerrors.New(pkgerrors.CodeOrderCanceled, "order was canceled")
	case enums.OrderStatusComplete:
		return nil, pkgerrors.New(pkgerrors.CodePaymentAlreadyApproved, "order is already paid")
	}
	if len(order.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order has no lines")
	}

	totalAmount, totalQty := 0, 0
	for _, line := range order.Lines {
		totalAmount += line.TotalPrice
		totalQty += line.Quantity
	}

	itemName := "order"
	if product, err := s.products.FindByID(ctx, order.Lines[0].ProductID); err == nil {
		itemName = product.Name
	}

	resp, err := s.gateway.Ready(ctx, kakaopay.ReadyRequest{
		PartnerOrderID: order.ID.String(),
		PartnerUserID:  memberID.String(),
		ItemName:       itemName,
		Quantity:       totalQty,
		TotalAmount:    totalAmount,
		TaxFreeAmount:  0,
	})
	if err != nil {
		return nil, err
	}

	readyAt := resp.CreatedAt.Time
	if readyAt.IsZero() {
		readyAt = s.now().UTC()
	}
	payment := &models.Payment{
		TID:            resp.TID,
		OrderID:        order.ID,
		CID:            s.gateway.CID(),
		PartnerOrderID: order.ID.String(),
		PartnerUserID:  memberID.String(),
		ItemName:       itemName,
		Quantity:       totalQty,
		TotalAmount:    totalAmount,
		TaxFreeAmount:  0,
		Status:         enums.PaymentStatusPending,
		ReadyAt:        readyAt,
	}
	// A buyer who abandoned the provider page re-initiates ready; the
	// earlier PENDING row is superseded so at most one non-canceled
	// payment exists per order.
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CancelPendingByOrder(ctx, order.ID, s.now().UTC()); err != nil {
			return err
		}
		_, err := repo.Create(ctx, payment)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &ReadyResult{
		TID:                   resp.TID,
		NextRedirectPCURL:     resp.NextRedirectPCURL,
		NextRedirectMobileURL: resp.NextRedirectMobileURL,
		CreatedAt:             readyAt,
	}, nil
}

// Approve finalizes the pending payment, completes the order, and
// creates one READY delivery per line, all in one transaction.
func (s *service) Approve(ctx context.Context, orderID, memberID uuid.UUID, pgToken string) (*ApproveResult, error) {
	order, err := s.loadOwnedOrder(ctx, orderID, memberID)
	if err != nil {
		return nil, err
	}
	if order.Status == enums.OrderStatusCancel {
		return nil, pkgerrors.New(pkgerrors.CodeOrderAlreadyCanceled, "order was already canceled")
	}

	payment, err := s.repo.FindLatestByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodePaymentNotFound, "no payment for order")
		}
		return nil, err
	}
	switch payment.Status {
	case enums.PaymentStatusComplete:
		return nil, pkgerrors.New(pkgerrors.CodePaymentAlreadyApproved, "payment already approved")
	case enums.PaymentStatusCancel:
		return nil, pkgerrors.New(pkgerrors.CodeOrderAlreadyCanceled, "payment was canceled")
	}

	resp, err := s.gateway.Approve(ctx, kakaopay.ApproveRequest{
		TID:            payment.TID,
		PartnerOrderID: payment.PartnerOrderID,
		PartnerUserID:  payment.PartnerUserID,
		PGToken:        pgToken,
	})
	if err != nil {
		return nil, err
	}

	approvedAt := resp.ApprovedAt.Time
	if approvedAt.IsZero() {
		approvedAt = s.now().UTC()
	}
	var cardIssuer *string
	if resp.CardInfo != nil && resp.CardInfo.IssuerCorp != "" {
		issuer := resp.CardInfo.IssuerCorp
		cardIssuer = &issuer
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		updates := map[string]any{
			"aid":                 resp.AID,
			"payment_method_type": resp.PaymentMethodType,
			"vat_amount":          resp.Amount.VAT,
			"tax_free_amount":     resp.Amount.TaxFree,
			"status":              enums.PaymentStatusComplete,
			"approved_at":         approvedAt,
		}
		if cardIssuer != nil {
			updates["card_issuer"] = *cardIssuer
		}
		if err := s.repo.WithTx(tx).Update(ctx, payment.TID, updates); err != nil {
			return err
		}

		if err := s.orders.WithTx(tx).UpdateStatus(ctx, order.ID, enums.OrderStatusComplete); err != nil {
			return err
		}

		rows := make([]models.Delivery, 0, len(order.Lines))
		for _, line := range order.Lines {
			rows = append(rows, models.Delivery{
				ID:               uuid.New(),
				OrderLineID:      line.ID,
				RecipientName:    order.RecipientName,
				RecipientContact: order.RecipientContact,
				Address:          order.Address,
				Status:           enums.DeliveryStatusReady,
			})
		}
		return s.deliveries.WithTx(tx).CreateBatch(ctx, rows)
	})
	if err != nil {
		return nil, err
	}

	return &ApproveResult{
		OrderID:           order.ID,
		TID:               payment.TID,
		AID:               resp.AID,
		PaymentMethodType: resp.PaymentMethodType,
		TotalAmount:       resp.Amount.Total,
		TaxFreeAmount:     resp.Amount.TaxFree,
		VATAmount:         resp.Amount.VAT,
		CardIssuer:        cardIssuer,
		ApprovedAt:        approvedAt,
	}, nil
}

// Cancel runs the compensation: order, deliveries, and payment flip to
// CANCEL in one transaction. Deliveries that never existed (the order
// was not approved yet) are skipped. Stock is not restored.
func (s *service) Cancel(ctx context.Context, orderID, memberID uuid.UUID) error {
	order, err := s.loadOwnedOrder(ctx, orderID, memberID)
	if err != nil {
		return err
	}
	if order.Status == enums.OrderStatusCancel {
		return pkgerrors.New(pkgerrors.CodeOrderAlreadyCanceled, "order was already canceled")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.orders.WithTx(tx).UpdateStatus(ctx, order.ID, enums.OrderStatusCancel); err != nil {
			return err
		}

		lineIDs := make([]uuid.UUID, 0, len(order.Lines))
		for _, line := range order.Lines {
			lineIDs = append(lineIDs, line.ID)
		}
		if err := s.deliveries.WithTx(tx).UpdateStatusByOrderLineIDs(ctx, lineIDs, enums.DeliveryStatusCancel); err != nil {
			return err
		}

		payment, err := s.repo.WithTx(tx).FindLatestByOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if payment.Status == enums.PaymentStatusCancel {
			return nil
		}
		return s.repo.WithTx(tx).Update(ctx, payment.TID, map[string]any{
			"status":      enums.PaymentStatusCancel,
			"canceled_at": s.now().UTC(),
		})
	})
}

// Info reads the transaction back through the provider and returns its
// payload verbatim.
func (s *service) Info(ctx context.Context, orderID, memberID uuid.UUID) (*PaymentInfo, error) {
	if _, err := s.loadOwnedOrder(ctx, orderID, memberID); err != nil {
		return nil, err
	}

	payment, err := s.repo.FindLatestByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodePaymentNotFound, "no payment for order")
		}
		return nil, err
	}

	provider, err := s.gateway.Order(ctx, kakaopay.OrderRequest{TID: payment.TID})
	if err != nil {
		return nil, err
	}

	return &PaymentInfo{
		OrderID:  orderID,
		TID:      payment.TID,
		Provider: provider,
	}, nil
}

func (s *service) loadOwnedOrder(ctx context.Context, orderID, memberID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeOrderNotFound, "order not found")
		}
		return nil, err
	}
	if order.MemberID != memberID {
		return nil, pkgerrors.New(pkgerrors.CodeOrderMemberNotMatched, "order belongs to another member")
	}
	return order, nil
}
