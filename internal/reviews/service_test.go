package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Ms-You/emmerce-api-sub000/internal/deliveries"
	"github.com/Ms-You/emmerce-api-sub000/internal/orders"
	"github.com/Ms-You/emmerce-api-sub000/pkg/db/models"
	"github.com/Ms-You/emmerce-api-sub000/pkg/enums"
	pkgerrors "github.com/Ms-You/emmerce-api-sub000/pkg/errors"
)

func setupReviewsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  member_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'ING',
  recipient_name TEXT NOT NULL,
  recipient_contact TEXT NOT NULL,
  address TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  total_price INTEGER NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS deliveries (
  id TEXT PRIMARY KEY,
  order_line_id TEXT NOT NULL UNIQUE,
  recipient_name TEXT NOT NULL,
  recipient_contact TEXT NOT NULL,
  address TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'READY',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS reviews (
  id TEXT PRIMARY KEY,
  member_id TEXT NOT NULL,
  order_line_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  rating INTEGER NOT NULL,
  content TEXT NOT NULL,
  created_at DATETIME
);`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func newReviewService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), orders.NewRepository(db), deliveries.NewRepository(db))
	require.NoError(t, err)
	return svc
}

type reviewFixture struct {
	memberID uuid.UUID
	lineID   uuid.UUID
}

func seedReviewFixture(t *testing.T, db *gorm.DB, orderStatus enums.OrderStatus, deliveryStatus *enums.DeliveryStatus) reviewFixture {
	t.Helper()

	memberID := uuid.New()
	order := models.Order{
		ID:               uuid.New(),
		MemberID:         memberID,
		Status:           orderStatus,
		RecipientName:    "Hana Kim",
		RecipientContact: "010-1234-5678",
		Address:          "12 Teheran-ro, Seoul",
		Lines: []models.OrderLine{{
			ID:         uuid.New(),
			ProductID:  uuid.New(),
			Quantity:   1,
			TotalPrice: 15000,
		}},
	}
	require.NoError(t, db.Create(&order).Error)

	if deliveryStatus != nil {
		d := models.Delivery{
			ID:               uuid.New(),
			OrderLineID:      order.Lines[0].ID,
			RecipientName:    order.RecipientName,
			RecipientContact: order.RecipientContact,
			Address:          order.Address,
			Status:           *deliveryStatus,
		}
		require.NoError(t, db.Create(&d).Error)
	}

	return reviewFixture{memberID: memberID, lineID: order.Lines[0].ID}
}

func deliveryStatusPtr(s enums.DeliveryStatus) *enums.DeliveryStatus {
	return &s
}

func TestCheckWritableEligible(t *testing.T) {
	db := setupReviewsTestDB(t)
	svc := newReviewService(t, db)

	f := seedReviewFixture(t, db, enums.OrderStatusComplete, deliveryStatusPtr(enums.DeliveryStatusComplete))
	assert.NoError(t, svc.CheckWritable(context.Background(), f.memberID, f.lineID))
}

func TestCheckWritableUnknownLine(t *testing.T) {
	db := setupReviewsTestDB(t)
	svc := newReviewService(t, db)

	err := svc.CheckWritable(context.Background(), uuid.New(), uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeOrderNotFound))
}

func TestCheckWritableDenials(t *testing.T) {
	tests := []struct {
		name           string
		orderStatus    enums.OrderStatus
		deliveryStatus *enums.DeliveryStatus
		otherMember    bool
		wantCode       pkgerrors.Code
	}{
		{
			name:           "foreign member",
			orderStatus:    enums.OrderStatusComplete,
			deliveryStatus: deliveryStatusPtr(enums.DeliveryStatusComplete),
			otherMember:    true,
			wantCode:       pkgerrors.CodeOrderMemberNotMatched,
		},
		{
			name:           "canceled order",
			orderStatus:    enums.OrderStatusCancel,
			deliveryStatus: deliveryStatusPtr(enums.DeliveryStatusCancel),
			wantCode:       pkgerrors.CodeOrderCanceled,
		},
		{
			name:        "order still in progress",
			orderStatus: enums.OrderStatusIng,
			wantCode:    pkgerrors.CodeAfterOrderComplete,
		},
		{
			name:        "missing delivery",
			orderStatus: enums.OrderStatusComplete,
			wantCode:    pkgerrors.CodeDeliveryNotFoundByLine,
		},
		{
			name:           "canceled delivery",
			orderStatus:    enums.OrderStatusComplete,
			deliveryStatus: deliveryStatusPtr(enums.DeliveryStatusCancel),
			wantCode:       pkgerrors.CodeDeliveryCanceled,
		},
		{
			name:           "delivery in flight",
			orderStatus:    enums.OrderStatusComplete,
			deliveryStatus: deliveryStatusPtr(enums.DeliveryStatusIng),
			wantCode:       pkgerrors.CodeAfterDeliveryComplete,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := setupReviewsTestDB(t)
			svc := newReviewService(t, db)

			f := seedReviewFixture(t, db, tc.orderStatus, tc.deliveryStatus)
			memberID := f.memberID
			if tc.otherMember {
				memberID = uuid.New()
			}

			err := svc.CheckWritable(context.Background(), memberID, f.lineID)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsCode(err, tc.wantCode), "got %v", err)
		})
	}
}

func TestCheckWritableAlreadyWrote(t *testing.T) {
	db := setupReviewsTestDB(t)
	svc := newReviewService(t, db)
	ctx := context.Background()

	f := seedReviewFixture(t, db, enums.OrderStatusComplete, deliveryStatusPtr(enums.DeliveryStatusComplete))

	review := models.Review{
		ID:          uuid.New(),
		MemberID:    f.memberID,
		OrderLineID: f.lineID,
		ProductID:   uuid.New(),
		Rating:      4,
		Content:     "good",
	}
	require.NoError(t, db.Create(&review).Error)

	err := svc.CheckWritable(ctx, f.memberID, f.lineID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeAlreadyWrote))
}
