package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Ms-You/emmerce-api-sub000/api/middleware"
	ordersvc "github.com/Ms-You/emmerce-api-sub000/internal/orders"
	"github.com/Ms-You/emmerce-api-sub000/pkg/enums"
	pkgerrors "github.com/Ms-You/emmerce-api-sub000/pkg/errors"
	"github.com/Ms-You/emmerce-api-sub000/pkg/pagination"
)

type stubOrderService struct {
	startID   uuid.UUID
	startErr  error
	lastInput ordersvc.StartOrderInput

	info    *ordersvc.OrderInfo
	infoErr error

	list    *ordersvc.OrderList
	listErr error
}

func (s *stubOrderService) Start(ctx context.Context, input ordersvc.StartOrderInput) (uuid.UUID, error) {
	s.lastInput = input
	return s.startID, s.startErr
}

func (s *stubOrderService) GetOrderInfo(ctx context.Context, orderID, memberID uuid.UUID) (*ordersvc.OrderInfo, error) {
	return s.info, s.infoErr
}

func (s *stubOrderService) ListOrders(ctx context.Context, memberID uuid.UUID, params pagination.Params) (*ordersvc.OrderList, error) {
	return s.list, s.listErr
}

func authedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithMemberID(req.Context(), uuid.New().String()))
}

func TestStartOrderCreated(t *testing.T) {
	svc := &stubOrderService{startID: uuid.New()}
	handler := StartOrder(svc, nil)

	productID := uuid.New()
	body := `{"lines":[{"productId":"` + productID.String() + `","quantity":2}],` +
		`"recipientName":"Kim","recipientContact":"010-1234-5678","address":"Seoul"}`
	req := authedRequest(http.MethodPost, "/api/v1/orders", body)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			OrderID uuid.UUID `json:"orderId"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderID != svc.startID {
		t.Fatalf("unexpected order id: %s", envelope.Data.OrderID)
	}
	if len(svc.lastInput.Lines) != 1 || svc.lastInput.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected input lines: %+v", svc.lastInput.Lines)
	}
}

func TestStartOrderRejectsEmptyLines(t *testing.T) {
	svc := &stubOrderService{}
	handler := StartOrder(svc, nil)

	body := `{"lines":[],"recipientName":"Kim","recipientContact":"010-1234-5678","address":"Seoul"}`
	req := authedRequest(http.MethodPost, "/api/v1/orders", body)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestStartOrderStockInsufficient(t *testing.T) {
	svc := &stubOrderService{startErr: pkgerrors.New(pkgerrors.CodeStockInsufficient, "stock insufficient")}
	handler := StartOrder(svc, nil)

	body := `{"lines":[{"productId":"` + uuid.NewString() + `","quantity":5}],` +
		`"recipientName":"Kim","recipientContact":"010-1234-5678","address":"Seoul"}`
	req := authedRequest(http.MethodPost, "/api/v1/orders", body)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeStockInsufficient) {
		t.Fatalf("unexpected error code: %s", envelope.Error.Code)
	}
}

func TestStartOrderMissingMemberContext(t *testing.T) {
	handler := StartOrder(&stubOrderService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestGetOrderInfoSuccess(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrderService{info: &ordersvc.OrderInfo{
		OrderID: orderID,
		Status:  enums.OrderStatusComplete,
	}}

	router := chi.NewRouter()
	router.Get("/api/v1/orders/{orderId}", GetOrderInfo(svc, nil))

	req := authedRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), "")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data ordersvc.OrderInfo `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderID != orderID {
		t.Fatalf("unexpected order id: %s", envelope.Data.OrderID)
	}
}

func TestGetOrderInfoBadID(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/v1/orders/{orderId}", GetOrderInfo(&stubOrderService{}, nil))

	req := authedRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", "")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestListOrdersPassesCursor(t *testing.T) {
	next := "b2xkZXI"
	svc := &stubOrderService{list: &ordersvc.OrderList{
		Items:      []ordersvc.OrderSummary{{OrderID: uuid.New(), Status: enums.OrderStatusIng}},
		NextCursor: &next,
	}}
	handler := ListOrders(svc, nil)

	req := authedRequest(http.MethodGet, "/api/v1/orders?limit=5&cursor=abc", "")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data ordersvc.OrderList `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Items) != 1 {
		t.Fatalf("expected 1 item got %d", len(envelope.Data.Items))
	}
	if envelope.Data.NextCursor == nil || *envelope.Data.NextCursor != next {
		t.Fatalf("unexpected next cursor: %v", envelope.Data.NextCursor)
	}
}

func TestListOrdersRejectsBadLimit(t *testing.T) {
	handler := ListOrders(&stubOrderService{}, nil)

	req := authedRequest(http.MethodGet, "/api/v1/orders?limit=zero", "")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
