package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	paymentsvc "github.com/Ms-You/emmerce-api-sub000/internal/payments"
	pkgerrors "github.com/Ms-You/emmerce-api-sub000/pkg/errors"
)

type stubPaymentService struct {
	ready    *paymentsvc.ReadyResult
	readyErr error

	approve     *paymentsvc.ApproveResult
	approveErr  error
	lastPGToken string

	cancelErr error

	info    *paymentsvc.PaymentInfo
	infoErr error
}

func (s *stubPaymentService) Ready(ctx context.Context, orderID, memberID uuid.UUID) (*paymentsvc.ReadyResult, error) {
	return s.ready, s.readyErr
}

func (s *stubPaymentService) Approve(ctx context.Context, orderID, memberID uuid.UUID, pgToken string) (*paymentsvc.ApproveResult, error) {
	s.lastPGToken = pgToken
	return s.approve, s.approveErr
}

func (s *stubPaymentService) Cancel(ctx context.Context, orderID, memberID uuid.UUID) error {
	return s.cancelErr
}

func (s *stubPaymentService) Info(ctx context.Context, orderID, memberID uuid.UUID) (*paymentsvc.PaymentInfo, error) {
	return s.info, s.infoErr
}

func TestPaymentReadySuccess(t *testing.T) {
	svc := &stubPaymentService{ready: &paymentsvc.ReadyResult{
		TID:               "T1234567890",
		NextRedirectPCURL: "https://pay.example.com/redirect",
	}}

	router := chi.NewRouter()
	router.Post("/api/v1/payments/{orderId}/ready", PaymentReady(svc, nil))

	req := authedRequest(http.MethodPost, "/api/v1/payments/"+uuid.NewString()+"/ready", "")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data paymentsvc.ReadyResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TID != "T1234567890" {
		t.Fatalf("unexpected tid: %s", envelope.Data.TID)
	}
}

func TestPaymentReadyOrderNotFound(t *testing.T) {
	svc := &stubPaymentService{readyErr: pkgerrors.New(pkgerrors.CodeOrderNotFound, "order not found")}

	router := chi.NewRouter()
	router.Post("/api/v1/payments/{orderId}/ready", PaymentReady(svc, nil))

	req := authedRequest(http.MethodPost, "/api/v1/payments/"+uuid.NewString()+"/ready", "")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestPaymentApproveCallback(t *testing.T) {
	orderID := uuid.New()
	svc := &stubPaymentService{approve: &paymentsvc.ApproveResult{
		OrderID: orderID,
		TID:     "T1234567890",
		AID:     "A1234567890",
	}}
	handler := PaymentApprove(svc, nil)

	target := "/api/v1/payments/approve?order_id=" + orderID.String() +
		"&member_id=" + uuid.NewString() + "&pg_token=tok123"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastPGToken != "tok123" {
		t.Fatalf("pg_token not forwarded: %q", svc.lastPGToken)
	}
}

func TestPaymentApproveRequiresPGToken(t *testing.T) {
	handler := PaymentApprove(&stubPaymentService{}, nil)

	target := "/api/v1/payments/approve?order_id=" + uuid.NewString() + "&member_id=" + uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestPaymentCancelSuccess(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/v1/payments/{orderId}/cancel", PaymentCancel(&stubPaymentService{}, nil))

	req := authedRequest(http.MethodPost, "/api/v1/payments/"+uuid.NewString()+"/cancel", "")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestPaymentCancelAlreadyCanceled(t *testing.T) {
	svc := &stubPaymentService{cancelErr: pkgerrors.New(pkgerrors.CodeOrderAlreadyCanceled, "order already canceled")}

	router := chi.NewRouter()
	router.Post("/api/v1/payments/{orderId}/cancel", PaymentCancel(svc, nil))

	req := authedRequest(http.MethodPost, "/api/v1/payments/"+uuid.NewString()+"/cancel", "")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestPaymentInfoNotFound(t *testing.T) {
	svc := &stubPaymentService{infoErr: pkgerrors.New(pkgerrors.CodePaymentNotFound, "payment not found")}

	router := chi.NewRouter()
	router.Get("/api/v1/payments/{orderId}", PaymentInfo(svc, nil))

	req := authedRequest(http.MethodGet, "/api/v1/payments/"+uuid.NewString(), "")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
