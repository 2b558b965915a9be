package kakaopay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ms-You/emmerce-api-sub000/pkg/config"
	"github.com/Ms-You/emmerce-api-sub000/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(config.GatewayConfig{
		BaseURL:     srv.URL,
		AdminKey:    "test-admin-key",
		CID:         "TC0ONETIME",
		ApprovalURL: "https://shop.example.com/payments/approve",
		CancelURL:   "https://shop.example.com/payments/cancel",
		FailURL:     "https://shop.example.com/payments/fail",
		CallTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestClientReady(t *testing.T) {
	var gotAuth, gotContentType string
	var gotForm map[string]string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payment/ready", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"tid":                  "T1234567890",
			"next_redirect_pc_url": "https://pay.example.com/redirect/pc",
			"created_at":           "2026-08-30T10:15:00",
		})
	}))

	resp, err := client.Ready(context.Background(), ReadyRequest{
		PartnerOrderID: "order-1",
		PartnerUserID:  "member-1",
		ItemName:       "coffee beans and 2 more",
		Quantity:       3,
		TotalAmount:    45000,
		TaxFreeAmount:  0,
	})
	require.NoError(t, err)

	assert.Equal(t, "KakaoAK test-admin-key", gotAuth)
	assert.Contains(t, gotContentType, "application/x-www-form-urlencoded")
	assert.Equal(t, "TC0ONETIME", gotForm["cid"])
	assert.Equal(t, "order-1", gotForm["partner_order_id"])
	assert.Equal(t, "member-1", gotForm["partner_user_id"])
	assert.Equal(t, "coffee beans and 2 more", gotForm["item_name"])
	assert.Equal(t, "3", gotForm["quantity"])
	assert.Equal(t, "45000", gotForm["total_amount"])
	assert.Equal(t, "0", gotForm["tax_free_amount"])
	assert.Equal(t, "https://shop.example.com/payments/approve", gotForm["approval_url"])
	assert.Equal(t, "https://shop.example.com/payments/cancel", gotForm["cancel_url"])
	assert.Equal(t, "https://shop.example.com/payments/fail", gotForm["fail_url"])

	assert.Equal(t, "T1234567890", resp.TID)
	assert.Equal(t, "https://pay.example.com/redirect/pc", resp.NextRedirectPCURL)
	assert.Equal(t, time.Date(2026, 8, 30, 10, 15, 0, 0, time.UTC), resp.CreatedAt.Time)
}

func TestClientApprove(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment/approve", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "T1234567890", r.PostForm.Get("tid"))
		require.Equal(t, "tok-abc", r.PostForm.Get("pg_token"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"aid":                 "A9999",
			"tid":                 "T1234567890",
			"cid":                 "TC0ONETIME",
			"partner_order_id":    "order-1",
			"partner_user_id":     "member-1",
			"payment_method_type": "CARD",
			"amount":              map[string]int{"total": 45000, "tax_free": 0, "vat": 4090},
			"card_info":           map[string]string{"issuer_corp": "TestBank"},
			"item_name":           "coffee beans and 2 more",
			"quantity":            3,
			"approved_at":         "2026-08-30T10:16:30",
		})
	}))

	resp, err := client.Approve(context.Background(), ApproveRequest{
		TID:            "T1234567890",
		PartnerOrderID: "order-1",
		PartnerUserID:  "member-1",
		PGToken:        "tok-abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "A9999", resp.AID)
	assert.Equal(t, "CARD", resp.PaymentMethodType)
	assert.Equal(t, 45000, resp.Amount.Total)
	assert.Equal(t, 4090, resp.Amount.VAT)
	require.NotNil(t, resp.CardInfo)
	assert.Equal(t, "TestBank", resp.CardInfo.IssuerCorp)
	assert.Equal(t, time.Date(2026, 8, 30, 10, 16, 30, 0, time.UTC), resp.ApprovedAt.Time)
}

func TestClientOrder(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment/order", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "T1234567890", r.PostForm.Get("tid"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"tid":    "T1234567890",
			"cid":    "TC0ONETIME",
			"status": "SUCCESS_PAYMENT",
			"amount": map[string]int{"total": 45000},
		})
	}))

	resp, err := client.Order(context.Background(), OrderRequest{TID: "T1234567890"})
	require.NoError(t, err)
	assert.Equal(t, "SUCCESS_PAYMENT", resp.Status)
	assert.Equal(t, 45000, resp.Amount.Total)
}

func TestClientProviderError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"code": -780, "msg": "approval failure"})
	}))

	_, err := client.Approve(context.Background(), ApproveRequest{TID: "T-bad"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeGateway))
	assert.Contains(t, err.Error(), "approval failure")
}

func TestClientRejectsMissingConfig(t *testing.T) {
	_, err := NewClient(config.GatewayConfig{BaseURL: "https://kapi.example.com"})
	require.Error(t, err)
}

func TestTimestampUnmarshal(t *testing.T) {
	var ts Timestamp
	require.NoError(t, ts.UnmarshalJSON([]byte(`"2016-11-15T21:18:22"`)))
	assert.Equal(t, time.Date(2016, 11, 15, 21, 18, 22, 0, time.UTC), ts.Time)

	require.NoError(t, ts.UnmarshalJSON([]byte(`"2016-11-15T21:18:22+09:00"`)))
	assert.Equal(t, 2016, ts.Year())

	require.NoError(t, ts.UnmarshalJSON([]byte(`""`)))
	assert.True(t, ts.IsZero())

	require.Error(t, ts.UnmarshalJSON([]byte(`"not-a-time"`)))
}
