// Package kakaopay wraps the payment provider's REST endpoints behind a
// small typed client. Requests go out form-encoded, responses come back
// as JSON, and every call is bounded by the configured timeout.
package kakaopay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Ms-You/emmerce-api-sub000/pkg/config"
	"github.com/Ms-You/emmerce-api-sub000/pkg/errors"
)

const (
	readyPath   = "/v1/payment/ready"
	approvePath = "/v1/payment/approve"
	orderPath   = "/v1/payment/order"
)

// Client talks to the payment provider.
type Client struct {
	baseURL     string
	adminKey    string
	cid         string
	approvalURL string
	cancelURL   string
	failURL     string
	httpClient  *http.Client
}

// NewClient builds a provider client from the gateway config.
func NewClient(cfg config.GatewayConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("kakaopay: base url is required")
	}
	if cfg.AdminKey == "" {
		return nil, fmt.Errorf("kakaopay: admin key is required")
	}
	if cfg.CID == "" {
		return nil, fmt.Errorf("kakaopay: cid is required")
	}
	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		adminKey:    cfg.AdminKey,
		cid:         cfg.CID,
		approvalURL: cfg.ApprovalURL,
		cancelURL:   cfg.CancelURL,
		failURL:     cfg.FailURL,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

// CID returns the merchant code the client was configured with. The
// payment record persists it alongside the provider's transaction id.
func (c *Client) CID() string {
	return c.cid
}

// Ready opens a transaction for the given order summary. The returned
// tid must be kept for the approve step.
func (c *Client) Ready(ctx context.Context, req ReadyRequest) (*ReadyResponse, error) {
	form := url.Values{}
	form.Set("cid", c.cid)
	form.Set("partner_order_id", req.PartnerOrderID)
	form.Set("partner_user_id", req.PartnerUserID)
	form.Set("item_name", req.ItemName)
	form.Set("quantity", strconv.Itoa(req.Quantity))
	form.Set("total_amount", strconv.Itoa(req.TotalAmount))
	form.Set("tax_free_amount", strconv.Itoa(req.TaxFreeAmount))
	form.Set("approval_url", c.approvalURL)
	form.Set("cancel_url", c.cancelURL)
	form.Set("fail_url", c.failURL)

	var out ReadyResponse
	if err := c.post(ctx, readyPath, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Approve finalizes the transaction opened by Ready using the token the
// buyer carried back on the approval redirect.
func (c *Client) Approve(ctx context.Context, req ApproveRequest) (*ApproveResponse, error) {
	form := url.Values{}
	form.Set("cid", c.cid)
	form.Set("tid", req.TID)
	form.Set("partner_order_id", req.PartnerOrderID)
	form.Set("partner_user_id", req.PartnerUserID)
	form.Set("pg_token", req.PGToken)

	var out ApproveResponse
	if err := c.post(ctx, approvePath, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Order looks up the provider-side state of a transaction.
func (c *Client) Order(ctx context.Context, req OrderRequest) (*OrderResponse, error) {
	form := url.Values{}
	form.Set("cid", c.cid)
	form.Set("tid", req.TID)

	var out OrderResponse
	if err := c.post(ctx, orderPath, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(errors.CodeGateway, err, "build provider request")
	}
	httpReq.Header.Set("Authorization", "KakaoAK "+c.adminKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return errors.Wrap(errors.CodeGateway, err, "call payment provider")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errors.Wrap(errors.CodeGateway, err, "read provider response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.New(errors.CodeGateway, providerErrorMessage(resp.StatusCode, body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(errors.CodeGateway, err, "decode provider response")
	}
	return nil
}

// providerError is the provider's error envelope.
type providerError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func providerErrorMessage(status int, body []byte) string {
	var pe providerError
	if err := json.Unmarshal(body, &pe); err == nil && pe.Msg != "" {
		return fmt.Sprintf("provider rejected request: %s (code %d, http %d)", pe.Msg, pe.Code, status)
	}
	return fmt.Sprintf("provider returned http %d", status)
}
