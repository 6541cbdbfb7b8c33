package provider

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/govalues/decimal"
	"github.com/kohai/gamecredit/internal/adapter/config"
	"github.com/kohai/gamecredit/internal/core/domain"
	"go.uber.org/zap"
)

const (
	pathProducts         = "/merchant-products"
	pathValidateAccount  = "/validate-game-account"
	pathOrderStatus      = "/merchant-order/"
	headerMerchant       = "X-Merchant"
	maxResponseBodyBytes = 1 << 20
	defaultRetryAfter    = 10 * time.Second
)

type Client struct {
	baseURL    string
	merchantID string
	secretKey  string
	apiKey     string
	xMerchant  string
	http       *http.Client
	logger     *zap.Logger
}

func NewClient(conf *config.Vendor, logger *zap.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: 5 * time.Second}).DialContext

	return &Client{
		baseURL:    strings.TrimRight(conf.BaseURL, "/"),
		merchantID: conf.MerchantID,
		secretKey:  conf.SecretKey,
		apiKey:     conf.APIKey,
		xMerchant:  conf.XMerchant,
		http:       &http.Client{Timeout: conf.Timeout, Transport: transport},
		logger:     logger,
	}
}

// Sign returns hex HMAC-SHA256 over merchantId + path + extra.
func (c *Client) Sign(path, extra string) string {
	mac := hmac.New(sha256.New, []byte(c.secretKey))
	mac.Write([]byte(c.merchantID + path + extra))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (int, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("error on %s : %w", path, err)
	}
	return c.do(req, path)
}

func (c *Client) post(ctx context.Context, path string, body any) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("error encoding %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("error on %s : %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path)
}

// do returns the status and body of any completed exchange. Transport
// errors and 5xx are reported as ErrVendorUnavailable, 429 as a
// RetryAfterError around it.
func (c *Client) do(req *http.Request, path string) (int, []byte, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerMerchant, c.xMerchant)

	c.logger.Debug("vendor request", zap.String("method", req.Method), zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		if isDuplicate(err.Error()) {
			return 0, nil, fmt.Errorf("%w: %w", domain.ErrVendorDuplicate, err)
		}
		return 0, nil, fmt.Errorf("%w: %s: %w", domain.ErrVendorUnavailable, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: reading %s: %w", domain.ErrVendorUnavailable, path, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		wait := defaultRetryAfter
		if sec, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && sec > 0 {
			wait = time.Duration(sec) * time.Second
		}
		c.logger.Warn("vendor rate limit", zap.String("path", path), zap.Duration("retry_after", wait))
		return resp.StatusCode, body, &domain.RetryAfterError{
			Wait: wait,
			Err:  fmt.Errorf("%w: %s responded %d", domain.ErrVendorUnavailable, path, resp.StatusCode),
		}
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.Warn("vendor unavailable",
			zap.String("path", path), zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		if isDuplicate(string(body)) {
			return resp.StatusCode, body, fmt.Errorf("%w: %s", domain.ErrVendorDuplicate, string(body))
		}
		return resp.StatusCode, body, fmt.Errorf("%w: %s responded %d", domain.ErrVendorUnavailable, path, resp.StatusCode)
	}

	return resp.StatusCode, body, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	status, body, err := c.get(ctx, pathProducts, url.Values{"signature": {c.Sign(pathProducts, "")}})
	if err != nil {
		return nil, err
	}
	r, err := c.successBody(status, body)
	if err != nil {
		return nil, err
	}

	items := r.list("data")
	products := make([]domain.Product, 0, len(items))
	for _, i := range items {
		raw, _ := json.Marshal(i)
		products = append(products, domain.Product{
			ID:       i.str("id"),
			Name:     i.str("name"),
			Category: i.str("category"),
			Raw:      raw,
		})
	}
	return products, nil
}

func (c *Client) ListProductItems(ctx context.Context, productID string) ([]domain.ProductItem, error) {
	path := pathProducts + "/" + url.PathEscape(productID) + "/items"
	status, body, err := c.get(ctx, path, url.Values{"signature": {c.Sign(path, productID)}})
	if err != nil {
		return nil, err
	}
	r, err := c.successBody(status, body)
	if err != nil {
		return nil, err
	}

	list := r.list("data")
	items := make([]domain.ProductItem, 0, len(list))
	for _, i := range list {
		item := domain.ProductItem{
			ID:        i.str("id"),
			ProductID: productID,
			Name:      i.str("name"),
			Currency:  i.str("currency"),
		}
		if p := i.str("price"); p != "" {
			price, err := decimal.Parse(p)
			if err != nil {
				c.logger.Warn("bad item price", zap.String("item", item.ID), zap.String("price", p))
				continue
			}
			item.Price = price
		}
		items = append(items, item)
	}
	return items, nil
}

// successBody decodes a listing response; anything but success is ErrVendorRejected.
func (c *Client) successBody(status int, body []byte) (response, error) {
	res := normalize(status, body)
	switch res.Outcome {
	case domain.VendorOutcomeMaintenance:
		return nil, domain.ErrVendorMaintenance
	case domain.VendorOutcomeFailure:
		if status >= 200 && status < 300 {
			if r, err := decodeResponse(body); err == nil && r["data"] != nil {
				return r, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrVendorRejected, res.Message)
	}
	return decodeResponse(body)
}

func (c *Client) ValidateGameAccount(ctx context.Context, productID string, userData map[string]string) (*domain.GameAccount, error) {
	status, body, err := c.post(ctx, pathValidateAccount, map[string]any{
		"signature": c.Sign(pathValidateAccount, ""),
		"productId": productID,
		"data":      userData,
	})
	if err != nil {
		return nil, err
	}

	res := normalize(status, body)
	switch res.Outcome {
	case domain.VendorOutcomeMaintenance:
		return nil, domain.ErrVendorMaintenance
	case domain.VendorOutcomeFailure:
		return nil, fmt.Errorf("%w: %s", domain.ErrVendorRejected, res.Message)
	}

	r, err := decodeResponse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrVendorRejected, err)
	}
	return &domain.GameAccount{IGN: r.object("data").str("ign")}, nil
}

// CreateOrder places the purchase. A vendor answer saying the reference is
// already known is returned as ErrVendorDuplicate.
func (c *Client) CreateOrder(ctx context.Context, req *domain.VendorOrderRequest) (*domain.VendorResult, error) {
	path := pathProducts + "/" + url.PathEscape(req.ProductID) + "/items"
	status, body, err := c.post(ctx, path, map[string]any{
		"signature":     c.Sign(path, req.ProductID),
		"productId":     req.ProductID,
		"productItemId": req.ItemID,
		"data":          req.UserInput,
		"price":         req.Price.String(),
		"reference":     string(req.PartnerOrderID),
		"callbackUrl":   req.CallbackURL,
	})
	if err != nil {
		return nil, err
	}

	res := normalize(status, body)
	if res.Outcome == domain.VendorOutcomeFailure &&
		(status == http.StatusConflict || isDuplicate(res.Message)) {
		return res, fmt.Errorf("%w: %s", domain.ErrVendorDuplicate, res.Message)
	}

	c.logger.Info("vendor create order",
		zap.String("order", string(req.PartnerOrderID)),
		zap.Stringer("outcome", res.Outcome),
		zap.String("tracking", res.TrackingNumber))

	return res, nil
}

func (c *Client) CheckOrderStatus(ctx context.Context, number domain.OrderNumber, trackingRef string) (*domain.VendorOrderStatus, error) {
	path := pathOrderStatus + url.PathEscape(string(number))
	payload := map[string]any{
		"signature": c.Sign(path, string(number)),
		"api_key":   c.apiKey,
		"order_id":  string(number),
	}
	if trackingRef != "" {
		payload["invoiceId"] = trackingRef
	}

	status, body, err := c.post(ctx, path, payload)
	if err != nil {
		return nil, err
	}

	r, err := decodeResponse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSON from provider (%d)", domain.ErrVendorRejected, status)
	}

	vendorStatus := r.str("status")
	if nested := r.object("data").str("status"); nested != "" {
		vendorStatus = nested
	}

	result := &domain.VendorOrderStatus{
		Status:         domain.NormalizeVendorStatus(vendorStatus),
		TrackingNumber: r.trackingNumber(),
		Message:        r.message(),
		Raw:            json.RawMessage(body),
	}
	if result.Status == domain.VendorStatusUnknown && status >= 400 {
		return nil, fmt.Errorf("%w: status check responded %d: %s", domain.ErrVendorRejected, status, result.Message)
	}

	return result, nil
}
