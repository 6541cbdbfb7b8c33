package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/kohai/gamecredit/internal/core/port"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type createOrderRequest struct {
	Wallet         string            `json:"wallet_address"`
	Amount         json.Number       `json:"amount" binding:"required"`
	OriginalAmount json.Number       `json:"original_amount"`
	Currency       string            `json:"currency"`
	CryptoAmount   json.Number       `json:"crypto_amount" binding:"required"`
	CryptoCurrency string            `json:"crypto_currency"`
	OrderType      string            `json:"order_type"`
	ProductID      string            `json:"product_id"`
	ItemID         string            `json:"item_id"`
	UserData       map[string]string `json:"user_data"`
	Signature      string            `json:"transaction_signature" binding:"required"`
}

func (r *createOrderRequest) input(payload *port.TokenPayload) (*domain.CreateOrderInput, error) {
	amount, err := parseDecimal("amount", r.Amount)
	if err != nil {
		return nil, err
	}
	cryptoAmount, err := parseDecimal("crypto_amount", r.CryptoAmount)
	if err != nil {
		return nil, err
	}
	originalAmount := amount
	if r.OriginalAmount != "" {
		originalAmount, err = parseDecimal("original_amount", r.OriginalAmount)
		if err != nil {
			return nil, err
		}
	}

	wallet := r.Wallet
	if wallet == "" {
		wallet = payload.Wallet
	}
	orderType := domain.OrderType(r.OrderType)
	if orderType == "" {
		orderType = domain.OrderTypeGameCredit
	}
	currency := r.Currency
	if currency == "" {
		currency = "USD"
	}

	return &domain.CreateOrderInput{
		UserID:         payload.UserID,
		Wallet:         wallet,
		Amount:         amount,
		OriginalAmount: originalAmount,
		Currency:       currency,
		CryptoAmount:   cryptoAmount,
		Token:          domain.Token(r.CryptoCurrency),
		OrderType:      orderType,
		ProductID:      r.ProductID,
		ItemID:         r.ItemID,
		UserData:       r.UserData,
		Signature:      r.Signature,
	}, nil
}

func parseDecimal(field string, n json.Number) (decimal.Decimal, error) {
	d, err := decimal.Parse(n.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s: %w", domain.ErrBadRequest, field, err)
	}
	return d, nil
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	var req createOrderRequest
	err := ctx.ShouldBindJSON(&req)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	input, err := req.input(getAuthPayload(ctx))
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.CreateOrder(ctx, input)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, newOrderResponse(order), http.StatusAccepted)
}

type paymentResponse struct {
	Signature     string          `json:"transaction_signature"`
	State         string          `json:"state"`
	Amount        decimal.Decimal `json:"amount"`
	Token         string          `json:"token"`
	WalletFrom    string          `json:"wallet_from"`
	WalletTo      string          `json:"wallet_to"`
	Confirmations int             `json:"confirmations"`
	BlockNumber   uint64          `json:"block_number,omitempty"`
	VerifiedAt    *time.Time      `json:"verified_at,omitempty"`
	ErrorMessage  string          `json:"error_message,omitempty"`
}

type orderResponse struct {
	Number         string            `json:"order_number"`
	Status         string            `json:"status"`
	OrderType      string            `json:"order_type"`
	Amount         decimal.Decimal   `json:"amount"`
	OriginalAmount decimal.Decimal   `json:"original_amount"`
	Currency       string            `json:"currency"`
	CryptoAmount   decimal.Decimal   `json:"crypto_amount"`
	CryptoCurrency string            `json:"crypto_currency"`
	ProductID      string            `json:"product_id,omitempty"`
	ItemID         string            `json:"item_id,omitempty"`
	UserData       map[string]string `json:"user_data,omitempty"`
	TrackingNumber string            `json:"tracking_number,omitempty"`
	ErrorMessage   string            `json:"error_message,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Payment        *paymentResponse  `json:"payment,omitempty"`
}

func newOrderResponse(o *domain.Order) orderResponse {
	r := orderResponse{
		Number:         string(o.Number),
		Status:         string(o.Status),
		OrderType:      string(o.OrderType),
		Amount:         o.Amount,
		OriginalAmount: o.OriginalAmount,
		Currency:       o.Currency,
		CryptoAmount:   o.CryptoAmount,
		CryptoCurrency: o.CryptoCurrency,
		ProductID:      o.ProductID,
		ItemID:         o.ItemID,
		UserData:       o.UserData,
		TrackingNumber: o.TrackingNumber,
		ErrorMessage:   o.ErrorMessage,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if t := o.CryptoTransaction; t != nil {
		r.Payment = &paymentResponse{
			Signature:     t.Signature,
			State:         string(t.State),
			Amount:        t.Amount,
			Token:         t.Token,
			WalletFrom:    t.WalletFrom,
			WalletTo:      t.WalletTo,
			Confirmations: t.Confirmations,
			BlockNumber:   t.BlockNumber,
			VerifiedAt:    t.VerifiedAt,
			ErrorMessage:  t.ErrorMessage,
		}
	}
	return r
}

func (oh *OrderHandler) ListOrdersByUser(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := oh.service.ListOrders(ctx, userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResponse, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResponse(o))
	}

	oh.handleSuccess(ctx, result)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	order, err := oh.service.GetOrder(ctx, userID, domain.OrderNumber(ctx.Param("number")))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}

func (oh *OrderHandler) CancelOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	order, err := oh.service.CancelOrder(ctx, userID, domain.OrderNumber(ctx.Param("number")))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}
