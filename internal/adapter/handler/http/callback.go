package http

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/kohai/gamecredit/internal/core/port"
	"go.uber.org/zap"
)

const (
	callbackKeyHeader = "X-Callback-Key"
	maxCallbackBody   = 64 << 10
)

type CallbackHandler struct {
	Handler
	service     port.Service
	callbackKey string
}

var errEmptyCallbackKey = fmt.Errorf("%w: callback key is required", domain.ErrInvalidCallbackKey)

func NewCallbackHandler(service port.Service, callbackKey string, logger *zap.Logger) (*CallbackHandler, error) {
	if callbackKey == "" {
		return nil, errEmptyCallbackKey
	}
	return &CallbackHandler{
		Handler:     *NewHandler(logger),
		service:     service,
		callbackKey: callbackKey,
	}, nil
}

type callbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Callback takes vendor status pushes. The vendor expects an acknowledgment
// for orders that are already final, so those return 200.
func (ch *CallbackHandler) Callback(ctx *gin.Context) {
	if subtle.ConstantTimeCompare([]byte(ctx.GetHeader(callbackKeyHeader)), []byte(ch.callbackKey)) != 1 {
		ch.logger.Warn("Invalid callback key", zap.String("remote", ctx.ClientIP()))
		ctx.JSON(http.StatusUnauthorized, callbackResponse{Error: "Unauthorized"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxCallbackBody))
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, callbackResponse{Error: err.Error()})
		return
	}

	var cb domain.VendorCallback
	if err := json.Unmarshal(body, &cb); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, callbackResponse{Error: "invalid callback body"})
		return
	}
	cb.Raw = body

	ch.logger.Info("Vendor callback received",
		zap.String("order", string(cb.Reference)),
		zap.String("status", cb.Status),
		zap.String("tracking", cb.InvoiceID),
		zap.String("sn", cb.SN))

	if cb.Reference == "" {
		ctx.JSON(http.StatusNotFound, callbackResponse{Error: "Order not found"})
		return
	}

	outcome, err := ch.service.HandleVendorCallback(ctx, &cb)
	switch {
	case errors.Is(err, domain.ErrDataNotFound):
		ch.logger.Error("Callback for unknown order", zap.String("order", string(cb.Reference)))
		ctx.JSON(http.StatusNotFound, callbackResponse{Error: "Order not found"})
	case err != nil:
		ch.logger.Error("Callback not applied", zap.String("order", string(cb.Reference)), zap.Error(err))
		ctx.JSON(http.StatusUnprocessableEntity, callbackResponse{Error: err.Error()})
	case outcome == domain.CallbackAlreadyFinal:
		ctx.JSON(http.StatusOK, callbackResponse{Success: true, Message: "Order already in final state"})
	default:
		ctx.JSON(http.StatusOK, callbackResponse{Success: true, Message: "Order updated"})
	}
}
