package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kohai/gamecredit/internal/core/domain"
	"go.uber.org/zap"
)

// errorStatuses is checked in order, so wrapped errors match their most
// specific sentinel first.
var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrInternal, http.StatusInternalServerError},
	{domain.ErrDataNotFound, http.StatusNotFound},
	{domain.ErrConflictingData, http.StatusConflict},

	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{domain.ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{domain.ErrInvalidAuthorizationType, http.StatusUnauthorized},
	{domain.ErrInvalidToken, http.StatusUnauthorized},
	{domain.ErrExpiredToken, http.StatusUnauthorized},
	{domain.ErrInvalidCallbackKey, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},

	{domain.ErrNoUpdatedData, http.StatusBadRequest},
	{domain.ErrBadRequest, http.StatusBadRequest},
	{domain.ErrInvalidAddress, http.StatusBadRequest},
	{domain.ErrInvalidSignature, http.StatusBadRequest},
	{domain.ErrInvalidAmount, http.StatusBadRequest},

	{domain.ErrSignatureAlreadyUsed, http.StatusConflict},
	{domain.ErrActiveOrderExists, http.StatusConflict},
	{domain.ErrOrderNotCancellable, http.StatusConflict},
	{domain.ErrInvalidTransition, http.StatusConflict},

	{domain.ErrVendorMaintenance, http.StatusServiceUnavailable},
	{domain.ErrVendorRejected, http.StatusUnprocessableEntity},
	{domain.ErrVendorUnavailable, http.StatusBadGateway},
}

func errorStatus(err error) (int, bool) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, true
		}
	}
	return http.StatusInternalServerError, false
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	h.logger.Debug("invalid request", zap.Error(err))
	ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// handleAbort sends an error response and aborts the request with the specified status code and error message
func (h *Handler) handleAbort(ctx *gin.Context, err error) {
	statusCode, ok := errorStatus(err)
	if !ok {
		h.logger.Error("aborting request", zap.Error(err))
	}
	ctx.AbortWithStatusJSON(statusCode, errorResponse{Error: publicMessage(statusCode, err)})
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	statusCode, ok := errorStatus(err)
	if !ok {
		h.logger.Error("error processing request", zap.Error(err))
	}
	ctx.JSON(statusCode, errorResponse{Error: publicMessage(statusCode, err)})
}

// publicMessage hides internal error text from clients.
func publicMessage(status int, err error) string {
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		return http.StatusText(status)
	}
	return err.Error()
}

// handleSuccess sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}
