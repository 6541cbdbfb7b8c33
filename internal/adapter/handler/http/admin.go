package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/kohai/gamecredit/internal/core/port"
	"go.uber.org/zap"
)

type AdminHandler struct {
	Handler
	service      port.Service
	tokenService port.TokenService
}

func NewAdminHandler(service port.Service, tokenService port.TokenService, logger *zap.Logger) (*AdminHandler, error) {
	return &AdminHandler{
		Handler:      *NewHandler(logger),
		service:      service,
		tokenService: tokenService,
	}, nil
}

type reconcileResponse struct {
	Checked   int `json:"checked"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Pending   int `json:"pending"`
	Requeued  int `json:"requeued"`
	Errors    int `json:"errors"`
}

func (ah *AdminHandler) Reconcile(ctx *gin.Context) {
	report, err := ah.service.ReconcileProcessingOrders(ctx)
	if err != nil {
		ah.handleError(ctx, err)
		return
	}
	ah.handleSuccess(ctx, reconcileResponse(*report))
}

func (ah *AdminHandler) CompleteOrder(ctx *gin.Context) {
	order, err := ah.service.CompleteOrder(ctx, domain.OrderNumber(ctx.Param("number")))
	if err != nil {
		ah.handleError(ctx, err)
		return
	}
	ah.handleSuccess(ctx, newOrderResponse(order))
}

type tokenRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Wallet string `json:"wallet"`
}

func (ah *AdminHandler) IssueToken(ctx *gin.Context) {
	var req tokenRequest
	err := ctx.ShouldBindJSON(&req)
	if err != nil {
		ah.handleValidationError(ctx, fmt.Errorf("%w: %w", domain.ErrBadRequest, err))
		return
	}

	token, err := ah.tokenService.CreateToken(&port.TokenPayload{UserID: req.UserID, Wallet: req.Wallet})
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccess(ctx, struct {
		Token string `json:"token"`
	}{Token: token})
}
