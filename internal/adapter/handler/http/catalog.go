package http

import (
	"github.com/gin-gonic/gin"
	"github.com/kohai/gamecredit/internal/core/port"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	Handler
	service port.Service
}

func NewCatalogHandler(service port.Service, logger *zap.Logger) (*CatalogHandler, error) {
	return &CatalogHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

func (ch *CatalogHandler) ListProducts(ctx *gin.Context) {
	products, err := ch.service.ListProducts(ctx)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}
	ch.handleSuccess(ctx, products)
}

func (ch *CatalogHandler) ListProductItems(ctx *gin.Context) {
	items, err := ch.service.ListProductItems(ctx, ctx.Param("id"))
	if err != nil {
		ch.handleError(ctx, err)
		return
	}
	ch.handleSuccess(ctx, items)
}

type validateAccountRequest struct {
	ProductID string            `json:"product_id" binding:"required"`
	UserData  map[string]string `json:"user_data" binding:"required"`
}

func (ch *CatalogHandler) ValidateGameAccount(ctx *gin.Context) {
	var req validateAccountRequest
	err := ctx.ShouldBindJSON(&req)
	if err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	account, err := ch.service.ValidateGameAccount(ctx, req.ProductID, req.UserData)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}
	ch.handleSuccess(ctx, account)
}
