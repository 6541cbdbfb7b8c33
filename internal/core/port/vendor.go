package port

import (
	"context"

	"github.com/kohai/gamecredit/internal/core/domain"
)

//go:generate mockgen -source=vendor.go -destination=mock/vendor.go -package=mock
type VendorClient interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductItems(ctx context.Context, productID string) ([]domain.ProductItem, error)
	ValidateGameAccount(ctx context.Context, productID string, userData map[string]string) (*domain.GameAccount, error)
	CreateOrder(ctx context.Context, req *domain.VendorOrderRequest) (*domain.VendorResult, error)
	CheckOrderStatus(ctx context.Context, number domain.OrderNumber, trackingRef string) (*domain.VendorOrderStatus, error)
}
