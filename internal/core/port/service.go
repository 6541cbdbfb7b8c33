package port

import (
	"context"

	"github.com/kohai/gamecredit/internal/core/domain"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type Service interface {
	CreateOrder(ctx context.Context, input *domain.CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, userID uint64, number domain.OrderNumber) (*domain.Order, error)
	ListOrders(ctx context.Context, userID uint64) ([]*domain.Order, error)
	CancelOrder(ctx context.Context, userID uint64, number domain.OrderNumber) (*domain.Order, error)
	CompleteOrder(ctx context.Context, number domain.OrderNumber) (*domain.Order, error)

	HandleVendorCallback(ctx context.Context, callback *domain.VendorCallback) (domain.CallbackOutcome, error)
	Reconciler

	ValidateGameAccount(ctx context.Context, productID string, userData map[string]string) (*domain.GameAccount, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductItems(ctx context.Context, productID string) ([]domain.ProductItem, error)
}

// JobHandler runs the deferred effects of the order lifecycle.
type JobHandler interface {
	VerifyPayment(ctx context.Context, number domain.OrderNumber, finalAttempt bool) error
	FulfillOrder(ctx context.Context, number domain.OrderNumber, finalAttempt bool) error
}

type Reconciler interface {
	ReconcileProcessingOrders(ctx context.Context) (*domain.ReconcileReport, error)
}
