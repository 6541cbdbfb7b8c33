package port

import (
	"context"
	"time"

	"github.com/kohai/gamecredit/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// Order
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, number domain.OrderNumber) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
	HasActiveOrder(ctx context.Context, userID uint64) (bool, error)
	ListOrdersByStatus(ctx context.Context, statuses []domain.OrderStatus) ([]*domain.Order, error)
	ListOrdersForReconciliation(ctx context.Context, updatedBefore time.Time, limit uint64) ([]*domain.Order, error)
	UpdateOrder(ctx context.Context, number domain.OrderNumber, updateFn UpdateOrderFn) (*domain.Order, error)

	// Audit
	AppendVendorLog(ctx context.Context, log *domain.VendorTransactionLog) error
	SaveVerificationRecord(ctx context.Context, record *domain.VerificationRecord) error
}

// UpdateOrderFn runs with the order and its crypto transaction locked.
// Returning an error rolls back every change.
type UpdateOrderFn func(order *domain.Order) error
