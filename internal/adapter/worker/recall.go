package worker

import (
	"context"

	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/kohai/gamecredit/internal/core/port"
)

type Attempts struct {
	Verify  int
	Fulfill int
}

// RecallOrders queues work for orders left in flight by a previous run.
// Orders that already have an active job are skipped by the queue.
func RecallOrders(ctx context.Context, repo port.Repository, queue port.JobQueue, attempts Attempts) (int, error) {
	orders, err := repo.ListOrdersByStatus(ctx, []domain.OrderStatus{domain.OrderStatusPending, domain.OrderStatusProcessing})
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, order := range orders {
		job := &domain.Job{OrderNumber: order.Number}
		switch {
		case order.Status == domain.OrderStatusPending:
			job.Kind = domain.JobVerifyPayment
			job.MaxAttempts = attempts.Verify
		case order.OrderType.RequiresVendorPurchase() && !order.HasVendorReference() && !order.AwaitingReconciliation:
			job.Kind = domain.JobFulfillOrder
			job.MaxAttempts = attempts.Fulfill
		default:
			continue
		}

		if err := queue.Enqueue(ctx, job); err != nil {
			return queued, err
		}
		queued++
	}

	return queued, nil
}
