package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/kohai/gamecredit/internal/core/port/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecallOrders(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	repo := mock.NewMockRepository(mockCtrl)
	queue := mock.NewMockJobQueue(mockCtrl)

	orders := []*domain.Order{
		{Number: "KMY1", Status: domain.OrderStatusPending, OrderType: domain.OrderTypeGameCredit},
		{Number: "KMY2", Status: domain.OrderStatusProcessing, OrderType: domain.OrderTypeGameCredit},
		{Number: "KMY3", Status: domain.OrderStatusProcessing, OrderType: domain.OrderTypeGameCredit, TrackingNumber: "INV-3"},
		{Number: "KMY4", Status: domain.OrderStatusProcessing, OrderType: domain.OrderTypeGameCredit, AwaitingReconciliation: true},
	}
	repo.EXPECT().ListOrdersByStatus(gomock.Any(),
		[]domain.OrderStatus{domain.OrderStatusPending, domain.OrderStatusProcessing}).Return(orders, nil)

	var jobs []*domain.Job
	queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, j *domain.Job) error {
			jobs = append(jobs, j)
			return nil
		}).Times(2)

	queued, err := RecallOrders(context.Background(), repo, queue, Attempts{Verify: 5, Fulfill: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, queued)

	assert.Equal(t, &domain.Job{Kind: domain.JobVerifyPayment, OrderNumber: "KMY1", MaxAttempts: 5}, jobs[0])
	assert.Equal(t, &domain.Job{Kind: domain.JobFulfillOrder, OrderNumber: "KMY2", MaxAttempts: 3}, jobs[1])
}

func TestRecallOrders_ListError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	repo := mock.NewMockRepository(mockCtrl)
	queue := mock.NewMockJobQueue(mockCtrl)

	repo.EXPECT().ListOrdersByStatus(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	_, err := RecallOrders(context.Background(), repo, queue, Attempts{})
	assert.Error(t, err)
}

func TestRunReconciler(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	reconciler := mock.NewMockReconciler(mockCtrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		reconciler.EXPECT().ReconcileProcessingOrders(gomock.Any()).Return(nil, errors.New("vendor down")),
		reconciler.EXPECT().ReconcileProcessingOrders(gomock.Any()).
			DoAndReturn(func(context.Context) (*domain.ReconcileReport, error) {
				cancel()
				return &domain.ReconcileReport{}, nil
			}),
	)

	done := make(chan error)
	go func() { done <- RunReconciler(ctx, reconciler, 5*time.Millisecond, zap.NewNop()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("reconciler did not stop")
	}
}
