package worker

import (
	"context"
	"time"

	"github.com/kohai/gamecredit/internal/core/port"
	"go.uber.org/zap"
)

// RunReconciler sweeps processing orders every interval until ctx is done.
func RunReconciler(ctx context.Context, reconciler port.Reconciler, interval time.Duration, logger *zap.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := reconciler.ReconcileProcessingOrders(ctx); err != nil && ctx.Err() == nil {
				logger.Error("Reconcile processing orders", zap.Error(err))
			}
		case <-ctx.Done():
			logger.Debug("Finished reconciler")
			return nil
		}
	}
}
