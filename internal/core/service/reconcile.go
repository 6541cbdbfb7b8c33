package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kohai/gamecredit/internal/core/domain"
	"go.uber.org/zap"
)

// ReconcileProcessingOrders polls the vendor for processing orders that have
// not moved for the configured minimum age. Orders the vendor never
// accepted are scheduled for purchase again, and pending orders get their
// payment verification scheduled again. One order's failure does not stop
// the batch.
func (s *Service) ReconcileProcessingOrders(ctx context.Context) (*domain.ReconcileReport, error) {
	orders, err := s.repo.ListOrdersForReconciliation(ctx, s.now().Add(-s.conf.ReconcileMinAge), s.conf.ReconcileBatch)
	if err != nil {
		return nil, fmt.Errorf("list orders for reconciliation: %w", err)
	}

	report := &domain.ReconcileReport{}
	for _, order := range orders {
		if ctx.Err() != nil {
			break
		}
		report.Checked++

		if order.Status == domain.OrderStatusPending {
			// No-op while its verification job is still queued.
			s.enqueue(ctx, domain.JobVerifyPayment, order.Number, 0)
			report.Requeued++
			continue
		}

		if !order.HasVendorReference() && !order.AwaitingReconciliation {
			if order.OrderType.RequiresVendorPurchase() {
				s.enqueue(ctx, domain.JobFulfillOrder, order.Number, 0)
				report.Requeued++
			}
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			break
		}

		status, err := s.reconcileOrder(ctx, order)
		if err != nil {
			report.Errors++
			s.logger.Warn("Reconcile order", zap.String("order", string(order.Number)), zap.Error(err))
			continue
		}

		switch status {
		case domain.VendorStatusSucceeded:
			report.Succeeded++
		case domain.VendorStatusFailed:
			report.Failed++
		default:
			report.Pending++
		}
	}

	s.logger.Info("Reconciliation finished",
		zap.Int("checked", report.Checked),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Int("pending", report.Pending),
		zap.Int("requeued", report.Requeued),
		zap.Int("errors", report.Errors))

	return report, nil
}

func (s *Service) reconcileOrder(ctx context.Context, order *domain.Order) (domain.VendorStatus, error) {
	vendorStatus, err := s.vendor.CheckOrderStatus(ctx, order.Number, order.VendorReference())
	if err != nil {
		s.appendVendorLog(ctx, order.ID, domain.VendorLogCheckStatus,
			map[string]string{"order_number": string(order.Number), "reference": order.VendorReference()},
			nil, "error", 0)
		if !domain.IsTransient(err) && s.reconciliationExpired(order) {
			return s.expireReconciliation(ctx, order)
		}
		return "", err
	}

	s.appendVendorLog(ctx, order.ID, domain.VendorLogReconciliation,
		map[string]string{"order_number": string(order.Number), "reference": order.VendorReference()},
		vendorStatus.Raw, string(vendorStatus.Status), 0)

	var update func(o *domain.Order) error
	switch vendorStatus.Status {
	case domain.VendorStatusSucceeded:
		update = func(o *domain.Order) error {
			if !o.HasVendorReference() && vendorStatus.TrackingNumber != "" {
				o.TrackingNumber = vendorStatus.TrackingNumber
			}
			_, err := o.Fire(domain.EventSuccess)
			if err != nil {
				return err
			}
			o.AwaitingReconciliation = false
			o.ErrorMessage = ""
			return nil
		}
	case domain.VendorStatusFailed:
		update = func(o *domain.Order) error {
			message := vendorStatus.Message
			if message == "" {
				message = "Vendor order failed"
			}
			return o.FailWith(message)
		}
	case domain.VendorStatusProcessing:
		if order.HasVendorReference() || vendorStatus.TrackingNumber == "" {
			return vendorStatus.Status, nil
		}
		update = func(o *domain.Order) error {
			if o.HasVendorReference() {
				return errSkip
			}
			o.TrackingNumber = vendorStatus.TrackingNumber
			return nil
		}
	default:
		s.logger.Warn("Unknown vendor order status",
			zap.String("order", string(order.Number)), zap.String("message", vendorStatus.Message))
		if s.reconciliationExpired(order) {
			return s.expireReconciliation(ctx, order)
		}
		return vendorStatus.Status, nil
	}

	_, err = s.repo.UpdateOrder(ctx, order.Number, update)
	if err != nil && !errors.Is(err, errSkip) && !settled(err) {
		return "", err
	}
	return vendorStatus.Status, nil
}

// reconciliationExpired reports whether an order sent to the vendor without
// an answer has waited longer than the configured maximum age.
func (s *Service) reconciliationExpired(order *domain.Order) bool {
	return s.conf.ReconcileMaxAge > 0 &&
		order.AwaitingReconciliation &&
		!order.HasVendorReference() &&
		order.CreatedAt.Before(s.now().Add(-s.conf.ReconcileMaxAge))
}

func (s *Service) expireReconciliation(ctx context.Context, order *domain.Order) (domain.VendorStatus, error) {
	message := "Vendor has no record of the order, reconciliation timed out"

	_, err := s.repo.UpdateOrder(ctx, order.Number, func(o *domain.Order) error {
		if !o.AwaitingReconciliation || o.HasVendorReference() {
			return errSkip
		}
		o.AwaitingReconciliation = false
		return o.FailWith(message)
	})
	if errors.Is(err, errSkip) || settled(err) {
		return domain.VendorStatusUnknown, nil
	}
	if err != nil {
		return "", err
	}

	s.logger.Warn("Reconciliation expired", zap.String("order", string(order.Number)))
	return domain.VendorStatusFailed, nil
}
