package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kohai/gamecredit/internal/core/domain"
	"go.uber.org/zap"
)

// FulfillOrder purchases the game credit for a processing order. The order
// row stays locked from the reference check until the vendor answer is
// stored, so two workers never both buy. An order that already has a vendor
// reference, or waits for reconciliation, is never sent again.
func (s *Service) FulfillOrder(ctx context.Context, number domain.OrderNumber, finalAttempt bool) error {
	var (
		orderID int64
		request *domain.VendorOrderRequest
		result  *domain.VendorResult
		callErr error
	)

	order, err := s.repo.UpdateOrder(ctx, number, func(o *domain.Order) error {
		orderID = o.ID
		if o.Status != domain.OrderStatusProcessing ||
			!o.OrderType.RequiresVendorPurchase() ||
			o.HasVendorReference() ||
			o.AwaitingReconciliation {
			return errSkip
		}

		switch {
		case o.ProductID == "" || o.ItemID == "":
			return o.FailWith("Missing product or item")
		case len(o.UserData) == 0:
			return o.FailWith("Missing user data")
		}

		request = &domain.VendorOrderRequest{
			ProductID:      o.ProductID,
			ItemID:         o.ItemID,
			UserInput:      o.UserData,
			PartnerOrderID: o.Number,
			CallbackURL:    s.conf.CallbackURL,
			Price:          o.Amount,
		}
		result, callErr = s.vendor.CreateOrder(ctx, request)

		return s.applyVendorResult(o, result, callErr, finalAttempt)
	})
	if request != nil {
		s.appendVendorLog(ctx, orderID, domain.VendorLogCreateOrder, request, rawResult(result),
			vendorLogStatus(result, callErr), 0)
	}

	switch {
	case errors.Is(err, errSkip):
		s.logger.Debug("Fulfillment skipped", zap.String("order", string(number)))
		return nil
	case err != nil:
		return fmt.Errorf("fulfill order %s: %w", number, retryable(err))
	}

	s.logger.Info("Fulfillment finished",
		zap.String("order", string(number)),
		zap.String("status", string(order.Status)),
		zap.String("tracking", order.TrackingNumber),
		zap.Bool("awaiting_reconciliation", order.AwaitingReconciliation))

	if result != nil && result.Outcome == domain.VendorOutcomeMaintenance && callErr == nil {
		return domain.ErrVendorMaintenance
	}
	return nil
}

// applyVendorResult stores the vendor answer on the order. A returned
// transient error rolls the update back so the job can run again.
func (s *Service) applyVendorResult(o *domain.Order, res *domain.VendorResult, callErr error, finalAttempt bool) error {
	switch {
	case errors.Is(callErr, domain.ErrVendorDuplicate):
		// The vendor already holds this reference. A status poll settles the order.
		o.AwaitingReconciliation = true
		o.ErrorMessage = ""
		return nil
	case domain.IsTransient(callErr):
		if !finalAttempt {
			return callErr
		}
		// The last call may still have reached the vendor.
		o.AwaitingReconciliation = true
		o.ErrorMessage = "Vendor unreachable, awaiting reconciliation"
		return nil
	case callErr != nil:
		return o.FailWith("Error creating order: " + callErr.Error())
	}

	o.Metadata = res.Raw

	switch res.Outcome {
	case domain.VendorOutcomeSuccess:
		o.TrackingNumber = res.TrackingNumber
		o.InvoiceID = res.InvoiceID
		o.ErrorMessage = ""
		if !o.HasVendorReference() {
			o.AwaitingReconciliation = true
		}
		return nil
	case domain.VendorOutcomeMaintenance:
		// Stays processing; reconciliation schedules the purchase again.
		o.ErrorMessage = res.Message
		return nil
	}

	return o.FailWith(res.Message)
}

func rawResult(res *domain.VendorResult) json.RawMessage {
	if res == nil {
		return nil
	}
	return res.Raw
}

func vendorLogStatus(res *domain.VendorResult, err error) string {
	switch {
	case errors.Is(err, domain.ErrVendorDuplicate):
		return "duplicate"
	case err != nil:
		return "error"
	case res == nil:
		return ""
	}
	return res.Outcome.String()
}
