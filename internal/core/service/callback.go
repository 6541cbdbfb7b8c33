package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kohai/gamecredit/internal/core/domain"
	"go.uber.org/zap"
)

// HandleVendorCallback applies a vendor status push. Callbacks for orders
// that already reached a final state are acknowledged without changes.
func (s *Service) HandleVendorCallback(ctx context.Context, cb *domain.VendorCallback) (domain.CallbackOutcome, error) {
	status := strings.ToLower(strings.TrimSpace(cb.Status))
	outcome := domain.CallbackApplied
	var orderID int64

	_, err := s.repo.UpdateOrder(ctx, cb.Reference, func(o *domain.Order) error {
		orderID = o.ID

		switch domain.NormalizeVendorStatus(status) {
		case domain.VendorStatusSucceeded:
			if cb.InvoiceID != "" {
				o.TrackingNumber = cb.InvoiceID
				o.InvoiceID = cb.InvoiceID
			}
			_, err := o.Fire(domain.EventSuccess)
			if err != nil {
				return err
			}
			o.AwaitingReconciliation = false
			o.ErrorMessage = ""
			return mergeMetadata(o, map[string]any{
				"sn":                   cb.SN,
				"trx_date":             cb.TrxDate,
				"callback_received_at": s.now().UTC().Format(time.RFC3339),
			})

		case domain.VendorStatusFailed:
			return o.FailWith(fmt.Sprintf("Vendor order %s: %s", status, callbackMessage(cb)))

		case domain.VendorStatusProcessing:
			outcome = domain.CallbackAcknowledged
			if cb.InvoiceID == "" || o.Status.IsFinal() {
				return errSkip
			}
			o.TrackingNumber = cb.InvoiceID
			o.InvoiceID = cb.InvoiceID
			return nil
		}

		outcome = domain.CallbackAcknowledged
		s.logger.Warn("Unknown vendor callback status",
			zap.String("order", string(cb.Reference)), zap.String("status", cb.Status))
		return errSkip
	})

	s.appendVendorLog(ctx, orderID, domain.VendorLogCallback, cb.Raw, nil, status, 0)

	switch {
	case err == nil:
	case errors.Is(err, errSkip):
		err = nil
	case settled(err):
		s.logger.Info("Callback for settled order",
			zap.String("order", string(cb.Reference)), zap.String("status", status))
		return domain.CallbackAlreadyFinal, nil
	default:
		return "", err
	}

	s.logger.Info("Vendor callback",
		zap.String("order", string(cb.Reference)),
		zap.String("status", status),
		zap.String("outcome", string(outcome)))
	return outcome, nil
}

func callbackMessage(cb *domain.VendorCallback) string {
	switch {
	case cb.Message != "":
		return cb.Message
	case cb.ErrorMessage != "":
		return cb.ErrorMessage
	}
	return "Unknown error"
}

// mergeMetadata adds fields to the order metadata object, keeping what is there.
func mergeMetadata(o *domain.Order, fields map[string]any) error {
	meta := map[string]any{}
	if len(o.Metadata) > 0 {
		if err := json.Unmarshal(o.Metadata, &meta); err != nil {
			meta = map[string]any{"vendor_response": json.RawMessage(o.Metadata)}
		}
	}
	for k, v := range fields {
		meta[k] = v
	}

	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	o.Metadata = raw
	return nil
}
