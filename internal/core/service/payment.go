package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kohai/gamecredit/internal/core/domain"
	"go.uber.org/zap"
)

// VerifyPayment checks the order's on-chain payment and moves the order
// accordingly. Transient verifier errors and a signature not found yet are
// returned so the job is retried; on the final attempt they fail the order.
// Storage errors are always returned as transient.
func (s *Service) VerifyPayment(ctx context.Context, number domain.OrderNumber, finalAttempt bool) error {
	order, err := s.repo.ReadOrder(ctx, number)
	if err != nil {
		return fmt.Errorf("read order %s: %w", number, retryable(err))
	}

	tx := order.CryptoTransaction
	if order.Status != domain.OrderStatusPending || tx.State != domain.CryptoTransactionPending {
		s.logger.Info("Payment verification skipped",
			zap.String("order", string(number)),
			zap.String("status", string(order.Status)),
			zap.String("payment", string(tx.State)))
		return nil
	}

	req := &domain.VerificationRequest{
		Signature:        tx.Signature,
		ExpectedAmount:   order.CryptoAmount,
		ExpectedReceiver: s.conf.PlatformWallet,
		ExpectedSender:   order.Wallet,
		Token:            domain.Token(order.CryptoCurrency),
		Mint:             s.conf.TokenMints[order.CryptoCurrency],
	}

	verified, err := s.verifier.Verify(ctx, req)
	switch {
	case err == nil:
		return s.confirmPayment(ctx, number, verified)

	case ctx.Err() != nil:
		return err

	case errors.Is(err, domain.ErrTransactionNotFound):
		s.saveVerification(ctx, tx.Signature, domain.VerificationNotFound, nil)
		if !finalAttempt {
			// The node may still be indexing; the job backoff gives it more time.
			s.logger.Info("Payment not found yet", zap.String("order", string(number)), zap.Error(err))
			return fmt.Errorf("%w: %w", domain.ErrTransient, err)
		}
		return s.failPayment(ctx, number, true, "Transaction not found on chain")

	case errors.Is(err, domain.ErrInvalidTransaction):
		s.saveVerification(ctx, tx.Signature, domain.VerificationFailed, nil)
		return s.failPayment(ctx, number, false, "Payment verification failed: "+err.Error())

	case domain.IsTransient(err):
		if errors.Is(err, domain.ErrInsufficientConfirmations) {
			s.saveVerification(ctx, tx.Signature, domain.VerificationInsufficientConfirmation, nil)
		}
		if !finalAttempt {
			s.logger.Info("Payment not verified yet", zap.String("order", string(number)), zap.Error(err))
			return err
		}
		return s.failPayment(ctx, number, true, "Payment verification timed out: "+err.Error())
	}

	s.logger.Error("Payment verification error", zap.String("order", string(number)), zap.Error(err))
	return s.failPayment(ctx, number, false, "Payment verification error: "+err.Error())
}

func (s *Service) confirmPayment(ctx context.Context, number domain.OrderNumber, verified *domain.VerifiedTransaction) error {
	var effect domain.Effect

	order, err := s.repo.UpdateOrder(ctx, number, func(o *domain.Order) error {
		effect = domain.EffectNone

		err := o.CryptoTransaction.Confirm(verified, s.now())
		if err != nil {
			if errors.Is(err, domain.ErrTransitionNoop) {
				return errSkip
			}
			return err
		}
		// The on-chain value replaces the quoted amount.
		o.CryptoAmount = verified.Transfer.Amount

		_, err = o.Fire(domain.EventPay)
		if err != nil {
			return err
		}

		if o.OrderType.RequiresVendorPurchase() {
			effect, err = o.Fire(domain.EventProcess)
			return err
		}
		_, err = o.Fire(domain.EventSuccess)
		return err
	})
	if errors.Is(err, errSkip) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("confirm payment %s: %w", number, retryable(err))
	}

	s.saveVerification(ctx, verified.Signature, domain.VerificationVerified, verified)

	s.logger.Info("Payment verified",
		zap.String("order", string(number)),
		zap.String("status", string(order.Status)),
		zap.String("amount", verified.Transfer.Amount.String()),
		zap.Bool("cached", verified.Cached))

	if effect == domain.EffectPurchaseGameCredit {
		s.enqueue(ctx, domain.JobFulfillOrder, number, 0)
	}
	return nil
}

// failPayment fails the order and its payment. expire marks a payment that was
// never found rather than one found invalid.
func (s *Service) failPayment(ctx context.Context, number domain.OrderNumber, expire bool, reason string) error {
	_, err := s.repo.UpdateOrder(ctx, number, func(o *domain.Order) error {
		tx := o.CryptoTransaction
		var err error
		if expire {
			err = tx.Expire(reason)
		} else {
			err = tx.Fail(reason)
		}
		if err != nil {
			return errSkip
		}

		err = o.FailWith(reason)
		if errors.Is(err, domain.ErrTransitionNoop) {
			return nil
		}
		return err
	})
	if errors.Is(err, errSkip) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fail payment %s: %w", number, retryable(err))
	}

	s.logger.Warn("Order failed", zap.String("order", string(number)), zap.String("reason", reason))
	return nil
}

func (s *Service) saveVerification(ctx context.Context, signature string, status domain.VerificationStatus,
	result *domain.VerifiedTransaction) {
	record := &domain.VerificationRecord{
		Signature:      signature,
		Status:         status,
		LastVerifiedAt: s.now(),
		Result:         result,
	}
	if result != nil {
		record.Confirmations = result.Confirmations
	}

	err := s.repo.SaveVerificationRecord(ctx, record)
	if err != nil {
		s.logger.Warn("Save verification record", zap.String("signature", signature), zap.Error(err))
	}
}
